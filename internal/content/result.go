// Package content loads the public site's data and decides, per section,
// whether a backend failure is shown or masked with placeholder content.
package content

// State is the load state of a data-bound page section.
type State int

const (
	Loading State = iota
	Success
	Error
)

func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case Success:
		return "success"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

// Result is the outcome of a load. Err is kept when the data was masked so
// callers and logs can still see what failed.
type Result[T any] struct {
	Data     T
	Err      error
	Fallback bool
}

// Ok wraps loaded data.
func Ok[T any](data T) Result[T] {
	return Result[T]{Data: data}
}

// Fail wraps a load error.
func Fail[T any](err error) Result[T] {
	return Result[T]{Err: err}
}

// OrFallback replaces the data of a failed result with fallback and marks it
// masked. Successful results are returned unchanged.
func (r Result[T]) OrFallback(fallback T) Result[T] {
	if r.Err == nil {
		return r
	}
	return Result[T]{Data: fallback, Err: r.Err, Fallback: true}
}

// State reports Success for loaded or masked data and Error otherwise.
func (r Result[T]) State() State {
	if r.Err != nil && !r.Fallback {
		return Error
	}
	return Success
}
