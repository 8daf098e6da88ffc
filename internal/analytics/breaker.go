package analytics

// BreakerState is the one-shot connectivity breaker of a Tracker.
type BreakerState int

const (
	// Armed trackers send events.
	Armed BreakerState = iota
	// Tripped trackers hit a connectivity failure and stay silent for the
	// rest of the session.
	Tripped
)

func (s BreakerState) String() string {
	switch s {
	case Armed:
		return "armed"
	case Tripped:
		return "tripped"
	default:
		return "unknown"
	}
}
