// Package dispatch runs analytics writes off the request path on a bounded
// in-memory queue drained by a small worker pool.
package dispatch

import (
	"context"
	"errors"
	"sync"

	"gamestudio/website/pkg/metrics"
)

const defaultCapacity = 1024

// ErrClosed is returned by Enqueue after Close.
var ErrClosed = errors.New("dispatch queue closed")

// ErrFull is returned by Enqueue when the queue has no room.
var ErrFull = errors.New("dispatch queue full")

// Job is one unit of background work.
type Job struct {
	Kind string
	Run  func(ctx context.Context)
}

// Queue is a non-blocking bounded job queue.
type Queue struct {
	jobs chan Job

	mu     sync.RWMutex
	closed bool
}

// NewQueue creates a queue holding at most capacity jobs.
func NewQueue(capacity int) *Queue {
	if capacity < 1 {
		capacity = defaultCapacity
	}
	metrics.UpdateDispatchQueueSize(0)
	return &Queue{jobs: make(chan Job, capacity)}
}

// Enqueue adds a job without blocking. Jobs that do not fit are dropped.
func (q *Queue) Enqueue(j Job) error {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		metrics.RecordDispatchDropped()
		return ErrClosed
	}

	select {
	case q.jobs <- j:
		metrics.UpdateDispatchQueueSize(len(q.jobs))
		return nil
	default:
		metrics.RecordDispatchDropped()
		return ErrFull
	}
}

// Jobs returns the receive side of the queue. It is closed by Close once
// drained.
func (q *Queue) Jobs() <-chan Job { return q.jobs }

// Len returns the number of waiting jobs.
func (q *Queue) Len() int { return len(q.jobs) }

// Cap returns the queue capacity.
func (q *Queue) Cap() int { return cap(q.jobs) }

// Close stops accepting jobs. Jobs already queued are still delivered.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return
	}
	q.closed = true
	close(q.jobs)
}

// IsClosed reports whether Close was called.
func (q *Queue) IsClosed() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.closed
}
