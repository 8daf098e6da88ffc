package analytics

import "time"

// FrameInterval is the sampling window for scroll updates, one display frame.
const FrameInterval = 16 * time.Millisecond

// ScrollSampler keeps the deepest scroll position seen on a page. Samples
// that arrive within one interval of the last applied sample are coalesced
// into a single pending maximum. It is not safe for concurrent use.
type ScrollSampler struct {
	interval time.Duration
	now      func() time.Time

	last    time.Time
	depth   int
	pending int
}

// NewScrollSampler creates a sampler. A non-positive interval uses FrameInterval.
func NewScrollSampler(interval time.Duration, now func() time.Time) *ScrollSampler {
	if interval <= 0 {
		interval = FrameInterval
	}
	if now == nil {
		now = time.Now
	}
	return &ScrollSampler{interval: interval, now: now}
}

// Record offers a scroll depth in percent and reports whether the applied
// depth grew.
func (s *ScrollSampler) Record(depth int) bool {
	depth = clampPercent(depth)
	t := s.now()

	if !s.last.IsZero() && t.Sub(s.last) < s.interval {
		if depth > s.pending {
			s.pending = depth
		}
		return false
	}

	s.last = t
	if s.pending > depth {
		depth = s.pending
	}
	s.pending = 0
	if depth > s.depth {
		s.depth = depth
		return true
	}
	return false
}

// Depth returns the deepest position seen, including a coalesced sample.
func (s *ScrollSampler) Depth() int {
	return max(s.depth, s.pending)
}

// Reset starts a new page.
func (s *ScrollSampler) Reset() {
	s.last = time.Time{}
	s.depth = 0
	s.pending = 0
}

func clampPercent(v int) int {
	return min(max(v, 0), 100)
}
