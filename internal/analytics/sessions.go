package analytics

import (
	"context"
	"sync"
	"time"

	"gamestudio/website/internal/consent"
	"gamestudio/website/internal/models"
	"gamestudio/website/pkg/logger"
	"gamestudio/website/pkg/metrics"

	"go.uber.org/zap"
)

// Default registry settings.
const (
	defaultIdleTimeout = 30 * time.Minute
	defaultMaxSessions = 10000
	sweepInterval      = time.Minute
	unloadTimeout      = 2 * time.Second
)

// Session is one visitor's consent store and tracker.
type Session struct {
	ID      string
	Consent *consent.Store
	Tracker *Tracker

	lastSeen time.Time
}

// Sessions holds the live visitor sessions keyed by session id.
type Sessions struct {
	sink      Sink
	enabled   bool
	idle      time.Duration
	limit     int
	now       func() time.Time
	log       *zap.Logger
	publish   func(models.PageView)
	onConsent func(*Session, consent.Status)

	mu       sync.Mutex
	sessions map[string]*Session
}

// SessionsOption configures Sessions.
type SessionsOption func(*Sessions)

// WithIdleTimeout sets how long an unseen session is kept.
func WithIdleTimeout(d time.Duration) SessionsOption {
	return func(s *Sessions) {
		if d > 0 {
			s.idle = d
		}
	}
}

// WithMaxSessions caps the number of live sessions. Starting a session at
// the cap ends the least recently seen one.
func WithMaxSessions(n int) SessionsOption {
	return func(s *Sessions) {
		if n > 0 {
			s.limit = n
		}
	}
}

// WithSessionsClock overrides the time source for sessions and their trackers.
func WithSessionsClock(now func() time.Time) SessionsOption {
	return func(s *Sessions) {
		if now != nil {
			s.now = now
		}
	}
}

// WithSessionsLogger sets the logger handed to every session.
func WithSessionsLogger(l *zap.Logger) SessionsOption {
	return func(s *Sessions) {
		if l != nil {
			s.log = l
		}
	}
}

// WithPageViewPublisher forwards every stored page view to fn.
func WithPageViewPublisher(fn func(models.PageView)) SessionsOption {
	return func(s *Sessions) { s.publish = fn }
}

// WithConsentListener is called for every consent transition of any session.
func WithConsentListener(fn func(*Session, consent.Status)) SessionsOption {
	return func(s *Sessions) { s.onConsent = fn }
}

// NewSessions creates a registry whose trackers write to sink. enabled is
// the backend-credentials check.
func NewSessions(sink Sink, enabled bool, opts ...SessionsOption) *Sessions {
	s := &Sessions{
		sink:     sink,
		enabled:  enabled,
		idle:     defaultIdleTimeout,
		limit:    defaultMaxSessions,
		now:      time.Now,
		log:      logger.OrNop(nil),
		sessions: make(map[string]*Session),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get returns a live session and marks it as seen.
func (s *Sessions) Get(id string) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if ok {
		sess.lastSeen = s.now()
	}
	return sess, ok
}

// Start opens a new session. seed holds the visitor's persisted consent
// values; device describes the client.
func (s *Sessions) Start(seed map[string]string, device DeviceInfo) *Session {
	store := consent.NewStore(consent.NewMemoryStorage(seed),
		consent.WithClock(s.now), consent.WithLogger(s.log))
	tracker := NewTracker(s.sink, store,
		WithEnabled(s.enabled),
		WithDevice(device),
		WithClock(s.now),
		WithLogger(s.log),
		WithPublisher(s.publish),
	)
	sess := &Session{
		ID:       tracker.SessionID(),
		Consent:  store,
		Tracker:  tracker,
		lastSeen: s.now(),
	}

	if s.onConsent != nil {
		sub := store.Subscribe()
		go func() {
			for status := range sub {
				s.onConsent(sess, status)
			}
		}()
	}

	s.mu.Lock()
	evicted := s.evictLocked()
	s.sessions[sess.ID] = sess
	n := len(s.sessions)
	s.mu.Unlock()

	if evicted != nil {
		s.log.Debug("session cap reached; ended least recently seen", zap.String("session_id", evicted.ID))
		s.end(context.Background(), evicted)
	}
	metrics.UpdateActiveSessions(n)
	return sess
}

// evictLocked removes the least recently seen session when the registry is
// full. Callers hold s.mu.
func (s *Sessions) evictLocked() *Session {
	if len(s.sessions) < s.limit {
		return nil
	}
	var oldest *Session
	for _, sess := range s.sessions {
		if oldest == nil || sess.lastSeen.Before(oldest.lastSeen) {
			oldest = sess
		}
	}
	delete(s.sessions, oldest.ID)
	return oldest
}

// Len returns the number of live sessions.
func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep ends sessions idle for longer than the timeout and returns how many
// were ended. Each ended session gets a best-effort final page view.
func (s *Sessions) Sweep(ctx context.Context) int {
	cutoff := s.now().Add(-s.idle)

	s.mu.Lock()
	var expired []*Session
	for id, sess := range s.sessions {
		if sess.lastSeen.Before(cutoff) {
			expired = append(expired, sess)
			delete(s.sessions, id)
		}
	}
	n := len(s.sessions)
	s.mu.Unlock()

	for _, sess := range expired {
		s.end(ctx, sess)
	}
	metrics.UpdateActiveSessions(n)
	return len(expired)
}

// Run sweeps periodically until ctx is done, then ends every session.
func (s *Sessions) Run(ctx context.Context) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.closeAll()
			return
		case <-ticker.C:
			if n := s.Sweep(ctx); n > 0 {
				s.log.Debug("ended idle sessions", zap.Int("count", n))
			}
		}
	}
}

func (s *Sessions) closeAll() {
	s.mu.Lock()
	all := make([]*Session, 0, len(s.sessions))
	for id, sess := range s.sessions {
		all = append(all, sess)
		delete(s.sessions, id)
	}
	s.mu.Unlock()

	for _, sess := range all {
		s.end(context.Background(), sess)
	}
	metrics.UpdateActiveSessions(0)
}

func (s *Sessions) end(ctx context.Context, sess *Session) {
	unloadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), unloadTimeout)
	defer cancel()
	sess.Tracker.Unload(unloadCtx, "")
	sess.Consent.Close()
}
