package consent

import (
	"sync"
	"time"

	"gamestudio/website/internal/hub"
	"gamestudio/website/pkg/logger"
	"gamestudio/website/pkg/metrics"

	"go.uber.org/zap"
)

const topic = "consent"

// Subscription delivers every status transition of a Store.
type Subscription = hub.Client[Status]

// Store owns one visitor's consent record. Storage failures are absorbed and
// leave the visitor without consent.
type Store struct {
	storage Storage
	events  *hub.Hub[Status]
	now     func() time.Time
	log     *zap.Logger

	mu sync.Mutex
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger sets the logger used for storage diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

// NewStore creates a Store over storage.
func NewStore(storage Storage, opts ...Option) *Store {
	s := &Store{
		storage: storage,
		events:  hub.New[Status](),
		now:     time.Now,
		log:     logger.OrNop(nil),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Status returns the current decision. An expired record is removed and the
// visitor is back to Pending.
func (s *Store) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.statusLocked()
}

// Record returns the stored decision, if any valid one exists.
func (s *Store) Record() (Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.statusLocked() == Pending {
		return Record{Status: Pending}, false
	}
	return s.load()
}

// IsValid reports whether a decision exists and is younger than MaxAge.
// It does not modify storage; the next Status call performs the reset.
func (s *Store) IsValid() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.load()
	return ok && !rec.Expired(s.now())
}

// Accept records consent for non-essential cookies.
func (s *Store) Accept() { s.decide(Accepted) }

// Decline records refusal of non-essential cookies.
func (s *Store) Decline() { s.decide(Declined) }

// Reset forgets the decision.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.statusLocked()
	s.clear()
	if prev != Pending && s.statusLocked() == Pending {
		s.publish(Pending)
	}
}

// Subscribe returns a channel receiving every later status transition.
func (s *Store) Subscribe() Subscription {
	return s.events.Subscribe(topic, hub.DefaultBuffer)
}

// Unsubscribe stops delivery and closes sub.
func (s *Store) Unsubscribe(sub Subscription) {
	s.events.Unsubscribe(topic, sub)
}

// Close closes every subscription.
func (s *Store) Close() {
	s.events.Close()
}

func (s *Store) decide(status Status) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.statusLocked()
	rec := Record{Status: status, DecidedAt: s.now().UTC()}
	if err := s.save(rec); err != nil {
		s.log.Debug("consent storage unavailable; decision not kept",
			zap.String("status", string(status)), zap.Error(err))
		return
	}
	if prev != status {
		s.publish(status)
	}
}

func (s *Store) publish(status Status) {
	metrics.RecordConsentDecision(string(status))
	s.events.Broadcast(topic, status)
}

func (s *Store) statusLocked() Status {
	rec, ok := s.load()
	if !ok {
		return Pending
	}
	if rec.Expired(s.now()) {
		s.clear()
		s.publish(Pending)
		return Pending
	}
	return rec.Status
}

// load reads the record. A record with a missing or unreadable timestamp
// counts as absent.
func (s *Store) load() (Record, bool) {
	raw, err := s.storage.Get(KeyStatus)
	if err != nil {
		s.log.Debug("consent storage read failed", zap.Error(err))
		return Record{}, false
	}
	status, err := ParseStatus(raw)
	if err != nil || status == Pending {
		return Record{}, false
	}

	ts, err := s.storage.Get(KeyTimestamp)
	if err != nil {
		s.log.Debug("consent storage read failed", zap.Error(err))
		return Record{}, false
	}
	decidedAt, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		return Record{}, false
	}
	return Record{Status: status, DecidedAt: decidedAt}, true
}

func (s *Store) save(rec Record) error {
	if err := s.storage.Set(KeyStatus, string(rec.Status)); err != nil {
		return err
	}
	if err := s.storage.Set(KeyTimestamp, rec.DecidedAt.Format(time.RFC3339)); err != nil {
		_ = s.storage.Remove(KeyStatus)
		return err
	}
	return nil
}

func (s *Store) clear() {
	if err := s.storage.Remove(KeyStatus); err != nil {
		s.log.Debug("consent storage remove failed", zap.Error(err))
	}
	if err := s.storage.Remove(KeyTimestamp); err != nil {
		s.log.Debug("consent storage remove failed", zap.Error(err))
	}
}
