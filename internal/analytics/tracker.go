// Package analytics collects consent-gated page views and interactions for
// one visitor session and forwards them to the hosted backend.
package analytics

import (
	"context"
	"sync"
	"time"

	"gamestudio/website/internal/consent"
	"gamestudio/website/internal/database"
	"gamestudio/website/internal/models"
	"gamestudio/website/pkg/logger"
	"gamestudio/website/pkg/metrics"

	"go.uber.org/zap"
)

// Event kinds used in logs and metrics.
const (
	KindPageView    = "page_view"
	KindInteraction = "interaction"
	KindSession     = "session"
)

// Sink writes analytics rows to the hosted backend.
type Sink interface {
	InsertPageView(ctx context.Context, pv *models.PageView) error
	InsertInteraction(ctx context.Context, in *models.UserInteraction) error
	UpsertSession(ctx context.Context, s *models.UserSession) error
}

// ConsentSource reports the visitor's current consent decision.
type ConsentSource interface {
	Status() consent.Status
}

// Page identifies the page a visitor is on.
type Page struct {
	Path     string
	Title    string
	Referrer string
}

// Interaction is an element-level event reported by the page.
type Interaction struct {
	Type         string         `json:"type" binding:"required"`
	PagePath     string         `json:"page_path"`
	ElementTag   string         `json:"element_tag"`
	ElementID    string         `json:"element_id"`
	ElementClass string         `json:"element_class"`
	ElementText  string         `json:"element_text"`
	TargetURL    string         `json:"target_url"`
	Metadata     map[string]any `json:"metadata"`
}

// PageViewOption adjusts a page-view row before it is sent.
type PageViewOption func(*models.PageView)

// WithTitle overrides the page title.
func WithTitle(title string) PageViewOption {
	return func(pv *models.PageView) { pv.PageTitle = title }
}

// WithScreen records the visitor's screen size.
func WithScreen(width, height int) PageViewOption {
	return func(pv *models.PageView) {
		pv.ScreenWidth = width
		pv.ScreenHeight = height
	}
}

// Tracker is the analytics client for one visitor session. Every call is a
// no-op unless the visitor accepted cookies, the backend is configured and
// the breaker is still armed.
type Tracker struct {
	sessionID string
	consent   ConsentSource
	sink      Sink
	enabled   bool
	device    DeviceInfo
	now       func() time.Time
	log       *zap.Logger
	publish   func(models.PageView)

	mu        sync.Mutex
	state     BreakerState
	startedAt time.Time
	page      Page
	pageStart time.Time
	landing   string
	entryRef  string
	pageViews int
	scroll    *ScrollSampler
}

// TrackerOption configures a Tracker.
type TrackerOption func(*Tracker)

// WithEnabled sets whether backend credentials are present.
func WithEnabled(enabled bool) TrackerOption {
	return func(t *Tracker) { t.enabled = enabled }
}

// WithDevice sets the client description attached to every row.
func WithDevice(d DeviceInfo) TrackerOption {
	return func(t *Tracker) { t.device = d }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) TrackerOption {
	return func(t *Tracker) {
		if now != nil {
			t.now = now
		}
	}
}

// WithLogger sets the diagnostic logger.
func WithLogger(l *zap.Logger) TrackerOption {
	return func(t *Tracker) {
		if l != nil {
			t.log = l
		}
	}
}

// WithPublisher registers a callback for every stored page view.
func WithPublisher(fn func(models.PageView)) TrackerOption {
	return func(t *Tracker) { t.publish = fn }
}

// WithSessionID fixes the session identifier instead of generating one.
func WithSessionID(id string) TrackerOption {
	return func(t *Tracker) {
		if id != "" {
			t.sessionID = id
		}
	}
}

// NewTracker creates a tracker with a fresh session identifier.
func NewTracker(sink Sink, source ConsentSource, opts ...TrackerOption) *Tracker {
	t := &Tracker{
		consent: source,
		sink:    sink,
		enabled: true,
		now:     time.Now,
		log:     logger.OrNop(nil),
	}
	for _, opt := range opts {
		opt(t)
	}

	t.startedAt = t.now().UTC()
	if t.sessionID == "" {
		t.sessionID = NewSessionID(t.startedAt)
	}
	t.pageStart = t.startedAt
	t.scroll = NewScrollSampler(FrameInterval, t.now)
	t.log = t.log.With(zap.String("session_id", t.sessionID))
	return t
}

// SessionID returns the identifier correlating this session's events.
func (t *Tracker) SessionID() string { return t.sessionID }

// State returns the breaker state.
func (t *Tracker) State() BreakerState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// CurrentPage returns the page the visitor is on.
func (t *Tracker) CurrentPage() Page {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.page
}

// TrackPageView sends a page view for the current page.
func (t *Tracker) TrackPageView(ctx context.Context, opts ...PageViewOption) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.trackPageView(ctx, opts...)
}

// OnPageChange moves the session to p and tracks its page view. The previous
// path becomes the referrer when p has none.
func (t *Tracker) OnPageChange(ctx context.Context, p Page, opts ...PageViewOption) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if p.Referrer == "" {
		p.Referrer = t.page.Path
	}
	if t.landing == "" {
		t.landing = p.Path
		t.entryRef = p.Referrer
	}
	t.page = p
	t.pageStart = t.now()
	t.scroll.Reset()
	t.trackPageView(ctx, opts...)
}

// TrackInteraction sends one interaction event.
func (t *Tracker) TrackInteraction(ctx context.Context, in Interaction) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.allowed(KindInteraction) {
		return
	}

	path := in.PagePath
	if path == "" {
		path = t.page.Path
	}
	row := &models.UserInteraction{
		SessionID:       t.sessionID,
		InteractionType: truncate(in.Type, maxTypeLen),
		PagePath:        truncate(path, maxPathLen),
		ElementTag:      truncate(in.ElementTag, maxTagLen),
		ElementID:       truncate(in.ElementID, maxIDLen),
		ElementClass:    truncate(in.ElementClass, maxClassLen),
		ElementText:     truncate(in.ElementText, maxTextLen),
		TargetURL:       truncate(in.TargetURL, maxURLLen),
		Metadata:        in.Metadata,
		CreatedAt:       t.now().UTC(),
	}
	if err := t.sink.InsertInteraction(ctx, row); err != nil {
		t.fail(KindInteraction, err)
		return
	}
	metrics.RecordAnalyticsEvent(KindInteraction, metrics.OutcomeTracked)
}

// RecordScroll samples the scroll depth of path, in percent. Samples for a
// page the session already left are dropped.
func (t *Tracker) RecordScroll(path string, depth int) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.onPage(path) {
		return false
	}
	return t.scroll.Record(depth)
}

// Unload sends a final page view for path, or for the current page when
// path is empty. It is dropped when the session already moved on. It is
// best effort: the caller may already be gone and errors only trip the
// breaker.
func (t *Tracker) Unload(ctx context.Context, path string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.page.Path == "" {
		return
	}
	if !t.onPage(path) {
		t.log.Debug("stale unload dropped", zap.String("path", path), zap.String("current", t.page.Path))
		return
	}
	t.trackPageView(ctx)
}

// onPage reports whether an event for path belongs to the current page.
// Callers hold t.mu.
func (t *Tracker) onPage(path string) bool {
	return path == "" || path == t.page.Path
}

func (t *Tracker) trackPageView(ctx context.Context, opts ...PageViewOption) {
	if !t.allowed(KindPageView) {
		return
	}

	now := t.now().UTC()
	row := &models.PageView{
		SessionID:    t.sessionID,
		PagePath:     truncate(t.page.Path, maxPathLen),
		PageTitle:    t.page.Title,
		Referrer:     truncate(t.page.Referrer, maxURLLen),
		UserAgent:    truncate(t.device.UserAgent, maxAgentLen),
		DeviceType:   t.device.DeviceType,
		Browser:      t.device.Browser,
		OS:           t.device.OS,
		Language:     t.device.Language,
		ScreenWidth:  t.device.ScreenWidth,
		ScreenHeight: t.device.ScreenHeight,
		TimeOnPage:   int(now.Sub(t.pageStart) / time.Second),
		ScrollDepth:  t.scroll.Depth(),
		CreatedAt:    now,
	}
	for _, opt := range opts {
		opt(row)
	}
	row.PageTitle = truncate(row.PageTitle, maxTitleLen)

	if err := t.sink.InsertPageView(ctx, row); err != nil {
		t.fail(KindPageView, err)
		return
	}
	t.pageViews++
	metrics.RecordAnalyticsEvent(KindPageView, metrics.OutcomeTracked)
	if t.publish != nil {
		t.publish(*row)
	}

	// Not ordered against other sessions' writes.
	if err := t.sink.UpsertSession(ctx, t.sessionRow(now)); err != nil {
		t.fail(KindSession, err)
	}
}

func (t *Tracker) sessionRow(now time.Time) *models.UserSession {
	return &models.UserSession{
		SessionID:    t.sessionID,
		StartedAt:    t.startedAt,
		LastActivity: now,
		PageViews:    t.pageViews,
		LandingPage:  truncate(t.landing, maxPathLen),
		Referrer:     truncate(t.entryRef, maxURLLen),
		DeviceType:   t.device.DeviceType,
		Browser:      t.device.Browser,
		OS:           t.device.OS,
		Language:     t.device.Language,
	}
}

// allowed runs the gate shared by every call. Callers hold t.mu.
func (t *Tracker) allowed(kind string) bool {
	switch {
	case t.state == Tripped:
		metrics.RecordAnalyticsEvent(kind, metrics.OutcomeSuppressedTripped)
		return false
	case !t.enabled:
		t.log.Debug("analytics disabled: backend not configured", zap.String("kind", kind))
		metrics.RecordAnalyticsEvent(kind, metrics.OutcomeSuppressedDisabled)
		return false
	case t.consent == nil || t.consent.Status() != consent.Accepted:
		t.log.Debug("analytics skipped: no cookie consent", zap.String("kind", kind))
		metrics.RecordAnalyticsEvent(kind, metrics.OutcomeSuppressedConsent)
		return false
	}
	return true
}

// fail trips the breaker on connectivity failures. Callers hold t.mu.
func (t *Tracker) fail(kind string, err error) {
	metrics.RecordAnalyticsEvent(kind, metrics.OutcomeFailed)
	if database.IsConnectivity(err) {
		t.state = Tripped
		metrics.RecordBreakerTrip()
		t.log.Warn("analytics disabled for session: backend unreachable",
			zap.String("kind", kind), zap.Error(err))
		return
	}
	t.log.Error("analytics insert failed", zap.String("kind", kind), zap.Error(err))
}
