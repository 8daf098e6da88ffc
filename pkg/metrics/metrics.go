// Package metrics provides Prometheus metrics for the studio website.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "studio_site"

// Analytics outcomes recorded per event kind.
const (
	OutcomeTracked            = "tracked"
	OutcomeFailed             = "failed"
	OutcomeSuppressedConsent  = "suppressed_consent"
	OutcomeSuppressedDisabled = "suppressed_disabled"
	OutcomeSuppressedTripped  = "suppressed_tripped"
)

// Manager owns the collectors registered on one registry.
type Manager struct {
	registry *prometheus.Registry

	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	analyticsEvents     *prometheus.CounterVec
	breakerTrips        prometheus.Counter
	dispatchDropped     prometheus.Counter
	dispatchQueueSize   prometheus.Gauge
	consentDecisions    *prometheus.CounterVec
	contentFallbacks    *prometheus.CounterVec
	activeSessions      prometheus.Gauge
}

// Custom registry to avoid default Go metrics.
var global = NewManager(prometheus.NewRegistry()) //nolint:gochecknoglobals // process-wide metrics

// NewManager registers every collector on reg.
func NewManager(reg *prometheus.Registry) *Manager {
	f := promauto.With(reg)
	return &Manager{
		registry: reg,
		httpRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		httpRequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route and method.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
		analyticsEvents: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "analytics",
			Name:      "events_total",
			Help:      "Analytics calls by event kind and outcome.",
		}, []string{"kind", "outcome"}),
		breakerTrips: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "analytics",
			Name:      "breaker_trips_total",
			Help:      "Sessions whose analytics were disabled after a connectivity failure.",
		}),
		dispatchDropped: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "dispatch",
			Name:      "dropped_total",
			Help:      "Background jobs dropped because the queue was full or closed.",
		}),
		dispatchQueueSize: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "dispatch",
			Name:      "queue_size",
			Help:      "Jobs waiting in the dispatch queue.",
		}),
		consentDecisions: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "consent",
			Name:      "decisions_total",
			Help:      "Consent transitions by resulting status.",
		}, []string{"status"}),
		contentFallbacks: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "content",
			Name:      "fallbacks_total",
			Help:      "Loads masked with placeholder content, by section.",
		}, []string{"section"}),
		activeSessions: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "analytics",
			Name:      "active_sessions",
			Help:      "Visitor sessions currently held in memory.",
		}),
	}
}

// Handler exposes the global registry over HTTP.
func Handler() http.Handler {
	return promhttp.HandlerFor(global.registry, promhttp.HandlerOpts{})
}

func RecordHTTPRequest(route, method, status string, seconds float64) {
	global.httpRequests.WithLabelValues(route, method, status).Inc()
	global.httpRequestDuration.WithLabelValues(route, method).Observe(seconds)
}

func RecordAnalyticsEvent(kind, outcome string) {
	global.analyticsEvents.WithLabelValues(kind, outcome).Inc()
}

func RecordBreakerTrip() { global.breakerTrips.Inc() }

func RecordDispatchDropped() { global.dispatchDropped.Inc() }

func UpdateDispatchQueueSize(n int) { global.dispatchQueueSize.Set(float64(n)) }

func RecordConsentDecision(status string) {
	global.consentDecisions.WithLabelValues(status).Inc()
}

func RecordContentFallback(section string) {
	global.contentFallbacks.WithLabelValues(section).Inc()
}

func UpdateActiveSessions(n int) { global.activeSessions.Set(float64(n)) }
