package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestManagerCounters(t *testing.T) {
	m := NewManager(prometheus.NewRegistry())

	m.analyticsEvents.WithLabelValues("page_view", OutcomeTracked).Inc()
	m.analyticsEvents.WithLabelValues("page_view", OutcomeTracked).Inc()
	m.breakerTrips.Inc()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.analyticsEvents.WithLabelValues("page_view", OutcomeTracked)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.breakerTrips))
}

func TestHandlerExposesGlobalRegistry(t *testing.T) {
	RecordConsentDecision("accepted")
	RecordHTTPRequest("/", http.MethodGet, "200", 0.01)

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, "studio_site_consent_decisions_total"))
	assert.True(t, strings.Contains(body, "studio_site_http_requests_total"))
}
