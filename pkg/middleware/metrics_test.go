package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// metricValue returns the counter value or histogram sample count of the
// series name{labels}.
func metricValue(t *testing.T, g prometheus.Gatherer, name string, labels map[string]string) float64 {
	t.Helper()
	families, err := g.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			if !labelsMatch(m, labels) {
				continue
			}
			switch {
			case m.GetCounter() != nil:
				return m.GetCounter().GetValue()
			case m.GetHistogram() != nil:
				return float64(m.GetHistogram().GetSampleCount())
			}
		}
	}
	return 0
}

func labelsMatch(m *dto.Metric, want map[string]string) bool {
	got := make(map[string]string, len(m.GetLabel()))
	for _, lp := range m.GetLabel() {
		got[lp.GetName()] = lp.GetValue()
	}
	for k, v := range want {
		if got[k] != v {
			return false
		}
	}
	return true
}

func TestMetricsHandler(t *testing.T) {
	m := NewMetrics()

	r := chi.NewRouter()
	r.Use(m.Handler)
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	r.Get("/items/{id}", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	for _, path := range []string{"/", "/items/1", "/items/2", "/missing"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	g := m.Gatherer()
	assert.Equal(t, 1.0, metricValue(t, g, "ssr_requests_total", map[string]string{"route": "/", "status": "500"}))
	assert.Equal(t, 2.0, metricValue(t, g, "ssr_requests_total", map[string]string{"route": "/items/{id}", "status": "200"}))
	assert.Equal(t, 1.0, metricValue(t, g, "ssr_requests_total", map[string]string{"route": "unmatched", "status": "404"}))
	assert.Equal(t, 2.0, metricValue(t, g, "ssr_request_duration_seconds", map[string]string{"route": "/items/{id}"}))
}

func TestMetricsObservers(t *testing.T) {
	m := NewMetrics(WithNamespace("test"), WithConstLabels(prometheus.Labels{"app": "ssrgoods"}))

	m.ObservePageError("fetch")
	m.ObservePageError("fetch")
	m.ObservePageError("payload")
	m.ObserveFetch("ok", 20*time.Millisecond)
	m.ObserveRenderedItems(2)

	g := m.Gatherer()
	assert.Equal(t, 2.0, metricValue(t, g, "test_page_errors_total", map[string]string{"category": "fetch", "app": "ssrgoods"}))
	assert.Equal(t, 1.0, metricValue(t, g, "test_page_errors_total", map[string]string{"category": "payload"}))
	assert.Equal(t, 1.0, metricValue(t, g, "test_fetch_duration_seconds", map[string]string{"outcome": "ok"}))
	assert.Equal(t, 1.0, metricValue(t, g, "test_rendered_items", nil))
}

func TestMetricsInstancesAreIndependent(t *testing.T) {
	a := NewMetrics()
	b := NewMetrics()

	a.ObservePageError("render")
	assert.Equal(t, 1.0, metricValue(t, a.Gatherer(), "ssr_page_errors_total", map[string]string{"category": "render"}))
	assert.Equal(t, 0.0, metricValue(t, b.Gatherer(), "ssr_page_errors_total", map[string]string{"category": "render"}))
}

func TestMetricsSharedRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(WithRegistry(reg), WithSubsystem("page"), WithBuckets([]float64{0.1, 1}))
	m.ObservePageError("fetch")

	assert.Equal(t, 1.0, metricValue(t, reg, "ssr_page_page_errors_total", map[string]string{"category": "fetch"}))
}

func TestExpositionHandler(t *testing.T) {
	m := NewMetrics()
	m.ObservePageError("payload")

	rec := httptest.NewRecorder()
	m.ExpositionHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), `ssr_page_errors_total{category="payload"} 1`), rec.Body.String())
}
