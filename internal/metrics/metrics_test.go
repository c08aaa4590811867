package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_Records(t *testing.T) {
	r := New()

	r.ObserveScan("LOW RUG RISK", 79, 120*time.Millisecond)
	r.ObserveScan("LOW RUG RISK", 81, 80*time.Millisecond)
	r.Upstream(UpstreamNotFound)
	r.Cache(true)
	r.Cache(false)
	r.Cache(false)
	r.Limited("scan")
	r.Request("scan", "200")
	r.StatsEvent("moon")

	assert.Equal(t, 2.0, testutil.ToFloat64(r.ScansTotal.WithLabelValues("LOW RUG RISK")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.UpstreamRequests.WithLabelValues(UpstreamNotFound)))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.CacheLookups.WithLabelValues("hit")))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.CacheLookups.WithLabelValues("miss")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.RateLimited.WithLabelValues("scan")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.HTTPRequests.WithLabelValues("scan", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.StatsEvents.WithLabelValues("moon")))
}

func TestRegistry_NilIsNoop(t *testing.T) {
	var r *Registry

	assert.NotPanics(t, func() {
		r.ObserveScan("HIGH RUG RISK", 10, time.Second)
		r.Upstream(UpstreamError)
		r.Cache(true)
		r.Limited("stats")
		r.Request("health", "200")
		r.StatsEvent("visit")
	})

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRegistry_Handler(t *testing.T) {
	r := New()
	r.Upstream(UpstreamOK)

	server := httptest.NewServer(r.Handler())
	defer server.Close()

	resp, err := http.Get(server.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `rugscan_upstream_requests_total{result="ok"} 1`)
	assert.Contains(t, string(body), "go_goroutines")
}
