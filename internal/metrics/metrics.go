package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Upstream outcomes
const (
	UpstreamOK       = "ok"
	UpstreamNotFound = "not_found"
	UpstreamError    = "error"
	UpstreamOpen     = "circuit_open"
)

// Registry holds all Prometheus metrics for rugscan.
// A nil *Registry is valid and records nothing.
// ⭐ SSOT: 메트릭 정의는 여기서만
type Registry struct {
	reg *prometheus.Registry

	ScansTotal        *prometheus.CounterVec
	ScanDuration      prometheus.Histogram
	ScoreDistribution prometheus.Histogram
	UpstreamRequests  *prometheus.CounterVec
	CacheLookups      *prometheus.CounterVec
	RateLimited       *prometheus.CounterVec
	HTTPRequests      *prometheus.CounterVec
	StatsEvents       *prometheus.CounterVec
}

// New creates a registry with process and Go collectors attached
func New() *Registry {
	r := &Registry{
		reg: prometheus.NewRegistry(),

		ScansTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rugscan_scans_total",
				Help: "Completed scans by risk level",
			},
			[]string{"risk_level"},
		),

		ScanDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "rugscan_scan_duration_seconds",
				Help:    "End-to-end scan latency",
				Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
		),

		ScoreDistribution: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "rugscan_total_score",
				Help:    "Distribution of composite scores",
				Buckets: prometheus.LinearBuckets(10, 10, 9),
			},
		),

		UpstreamRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rugscan_upstream_requests_total",
				Help: "Market data lookups by outcome",
			},
			[]string{"result"},
		),

		CacheLookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rugscan_cache_lookups_total",
				Help: "Snapshot cache lookups by result",
			},
			[]string{"result"},
		),

		RateLimited: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rugscan_rate_limited_total",
				Help: "Requests rejected by the per-client limiter",
			},
			[]string{"route"},
		),

		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rugscan_http_requests_total",
				Help: "HTTP requests by route and status code",
			},
			[]string{"route", "code"},
		),

		StatsEvents: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rugscan_stats_events_total",
				Help: "Usage counter increments by kind",
			},
			[]string{"kind"},
		),
	}

	r.reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.ScansTotal,
		r.ScanDuration,
		r.ScoreDistribution,
		r.UpstreamRequests,
		r.CacheLookups,
		r.RateLimited,
		r.HTTPRequests,
		r.StatsEvents,
	)

	return r
}

// Handler serves the registry in the Prometheus exposition format
func (r *Registry) Handler() http.Handler {
	if r == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}

// ObserveScan records one completed scan
func (r *Registry) ObserveScan(riskLevel string, total int, took time.Duration) {
	if r == nil {
		return
	}
	r.ScansTotal.WithLabelValues(riskLevel).Inc()
	r.ScoreDistribution.Observe(float64(total))
	r.ScanDuration.Observe(took.Seconds())
}

// Upstream records one market data lookup outcome
func (r *Registry) Upstream(result string) {
	if r == nil {
		return
	}
	r.UpstreamRequests.WithLabelValues(result).Inc()
}

// Cache records a cache hit or miss
func (r *Registry) Cache(hit bool) {
	if r == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	r.CacheLookups.WithLabelValues(result).Inc()
}

// Limited records a rejected request
func (r *Registry) Limited(route string) {
	if r == nil {
		return
	}
	r.RateLimited.WithLabelValues(route).Inc()
}

// Request records a served HTTP request
func (r *Registry) Request(route, code string) {
	if r == nil {
		return
	}
	r.HTTPRequests.WithLabelValues(route, code).Inc()
}

// StatsEvent records a usage counter increment
func (r *Registry) StatsEvent(kind string) {
	if r == nil {
		return
	}
	r.StatsEvents.WithLabelValues(kind).Inc()
}
