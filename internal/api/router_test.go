package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/rugscan/internal/api/handlers"
	"github.com/wonny/rugscan/internal/contracts"
	"github.com/wonny/rugscan/internal/metrics"
	"github.com/wonny/rugscan/internal/scan"
	"github.com/wonny/rugscan/internal/stats"
	"github.com/wonny/rugscan/pkg/config"
	"github.com/wonny/rugscan/pkg/logger"
)

type fakeScanner struct {
	report     *contracts.ScanReport
	err        error
	history    []contracts.ScanReport
	historyErr error
	lastMint   string
	lastLimit  int
}

func (f *fakeScanner) Scan(ctx context.Context, mint string) (*contracts.ScanReport, error) {
	f.lastMint = mint
	if f.err != nil {
		return nil, f.err
	}
	if strings.TrimSpace(mint) == "" {
		return nil, scan.ErrEmptyMint
	}
	return f.report, nil
}

func (f *fakeScanner) History(ctx context.Context, mint string, limit int) ([]contracts.ScanReport, error) {
	f.lastMint, f.lastLimit = mint, limit
	return f.history, f.historyErr
}

type testServer struct {
	handler http.Handler
	scanner *fakeScanner
	store   *stats.MemoryStore
	metrics *metrics.Registry
}

func newTestServer(t *testing.T, httpCfg config.HTTPConfig, checks map[string]handlers.HealthCheck) *testServer {
	t.Helper()

	scanner := &fakeScanner{report: &contracts.ScanReport{
		Mint:        "Mint111",
		TotalScore:  79,
		RiskLevel:   contracts.RiskLow,
		Explanation: "Healthy structure. No critical sell pressure or liquidity abuse detected.",
		Signals:     []contracts.SubSignal{{Label: "Market Integrity", RawScore: 85, Weight: 0.15, Score: 85}},
	}}
	store := stats.NewMemoryStore()
	m := metrics.New()
	log := logger.Nop()

	h := Handlers{
		Scan:    handlers.NewScanHandler(scanner, log),
		Stats:   handlers.NewStatsHandler(store, m, log),
		Health:  handlers.NewHealthHandler(checks, func() string { return "closed" }),
		Metrics: m,
	}

	return &testServer{
		handler: NewRouter(h, NewLimiters(httpCfg), httpCfg, log),
		scanner: scanner,
		store:   store,
		metrics: m,
	}
}

func defaultHTTPConfig() config.HTTPConfig {
	return config.HTTPConfig{
		AllowedOrigin:     "*",
		RateLimitWindow:   10 * time.Second,
		RateLimitMax:      40,
		StatsRateLimitMax: 20,
	}
}

func (s *testServer) do(method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestScanEndpoint(t *testing.T) {
	s := newTestServer(t, defaultHTTPConfig(), nil)

	rec := s.do(http.MethodGet, "/api/scan/Mint111", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))

	body := decode(t, rec)
	assert.Equal(t, "Mint111", body["mint"])
	assert.Equal(t, 79.0, body["totalScore"])
	assert.Equal(t, "LOW RUG RISK", body["riskLevel"])

	sigs := body["signals"].([]interface{})
	first := sigs[0].(map[string]interface{})
	assert.Equal(t, "Market Integrity", first["label"])
	assert.Equal(t, 85.0, first["score"])
	assert.Equal(t, 0.15, first["weight"])

	assert.Equal(t, 1.0, testutil.ToFloat64(s.metrics.HTTPRequests.WithLabelValues("/api/scan/{mint}", "200")))
}

func TestScanEndpoint_MissingMint(t *testing.T) {
	s := newTestServer(t, defaultHTTPConfig(), nil)

	rec := s.do(http.MethodGet, "/api/scan/", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodGet, "/api/scan/%20", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Mint address is required", decode(t, rec)["error"])
}

func TestScanEndpoint_Failure(t *testing.T) {
	s := newTestServer(t, defaultHTTPConfig(), nil)
	s.scanner.err = errors.New("boom")

	rec := s.do(http.MethodGet, "/api/scan/Mint111", "", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Scan failed", decode(t, rec)["error"])
}

func TestScanEndpoint_RateLimited(t *testing.T) {
	cfg := defaultHTTPConfig()
	cfg.RateLimitMax = 3
	s := newTestServer(t, cfg, nil)

	client := map[string]string{"X-Forwarded-For": "9.9.9.9, 10.0.0.1"}
	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/api/scan/Mint111", "", client).Code)
	}

	rec := s.do(http.MethodGet, "/api/scan/Mint111", "", client)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "Too many requests", decode(t, rec)["error"])

	// Another client is unaffected
	other := map[string]string{"X-Forwarded-For": "8.8.8.8"}
	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/api/scan/Mint111", "", other).Code)

	assert.Equal(t, 1.0, testutil.ToFloat64(s.metrics.RateLimited.WithLabelValues("scan")))
}

func TestHistoryEndpoint(t *testing.T) {
	s := newTestServer(t, defaultHTTPConfig(), nil)
	s.scanner.history = []contracts.ScanReport{{Mint: "Mint111", TotalScore: 40}}

	rec := s.do(http.MethodGet, "/api/scan/Mint111/history?limit=5", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 5, s.scanner.lastLimit)
	assert.Equal(t, 1.0, decode(t, rec)["count"])

	rec = s.do(http.MethodGet, "/api/scan/Mint111/history?limit=abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	s.scanner.historyErr = scan.ErrHistoryDisabled
	rec = s.do(http.MethodGet, "/api/scan/Mint111/history", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, 0, s.scanner.lastLimit)
}

func TestStatsEndpoint(t *testing.T) {
	s := newTestServer(t, defaultHTTPConfig(), nil)

	rec := s.do(http.MethodGet, "/api/stats", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]interface{}{"visits": 0.0, "scans": 0.0, "shares": 0.0, "moon": 0.0}, decode(t, rec))

	rec = s.do(http.MethodPost, "/api/stats", `{"type":"moon"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1.0, decode(t, rec)["moon"])

	rec = s.do(http.MethodPost, "/api/stats", `{"type":"visit"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1.0, decode(t, rec)["visits"])

	assert.Equal(t, 1.0, testutil.ToFloat64(s.metrics.StatsEvents.WithLabelValues("moon")))
}

func TestStatsEndpoint_BadRequests(t *testing.T) {
	s := newTestServer(t, defaultHTTPConfig(), nil)

	tests := []struct {
		name string
		body string
		want string
	}{
		{"malformed json", `{"type":`, "Invalid JSON body"},
		{"unknown type", `{"type":"like"}`, "Invalid stat type"},
		{"empty body", ``, "Invalid stat type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := s.do(http.MethodPost, "/api/stats", tt.body, nil)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tt.want, decode(t, rec)["error"])
		})
	}

	c, _ := s.store.Get(context.Background())
	assert.Equal(t, stats.Counters{}, c)
}

func TestStatsEndpoint_RateLimited(t *testing.T) {
	s := newTestServer(t, defaultHTTPConfig(), nil)

	client := map[string]string{"Client-IP": "7.7.7.7"}
	for i := 0; i < 20; i++ {
		require.Equal(t, http.StatusOK, s.do(http.MethodGet, "/api/stats", "", client).Code)
	}
	assert.Equal(t, http.StatusTooManyRequests, s.do(http.MethodGet, "/api/stats", "", client).Code)

	// Budgets are per route group
	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/api/scan/Mint111", "", client).Code)
}

func TestCORSPreflight(t *testing.T) {
	cfg := defaultHTTPConfig()
	cfg.AllowedOrigin = "https://rugscan.example"
	s := newTestServer(t, cfg, nil)

	rec := s.do(http.MethodOptions, "/api/stats", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "https://rugscan.example", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "GET, POST, OPTIONS", rec.Header().Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "Content-Type", rec.Header().Get("Access-Control-Allow-Headers"))
}

func TestMethodNotAllowed(t *testing.T) {
	s := newTestServer(t, defaultHTTPConfig(), nil)

	rec := s.do(http.MethodDelete, "/api/stats", "", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, "Method not allowed", decode(t, rec)["error"])

	rec = s.do(http.MethodPut, "/api/scan/Mint111", "", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "Method not allowed", decode(t, rec)["error"])
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, defaultHTTPConfig(), map[string]handlers.HealthCheck{
		"database": func(ctx context.Context) error { return nil },
	})

	rec := s.do(http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "rugscan", body["service"])
	assert.Equal(t, "closed", body["marketData"])
}

func TestHealth_Degraded(t *testing.T) {
	s := newTestServer(t, defaultHTTPConfig(), map[string]handlers.HealthCheck{
		"redis": func(ctx context.Context) error { return errors.New("connection refused") },
	})

	rec := s.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "degraded", body["status"])
	assert.Equal(t, "connection refused", body["dependencies"].(map[string]interface{})["redis"])
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t, defaultHTTPConfig(), nil)

	rec := s.do(http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestRecovery(t *testing.T) {
	s := newTestServer(t, defaultHTTPConfig(), map[string]handlers.HealthCheck{
		"boom": func(ctx context.Context) error { panic("kaboom") },
	})

	rec := s.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Internal server error", decode(t, rec)["error"])
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{"forwarded chain", map[string]string{"X-Forwarded-For": " 1.1.1.1 , 2.2.2.2"}, "", "1.1.1.1"},
		{"client ip header", map[string]string{"Client-IP": "3.3.3.3"}, "", "3.3.3.3"},
		{"forwarded wins", map[string]string{"X-Forwarded-For": "4.4.4.4", "Client-IP": "3.3.3.3"}, "", "4.4.4.4"},
		{"socket peer", nil, "5.5.5.5:4321", "5.5.5.5"},
		{"nothing", nil, "garbage", "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, ClientIP(req))
		})
	}
}
