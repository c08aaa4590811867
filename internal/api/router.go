package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/wonny/rugscan/internal/api/handlers"
	"github.com/wonny/rugscan/internal/metrics"
	"github.com/wonny/rugscan/internal/ratelimit"
	"github.com/wonny/rugscan/pkg/config"
	"github.com/wonny/rugscan/pkg/logger"
)

// Limiters holds the per-client budgets for each route group
type Limiters struct {
	Scan  *ratelimit.KeyedLimiter
	Stats *ratelimit.KeyedLimiter
}

// NewLimiters builds route limiters from config
func NewLimiters(cfg config.HTTPConfig) Limiters {
	return Limiters{
		Scan:  ratelimit.New(cfg.RateLimitMax, cfg.RateLimitWindow),
		Stats: ratelimit.New(cfg.StatsRateLimitMax, cfg.RateLimitWindow),
	}
}

// Handlers groups everything the router dispatches to
type Handlers struct {
	Scan    *handlers.ScanHandler
	Stats   *handlers.StatsHandler
	Health  *handlers.HealthHandler
	Metrics *metrics.Registry // nil disables /metrics
}

// NewRouter creates and configures the HTTP router
// ⭐ SSOT: 라우팅 설정은 이 함수에서만
func NewRouter(h Handlers, limiters Limiters, cfg config.HTTPConfig, log *logger.Logger) http.Handler {
	r := mux.NewRouter()
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	// Health check
	r.HandleFunc("/health", h.Health.Health).Methods("GET")
	if h.Metrics != nil {
		r.Handle("/metrics", h.Metrics.Handler()).Methods("GET")
	}

	api := r.PathPrefix("/api").Subrouter()

	// Scan endpoints
	scanRoutes := api.PathPrefix("/scan").Subrouter()
	scanRoutes.Use(rateLimitMiddleware(limiters.Scan, "scan", h.Metrics))
	scanRoutes.HandleFunc("/{mint}", h.Scan.Scan).Methods("GET")
	scanRoutes.HandleFunc("/{mint}/history", h.Scan.History).Methods("GET")
	scanRoutes.HandleFunc("/", h.Scan.MissingMint).Methods("GET")

	// Usage stats endpoints
	statsRoutes := api.PathPrefix("/stats").Subrouter()
	statsRoutes.Use(rateLimitMiddleware(limiters.Stats, "stats", h.Metrics))
	statsRoutes.HandleFunc("", h.Stats.Get).Methods("GET")
	statsRoutes.HandleFunc("", h.Stats.Increment).Methods("POST")

	// Apply middleware
	r.Use(loggingMiddleware(log, h.Metrics))
	r.Use(recoveryMiddleware(log))

	return corsMiddleware(cfg.AllowedOrigin, r)
}
