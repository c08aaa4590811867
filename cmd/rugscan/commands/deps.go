package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/wonny/rugscan/internal/api/handlers"
	"github.com/wonny/rugscan/internal/external/dexscreener"
	"github.com/wonny/rugscan/internal/metrics"
	"github.com/wonny/rugscan/internal/scan"
	"github.com/wonny/rugscan/internal/snapshot"
	"github.com/wonny/rugscan/internal/stats"
	"github.com/wonny/rugscan/pkg/config"
	"github.com/wonny/rugscan/pkg/database"
	"github.com/wonny/rugscan/pkg/httputil"
	"github.com/wonny/rugscan/pkg/logger"
	"github.com/wonny/rugscan/pkg/redis"
)

// keyPrefix namespaces every Redis key this service writes
const keyPrefix = "rugscan"

// app holds the wired dependencies shared by every command
type app struct {
	cfg      *config.Config
	log      *logger.Logger
	db       *database.DB  // nil when DATABASE_URL is unset
	redis    *redis.Client // disabled client when REDIS_ENABLED=false
	metrics  *metrics.Registry
	provider *snapshot.Provider
	stats    stats.Store
	scanner  *scan.Service
}

// newApp connects optional backends and builds the scan pipeline.
// withMetrics controls whether a Prometheus registry is created.
func newApp(ctx context.Context, cfg *config.Config, log *logger.Logger, withMetrics bool) (*app, error) {
	a := &app{cfg: cfg, log: log}

	// 1. Connect to database (optional)
	db, err := database.New(ctx, cfg)
	switch {
	case err == nil:
		if err := db.Migrate(ctx); err != nil {
			db.Close()
			return nil, fmt.Errorf("migrate database: %w", err)
		}
		a.db = db
		log.Info("Database connected")
	case errors.Is(err, database.ErrNotConfigured):
		log.Info("DATABASE_URL not set, scan history disabled")
	default:
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	// 2. Connect to Redis (optional)
	rc, err := redis.New(ctx, cfg)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	a.redis = rc
	if rc.Enabled() {
		log.Info("Redis connected")
	}

	// 3. Metrics
	if withMetrics && cfg.MetricsEnabled {
		a.metrics = metrics.New()
	}

	// 4. Create HTTP client with the shared outbound budget
	httpClient := httputil.New(cfg, log).WithRateLimiter(
		redis.NewRateLimiter(rc, keyPrefix),
		redis.DexScreenerRateLimit(cfg.DexScreener.RateLimit),
	)

	// 5. Create market data client and snapshot provider
	dex := dexscreener.NewClient(httpClient, log, cfg.DexScreener.BaseURL, cfg.DexScreener.Chain)
	opts := snapshot.DefaultOptions()
	opts.CacheTTL = cfg.DexScreener.CacheTTL
	a.provider = snapshot.NewProvider(dex, redis.NewCache(rc, keyPrefix), a.metrics, log, opts)

	// 6. Pick a stats store: Postgres, then Redis, then memory
	var repo *scan.Repository
	switch {
	case a.db != nil:
		a.stats = stats.NewPostgresStore(a.db.Pool)
		repo = scan.NewRepository(a.db.Pool)
	case rc.Enabled():
		a.stats = stats.NewRedisStore(rc, keyPrefix)
	default:
		a.stats = stats.NewMemoryStore()
	}

	// 7. Create scan service
	if repo != nil {
		a.scanner = scan.NewService(a.provider, a.provider, repo, a.stats, a.metrics, log)
	} else {
		a.scanner = scan.NewService(a.provider, a.provider, nil, a.stats, a.metrics, log)
	}

	return a, nil
}

// healthChecks returns a probe per configured backend
func (a *app) healthChecks() map[string]handlers.HealthCheck {
	checks := make(map[string]handlers.HealthCheck)
	if a.db != nil {
		checks["database"] = a.db.Ping
	}
	if a.redis.Enabled() {
		checks["redis"] = a.redis.Ping
	}
	return checks
}

// Close releases backend connections
func (a *app) Close() {
	if a.db != nil {
		a.db.Close()
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.log.WithError(err).Warn("Failed to close redis")
		}
	}
}
