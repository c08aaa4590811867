package snapshot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sony/gobreaker"
	"golang.org/x/sync/singleflight"

	"github.com/wonny/rugscan/internal/contracts"
	"github.com/wonny/rugscan/internal/external/dexscreener"
	"github.com/wonny/rugscan/internal/metrics"
	"github.com/wonny/rugscan/pkg/logger"
	"github.com/wonny/rugscan/pkg/redis"
)

// PairFetcher looks up the trading pair for a token
type PairFetcher interface {
	FetchPair(ctx context.Context, mint string) (*dexscreener.Pair, error)
}

// Options tunes caching and circuit breaking
type Options struct {
	CacheTTL         time.Duration
	FailureThreshold uint32        // consecutive upstream failures before opening
	OpenTimeout      time.Duration // how long the circuit stays open
	FetchTimeout     time.Duration // upper bound on one shared upstream lookup, retries included
}

// DefaultOptions returns production defaults
func DefaultOptions() Options {
	return Options{
		CacheTTL:         redis.TTLSnapshot,
		FailureThreshold: 5,
		OpenTimeout:      30 * time.Second,
		FetchTimeout:     30 * time.Second,
	}
}

// entry is the cached result of one upstream lookup.
// Tokens without pairs are cached too so repeated scans stay cheap.
type entry struct {
	Found    bool                      `json:"found"`
	Snapshot *contracts.MarketSnapshot `json:"snapshot,omitempty"`
	Token    *contracts.TokenInfo      `json:"token"`
}

// Provider serves market snapshots and token metadata from DexScreener.
// Lookups go through a Redis cache, a circuit breaker and a per-mint
// singleflight so one scan costs at most one upstream request.
// ⭐ SSOT: 스냅샷 조회 경로는 여기서만
type Provider struct {
	fetcher PairFetcher
	cache   *redis.Cache
	ttl     time.Duration
	timeout time.Duration
	breaker *gobreaker.CircuitBreaker
	group   singleflight.Group
	metrics *metrics.Registry
	logger  *logger.Logger
	now     func() time.Time
}

// NewProvider creates a provider; cache and m may be disabled or nil
func NewProvider(fetcher PairFetcher, cache *redis.Cache, m *metrics.Registry, log *logger.Logger, opts Options) *Provider {
	p := &Provider{
		fetcher: fetcher,
		cache:   cache,
		ttl:     opts.CacheTTL,
		timeout: opts.FetchTimeout,
		metrics: m,
		logger:  log,
		now:     time.Now,
	}

	threshold := opts.FailureThreshold
	if threshold == 0 {
		threshold = 5
	}
	if p.timeout <= 0 {
		p.timeout = DefaultOptions().FetchTimeout
	}

	p.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "dexscreener",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     opts.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		// A caller giving up says nothing about upstream health
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.WithFields(map[string]interface{}{
				"breaker": name,
				"from":    from.String(),
				"to":      to.String(),
			}).Warn("Circuit breaker state changed")
		},
	})

	return p
}

// Snapshot implements contracts.SnapshotProvider.
// Every failure is reported as contracts.ErrSnapshotUnavailable.
func (p *Provider) Snapshot(ctx context.Context, mint string) (*contracts.MarketSnapshot, error) {
	e, err := p.load(ctx, mint)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", contracts.ErrSnapshotUnavailable, err)
	}
	if !e.Found || e.Snapshot == nil {
		return nil, fmt.Errorf("%s: %w", mint, contracts.ErrSnapshotUnavailable)
	}
	return e.Snapshot, nil
}

// TokenInfo implements contracts.TokenInfoProvider.
// Lookup failures degrade to placeholder metadata rather than an error.
func (p *Provider) TokenInfo(ctx context.Context, mint string) (*contracts.TokenInfo, error) {
	e, err := p.load(ctx, mint)
	if err != nil {
		return dexscreener.DefaultTokenInfo(mint, dexscreener.UnknownStatus), nil
	}
	return e.Token, nil
}

// State exposes the breaker state for health reporting
func (p *Provider) State() string {
	return p.breaker.State().String()
}

func (p *Provider) load(ctx context.Context, mint string) (*entry, error) {
	var cached entry
	found, err := p.cache.Get(ctx, redis.SnapshotKey(mint), &cached)
	if err != nil {
		p.logger.WithMint(mint).WithError(err).Warn("Snapshot cache read failed")
	}
	if found {
		p.metrics.Cache(true)
		return &cached, nil
	}
	p.metrics.Cache(false)

	// The shared lookup outlives any single caller so one cancelled
	// request cannot fail the others waiting on the same mint.
	ch := p.group.DoChan(mint, func() (interface{}, error) {
		fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.timeout)
		defer cancel()
		return p.fetch(fctx, mint)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*entry), nil
	}
}

func (p *Provider) fetch(ctx context.Context, mint string) (*entry, error) {
	v, err := p.breaker.Execute(func() (interface{}, error) {
		pair, err := p.fetcher.FetchPair(ctx, mint)
		if errors.Is(err, dexscreener.ErrPairNotFound) {
			// An unlisted token is a valid answer, not an upstream fault
			return &entry{Token: dexscreener.DefaultTokenInfo(mint, dexscreener.NoLiquidity)}, nil
		}
		if err != nil {
			return nil, err
		}
		return &entry{
			Found:    true,
			Snapshot: dexscreener.ToSnapshot(mint, pair, p.now()),
			Token:    dexscreener.ToTokenInfo(mint, pair),
		}, nil
	})

	switch {
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		p.metrics.Upstream(metrics.UpstreamOpen)
		return nil, err
	case err != nil:
		p.metrics.Upstream(metrics.UpstreamError)
		p.logger.WithMint(mint).WithError(err).Warn("Market data lookup failed")
		return nil, err
	}

	e := v.(*entry)
	if e.Found {
		p.metrics.Upstream(metrics.UpstreamOK)
	} else {
		p.metrics.Upstream(metrics.UpstreamNotFound)
	}

	if err := p.cache.Set(ctx, redis.SnapshotKey(mint), e, p.ttl); err != nil {
		p.logger.WithMint(mint).WithError(err).Warn("Snapshot cache write failed")
	}

	return e, nil
}
