package scan

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/wonny/rugscan/internal/contracts"
	"github.com/wonny/rugscan/internal/metrics"
	"github.com/wonny/rugscan/internal/signals"
	"github.com/wonny/rugscan/internal/stats"
	"github.com/wonny/rugscan/pkg/logger"
)

// History limits
const (
	DefaultHistoryLimit = 20
	MaxHistoryLimit     = 100
)

var (
	// ErrEmptyMint is returned when no token identifier was supplied
	ErrEmptyMint = errors.New("mint is required")
	// ErrHistoryDisabled is returned by History when no repository is configured
	ErrHistoryDisabled = errors.New("scan history is disabled")
)

// Service scores tokens and records the outcome
// ⭐ SSOT: 스캔 실행 흐름은 여기서만
type Service struct {
	snapshots contracts.SnapshotProvider
	tokens    contracts.TokenInfoProvider
	repo      contracts.ScanRepository
	stats     stats.Store
	metrics   *metrics.Registry
	logger    *logger.Logger
	now       func() time.Time
}

// NewService creates a scan service.
// repo, statsStore and m are optional.
func NewService(
	snapshots contracts.SnapshotProvider,
	tokens contracts.TokenInfoProvider,
	repo contracts.ScanRepository,
	statsStore stats.Store,
	m *metrics.Registry,
	log *logger.Logger,
) *Service {
	return &Service{
		snapshots: snapshots,
		tokens:    tokens,
		repo:      repo,
		stats:     statsStore,
		metrics:   m,
		logger:    log,
		now:       time.Now,
	}
}

// Scan fetches one snapshot for mint, scores it and records the result.
// An unavailable snapshot still produces a report, scored on fallbacks.
func (s *Service) Scan(ctx context.Context, mint string) (*contracts.ScanReport, error) {
	return s.scan(ctx, mint, true)
}

// Rescan scores and persists mint like Scan but leaves the public usage
// counters alone. Background refreshes go through here.
func (s *Service) Rescan(ctx context.Context, mint string) (*contracts.ScanReport, error) {
	return s.scan(ctx, mint, false)
}

func (s *Service) scan(ctx context.Context, mint string, countUsage bool) (*contracts.ScanReport, error) {
	mint = strings.TrimSpace(mint)
	if mint == "" {
		return nil, ErrEmptyMint
	}

	start := s.now()
	log := s.logger.WithMint(mint)

	var (
		snap  *contracts.MarketSnapshot
		token *contracts.TokenInfo
	)

	var g errgroup.Group
	g.Go(func() error {
		var err error
		snap, err = s.snapshots.Snapshot(ctx, mint)
		if err != nil {
			log.WithError(err).Info("Scoring without market snapshot")
			snap = nil
		}
		return nil
	})
	if s.tokens != nil {
		g.Go(func() error {
			var err error
			token, err = s.tokens.TokenInfo(ctx, mint)
			if err != nil {
				log.WithError(err).Warn("Token metadata unavailable")
				token = nil
			}
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("scan %s: %w", mint, err)
	}

	result := signals.Score(snap)

	report := &contracts.ScanReport{
		Mint:              mint,
		Token:             token,
		TotalScore:        result.TotalScore,
		RiskLevel:         result.RiskLevel,
		Explanation:       signals.Explain(result.TotalScore),
		ShareText:         signals.ShareText(tokenName(token), result.TotalScore, result.RiskLevel),
		DegradationFactor: result.DegradationFactor,
		Clamped:           result.Clamped,
		Signals:           result.Signals,
		SnapshotAvailable: snap != nil,
		ScannedAt:         s.now(),
	}

	if countUsage {
		s.record(ctx, &result)
	}

	if s.repo != nil {
		if err := s.repo.Save(ctx, report); err != nil {
			log.WithError(err).Warn("Failed to persist scan")
		}
	}

	s.metrics.ObserveScan(string(result.RiskLevel), result.TotalScore, s.now().Sub(start))

	log.WithFields(map[string]interface{}{
		"total_score": report.TotalScore,
		"risk_level":  report.RiskLevel,
		"factor":      report.DegradationFactor,
		"available":   report.SnapshotAvailable,
		"counted":     countUsage,
	}).Info("Scan completed")

	return report, nil
}

// record bumps the global usage counters for a completed scan
func (s *Service) record(ctx context.Context, result *contracts.ScoreResult) {
	if s.stats == nil {
		return
	}

	kinds := []stats.Kind{stats.KindScan}
	if result.IsMoon() {
		kinds = append(kinds, stats.KindMoon)
	}

	for _, k := range kinds {
		if _, err := s.stats.Increment(ctx, k); err != nil {
			s.logger.WithError(err).WithField("kind", k).Warn("Failed to bump usage counter")
			continue
		}
		s.metrics.StatsEvent(string(k))
	}
}

// History returns the most recent persisted scans for mint, newest first
func (s *Service) History(ctx context.Context, mint string, limit int) ([]contracts.ScanReport, error) {
	if s.repo == nil {
		return nil, ErrHistoryDisabled
	}

	mint = strings.TrimSpace(mint)
	if mint == "" {
		return nil, ErrEmptyMint
	}

	return s.repo.ListByMint(ctx, mint, clampLimit(limit))
}

func tokenName(t *contracts.TokenInfo) string {
	if t == nil {
		return ""
	}
	return t.Name
}

func clampLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultHistoryLimit
	case limit > MaxHistoryLimit:
		return MaxHistoryLimit
	}
	return limit
}
