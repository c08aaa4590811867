package jobs

import (
	"context"
	"errors"
	"fmt"

	"github.com/wonny/rugscan/internal/contracts"
	"github.com/wonny/rugscan/pkg/logger"
)

// Scanner rescores one token without counting it as user traffic
type Scanner interface {
	Rescan(ctx context.Context, mint string) (*contracts.ScanReport, error)
}

// WatchlistJob rescans a fixed set of tokens so their history stays fresh
// ⭐ SSOT: 워치리스트 재스캔은 여기서만
type WatchlistJob struct {
	scanner  Scanner
	mints    []string
	schedule string
	logger   *logger.Logger
}

// NewWatchlistJob creates a new watchlist job
func NewWatchlistJob(scanner Scanner, mints []string, schedule string, log *logger.Logger) *WatchlistJob {
	return &WatchlistJob{
		scanner:  scanner,
		mints:    mints,
		schedule: schedule,
		logger:   log,
	}
}

// Name returns the job name
func (j *WatchlistJob) Name() string {
	return "watchlist_rescan"
}

// Schedule returns the configured cron schedule
func (j *WatchlistJob) Schedule() string {
	return j.schedule
}

// Run scans every watchlist token in order.
// It fails only when no token could be scanned, so one bad mint does not
// trigger a retry of the whole list.
func (j *WatchlistJob) Run(ctx context.Context) error {
	if len(j.mints) == 0 {
		return nil
	}

	var errs []error
	high := 0

	for _, mint := range j.mints {
		if err := ctx.Err(); err != nil {
			return err
		}

		report, err := j.scanner.Rescan(ctx, mint)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", mint, err))
			continue
		}
		if report.RiskLevel == contracts.RiskHigh {
			high++
			j.logger.WithMint(mint).WithField("total_score", report.TotalScore).Warn("Watchlist token at high risk")
		}
	}

	j.logger.WithFields(map[string]interface{}{
		"scanned": len(j.mints) - len(errs),
		"failed":  len(errs),
		"high":    high,
	}).Info("Watchlist rescan completed")

	if len(errs) == len(j.mints) {
		return errors.Join(errs...)
	}
	return nil
}
