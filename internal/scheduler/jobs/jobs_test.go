package jobs

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wonny/rugscan/internal/contracts"
	"github.com/wonny/rugscan/pkg/logger"
)

type fakeScanner struct {
	fail    map[string]bool
	scanned []string
}

func (f *fakeScanner) Rescan(ctx context.Context, mint string) (*contracts.ScanReport, error) {
	f.scanned = append(f.scanned, mint)
	if f.fail[mint] {
		return nil, errors.New("upstream down")
	}
	return &contracts.ScanReport{Mint: mint, TotalScore: 15, RiskLevel: contracts.RiskHigh}, nil
}

func TestWatchlistJob_ScansAll(t *testing.T) {
	scanner := &fakeScanner{fail: map[string]bool{"B": true}}
	job := NewWatchlistJob(scanner, []string{"A", "B", "C"}, "0 */5 * * * *", logger.Nop())

	assert.Equal(t, "watchlist_rescan", job.Name())
	assert.Equal(t, "0 */5 * * * *", job.Schedule())
	assert.NoError(t, job.Run(context.Background()))
	assert.Equal(t, []string{"A", "B", "C"}, scanner.scanned)
}

func TestWatchlistJob_AllFailed(t *testing.T) {
	scanner := &fakeScanner{fail: map[string]bool{"A": true, "B": true}}
	job := NewWatchlistJob(scanner, []string{"A", "B"}, "@every 1m", logger.Nop())

	err := job.Run(context.Background())
	assert.ErrorContains(t, err, "A: upstream down")
	assert.ErrorContains(t, err, "B: upstream down")
}

func TestWatchlistJob_Empty(t *testing.T) {
	scanner := &fakeScanner{}
	job := NewWatchlistJob(scanner, nil, "@every 1m", logger.Nop())

	assert.NoError(t, job.Run(context.Background()))
	assert.Empty(t, scanner.scanned)
}

func TestWatchlistJob_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	scanner := &fakeScanner{}
	job := NewWatchlistJob(scanner, []string{"A"}, "@every 1m", logger.Nop())

	assert.ErrorIs(t, job.Run(ctx), context.Canceled)
	assert.Empty(t, scanner.scanned)
}

type fakeSweeper struct{ removed int }

func (f *fakeSweeper) Sweep() int { return f.removed }

func TestLimiterSweepJob(t *testing.T) {
	a, b := &fakeSweeper{removed: 2}, &fakeSweeper{removed: 1}
	job := NewLimiterSweepJob(logger.Nop(), a, b)

	assert.Equal(t, "limiter_sweep", job.Name())
	assert.Equal(t, "0 * * * * *", job.Schedule())
	assert.NoError(t, job.Run(context.Background()))
}
