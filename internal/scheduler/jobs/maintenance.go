package jobs

import (
	"context"

	"github.com/wonny/rugscan/pkg/logger"
)

// Sweeper drops idle per-client state
type Sweeper interface {
	Sweep() int
}

// LimiterSweepJob forgets clients that have been idle for a full window
type LimiterSweepJob struct {
	sweepers []Sweeper
	logger   *logger.Logger
}

// NewLimiterSweepJob creates a new limiter sweep job
func NewLimiterSweepJob(log *logger.Logger, sweepers ...Sweeper) *LimiterSweepJob {
	return &LimiterSweepJob{
		sweepers: sweepers,
		logger:   log,
	}
}

// Name returns the job name
func (j *LimiterSweepJob) Name() string {
	return "limiter_sweep"
}

// Schedule returns the cron schedule (every minute)
func (j *LimiterSweepJob) Schedule() string {
	return "0 * * * * *"
}

// Run executes the sweep
func (j *LimiterSweepJob) Run(ctx context.Context) error {
	count := 0
	for _, s := range j.sweepers {
		count += s.Sweep()
	}

	if count > 0 {
		j.logger.WithField("removed", count).Debug("Limiter sweep completed")
	}

	return nil
}
