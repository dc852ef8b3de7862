package scheduler

import (
	"time"

	"github.com/robfig/cron/v3"

	"motorent-backoffice/internal/jobs"
	"motorent-backoffice/internal/logger"
)

// Scheduler manages cron job scheduling
type Scheduler struct {
	cron *cron.Cron
	jobs *jobs.JobRunner
}

// NewScheduler creates a new scheduler with the provided job runner. A
// schedule that fails to parse is returned as an error.
func NewScheduler(jobRunner *jobs.JobRunner) (*Scheduler, error) {
	// UTC with seconds precision; descriptors such as "@every 2m" also work
	c := cron.New(
		cron.WithLocation(time.UTC),
		cron.WithSeconds(),
		cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
	)

	s := &Scheduler{
		cron: c,
		jobs: jobRunner,
	}

	if err := s.registerJobs(); err != nil {
		return nil, err
	}
	return s, nil
}

// registerJobs registers all scheduled jobs with the cron scheduler
func (s *Scheduler) registerJobs() error {
	cfg := s.jobs.Config().Scheduler

	if _, err := s.cron.AddFunc(cfg.ExpireDiscounts, s.jobs.ExpireDiscounts); err != nil {
		logger.Error("Failed to register ExpireDiscounts job", "spec", cfg.ExpireDiscounts, "error", err)
		return err
	}

	if _, err := s.cron.AddFunc(cfg.CancelStaleContracts, s.jobs.CancelStalePendingContracts); err != nil {
		logger.Error("Failed to register CancelStalePendingContracts job", "spec", cfg.CancelStaleContracts, "error", err)
		return err
	}

	logger.Info("All cron jobs registered successfully",
		"expire_discounts", cfg.ExpireDiscounts,
		"cancel_stale_contracts", cfg.CancelStaleContracts,
	)
	return nil
}

// Start begins the cron scheduler
func (s *Scheduler) Start() {
	logger.Info("Starting cron scheduler...")
	s.cron.Start()
}

// Stop gracefully stops the cron scheduler, waiting for running jobs
func (s *Scheduler) Stop() {
	logger.Info("Stopping cron scheduler...")
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Info("Cron scheduler stopped")
}

// Entries returns the number of registered jobs
func (s *Scheduler) Entries() int {
	return len(s.cron.Entries())
}
