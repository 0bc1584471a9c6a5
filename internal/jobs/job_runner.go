package jobs

import (
	"database/sql"

	"carpool-backend/internal/config"
	"carpool-backend/internal/logger"
	"carpool-backend/internal/repository/postgres"
	"carpool-backend/internal/service"
)

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	db       *sql.DB
	store    *postgres.Store
	emailSvc service.EmailService
	config   *config.Config
}

func NewJobRunner(db *sql.DB, store *postgres.Store, emailSvc service.EmailService, cfg *config.Config) *JobRunner {
	return &JobRunner{
		db:       db,
		store:    store,
		emailSvc: emailSvc,
		config:   cfg,
	}
}

// Config returns the runner's configuration
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	logger.Info("Starting job", "job", jobName)
	jobFunc()
	logger.Info("Job completed", "job", jobName)
}

// RunAllNightlyJobs runs all nightly jobs (for manual execution)
func (jr *JobRunner) RunAllNightlyJobs() {
	jr.DeactivatePastRides()
	jr.SendDepartureReminders()
}
