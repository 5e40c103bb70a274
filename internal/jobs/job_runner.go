package jobs

import (
	"context"
	"fmt"
	"time"

	"rentease-backend/internal/config"
	"rentease-backend/internal/logger"
	"rentease-backend/internal/metrics"
	"rentease-backend/internal/service"
)

// Job names accepted by Run.
const (
	JobReconcileAvailability = "reconcile-availability"
	JobCheckIntegrity        = "check-integrity"
	JobSnapshotCompliance    = "snapshot-compliance"
	JobAll                   = "all"
)

const jobTimeout = 5 * time.Minute

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	services *Services
	config   *config.Config
	metrics  *metrics.Metrics
}

// Services holds all service dependencies needed by jobs
type Services struct {
	Maintenance service.MaintenanceService
	Dashboard   service.DashboardService
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(services *Services, cfg *config.Config, m *metrics.Metrics) *JobRunner {
	return &JobRunner{
		services: services,
		config:   cfg,
		metrics:  m,
	}
}

// Config returns the configuration the jobs were built with.
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery and records the
// outcome.
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func(ctx context.Context) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
			jr.metrics.IncrementJobRun(jobName, "panic")
			err = fmt.Errorf("job %s panicked: %v", jobName, r)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	logger.Info("Starting job", "job", jobName)
	start := time.Now()
	if err := jobFunc(ctx); err != nil {
		logger.Error("Job failed", "job", jobName, "error", err, "duration", time.Since(start))
		jr.metrics.IncrementJobRun(jobName, "failure")
		return err
	}
	logger.Info("Job completed", "job", jobName, "duration", time.Since(start))
	jr.metrics.IncrementJobRun(jobName, "success")
	return nil
}

// Run executes the named job once.
func (jr *JobRunner) Run(name string) error {
	switch name {
	case JobReconcileAvailability:
		return jr.runReconcileAvailability()
	case JobCheckIntegrity:
		return jr.runCheckIntegrity()
	case JobSnapshotCompliance:
		return jr.runSnapshotCompliance()
	case JobAll:
		return jr.RunAll()
	default:
		return fmt.Errorf("unknown job %q", name)
	}
}

// RunAll runs every job in order and returns the first failure.
func (jr *JobRunner) RunAll() error {
	var first error
	for _, run := range []func() error{
		jr.runReconcileAvailability,
		jr.runCheckIntegrity,
		jr.runSnapshotCompliance,
	} {
		if err := run(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// JobNames lists the names Run accepts.
func JobNames() []string {
	return []string{JobReconcileAvailability, JobCheckIntegrity, JobSnapshotCompliance, JobAll}
}
