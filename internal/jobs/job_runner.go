package jobs

import (
	"context"
	"fmt"
	"time"

	"surfboard-marketplace-backend/internal/config"
	"surfboard-marketplace-backend/internal/logger"
	"surfboard-marketplace-backend/internal/metrics"
)

const (
	JobExpireStalePendingRentals = "expire-stale-pending-rentals"
	JobReconcileStorageFlags     = "reconcile-storage-flags"
)

// RentalExpirer cancels pending rentals whose start date has passed.
type RentalExpirer interface {
	ExpireStalePending(ctx context.Context, now time.Time) (int, error)
}

// StorageReconciler repairs surfboard storage flags.
type StorageReconciler interface {
	ReconcileStorageFlags(ctx context.Context) (int64, error)
}

// Services holds all service dependencies needed by jobs
type Services struct {
	Rental  RentalExpirer
	Storage StorageReconciler
}

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	services *Services
	config   *config.Config
	timeout  time.Duration
	now      func() time.Time
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(services *Services, cfg *config.Config) *JobRunner {
	return &JobRunner{
		services: services,
		config:   cfg,
		timeout:  5 * time.Minute,
		now:      time.Now,
	}
}

func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery, a deadline and
// run metrics.
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func(ctx context.Context) error) (err error) {
	ctx, cancel := context.WithTimeout(context.Background(), jr.timeout)
	defer cancel()

	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
			err = fmt.Errorf("job %s panicked: %v", jobName, r)
		}
		metrics.RecordJobRun(jobName, time.Since(start), err == nil)
	}()

	logger.Info("Starting job", "job", jobName)
	if err = jobFunc(ctx); err != nil {
		logger.Error("Job failed", "job", jobName, "error", err)
		return err
	}
	logger.Info("Job completed", "job", jobName, "duration_ms", time.Since(start).Milliseconds())
	return nil
}

// Run executes one job by name.
func (jr *JobRunner) Run(jobName string) error {
	switch jobName {
	case JobExpireStalePendingRentals:
		return jr.ExpireStalePendingRentals()
	case JobReconcileStorageFlags:
		return jr.ReconcileStorageFlags()
	case "all":
		return jr.RunAll()
	default:
		return fmt.Errorf("unknown job %q", jobName)
	}
}

// RunAll runs every job once (for manual execution), continuing past
// failures and returning the first error.
func (jr *JobRunner) RunAll() error {
	var first error
	for _, run := range []func() error{jr.ExpireStalePendingRentals, jr.ReconcileStorageFlags} {
		if err := run(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
