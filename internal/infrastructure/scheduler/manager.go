// Package scheduler provides unified scheduler management using gocron v2.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"

	"gavel/internal/shared/biztime"
	"gavel/internal/shared/logger"
)

// BatchJob defines the interface for a scheduled batch processing job.
// Each Execute call processes a batch and returns the number of items processed.
type BatchJob interface {
	Execute(ctx context.Context) (int, error)
}

// SchedulerManager manages all scheduled jobs using gocron v2.
type SchedulerManager struct {
	scheduler gocron.Scheduler
	logger    logger.Interface

	started   bool
	startedMu sync.RWMutex
}

// NewSchedulerManager creates a new SchedulerManager instance.
func NewSchedulerManager(log logger.Interface) (*SchedulerManager, error) {
	scheduler, err := gocron.NewScheduler(
		gocron.WithLocation(biztime.Location()),
	)
	if err != nil {
		return nil, err
	}

	return &SchedulerManager{
		scheduler: scheduler,
		logger:    log,
	}, nil
}

// RegisterRenewalJobs registers the renewal sweep. The job runs at the given
// interval, fires once immediately on startup, and never overlaps itself:
// a run that outlasts the interval is rescheduled, not doubled.
func (m *SchedulerManager) RegisterRenewalJobs(renewJob BatchJob, interval time.Duration) error {
	if interval <= 0 {
		interval = time.Hour
	}

	_, err := m.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
			defer cancel()
			m.processRenewals(ctx, renewJob)
		}),
		gocron.WithStartAt(gocron.WithStartImmediately()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithTags("billing", "renewal"),
		gocron.WithName("subscription-renewal"),
	)
	if err != nil {
		return err
	}

	m.logger.Infow("registered renewal jobs", "interval", interval)
	return nil
}

func (m *SchedulerManager) processRenewals(ctx context.Context, renewJob BatchJob) {
	m.logger.Debugw("processing subscription renewals started")

	startTime := biztime.NowUTC()

	renewedCount, err := renewJob.Execute(ctx)
	if err != nil {
		m.logger.Errorw("failed to process subscription renewals",
			"error", err,
			"duration", time.Since(startTime),
		)
		return
	}

	if renewedCount > 0 {
		m.logger.Infow("subscription renewals processed",
			"count", renewedCount,
			"duration", time.Since(startTime),
		)
	} else {
		m.logger.Debugw("no subscriptions renewed",
			"duration", time.Since(startTime),
		)
	}
}

// Start starts the scheduler and all registered jobs.
func (m *SchedulerManager) Start() {
	m.startedMu.Lock()
	defer m.startedMu.Unlock()

	if m.started {
		return
	}

	m.scheduler.Start()
	m.started = true
	m.logger.Infow("scheduler manager started", "job_count", len(m.scheduler.Jobs()))
}

// Stop gracefully stops the scheduler. It waits for running jobs to complete.
func (m *SchedulerManager) Stop() error {
	m.startedMu.Lock()
	defer m.startedMu.Unlock()

	if !m.started {
		return nil
	}

	m.logger.Infow("stopping scheduler manager")

	err := m.scheduler.Shutdown()
	m.started = false

	if err != nil {
		m.logger.Errorw("scheduler manager shutdown with error", "error", err)
		return err
	}

	m.logger.Infow("scheduler manager stopped")
	return nil
}

// IsStarted returns whether the scheduler is running.
func (m *SchedulerManager) IsStarted() bool {
	m.startedMu.RLock()
	defer m.startedMu.RUnlock()
	return m.started
}
