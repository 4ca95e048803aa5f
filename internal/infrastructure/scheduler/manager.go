// Package scheduler provides unified scheduler management using gocron v2.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"

	"autocrm/internal/shared/biztime"
	"autocrm/internal/shared/logger"
)

// BatchJob defines the interface for a scheduled batch processing job.
// Each Execute call processes a batch and returns the number of items processed.
type BatchJob interface {
	Execute(ctx context.Context) (int, error)
}

// SchedulerManager manages all scheduled jobs using a single gocron v2
// scheduler instance.
type SchedulerManager struct {
	scheduler gocron.Scheduler
	logger    logger.Interface

	// Track whether the scheduler has been started
	started   bool
	startedMu sync.RWMutex
}

// NewSchedulerManager creates a new SchedulerManager instance.
// It initializes gocron with the business timezone for cron expressions.
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

// ========================================
// SLA Jobs (5 min interval, start immediately)
// ========================================

// RegisterSLAEscalationJob registers the SLA watchdog. Every run scans for
// open tickets past their SLA deadline, bumps their priority and notifies
// the assigned agents.
func (m *SchedulerManager) RegisterSLAEscalationJob(escalationJob BatchJob) error {
	_, err := m.scheduler.NewJob(
		gocron.DurationJob(5*time.Minute),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
			defer cancel()
			m.processSLAEscalations(ctx, escalationJob)
		}),
		gocron.WithStartAt(gocron.WithStartImmediately()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithTags("ticket", "sla"),
		gocron.WithName("sla-escalation"),
	)
	if err != nil {
		return err
	}

	m.logger.Infow("registered SLA escalation job", "interval", "5m")
	return nil
}

func (m *SchedulerManager) processSLAEscalations(ctx context.Context, escalationJob BatchJob) {
	m.logger.Debugw("SLA escalation task started")

	startTime := biztime.NowUTC()

	escalated, err := escalationJob.Execute(ctx)
	if err != nil {
		m.logger.Errorw("failed to process SLA escalations",
			"error", err,
			"duration", time.Since(startTime),
		)
		return
	}

	if escalated > 0 {
		m.logger.Infow("overdue tickets escalated",
			"count", escalated,
			"duration", time.Since(startTime),
		)
	} else {
		m.logger.Debugw("no overdue tickets to escalate",
			"duration", time.Since(startTime),
		)
	}
}

// ========================================
// Invite Jobs (1h interval)
// ========================================

// RegisterInviteCleanupJob registers the hourly sweep that deletes invites
// past their expiry which were never accepted.
func (m *SchedulerManager) RegisterInviteCleanupJob(cleanupJob BatchJob) error {
	_, err := m.scheduler.NewJob(
		gocron.DurationJob(time.Hour),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			defer cancel()
			m.processInviteCleanup(ctx, cleanupJob)
		}),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithTags("invite", "cleanup"),
		gocron.WithName("invite-cleanup"),
	)
	if err != nil {
		return err
	}

	m.logger.Infow("registered invite cleanup job", "interval", "1h")
	return nil
}

func (m *SchedulerManager) processInviteCleanup(ctx context.Context, cleanupJob BatchJob) {
	m.logger.Debugw("invite cleanup task started")

	startTime := biztime.NowUTC()

	removed, err := cleanupJob.Execute(ctx)
	if err != nil {
		m.logger.Errorw("failed to clean up expired invites",
			"error", err,
			"duration", time.Since(startTime),
		)
		return
	}

	if removed > 0 {
		m.logger.Infow("expired invites removed",
			"count", removed,
			"duration", time.Since(startTime),
		)
	} else {
		m.logger.Debugw("no expired invites to remove",
			"duration", time.Since(startTime),
		)
	}
}

// ========================================
// Scheduler Lifecycle Methods
// ========================================

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

// Stop gracefully stops the scheduler.
// It waits for all running jobs to complete before returning.
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

// Jobs returns all registered jobs for inspection.
func (m *SchedulerManager) Jobs() []gocron.Job {
	return m.scheduler.Jobs()
}
