package daemon

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"

	"git.home.luguber.info/inful/aoc2020/internal/build"
	"git.home.luguber.info/inful/aoc2020/internal/build/queue"
	"git.home.luguber.info/inful/aoc2020/internal/logfields"
)

// Scheduler wraps gocron for periodic full rebuilds.
type Scheduler struct {
	scheduler gocron.Scheduler
	enqueuer  interface {
		Enqueue(job *queue.BuildJob) error
	}
}

// NewScheduler creates a new scheduler instance.
func NewScheduler() (*Scheduler, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create gocron scheduler: %w", err)
	}

	return &Scheduler{
		scheduler: s,
	}, nil
}

// SetEnqueuer injects the job enqueuer.
func (s *Scheduler) SetEnqueuer(e interface {
	Enqueue(job *queue.BuildJob) error
}) {
	s.enqueuer = e
}

// Start begins the scheduler.
func (s *Scheduler) Start(ctx context.Context) {
	slog.Info("Starting scheduler")
	s.scheduler.Start()
}

// Stop gracefully shuts down the scheduler.
func (s *Scheduler) Stop(ctx context.Context) error {
	slog.Info("Stopping scheduler")
	return s.scheduler.Shutdown()
}

// ScheduleRebuild schedules a periodic full rebuild at the given interval.
// Returns the job ID for later management.
func (s *Scheduler) ScheduleRebuild(interval time.Duration) (string, error) {
	job, err := s.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(s.executeRebuild),
		gocron.WithName("periodic-rebuild"),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create periodic rebuild job: %w", err)
	}

	slog.Info("Periodic rebuild scheduled",
		logfields.ScheduleName("periodic-rebuild"),
		slog.Duration("interval", interval))
	return job.ID().String(), nil
}

// executeRebuild is called by gocron to enqueue a scheduled rebuild.
func (s *Scheduler) executeRebuild() {
	if s.enqueuer == nil {
		slog.Error("Scheduler enqueuer not set")
		return
	}

	job := queue.NewJob(build.TargetAll, build.TriggerSchedule)
	slog.Info("Executing scheduled rebuild", logfields.JobID(job.ID))

	if err := s.enqueuer.Enqueue(job); err != nil {
		slog.Error("Failed to enqueue scheduled rebuild",
			logfields.JobID(job.ID),
			logfields.Error(err))
	}
}
