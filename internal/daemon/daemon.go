// Package daemon implements the long-running build service: a filesystem
// watcher and periodic scheduler feed rebuild jobs into a worker queue, and a
// small HTTP server exposes health, status and metrics endpoints.
package daemon

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/aoc2020/internal/build"
	"git.home.luguber.info/inful/aoc2020/internal/build/queue"
	"git.home.luguber.info/inful/aoc2020/internal/config"
	"git.home.luguber.info/inful/aoc2020/internal/dayunit"
	"git.home.luguber.info/inful/aoc2020/internal/events"
	"git.home.luguber.info/inful/aoc2020/internal/gitinfo"
	"git.home.luguber.info/inful/aoc2020/internal/history"
	"git.home.luguber.info/inful/aoc2020/internal/logfields"
	"git.home.luguber.info/inful/aoc2020/internal/metrics"
)

// Status represents the current state of the daemon
type Status string

const (
	StatusStopped  Status = "stopped"
	StatusStarting Status = "starting"
	StatusRunning  Status = "running"
	StatusStopping Status = "stopping"
	StatusError    Status = "error"
)

// Daemon is the long-running build service.
type Daemon struct {
	cfg       *config.Config
	status    atomic.Value // Status
	startTime time.Time
	stopChan  chan struct{}
	mu        sync.RWMutex

	// Core components
	matcher      dayunit.Matcher
	orchestrator *build.Orchestrator
	buildQueue   *queue.Queue
	watcher      *Watcher
	scheduler    *Scheduler
	httpServer   *HTTPServer
	historyStore *history.Store
	publisher    *events.Publisher
	recorder     metrics.Recorder
	registry     *prom.Registry

	// Discovery snapshot for fast status queries
	targets       dayunit.TargetMap
	lastDiscovery *time.Time

	// Repository info read once at startup
	repoInfo *gitinfo.Info
}

// New creates a daemon instance from the configuration. Optional components
// (history store, event publisher, watcher, scheduler) are only constructed
// when their config sections enable them.
func New(cfg *config.Config) (*Daemon, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration is required")
	}

	registry := prom.NewRegistry()
	d := &Daemon{
		cfg:      cfg,
		stopChan: make(chan struct{}),
		matcher:  dayunit.NewMatcher(cfg.Discovery.MaxDay),
		registry: registry,
		recorder: metrics.NewPrometheusRecorder(registry),
	}
	d.status.Store(StatusStopped)

	builder := build.NewGoBuilder(cfg.Root, cfg.Build.ArtifactsDir, cfg.Build.GoBinary, cfg.Build.TimeoutDuration())
	d.orchestrator = build.NewOrchestrator(builder, cfg.Build.Concurrency, d.recorder, slog.Default())

	d.buildQueue = queue.New(cfg.Daemon.QueueSize, cfg.Daemon.Workers, cfg.Daemon.HistoryLimit, d)
	d.buildQueue.SetRecorder(d.recorder)

	if cfg.History.Enabled {
		store, err := history.NewStore(cfg.HistoryPath())
		if err != nil {
			return nil, fmt.Errorf("failed to open history store: %w", err)
		}
		d.historyStore = store
	}

	if cfg.Events.Enabled {
		publisher, err := events.NewPublisher(cfg.Events)
		if err != nil {
			return nil, fmt.Errorf("failed to connect event publisher: %w", err)
		}
		d.publisher = publisher
		d.buildQueue.SetEventEmitter(publisher)
	}

	if cfg.Daemon.WatchEnabled() {
		d.watcher = NewWatcher(cfg.Root, d.matcher, cfg.Daemon.QuietWindowDuration(), d.buildQueue)
	}

	if interval := cfg.Daemon.RebuildEveryDuration(); interval > 0 {
		scheduler, err := NewScheduler()
		if err != nil {
			return nil, fmt.Errorf("failed to create scheduler: %w", err)
		}
		scheduler.SetEnqueuer(d.buildQueue)
		d.scheduler = scheduler
	}

	d.httpServer = NewHTTPServer(cfg.Daemon.Listen, d)

	return d, nil
}

// Run executes one queued job: rediscover the target set, then hand the
// requested target to the orchestrator. Implements queue.Runner.
func (d *Daemon) Run(ctx context.Context, job *queue.BuildJob) (*build.Report, error) {
	targets, err := d.discoverTargets()
	if err != nil {
		return nil, err
	}

	report, err := d.orchestrator.Build(ctx, targets, job.Target)
	if report != nil {
		d.recordHistory(ctx, job, report)
	}
	return report, err
}

var _ queue.Runner = (*Daemon)(nil)

// discoverTargets rescans the repository root and caches the result for the
// status endpoints.
func (d *Daemon) discoverTargets() (dayunit.TargetMap, error) {
	start := time.Now()
	targets, err := dayunit.Discover(d.cfg.Root, d.matcher)
	if err != nil {
		return nil, err
	}
	d.recorder.ObserveDiscoveryDuration(time.Since(start), len(targets))

	now := time.Now()
	d.mu.Lock()
	d.targets = targets
	d.lastDiscovery = &now
	d.mu.Unlock()

	return targets, nil
}

// recordHistory persists per-unit results. Failures are logged, never allowed
// to fail the job itself.
func (d *Daemon) recordHistory(ctx context.Context, job *queue.BuildJob, report *build.Report) {
	if d.historyStore == nil {
		return
	}
	if err := d.historyStore.RecordReport(ctx, job.ID, job.Trigger, report); err != nil {
		slog.Warn("Failed to record build history",
			logfields.JobID(job.ID),
			logfields.Error(err))
	}
}

// Start starts the daemon and all its components, then blocks until the
// context is canceled or Stop is called.
func (d *Daemon) Start(ctx context.Context) error {
	if !d.status.CompareAndSwap(StatusStopped, StatusStarting) {
		return fmt.Errorf("daemon is not in stopped state: %s", d.GetStatus())
	}

	d.mu.Lock()
	d.startTime = time.Now()
	if info, err := gitinfo.Read(d.cfg.Root); err == nil {
		d.repoInfo = info
	} else {
		slog.Debug("Repository info unavailable", logfields.Error(err))
	}
	d.mu.Unlock()

	if _, err := d.discoverTargets(); err != nil {
		slog.Warn("Initial discovery failed", logfields.Root(d.cfg.Root), logfields.Error(err))
	}

	if err := d.httpServer.Start(ctx); err != nil {
		d.status.Store(StatusError)
		return fmt.Errorf("failed to start HTTP server: %w", err)
	}

	d.buildQueue.Start(ctx)

	if d.scheduler != nil {
		interval := d.cfg.Daemon.RebuildEveryDuration()
		if _, err := d.scheduler.ScheduleRebuild(interval); err != nil {
			slog.Error("Failed to schedule periodic rebuild", logfields.Error(err))
		}
		d.scheduler.Start(ctx)
	}

	if d.watcher != nil {
		if err := d.watcher.Start(ctx); err != nil {
			slog.Error("Failed to start repository watcher", logfields.Error(err))
		}
	}

	d.status.Store(StatusRunning)
	slog.Info("aocbuild daemon started",
		logfields.Addr(d.cfg.Daemon.Listen),
		logfields.Root(d.cfg.Root),
		slog.Int("workers", d.cfg.Daemon.Workers),
		slog.Bool("watch", d.watcher != nil),
		slog.Bool("schedule", d.scheduler != nil))

	d.enqueueInitialBuild()

	d.mainLoop(ctx)

	// In the context-cancellation path nothing else runs the shutdown
	// sequence, so do it here. Stop is idempotent, so a concurrent explicit
	// Stop call is safe.
	if d.GetStatus() == StatusRunning {
		stopCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
		defer cancel()
		return d.Stop(stopCtx)
	}
	return nil
}

// enqueueInitialBuild queues a full rebuild so a fresh daemon converges on
// current sources without waiting for a change or a schedule tick.
func (d *Daemon) enqueueInitialBuild() {
	job := queue.NewJob(build.TargetAll, build.TriggerManual)
	if err := d.buildQueue.Enqueue(job); err != nil {
		slog.Error("Failed to enqueue initial build", logfields.Error(err))
		return
	}
	slog.Info("Initial build enqueued", logfields.JobID(job.ID))
}

// mainLoop blocks until the daemon is stopped.
func (d *Daemon) mainLoop(ctx context.Context) {
	select {
	case <-ctx.Done():
		slog.Info("Main loop stopped by context cancellation")
	case <-d.stopChan:
		slog.Info("Main loop stopped by stop signal")
	}
}

// Stop gracefully shuts down the daemon. Safe to call more than once; only
// the call that wins the status transition runs the shutdown sequence. The
// mutex stays free so the status endpoints answer while draining.
func (d *Daemon) Stop(ctx context.Context) error {
	current := d.GetStatus()
	if current == StatusStopped || current == StatusStopping {
		return nil
	}
	if !d.status.CompareAndSwap(current, StatusStopping) {
		return nil
	}

	slog.Info("Stopping aocbuild daemon")

	select {
	case <-d.stopChan:
	default:
		close(d.stopChan)
	}

	// Stop components in reverse start order.
	if d.watcher != nil {
		if err := d.watcher.Stop(ctx); err != nil {
			slog.Error("Failed to stop repository watcher", logfields.Error(err))
		}
	}

	if d.scheduler != nil {
		if err := d.scheduler.Stop(ctx); err != nil {
			slog.Error("Failed to stop scheduler", logfields.Error(err))
		}
	}

	d.buildQueue.Stop(ctx)

	if d.httpServer != nil {
		if err := d.httpServer.Stop(ctx); err != nil {
			slog.Error("Failed to stop HTTP server", logfields.Error(err))
		}
	}

	if d.publisher != nil {
		if err := d.publisher.Close(); err != nil {
			slog.Error("Failed to close event publisher", logfields.Error(err))
		}
	}

	if d.historyStore != nil {
		if err := d.historyStore.Close(); err != nil {
			slog.Error("Failed to close history store", logfields.Error(err))
		}
	}

	d.status.Store(StatusStopped)
	slog.Info("aocbuild daemon stopped", slog.Duration("uptime", time.Since(d.StartTime())))
	return nil
}

// GetStatus returns the current daemon status
func (d *Daemon) GetStatus() Status {
	status, ok := d.status.Load().(Status)
	if !ok {
		return StatusError
	}
	return status
}

// StartTime returns when the daemon was started.
func (d *Daemon) StartTime() time.Time {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.startTime
}

// Targets returns the most recent discovery snapshot and its timestamp.
// The snapshot may be nil before the first discovery completes.
func (d *Daemon) Targets() (dayunit.TargetMap, *time.Time) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.targets, d.lastDiscovery
}

// RepoInfo returns repository head information, or nil when the root is not
// a git repository.
func (d *Daemon) RepoInfo() *gitinfo.Info {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.repoInfo
}

// Queue exposes the build queue for status reporting.
func (d *Daemon) Queue() *queue.Queue {
	return d.buildQueue
}
