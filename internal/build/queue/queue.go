package queue

import (
	"context"
	stdErrors "errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"git.home.luguber.info/inful/aoc2020/internal/build"
	"git.home.luguber.info/inful/aoc2020/internal/logfields"
	"git.home.luguber.info/inful/aoc2020/internal/metrics"
)

// Runner executes one queued job and returns the resulting report.
// The daemon provides an implementation that rediscovers units and
// delegates to the orchestrator.
type Runner interface {
	Run(ctx context.Context, job *BuildJob) (*build.Report, error)
}

// EventEmitter abstracts lifecycle event publication so the queue does not
// depend on a transport implementation.
type EventEmitter interface {
	EmitJobStarted(ctx context.Context, job *BuildJob, workerID string) error
	EmitJobCompleted(ctx context.Context, job *BuildJob, report *build.Report) error
	EmitJobFailed(ctx context.Context, job *BuildJob, errorMsg string) error
}

// Queue manages the queue of build jobs.
type Queue struct {
	jobs        chan *BuildJob
	workers     int
	maxSize     int
	mu          sync.RWMutex
	active      map[string]*BuildJob
	history     []*BuildJob
	historySize int
	stopChan    chan struct{}
	wg          sync.WaitGroup
	runner      Runner

	recorder     metrics.Recorder
	eventEmitter EventEmitter
}

// New creates a build queue with the specified size, worker count, and runner.
func New(maxSize, workers, historySize int, runner Runner) *Queue {
	if maxSize <= 0 {
		maxSize = 32
	}
	if workers <= 0 {
		workers = 2
	}
	if historySize <= 0 {
		historySize = 50
	}
	if runner == nil {
		panic("queue.New: runner is required")
	}

	return &Queue{
		jobs:        make(chan *BuildJob, maxSize),
		workers:     workers,
		maxSize:     maxSize,
		active:      make(map[string]*BuildJob),
		history:     make([]*BuildJob, 0),
		historySize: historySize,
		stopChan:    make(chan struct{}),
		runner:      runner,
		recorder:    metrics.NoopRecorder{},
	}
}

// SetRecorder injects a metrics recorder (optional).
func (q *Queue) SetRecorder(r metrics.Recorder) {
	if r == nil {
		r = metrics.NoopRecorder{}
	}
	q.recorder = r
}

// SetEventEmitter injects a build event emitter (optional).
func (q *Queue) SetEventEmitter(emitter EventEmitter) {
	q.eventEmitter = emitter
}

// Start begins processing jobs with the configured number of workers.
func (q *Queue) Start(ctx context.Context) {
	slog.Info("Starting build queue", "workers", q.workers, "max_size", q.maxSize)
	for i := range q.workers {
		q.wg.Add(1)
		go q.worker(ctx, fmt.Sprintf("worker-%d", i))
	}
}

// Stop gracefully shuts down the queue, canceling all active jobs.
// Safe to call more than once.
func (q *Queue) Stop(_ context.Context) {
	select {
	case <-q.stopChan:
		return
	default:
		close(q.stopChan)
	}

	q.mu.Lock()
	for _, job := range q.active {
		if job.cancel != nil {
			job.cancel()
		}
	}
	q.mu.Unlock()

	q.wg.Wait()
}

// Length returns the current queue length.
func (q *Queue) Length() int {
	return len(q.jobs)
}

// Enqueue adds a new build job to the queue.
func (q *Queue) Enqueue(job *BuildJob) error {
	if job == nil {
		return stdErrors.New("job cannot be nil")
	}
	if job.ID == "" {
		return stdErrors.New("job ID is required")
	}

	job.Status = JobStatusQueued

	select {
	case q.jobs <- job:
		q.recorder.SetQueueDepth(len(q.jobs))
		return nil
	default:
		return stdErrors.New("build queue is full")
	}
}

// ActiveJobs returns a copy of the currently running jobs.
func (q *Queue) ActiveJobs() []*BuildJob {
	q.mu.RLock()
	defer q.mu.RUnlock()

	active := make([]*BuildJob, 0, len(q.active))
	for _, job := range q.active {
		cp := *job
		active = append(active, &cp)
	}
	return active
}

// History returns copies of completed jobs, oldest first.
func (q *Queue) History() []*BuildJob {
	q.mu.RLock()
	defer q.mu.RUnlock()

	history := make([]*BuildJob, 0, len(q.history))
	for _, job := range q.history {
		cp := *job
		history = append(history, &cp)
	}
	return history
}

// JobSnapshot returns a copy of a job (active first, then history).
func (q *Queue) JobSnapshot(id string) (*BuildJob, bool) {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if j, ok := q.active[id]; ok {
		cp := *j
		return &cp, true
	}
	for _, j := range q.history {
		if j.ID == id {
			cp := *j
			return &cp, true
		}
	}
	return nil, false
}

func (q *Queue) worker(ctx context.Context, workerID string) {
	defer q.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case <-q.stopChan:
			return
		case job := <-q.jobs:
			if job != nil {
				q.recorder.SetQueueDepth(len(q.jobs))
				q.processJob(ctx, job, workerID)
			}
		}
	}
}

func (q *Queue) processJob(ctx context.Context, job *BuildJob, workerID string) {
	jobCtx, cancel := context.WithCancel(ctx)
	job.cancel = cancel
	defer cancel()

	startTime := time.Now()
	q.mu.Lock()
	job.StartedAt = &startTime
	job.Status = JobStatusRunning
	q.active[job.ID] = job
	q.mu.Unlock()

	q.emitStartedEvent(jobCtx, job, workerID)

	report, err := q.runner.Run(jobCtx, job)
	if err == nil && report != nil && report.HasFailures() {
		err = fmt.Errorf("%d of %d units failed", len(report.Failed()), len(report.Results))
	}

	q.markJobCompleted(job, report, err)
	q.emitCompletionEvents(ctx, job, err)
}

func (q *Queue) emitStartedEvent(ctx context.Context, job *BuildJob, workerID string) {
	if q.eventEmitter == nil {
		return
	}
	if err := q.eventEmitter.EmitJobStarted(ctx, job, workerID); err != nil {
		slog.Warn("Failed to emit job started event", logfields.JobID(job.ID), logfields.Error(err))
	}
}

// markJobCompleted finalizes the job under q.mu. The report must be attached
// here too: snapshot readers copy *job while it is still in the active map.
func (q *Queue) markJobCompleted(job *BuildJob, report *build.Report, err error) {
	endTime := time.Now()
	q.mu.Lock()
	defer q.mu.Unlock()

	if report != nil {
		job.Report = report
	}
	job.CompletedAt = &endTime
	if job.StartedAt != nil {
		job.Duration = endTime.Sub(*job.StartedAt)
	}
	delete(q.active, job.ID)
	q.addToHistory(job)

	switch {
	case err == nil:
		job.Status = JobStatusCompleted
	case stdErrors.Is(err, context.Canceled):
		job.Status = JobStatusCanceled
		job.Error = err.Error()
	default:
		job.Status = JobStatusFailed
		job.Error = err.Error()
	}
}

func (q *Queue) emitCompletionEvents(ctx context.Context, job *BuildJob, err error) {
	if q.eventEmitter == nil {
		return
	}

	if err != nil {
		if emitErr := q.eventEmitter.EmitJobFailed(ctx, job, err.Error()); emitErr != nil {
			slog.Warn("Failed to emit job failed event", logfields.JobID(job.ID), logfields.Error(emitErr))
		}
		return
	}
	if emitErr := q.eventEmitter.EmitJobCompleted(ctx, job, job.Report); emitErr != nil {
		slog.Warn("Failed to emit job completed event", logfields.JobID(job.ID), logfields.Error(emitErr))
	}
}

// addToHistory appends under q.mu and trims to the ring size.
func (q *Queue) addToHistory(job *BuildJob) {
	q.history = append(q.history, job)
	if len(q.history) > q.historySize {
		copy(q.history, q.history[len(q.history)-q.historySize:])
		q.history = q.history[:q.historySize]
	}
}
