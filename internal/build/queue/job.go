package queue

import (
	"context"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/aoc2020/internal/build"
)

// JobStatus represents the current status of a build job.
type JobStatus string

const (
	JobStatusQueued    JobStatus = "queued"
	JobStatusRunning   JobStatus = "running"
	JobStatusCompleted JobStatus = "completed"
	JobStatusFailed    JobStatus = "failed"
	JobStatusCanceled  JobStatus = "canceled"
)

// BuildJob represents a single build job in the queue.
type BuildJob struct {
	ID          string        `json:"id"`
	Target      string        `json:"target"`
	Trigger     build.Trigger `json:"trigger"`
	Status      JobStatus     `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
	StartedAt   *time.Time    `json:"started_at,omitempty"`
	CompletedAt *time.Time    `json:"completed_at,omitempty"`
	Duration    time.Duration `json:"duration,omitempty"`
	Error       string        `json:"error,omitempty"`

	// Report holds the per-unit outcomes once the job has run.
	Report *build.Report `json:"report,omitempty"`

	// Internal processing
	cancel context.CancelFunc `json:"-"`
}

// NewJob creates a queued job for the given target ("all" or a unit name).
func NewJob(target string, trigger build.Trigger) *BuildJob {
	return &BuildJob{
		ID:        uuid.NewString(),
		Target:    target,
		Trigger:   trigger,
		Status:    JobStatusQueued,
		CreatedAt: time.Now(),
	}
}
