package events

import (
	"time"

	"git.home.luguber.info/inful/aoc2020/internal/build"
	"git.home.luguber.info/inful/aoc2020/internal/build/queue"
)

// EventType identifies a build lifecycle stage.
type EventType string

const (
	EventJobStarted   EventType = "job.started"
	EventJobCompleted EventType = "job.completed"
	EventJobFailed    EventType = "job.failed"
)

// UnitOutcome is the per-unit slice of a completed report.
type UnitOutcome struct {
	Unit       string `json:"unit"`
	Status     string `json:"status"`
	Artifact   string `json:"artifact,omitempty"`
	DurationMS int64  `json:"duration_ms"`
}

// BuildEvent is published for downstream consumers (dashboards, bots)
// whenever a build job changes state.
type BuildEvent struct {
	Type      EventType     `json:"type"`
	JobID     string        `json:"job_id"`
	Target    string        `json:"target"`
	Trigger   string        `json:"trigger"`
	WorkerID  string        `json:"worker_id,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
	Duration  time.Duration `json:"duration,omitempty"`
	Units     []UnitOutcome `json:"units,omitempty"`
	Error     string        `json:"error,omitempty"`
}

func jobEvent(eventType EventType, job *queue.BuildJob) *BuildEvent {
	return &BuildEvent{
		Type:    eventType,
		JobID:   job.ID,
		Target:  job.Target,
		Trigger: string(job.Trigger),
	}
}

func outcomesFromReport(report *build.Report) []UnitOutcome {
	if report == nil {
		return nil
	}
	outcomes := make([]UnitOutcome, 0, len(report.Results))
	for _, r := range report.Results {
		outcomes = append(outcomes, UnitOutcome{
			Unit:       r.Unit,
			Status:     string(r.Status),
			Artifact:   r.Artifact,
			DurationMS: r.Duration.Milliseconds(),
		})
	}
	return outcomes
}
