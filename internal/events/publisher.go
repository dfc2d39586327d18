// Package events publishes build lifecycle events to NATS JetStream so
// external consumers can react to builds without polling the daemon.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"git.home.luguber.info/inful/aoc2020/internal/build"
	"git.home.luguber.info/inful/aoc2020/internal/build/queue"
	"git.home.luguber.info/inful/aoc2020/internal/config"
)

// Publisher manages the NATS connection and stream for build events.
type Publisher struct {
	conn          *nats.Conn
	js            jetstream.JetStream
	subjectPrefix string
}

// NewPublisher connects to NATS and ensures the build event stream exists.
// Callers must check cfg.Enabled first.
func NewPublisher(cfg config.EventsConfig) (*Publisher, error) {
	if !cfg.Enabled {
		return nil, fmt.Errorf("event publishing is disabled")
	}

	conn, err := nats.Connect(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := jetstream.New(conn)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	publisher := &Publisher{
		conn:          conn,
		js:            js,
		subjectPrefix: cfg.SubjectPrefix,
	}

	if err := publisher.initStream(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to initialize stream: %w", err)
	}

	slog.Info("NATS publisher initialized for build events",
		"url", cfg.URL,
		"subject_prefix", cfg.SubjectPrefix)

	return publisher, nil
}

// initStream creates or updates the stream capturing all build subjects.
func (p *Publisher) initStream() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := p.js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:        streamName(p.subjectPrefix),
		Description: "Build lifecycle events for aocbuild",
		Subjects:    []string{p.subjectPrefix + ".>"},
		MaxAge:      7 * 24 * time.Hour,
	})
	if err != nil {
		return fmt.Errorf("failed to create stream: %w", err)
	}
	return nil
}

// streamName derives a stream name from the subject prefix ("aoc.builds" -> "AOC_BUILDS").
func streamName(prefix string) string {
	return strings.ToUpper(strings.ReplaceAll(prefix, ".", "_"))
}

// subjectFor scopes events per target so consumers can subscribe narrowly.
func (p *Publisher) subjectFor(target string) string {
	return p.subjectPrefix + "." + target
}

// Publish sends one event on the target-scoped subject.
func (p *Publisher) Publish(ctx context.Context, event *BuildEvent) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	event.Timestamp = time.Now()

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	_, err = p.js.Publish(ctx, p.subjectFor(event.Target), data)
	if err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	slog.Debug("Published build event",
		"type", string(event.Type),
		"job_id", event.JobID,
		"target", event.Target)

	return nil
}

// EmitJobStarted implements queue.EventEmitter.
func (p *Publisher) EmitJobStarted(ctx context.Context, job *queue.BuildJob, workerID string) error {
	event := jobEvent(EventJobStarted, job)
	event.WorkerID = workerID
	return p.Publish(ctx, event)
}

// EmitJobCompleted implements queue.EventEmitter.
func (p *Publisher) EmitJobCompleted(ctx context.Context, job *queue.BuildJob, report *build.Report) error {
	event := jobEvent(EventJobCompleted, job)
	event.Duration = job.Duration
	event.Units = outcomesFromReport(report)
	return p.Publish(ctx, event)
}

// EmitJobFailed implements queue.EventEmitter.
func (p *Publisher) EmitJobFailed(ctx context.Context, job *queue.BuildJob, errorMsg string) error {
	event := jobEvent(EventJobFailed, job)
	event.Duration = job.Duration
	event.Units = outcomesFromReport(job.Report)
	event.Error = errorMsg
	return p.Publish(ctx, event)
}

// PublishReport emits a single summary event for synchronous CLI builds,
// reusing the job event shape without a queue job.
func (p *Publisher) PublishReport(ctx context.Context, jobID, target string, trigger build.Trigger, report *build.Report) error {
	eventType := EventJobCompleted
	errMsg := ""
	if report != nil && report.HasFailures() {
		eventType = EventJobFailed
		errMsg = fmt.Sprintf("%d of %d units failed", len(report.Failed()), len(report.Results))
	}

	event := &BuildEvent{
		Type:    eventType,
		JobID:   jobID,
		Target:  target,
		Trigger: string(trigger),
		Units:   outcomesFromReport(report),
		Error:   errMsg,
	}
	if report != nil {
		event.Duration = report.Duration
	}
	return p.Publish(ctx, event)
}

// Close closes the NATS connection.
func (p *Publisher) Close() error {
	if p.conn != nil {
		p.conn.Close()
	}
	return nil
}
