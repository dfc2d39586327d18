package events

import (
	"encoding/json"
	"testing"
	"time"

	"git.home.luguber.info/inful/aoc2020/internal/build"
	"git.home.luguber.info/inful/aoc2020/internal/build/queue"
	"git.home.luguber.info/inful/aoc2020/internal/config"
)

func TestStreamName(t *testing.T) {
	tests := []struct {
		prefix   string
		expected string
	}{
		{"aoc.builds", "AOC_BUILDS"},
		{"builds", "BUILDS"},
		{"a.b.c", "A_B_C"},
	}
	for _, tt := range tests {
		if got := streamName(tt.prefix); got != tt.expected {
			t.Errorf("streamName(%q) = %q, want %q", tt.prefix, got, tt.expected)
		}
	}
}

func TestSubjectFor(t *testing.T) {
	p := &Publisher{subjectPrefix: "aoc.builds"}

	if got := p.subjectFor("day07"); got != "aoc.builds.day07" {
		t.Errorf("unexpected subject %q", got)
	}
	if got := p.subjectFor(build.TargetAll); got != "aoc.builds.all" {
		t.Errorf("unexpected subject %q", got)
	}
}

func TestNewPublisher_DisabledConfig(t *testing.T) {
	_, err := NewPublisher(config.EventsConfig{Enabled: false})
	if err == nil {
		t.Fatal("expected error for disabled config")
	}
}

func TestNewPublisher_UnreachableServer(t *testing.T) {
	_, err := NewPublisher(config.EventsConfig{
		Enabled:       true,
		URL:           "nats://127.0.0.1:1",
		SubjectPrefix: "aoc.builds",
	})
	if err == nil {
		t.Fatal("expected connection error")
	}
}

func TestJobEvent_CarriesJobFields(t *testing.T) {
	job := queue.NewJob("day03", build.TriggerWatch)
	event := jobEvent(EventJobStarted, job)

	if event.Type != EventJobStarted {
		t.Errorf("expected type %s, got %s", EventJobStarted, event.Type)
	}
	if event.JobID != job.ID {
		t.Errorf("expected job ID %s, got %s", job.ID, event.JobID)
	}
	if event.Target != "day03" {
		t.Errorf("expected target day03, got %s", event.Target)
	}
	if event.Trigger != string(build.TriggerWatch) {
		t.Errorf("expected watch trigger, got %s", event.Trigger)
	}
}

func TestOutcomesFromReport(t *testing.T) {
	report := &build.Report{
		Results: []build.UnitResult{
			{Unit: "day01", Status: build.StatusSuccess, Artifact: "bin/day01", Duration: 1500 * time.Millisecond},
			{Unit: "day02", Status: build.StatusFailed, Duration: 200 * time.Millisecond},
		},
	}

	outcomes := outcomesFromReport(report)
	if len(outcomes) != 2 {
		t.Fatalf("expected 2 outcomes, got %d", len(outcomes))
	}
	if outcomes[0].Unit != "day01" || outcomes[0].Status != "success" || outcomes[0].DurationMS != 1500 {
		t.Errorf("unexpected first outcome %+v", outcomes[0])
	}
	if outcomes[1].Status != "failed" || outcomes[1].Artifact != "" {
		t.Errorf("unexpected second outcome %+v", outcomes[1])
	}

	if got := outcomesFromReport(nil); got != nil {
		t.Errorf("nil report should yield nil outcomes, got %v", got)
	}
}

func TestBuildEvent_JSONShape(t *testing.T) {
	event := &BuildEvent{
		Type:    EventJobCompleted,
		JobID:   "abc",
		Target:  "all",
		Trigger: "manual",
		Units:   []UnitOutcome{{Unit: "day01", Status: "success", DurationMS: 10}},
	}

	data, err := json.Marshal(event)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if decoded["type"] != "job.completed" {
		t.Errorf("expected type job.completed, got %v", decoded["type"])
	}
	if _, ok := decoded["worker_id"]; ok {
		t.Error("empty worker_id should be omitted")
	}
	if _, ok := decoded["error"]; ok {
		t.Error("empty error should be omitted")
	}
}
