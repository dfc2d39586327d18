package daemon

import (
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"git.home.luguber.info/inful/aoc2020/internal/build"
	"git.home.luguber.info/inful/aoc2020/internal/build/queue"
)

func TestRecentJobs_NewestFirstAndCapped(t *testing.T) {
	history := make([]*queue.BuildJob, 0, 12)
	for i := range 12 {
		job := queue.NewJob(build.TargetAll, build.TriggerManual)
		job.Error = fmt.Sprintf("job-%d", i)
		history = append(history, job)
	}

	recent := recentJobs(history, 10)
	if len(recent) != 10 {
		t.Fatalf("recent jobs = %d, want 10", len(recent))
	}
	if recent[0].Error != "job-11" {
		t.Errorf("first recent job = %s, want job-11", recent[0].Error)
	}
	if recent[9].Error != "job-2" {
		t.Errorf("last recent job = %s, want job-2", recent[9].Error)
	}
}

func TestRecentJobs_ShortHistory(t *testing.T) {
	history := []*queue.BuildJob{queue.NewJob(build.TargetAll, build.TriggerManual)}
	if got := len(recentJobs(history, 10)); got != 1 {
		t.Errorf("recent jobs = %d, want 1", got)
	}
}

func TestStatusHandler(t *testing.T) {
	d, err := New(testConfig(t))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	d.status.Store(StatusRunning)

	rec := httptest.NewRecorder()
	d.StatusHandler(rec, httptest.NewRequest("GET", "/status", nil))

	if rec.Code != 200 {
		t.Fatalf("status code = %d, want 200", rec.Code)
	}
	var status StatusResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &status); err != nil {
		t.Fatalf("invalid status JSON: %v", err)
	}
	if status.Status != StatusRunning {
		t.Errorf("status = %s, want %s", status.Status, StatusRunning)
	}
	if status.Root != d.cfg.Root {
		t.Errorf("root = %s, want %s", status.Root, d.cfg.Root)
	}
	if status.Version == "" {
		t.Error("version is empty")
	}
}

func TestTargetsHandler(t *testing.T) {
	cfg := testConfig(t)
	for _, name := range []string{"day02", "day01", "day11"} {
		if err := os.MkdirAll(filepath.Join(cfg.Root, name), 0o750); err != nil {
			t.Fatal(err)
		}
	}

	d, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if _, err := d.discoverTargets(); err != nil {
		t.Fatalf("discoverTargets() error = %v", err)
	}

	rec := httptest.NewRecorder()
	d.TargetsHandler(rec, httptest.NewRequest("GET", "/targets", nil))

	var response TargetsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("invalid targets JSON: %v", err)
	}
	if len(response.Units) != 3 {
		t.Fatalf("units = %d, want 3", len(response.Units))
	}
	// Sorted by name.
	wantOrder := []string{"day01", "day02", "day11"}
	for i, want := range wantOrder {
		if response.Units[i].Name != want {
			t.Errorf("units[%d] = %s, want %s", i, response.Units[i].Name, want)
		}
	}
	if response.Units[2].Day != 11 {
		t.Errorf("day11 numeric day = %d, want 11", response.Units[2].Day)
	}
	if response.LastDiscovery == nil {
		t.Error("last discovery timestamp missing")
	}
}

func TestTargetsHandler_BeforeDiscovery(t *testing.T) {
	d, err := New(testConfig(t))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	rec := httptest.NewRecorder()
	d.TargetsHandler(rec, httptest.NewRequest("GET", "/targets", nil))

	var response TargetsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("invalid targets JSON: %v", err)
	}
	if len(response.Units) != 0 {
		t.Errorf("units = %d, want 0", len(response.Units))
	}
	if response.LastDiscovery != nil {
		t.Error("last discovery set before any discovery ran")
	}
}
