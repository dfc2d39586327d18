package daemon

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"git.home.luguber.info/inful/aoc2020/internal/build"
	"git.home.luguber.info/inful/aoc2020/internal/build/queue"
	"git.home.luguber.info/inful/aoc2020/internal/dayunit"
)

func TestWatcher_Classify(t *testing.T) {
	w := &Watcher{root: filepath.FromSlash("/repo"), matcher: dayunit.NewMatcher(29)}

	tests := []struct {
		name           string
		path           string
		wantUnit       string
		wantStructural bool
		wantOK         bool
	}{
		{"day directory itself", "/repo/day01", "day01", true, true},
		{"go file in day directory", "/repo/day01/main.go", "day01", false, true},
		{"nested go file", "/repo/day01/internal/solve.go", "day01", false, true},
		{"puzzle input ignored", "/repo/day01/input/puzzle.txt", "", false, false},
		{"notes ignored", "/repo/day01/NOTES.md", "", false, false},
		{"artifacts dir ignored", "/repo/bin/day01", "", false, false},
		{"day above bound ignored", "/repo/day99/main.go", "", false, false},
		{"root itself ignored", "/repo", "", false, false},
		{"outside root ignored", "/elsewhere/day01/main.go", "", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			unit, structural, ok := w.classify(filepath.FromSlash(tt.path))
			if ok != tt.wantOK {
				t.Fatalf("classify(%s) ok = %v, want %v", tt.path, ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if unit != tt.wantUnit {
				t.Errorf("classify(%s) unit = %q, want %q", tt.path, unit, tt.wantUnit)
			}
			if structural != tt.wantStructural {
				t.Errorf("classify(%s) structural = %v, want %v", tt.path, structural, tt.wantStructural)
			}
		})
	}
}

func startTestWatcher(t *testing.T, root string, quiet time.Duration) (*Watcher, *mockEnqueuer) {
	t.Helper()

	enqueuer := &mockEnqueuer{}
	w := NewWatcher(root, dayunit.NewMatcher(29), quiet, enqueuer)
	if err := w.Start(t.Context()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	t.Cleanup(func() { _ = w.Stop(t.Context()) })
	return w, enqueuer
}

func waitForJobs(t *testing.T, enqueuer *mockEnqueuer, n int) []*queue.BuildJob {
	t.Helper()

	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if jobs := enqueuer.snapshot(); len(jobs) >= n {
			return jobs
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("expected %d enqueued jobs, got %d", n, len(enqueuer.snapshot()))
	return nil
}

func TestWatcher_SourceChangeRebuildsUnit(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping filesystem watch test in short mode")
	}

	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "day03"), 0o750); err != nil {
		t.Fatal(err)
	}

	_, enqueuer := startTestWatcher(t, root, 50*time.Millisecond)

	if err := os.WriteFile(filepath.Join(root, "day03", "main.go"), []byte("package main\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	jobs := waitForJobs(t, enqueuer, 1)
	if jobs[0].Target != "day03" {
		t.Errorf("job target = %q, want day03", jobs[0].Target)
	}
	if jobs[0].Trigger != build.TriggerWatch {
		t.Errorf("job trigger = %q, want %q", jobs[0].Trigger, build.TriggerWatch)
	}
}

func TestWatcher_NewDayDirectoryRebuildsAll(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping filesystem watch test in short mode")
	}

	root := t.TempDir()
	_, enqueuer := startTestWatcher(t, root, 50*time.Millisecond)

	if err := os.MkdirAll(filepath.Join(root, "day07"), 0o750); err != nil {
		t.Fatal(err)
	}

	jobs := waitForJobs(t, enqueuer, 1)
	if jobs[0].Target != build.TargetAll {
		t.Errorf("job target = %q, want %q", jobs[0].Target, build.TargetAll)
	}

	// The new directory is watched from now on, so a source change inside it
	// rebuilds just that unit.
	if err := os.WriteFile(filepath.Join(root, "day07", "main.go"), []byte("package main\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	jobs = waitForJobs(t, enqueuer, 2)
	if jobs[1].Target != "day07" {
		t.Errorf("second job target = %q, want day07", jobs[1].Target)
	}
}

func TestWatcher_MultipleUnitsCoalesceToFullRebuild(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping filesystem watch test in short mode")
	}

	root := t.TempDir()
	for _, name := range []string{"day01", "day02"} {
		if err := os.MkdirAll(filepath.Join(root, name), 0o750); err != nil {
			t.Fatal(err)
		}
	}

	_, enqueuer := startTestWatcher(t, root, 100*time.Millisecond)

	for _, name := range []string{"day01", "day02"} {
		if err := os.WriteFile(filepath.Join(root, name, "main.go"), []byte("package main\n"), 0o600); err != nil {
			t.Fatal(err)
		}
	}

	jobs := waitForJobs(t, enqueuer, 1)
	if jobs[0].Target != build.TargetAll {
		t.Errorf("job target = %q, want %q", jobs[0].Target, build.TargetAll)
	}
}

func TestWatcher_IgnoresNonGoFiles(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping filesystem watch test in short mode")
	}

	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "day01"), 0o750); err != nil {
		t.Fatal(err)
	}

	w, enqueuer := startTestWatcher(t, root, 30*time.Millisecond)

	if err := os.WriteFile(filepath.Join(root, "day01", "NOTES.md"), []byte("# Day 1\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	time.Sleep(6 * w.quiet)
	if jobs := enqueuer.snapshot(); len(jobs) != 0 {
		t.Errorf("expected no jobs for non-Go change, got %d", len(jobs))
	}
}

func TestWatcher_StopIsIdempotent(t *testing.T) {
	root := t.TempDir()
	w, _ := startTestWatcher(t, root, 30*time.Millisecond)

	if err := w.Stop(t.Context()); err != nil {
		t.Fatalf("first Stop() error = %v", err)
	}
	if err := w.Stop(t.Context()); err != nil {
		t.Fatalf("second Stop() error = %v", err)
	}
}
