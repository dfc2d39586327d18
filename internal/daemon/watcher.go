package daemon

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/aoc2020/internal/build"
	"git.home.luguber.info/inful/aoc2020/internal/build/queue"
	"git.home.luguber.info/inful/aoc2020/internal/dayunit"
	"git.home.luguber.info/inful/aoc2020/internal/logfields"
)

// relevantOps are the filesystem operations that can change build outcomes.
// Chmod is deliberately excluded.
const relevantOps = fsnotify.Create | fsnotify.Write | fsnotify.Remove | fsnotify.Rename

// Watcher monitors the repository root for source changes and enqueues
// debounced rebuild jobs. Edits inside a day directory rebuild that unit;
// day directories appearing or vanishing rebuild everything, since the
// target set itself changed.
type Watcher struct {
	root     string
	matcher  dayunit.Matcher
	quiet    time.Duration
	enqueuer interface {
		Enqueue(job *queue.BuildJob) error
	}

	watcher     *fsnotify.Watcher
	mu          sync.Mutex
	pending     map[string]struct{}
	pendingAll  bool
	triggerChan chan struct{}
	stopChan    chan struct{}
}

// NewWatcher creates a repository watcher. The filesystem watch itself is not
// established until Start.
func NewWatcher(root string, matcher dayunit.Matcher, quiet time.Duration, enqueuer interface {
	Enqueue(job *queue.BuildJob) error
},
) *Watcher {
	if quiet <= 0 {
		quiet = 2 * time.Second
	}
	return &Watcher{
		root:        root,
		matcher:     matcher,
		quiet:       quiet,
		enqueuer:    enqueuer,
		pending:     make(map[string]struct{}),
		triggerChan: make(chan struct{}, 1),
		stopChan:    make(chan struct{}),
	}
}

// Start establishes the filesystem watches and begins monitoring.
func (w *Watcher) Start(ctx context.Context) error {
	absRoot, err := filepath.Abs(w.root)
	if err != nil {
		return fmt.Errorf("failed to resolve watch root: %w", err)
	}
	w.root = absRoot

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	w.watcher = watcher

	// Watch the root for day directories appearing, plus each existing day
	// directory for source edits. fsnotify does not recurse.
	if err := w.watcher.Add(w.root); err != nil {
		w.watcher.Close()
		return fmt.Errorf("failed to watch root %s: %w", w.root, err)
	}
	entries, err := os.ReadDir(w.root)
	if err != nil {
		w.watcher.Close()
		return fmt.Errorf("failed to list root %s: %w", w.root, err)
	}
	watched := 0
	for _, entry := range entries {
		if !w.matcher.Match(entry.Name(), entry.IsDir()) {
			continue
		}
		if err := w.watcher.Add(filepath.Join(w.root, entry.Name())); err != nil {
			slog.Warn("Failed to watch day directory",
				logfields.Unit(entry.Name()),
				logfields.Error(err))
			continue
		}
		watched++
	}

	slog.Info("Starting repository watcher",
		logfields.Root(w.root),
		logfields.Count(watched),
		slog.Duration("quiet_window", w.quiet))

	go w.watchLoop(ctx)
	go w.rebuildLoop(ctx)

	return nil
}

// Stop stops the watcher. Safe to call more than once.
func (w *Watcher) Stop(ctx context.Context) error {
	select {
	case <-w.stopChan:
		return nil
	default:
		close(w.stopChan)
	}

	slog.Info("Stopping repository watcher")
	if w.watcher != nil {
		if err := w.watcher.Close(); err != nil {
			return fmt.Errorf("failed to close file watcher: %w", err)
		}
	}
	return nil
}

// watchLoop consumes filesystem events and marks affected units.
func (w *Watcher) watchLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopChan:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			slog.Error("Repository watcher error", logfields.Error(err))
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if event.Op&relevantOps == 0 {
		return
	}

	unit, structural, ok := w.classify(event.Name)
	if !ok {
		return
	}

	if structural {
		if event.Op&fsnotify.Create == fsnotify.Create {
			if st, err := os.Stat(event.Name); err == nil && st.IsDir() {
				if err := w.watcher.Add(event.Name); err != nil {
					slog.Warn("Failed to watch new day directory",
						logfields.Unit(unit),
						logfields.Error(err))
				}
			}
		}
		slog.Debug("Day directory change detected", logfields.Unit(unit), slog.String("op", event.Op.String()))
		w.mark("")
		return
	}

	slog.Debug("Source change detected",
		logfields.Unit(unit),
		logfields.Path(event.Name),
		slog.String("op", event.Op.String()))
	w.mark(unit)
}

// classify maps an event path to the day unit it belongs to. A structural
// change is one on a day directory itself rather than a file within it.
// Non-Go files inside a unit are ignored.
func (w *Watcher) classify(path string) (unit string, structural bool, ok bool) {
	rel, err := filepath.Rel(w.root, path)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return "", false, false
	}

	parts := strings.Split(rel, string(filepath.Separator))
	if !w.matcher.MatchName(parts[0]) {
		return "", false, false
	}
	if len(parts) == 1 {
		return parts[0], true, true
	}
	if filepath.Ext(parts[len(parts)-1]) != ".go" {
		return "", false, false
	}
	return parts[0], false, true
}

// mark records a pending rebuild. The empty string marks a full rebuild.
func (w *Watcher) mark(unit string) {
	w.mu.Lock()
	if unit == "" {
		w.pendingAll = true
	} else {
		w.pending[unit] = struct{}{}
	}
	w.mu.Unlock()

	select {
	case w.triggerChan <- struct{}{}:
	default:
		// Rebuild already pending
	}
}

// rebuildLoop debounces marks into rebuild jobs: each trigger resets the
// quiet-window timer, and the job is enqueued once the window passes without
// further changes.
func (w *Watcher) rebuildLoop(ctx context.Context) {
	var rebuildTimer *time.Timer

	for {
		select {
		case <-ctx.Done():
			if rebuildTimer != nil {
				rebuildTimer.Stop()
			}
			return
		case <-w.stopChan:
			if rebuildTimer != nil {
				rebuildTimer.Stop()
			}
			return
		case <-w.triggerChan:
			if rebuildTimer != nil {
				rebuildTimer.Stop()
			}
			rebuildTimer = time.AfterFunc(w.quiet, w.enqueueRebuild)
		}
	}
}

// enqueueRebuild drains the pending set into a single job.
func (w *Watcher) enqueueRebuild() {
	w.mu.Lock()
	all := w.pendingAll
	units := make([]string, 0, len(w.pending))
	for unit := range w.pending {
		units = append(units, unit)
	}
	w.pendingAll = false
	w.pending = make(map[string]struct{})
	w.mu.Unlock()

	if !all && len(units) == 0 {
		return
	}

	target := build.TargetAll
	if !all && len(units) == 1 {
		target = units[0]
	}

	job := queue.NewJob(target, build.TriggerWatch)
	if err := w.enqueuer.Enqueue(job); err != nil {
		slog.Error("Failed to enqueue watch rebuild",
			logfields.JobID(job.ID),
			slog.String("target", target),
			logfields.Error(err))
		return
	}
	slog.Info("Watch rebuild enqueued",
		logfields.JobID(job.ID),
		slog.String("target", target),
		logfields.Count(len(units)))
}
