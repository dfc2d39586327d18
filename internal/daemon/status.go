package daemon

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"git.home.luguber.info/inful/aoc2020/internal/build/queue"
	"git.home.luguber.info/inful/aoc2020/internal/logfields"
	"git.home.luguber.info/inful/aoc2020/internal/version"
)

// recentJobLimit caps how many finished jobs the status endpoint reports.
const recentJobLimit = 10

// StatusResponse is the /status payload.
type StatusResponse struct {
	Status        Status            `json:"status"`
	Version       string            `json:"version"`
	StartTime     time.Time         `json:"start_time"`
	Uptime        string            `json:"uptime"`
	Root          string            `json:"root"`
	Repo          *RepoStatus       `json:"repo,omitempty"`
	Units         int               `json:"units"`
	LastDiscovery *time.Time        `json:"last_discovery,omitempty"`
	QueueLength   int               `json:"queue_length"`
	ActiveJobs    []*queue.BuildJob `json:"active_jobs"`
	RecentJobs    []*queue.BuildJob `json:"recent_jobs"`
}

// RepoStatus summarizes the repository head, when the root is a git checkout.
type RepoStatus struct {
	Branch string `json:"branch,omitempty"`
	Commit string `json:"commit,omitempty"`
	Dirty  bool   `json:"dirty"`
}

// TargetInfo describes one discovered build unit.
type TargetInfo struct {
	Name string `json:"name"`
	Day  int    `json:"day"`
	Path string `json:"path"`
}

// TargetsResponse is the /targets payload.
type TargetsResponse struct {
	Root          string       `json:"root"`
	Units         []TargetInfo `json:"units"`
	LastDiscovery *time.Time   `json:"last_discovery,omitempty"`
}

// GenerateStatus collects the current daemon state.
func (d *Daemon) GenerateStatus() *StatusResponse {
	targets, lastDiscovery := d.Targets()

	status := &StatusResponse{
		Status:        d.GetStatus(),
		Version:       version.Version,
		StartTime:     d.StartTime(),
		Uptime:        time.Since(d.StartTime()).String(),
		Root:          d.cfg.Root,
		Units:         len(targets),
		LastDiscovery: lastDiscovery,
		QueueLength:   d.buildQueue.Length(),
		ActiveJobs:    d.buildQueue.ActiveJobs(),
		RecentJobs:    recentJobs(d.buildQueue.History(), recentJobLimit),
	}

	if info := d.RepoInfo(); info != nil {
		status.Repo = &RepoStatus{
			Branch: info.Branch,
			Commit: info.Short(),
			Dirty:  info.Dirty,
		}
	}

	return status
}

// recentJobs returns up to limit jobs, newest first. The queue keeps its
// history oldest first.
func recentJobs(history []*queue.BuildJob, limit int) []*queue.BuildJob {
	recent := make([]*queue.BuildJob, 0, min(limit, len(history)))
	for i := len(history) - 1; i >= 0 && len(recent) < limit; i-- {
		recent = append(recent, history[i])
	}
	return recent
}

// StatusHandler serves the daemon status as JSON.
func (d *Daemon) StatusHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(d.GenerateStatus()); err != nil {
		slog.Error("Failed to encode status response", logfields.Error(err))
	}
}

// TargetsHandler serves the most recent discovery snapshot as JSON.
func (d *Daemon) TargetsHandler(w http.ResponseWriter, _ *http.Request) {
	targets, lastDiscovery := d.Targets()

	response := &TargetsResponse{
		Root:          d.cfg.Root,
		Units:         make([]TargetInfo, 0, len(targets)),
		LastDiscovery: lastDiscovery,
	}
	for _, name := range targets.Names() {
		unit := targets[name]
		response.Units = append(response.Units, TargetInfo{
			Name: unit.Name,
			Day:  unit.Number(),
			Path: unit.Path,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		slog.Error("Failed to encode targets response", logfields.Error(err))
	}
}
