package daemon

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os/exec"
	"time"

	"git.home.luguber.info/inful/aoc2020/internal/logfields"
	"git.home.luguber.info/inful/aoc2020/internal/version"
)

// HealthStatus represents the overall health of the daemon
type HealthStatus string

const (
	HealthStatusHealthy   HealthStatus = "healthy"
	HealthStatusDegraded  HealthStatus = "degraded"
	HealthStatusUnhealthy HealthStatus = "unhealthy"
)

// HealthCheck represents a single health check
type HealthCheck struct {
	Name        string        `json:"name"`
	Status      HealthStatus  `json:"status"`
	Message     string        `json:"message,omitempty"`
	Duration    time.Duration `json:"duration"`
	LastChecked time.Time     `json:"last_checked"`
}

// HealthResponse represents the complete health check response
type HealthResponse struct {
	Status    HealthStatus  `json:"status"`
	Timestamp time.Time     `json:"timestamp"`
	Uptime    string        `json:"uptime"`
	Version   string        `json:"version"`
	Checks    []HealthCheck `json:"checks"`
}

// PerformHealthChecks executes all health checks and returns the overall status
func (d *Daemon) PerformHealthChecks() *HealthResponse {
	checks := []HealthCheck{
		d.checkDaemonHealth(),
		d.checkBuildQueueHealth(),
		d.checkDiscoveryHealth(),
		d.checkToolchainHealth(),
	}

	overallStatus := HealthStatusHealthy
	for _, check := range checks {
		if worseThan(check.Status, overallStatus) {
			overallStatus = check.Status
		}
	}

	return &HealthResponse{
		Status:    overallStatus,
		Timestamp: time.Now(),
		Uptime:    time.Since(d.StartTime()).String(),
		Version:   version.Version,
		Checks:    checks,
	}
}

// worseThan orders health statuses so the aggregate reflects the worst check.
func worseThan(a, b HealthStatus) bool {
	rank := map[HealthStatus]int{
		HealthStatusHealthy:   0,
		HealthStatusDegraded:  1,
		HealthStatusUnhealthy: 2,
	}
	return rank[a] > rank[b]
}

// checkDaemonHealth verifies the daemon is in a healthy state
func (d *Daemon) checkDaemonHealth() HealthCheck {
	start := time.Now()

	status := d.GetStatus()
	check := HealthCheck{
		Name:        "daemon_status",
		LastChecked: time.Now(),
		Duration:    time.Since(start),
	}

	switch status {
	case StatusRunning:
		check.Status = HealthStatusHealthy
		check.Message = "Daemon is running normally"
	case StatusStarting:
		check.Status = HealthStatusDegraded
		check.Message = "Daemon is still starting up"
	case StatusStopping:
		check.Status = HealthStatusDegraded
		check.Message = "Daemon is shutting down"
	case StatusStopped:
		check.Status = HealthStatusUnhealthy
		check.Message = "Daemon is not running"
	case StatusError:
		check.Status = HealthStatusUnhealthy
		check.Message = "Daemon is in error state"
	default:
		check.Status = HealthStatusUnhealthy
		check.Message = "Daemon is in unknown state"
	}

	return check
}

// checkBuildQueueHealth verifies the build queue is functional
func (d *Daemon) checkBuildQueueHealth() HealthCheck {
	start := time.Now()

	check := HealthCheck{
		Name:        "build_queue",
		LastChecked: time.Now(),
		Duration:    time.Since(start),
	}

	if d.buildQueue == nil {
		check.Status = HealthStatusUnhealthy
		check.Message = "Build queue not initialized"
		return check
	}

	queueLength := d.buildQueue.Length()
	if queueLength >= d.cfg.Daemon.QueueSize {
		check.Status = HealthStatusDegraded
		check.Message = fmt.Sprintf("Build queue is full: %d jobs pending", queueLength)
	} else {
		check.Status = HealthStatusHealthy
		check.Message = fmt.Sprintf("Build queue is operating normally, %d jobs pending", queueLength)
	}

	return check
}

// checkDiscoveryHealth verifies unit discovery has produced a target set
func (d *Daemon) checkDiscoveryHealth() HealthCheck {
	start := time.Now()

	check := HealthCheck{
		Name:        "discovery",
		LastChecked: time.Now(),
		Duration:    time.Since(start),
	}

	targets, lastDiscovery := d.Targets()
	switch {
	case lastDiscovery == nil:
		check.Status = HealthStatusDegraded
		check.Message = "No discovery has run yet"
	case len(targets) == 0:
		check.Status = HealthStatusHealthy
		check.Message = "No build units in repository root"
	default:
		check.Status = HealthStatusHealthy
		check.Message = fmt.Sprintf("%d build units discovered", len(targets))
	}

	return check
}

// checkToolchainHealth verifies the configured go binary is resolvable
func (d *Daemon) checkToolchainHealth() HealthCheck {
	start := time.Now()

	check := HealthCheck{
		Name:        "toolchain",
		LastChecked: time.Now(),
		Duration:    time.Since(start),
	}

	path, err := exec.LookPath(d.cfg.Build.GoBinary)
	if err != nil {
		check.Status = HealthStatusUnhealthy
		check.Message = fmt.Sprintf("Go toolchain %q not found in PATH", d.cfg.Build.GoBinary)
		return check
	}

	check.Status = HealthStatusHealthy
	check.Message = fmt.Sprintf("Go toolchain available at %s", path)
	return check
}

// HealthHandler serves health check information as JSON. Degraded states
// still answer 200 so orchestrators do not restart a daemon that is merely
// busy; only unhealthy maps to 503.
func (d *Daemon) HealthHandler(w http.ResponseWriter, _ *http.Request) {
	health := d.PerformHealthChecks()

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")

	switch health.Status {
	case HealthStatusHealthy, HealthStatusDegraded:
		w.WriteHeader(http.StatusOK)
	case HealthStatusUnhealthy:
		w.WriteHeader(http.StatusServiceUnavailable)
	}

	if err := json.NewEncoder(w).Encode(health); err != nil {
		slog.Error("Failed to encode health response", logfields.Error(err))
	}
}
