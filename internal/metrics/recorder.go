package metrics

import "time"

// ResultLabel enumerates result categories for counters.
type ResultLabel string

const (
	ResultSuccess  ResultLabel = "success"
	ResultFailed   ResultLabel = "failed"
	ResultCanceled ResultLabel = "canceled"
)

// Recorder defines observability hooks for discovery, build, and fetch
// metrics. Implementations may forward to Prometheus, OpenTelemetry, etc.
// All methods must be safe for nil receivers when using the NoopRecorder
// (allowing optional injection).
type Recorder interface {
	ObserveDiscoveryDuration(d time.Duration, units int)
	ObserveUnitBuildDuration(unit string, d time.Duration, success bool)
	ObserveBuildDuration(d time.Duration)
	IncUnitBuildResult(success bool)
	IncBuildOutcome(outcome ResultLabel)
	SetQueueDepth(n int)
	SetBuildConcurrency(n int)
	IncFetchResult(success bool)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveDiscoveryDuration(time.Duration, int)          {}
func (NoopRecorder) ObserveUnitBuildDuration(string, time.Duration, bool) {}
func (NoopRecorder) ObserveBuildDuration(time.Duration)                   {}
func (NoopRecorder) IncUnitBuildResult(bool)                              {}
func (NoopRecorder) IncBuildOutcome(ResultLabel)                          {}
func (NoopRecorder) SetQueueDepth(int)                                    {}
func (NoopRecorder) SetBuildConcurrency(int)                              {}
func (NoopRecorder) IncFetchResult(bool)                                  {}
