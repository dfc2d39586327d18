package build

import (
	"time"
)

// TargetAll selects every discovered unit in one invocation.
const TargetAll = "all"

// Trigger identifies what initiated a build.
type Trigger string

const (
	TriggerManual   Trigger = "manual"
	TriggerWatch    Trigger = "watch"
	TriggerSchedule Trigger = "schedule"
)

// Status represents the outcome of building one day unit.
type Status string

const (
	StatusSuccess  Status = "success"
	StatusFailed   Status = "failed"
	StatusCanceled Status = "canceled"
)

// IsSuccess returns true if the unit build completed successfully.
func (s Status) IsSuccess() bool {
	return s == StatusSuccess
}

// UnitResult contains the outcome of building a single day unit.
type UnitResult struct {
	// Unit is the day-unit name, e.g. "day07".
	Unit string `json:"unit"`

	// Status indicates the unit outcome.
	Status Status `json:"status"`

	// Artifact is the path of the produced binary (empty on failure).
	Artifact string `json:"artifact,omitempty"`

	// Duration is the wall time the delegated build took.
	Duration time.Duration `json:"duration"`

	// Err is the delegated failure, unmodified; nil on success.
	Err error `json:"-"`
}

// Report aggregates the per-unit outcomes of one build invocation.
// Results are ordered by unit name regardless of execution order.
type Report struct {
	Results   []UnitResult  `json:"results"`
	StartTime time.Time     `json:"start_time"`
	Duration  time.Duration `json:"duration"`
}

// Result returns the outcome for a named unit.
func (r *Report) Result(unit string) (UnitResult, bool) {
	for _, res := range r.Results {
		if res.Unit == unit {
			return res, true
		}
	}
	return UnitResult{}, false
}

// Failed returns the results of units that did not build.
func (r *Report) Failed() []UnitResult {
	var failed []UnitResult
	for _, res := range r.Results {
		if !res.Status.IsSuccess() {
			failed = append(failed, res)
		}
	}
	return failed
}

// HasFailures reports whether any unit failed.
func (r *Report) HasFailures() bool {
	return len(r.Failed()) > 0
}
