package build

import (
	"context"
	"log/slog"
	"time"

	"git.home.luguber.info/inful/aoc2020/internal/dayunit"
	"git.home.luguber.info/inful/aoc2020/internal/errors"
	"git.home.luguber.info/inful/aoc2020/internal/logfields"
	"git.home.luguber.info/inful/aoc2020/internal/metrics"
)

// Orchestrator executes build actions for discovered day units.
type Orchestrator struct {
	builder     Builder
	concurrency int
	recorder    metrics.Recorder
	logger      *slog.Logger
}

// NewOrchestrator wires a Builder into the fan-out machinery.
// A nil recorder or logger falls back to noop/default.
func NewOrchestrator(builder Builder, concurrency int, recorder metrics.Recorder, logger *slog.Logger) *Orchestrator {
	if concurrency < 1 {
		concurrency = 1
	}
	if recorder == nil {
		recorder = metrics.NoopRecorder{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{
		builder:     builder,
		concurrency: concurrency,
		recorder:    recorder,
		logger:      logger,
	}
}

// Build invokes the build action for the named target, or for every target
// when name is "all". Requesting a name that was never discovered fails with
// a not-found error and performs no build action.
func (o *Orchestrator) Build(ctx context.Context, targets dayunit.TargetMap, name string) (*Report, error) {
	if name == TargetAll {
		return o.BuildAll(ctx, targets), nil
	}
	return o.BuildUnit(ctx, targets, name)
}

// BuildUnit builds exactly one named target.
func (o *Orchestrator) BuildUnit(ctx context.Context, targets dayunit.TargetMap, name string) (*Report, error) {
	unit, ok := targets.Get(name)
	if !ok {
		return nil, errors.UnitNotFound(name)
	}

	start := time.Now()
	result := o.buildOne(ctx, unit)
	report := &Report{
		Results:   []UnitResult{result},
		StartTime: start,
		Duration:  time.Since(start),
	}
	o.finish(report)
	return report, nil
}

// BuildAll invokes every entry's build action independently and collects the
// per-unit outcomes in name order. One unit's failure never short-circuits
// the siblings; the report carries every outcome.
func (o *Orchestrator) BuildAll(ctx context.Context, targets dayunit.TargetMap) *Report {
	start := time.Now()
	names := targets.Names()

	o.recorder.SetBuildConcurrency(o.concurrency)

	results := runOrdered(names, o.concurrency, func(name string) (UnitResult, error) {
		unit, _ := targets.Get(name)
		return o.buildOne(ctx, unit), nil
	})

	report := &Report{
		Results:   make([]UnitResult, 0, len(results)),
		StartTime: start,
	}
	for _, r := range results {
		report.Results = append(report.Results, r.Value)
	}
	report.Duration = time.Since(start)
	o.finish(report)
	return report
}

// buildOne runs a single delegated build and classifies its outcome.
func (o *Orchestrator) buildOne(ctx context.Context, unit dayunit.DayUnit) UnitResult {
	o.logger.Debug("Building unit", logfields.Unit(unit.Name), logfields.Path(unit.Path))

	start := time.Now()
	artifact, err := o.builder.Build(ctx, unit)
	elapsed := time.Since(start)

	result := UnitResult{
		Unit:     unit.Name,
		Duration: elapsed,
	}
	switch {
	case err == nil:
		result.Status = StatusSuccess
		result.Artifact = artifact
		o.logger.Info("Unit built",
			logfields.Unit(unit.Name),
			logfields.Artifact(artifact),
			logfields.DurationMS(float64(elapsed.Milliseconds())))
	case ctx.Err() != nil:
		result.Status = StatusCanceled
		result.Err = err
		o.logger.Warn("Unit build canceled", logfields.Unit(unit.Name))
	default:
		result.Status = StatusFailed
		result.Err = err
		o.logger.Error("Unit build failed",
			logfields.Unit(unit.Name),
			logfields.Error(err))
	}

	o.recorder.ObserveUnitBuildDuration(unit.Name, elapsed, result.Status.IsSuccess())
	o.recorder.IncUnitBuildResult(result.Status.IsSuccess())
	return result
}

func (o *Orchestrator) finish(report *Report) {
	o.recorder.ObserveBuildDuration(report.Duration)
	if report.HasFailures() {
		o.recorder.IncBuildOutcome(metrics.ResultFailed)
		return
	}
	o.recorder.IncBuildOutcome(metrics.ResultSuccess)
}
