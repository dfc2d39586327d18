package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/aoc2020/internal/build"
	"git.home.luguber.info/inful/aoc2020/internal/config"
	"git.home.luguber.info/inful/aoc2020/internal/dayunit"
	"git.home.luguber.info/inful/aoc2020/internal/errors"
	"git.home.luguber.info/inful/aoc2020/internal/events"
	"git.home.luguber.info/inful/aoc2020/internal/history"
	"git.home.luguber.info/inful/aoc2020/internal/logfields"
	"git.home.luguber.info/inful/aoc2020/internal/metrics"
	"git.home.luguber.info/inful/aoc2020/internal/workspace"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Target    string `arg:"" optional:"" default:"all" help:"Day unit to build (day01..day25) or 'all'"`
	Ephemeral bool   `help:"Build into a throwaway temp directory instead of the configured artifacts dir"`
}

func (b *BuildCmd) Run(_ *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}

	ctx := context.Background()
	targets, err := dayunit.Discover(cfg.Root, dayunit.NewMatcher(cfg.Discovery.MaxDay))
	if err != nil {
		return err
	}
	fmt.Printf("Discovered %d build units under %s\n", len(targets), cfg.Root)

	ws := buildWorkspace(cfg, b.Ephemeral)
	if err := ws.Create(); err != nil {
		return err
	}
	if b.Ephemeral {
		defer func() {
			if err := ws.Cleanup(); err != nil {
				slog.Warn("Failed to clean up artifacts directory", logfields.Error(err))
			}
		}()
	}

	builder := build.NewGoBuilder(cfg.Root, ws.GetPath(), cfg.Build.GoBinary, cfg.Build.TimeoutDuration())
	orchestrator := build.NewOrchestrator(builder, cfg.Build.Concurrency, metrics.NoopRecorder{}, slog.Default())

	report, err := orchestrator.Build(ctx, targets, b.Target)
	if err != nil {
		return err
	}

	printReport(report)
	jobID := uuid.NewString()
	recordReport(ctx, cfg, jobID, report)
	publishReport(ctx, cfg, jobID, b.Target, report)

	if failed := report.Failed(); len(failed) > 0 {
		return errors.New(errors.CategoryBuild, errors.SeverityError,
			fmt.Sprintf("%d of %d units failed", len(failed), len(report.Results)))
	}
	return nil
}

func buildWorkspace(cfg *config.Config, ephemeral bool) *workspace.Manager {
	if ephemeral {
		return workspace.NewEphemeralManager("")
	}
	return workspace.NewPersistentManager(cfg.Root, cfg.Build.ArtifactsDir)
}

func printReport(report *build.Report) {
	for _, result := range report.Results {
		switch result.Status {
		case build.StatusSuccess:
			fmt.Printf("ok    %-8s %s (%s)\n", result.Unit, result.Artifact, result.Duration.Truncate(time.Millisecond))
		case build.StatusCanceled:
			fmt.Printf("skip  %-8s canceled\n", result.Unit)
		default:
			fmt.Printf("FAIL  %-8s %v\n", result.Unit, result.Err)
		}
	}
	fmt.Printf("Built %d units in %s\n", len(report.Results), report.Duration.Truncate(time.Millisecond))
}

// recordReport appends per-unit results to the history store when enabled.
// History failures degrade to warnings so they never fail a finished build.
func recordReport(ctx context.Context, cfg *config.Config, jobID string, report *build.Report) {
	if !cfg.History.Enabled {
		return
	}
	store, err := history.NewStore(cfg.HistoryPath())
	if err != nil {
		slog.Warn("Failed to open history store", logfields.Error(err))
		return
	}
	defer func() {
		if err := store.Close(); err != nil {
			slog.Warn("Failed to close history store", logfields.Error(err))
		}
	}()

	if err := store.RecordReport(ctx, jobID, build.TriggerManual, report); err != nil {
		slog.Warn("Failed to record build history", logfields.Error(err))
	}
}

// publishReport emits a build event when the publisher is enabled. An
// unreachable broker is a warning, not a build failure.
func publishReport(ctx context.Context, cfg *config.Config, jobID, target string, report *build.Report) {
	if !cfg.Events.Enabled {
		return
	}
	publisher, err := events.NewPublisher(cfg.Events)
	if err != nil {
		slog.Warn("Failed to connect event publisher", logfields.Error(err))
		return
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			slog.Warn("Failed to close event publisher", logfields.Error(err))
		}
	}()

	if err := publisher.PublishReport(ctx, jobID, target, build.TriggerManual, report); err != nil {
		slog.Warn("Failed to publish build event", logfields.Error(err))
	}
}
