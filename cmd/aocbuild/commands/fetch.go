package commands

import (
	"context"
	"fmt"
	"log/slog"

	"git.home.luguber.info/inful/aoc2020/internal/dayunit"
	"git.home.luguber.info/inful/aoc2020/internal/errors"
	"git.home.luguber.info/inful/aoc2020/internal/fetch"
	"git.home.luguber.info/inful/aoc2020/internal/logfields"
)

// FetchCmd implements the 'fetch' command.
type FetchCmd struct {
	Day   int  `arg:"" optional:"" help:"Day to fetch input for (1-25); omit to fetch all discovered units"`
	Force bool `help:"Re-download even when a cached input exists"`
}

func (f *FetchCmd) Run(_ *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}

	ctx := context.Background()
	fetcher := fetch.NewFetcher(cfg.Fetch)

	if f.Day != 0 {
		if f.Day < 1 || f.Day > 25 {
			return errors.ValidationFailed("day", "must be between 1 and 25")
		}
		result, err := fetcher.FetchInput(ctx, cfg.Root, f.Day, f.Force)
		if err != nil {
			return err
		}
		cacheTitle(ctx, fetcher, cfg.Root, f.Day)
		printFetchResult(result)
		return nil
	}

	targets, err := dayunit.Discover(cfg.Root, dayunit.NewMatcher(cfg.Discovery.MaxDay))
	if err != nil {
		return err
	}
	if len(targets) == 0 {
		fmt.Printf("No day units found under %s\n", cfg.Root)
		return nil
	}

	// Mirrors the build fan-out: one failed day never blocks the rest.
	var failed int
	for _, name := range targets.Names() {
		unit := targets[name]
		result, err := fetcher.FetchInput(ctx, cfg.Root, unit.Number(), f.Force)
		if err != nil {
			failed++
			fmt.Printf("FAIL  %-8s %v\n", unit.Name, err)
			continue
		}
		cacheTitle(ctx, fetcher, cfg.Root, unit.Number())
		printFetchResult(result)
	}
	if failed > 0 {
		return errors.New(errors.CategoryNetwork, errors.SeverityError,
			fmt.Sprintf("%d of %d inputs failed", failed, len(targets)))
	}
	return nil
}

// cacheTitle stores the day's published title for the solutions index.
// A missing title never fails the input fetch.
func cacheTitle(ctx context.Context, fetcher *fetch.Fetcher, root string, day int) {
	if _, err := fetcher.CacheTitle(ctx, root, day); err != nil {
		slog.Warn("Could not cache puzzle title", logfields.Day(day), logfields.Error(err))
	}
}

func printFetchResult(result *fetch.Result) {
	state := "downloaded"
	if result.Cached {
		state = "cached"
	}
	fmt.Printf("ok    day%02d    %s %s (%d bytes)\n", result.Day, state, result.Path, result.Bytes)
}
