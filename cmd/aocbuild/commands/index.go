package commands

import (
	"fmt"
	"path/filepath"

	"git.home.luguber.info/inful/aoc2020/internal/dayunit"
	"git.home.luguber.info/inful/aoc2020/internal/fetch"
	"git.home.luguber.info/inful/aoc2020/internal/notes"
)

// IndexCmd implements the 'index' command.
type IndexCmd struct {
	Output string `short:"o" help:"Write the index to this path instead of <root>/SOLUTIONS.md"`
}

func (i *IndexCmd) Run(_ *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}

	targets, err := dayunit.Discover(cfg.Root, dayunit.NewMatcher(cfg.Discovery.MaxDay))
	if err != nil {
		return err
	}

	units := make([]dayunit.DayUnit, 0, len(targets))
	for _, name := range targets.Names() {
		units = append(units, targets[name])
	}
	entries := notes.CollectEntries(units)

	// Units without notes still get their published title when a fetch
	// cached one.
	for idx := range entries {
		if entries[idx].Title != "" {
			continue
		}
		if title, ok := fetch.CachedTitle(cfg.Root, entries[idx].Day); ok {
			entries[idx].Title = title
		}
	}

	path := i.Output
	if path == "" {
		path = filepath.Join(cfg.Root, notes.IndexFileName)
	}
	if err := notes.WriteIndex(path, entries); err != nil {
		return err
	}

	fmt.Printf("Wrote %s with %d entries\n", path, len(entries))
	return nil
}
