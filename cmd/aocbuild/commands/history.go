package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"git.home.luguber.info/inful/aoc2020/internal/build"
	"git.home.luguber.info/inful/aoc2020/internal/history"
)

// HistoryCmd implements the 'history' command.
type HistoryCmd struct {
	Unit  string `arg:"" optional:"" help:"Show entries for this day unit only"`
	Limit int    `default:"20" help:"Maximum number of entries to show"`
}

func (h *HistoryCmd) Run(_ *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}

	// Stat before opening: NewStore would create an empty database where
	// none exists yet, which is the wrong side effect for a read command.
	path := cfg.HistoryPath()
	if _, err := os.Stat(path); err != nil {
		fmt.Println("No build history recorded yet")
		return nil
	}

	store, err := history.NewStore(path)
	if err != nil {
		return err
	}
	defer store.Close()

	entries, err := store.List(context.Background(), history.Filter{Unit: h.Unit, Limit: h.Limit})
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("No build history recorded yet")
		return nil
	}

	for _, e := range entries {
		printHistoryEntry(e)
	}
	return nil
}

func printHistoryEntry(e history.Entry) {
	state := "ok   "
	if !e.Status.IsSuccess() {
		state = "FAIL "
	}
	line := fmt.Sprintf("%s %s  %-8s %-8s %s",
		state,
		e.RecordedAt.Format(time.DateTime),
		e.Unit,
		e.Trigger,
		e.Duration.Truncate(time.Millisecond),
	)
	if e.Status == build.StatusCanceled {
		line += "  canceled"
	} else if e.Error != "" {
		line += "  " + e.Error
	}
	fmt.Println(line)
}
