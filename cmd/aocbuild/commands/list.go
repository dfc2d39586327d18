package commands

import (
	"fmt"

	"git.home.luguber.info/inful/aoc2020/internal/dayunit"
)

// ListCmd implements the 'list' command.
type ListCmd struct{}

func (l *ListCmd) Run(_ *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}

	targets, err := dayunit.Discover(cfg.Root, dayunit.NewMatcher(cfg.Discovery.MaxDay))
	if err != nil {
		return err
	}
	if len(targets) == 0 {
		fmt.Printf("No day units found under %s\n", cfg.Root)
		return nil
	}

	for _, name := range targets.Names() {
		unit := targets[name]
		fmt.Printf("%-8s day %2d  %s\n", unit.Name, unit.Number(), unit.Path)
	}
	fmt.Printf("%d units\n", len(targets))
	return nil
}
