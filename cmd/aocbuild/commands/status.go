package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/aoc2020/internal/dayunit"
	"git.home.luguber.info/inful/aoc2020/internal/fetch"
	"git.home.luguber.info/inful/aoc2020/internal/gitinfo"
	"git.home.luguber.info/inful/aoc2020/internal/version"
	"git.home.luguber.info/inful/aoc2020/internal/workspace"
)

// StatusCmd implements the 'status' command.
type StatusCmd struct{}

func (s *StatusCmd) Run(_ *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}

	fmt.Printf("aocbuild %s\n", version.Version)
	fmt.Printf("Root: %s\n", cfg.Root)
	if info, err := gitinfo.Read(cfg.Root); err == nil {
		fmt.Printf("Repo: %s\n", describeRepo(info))
	}

	targets, err := dayunit.Discover(cfg.Root, dayunit.NewMatcher(cfg.Discovery.MaxDay))
	if err != nil {
		return err
	}
	if len(targets) == 0 {
		fmt.Println("No day units found")
		return nil
	}

	ws := workspace.NewPersistentManager(cfg.Root, cfg.Build.ArtifactsDir)
	var built, inputs int
	for _, name := range targets.Names() {
		unit := targets[name]

		artifact := "missing"
		if _, err := os.Stat(ws.ArtifactPath(unit.Name)); err == nil {
			artifact = "built"
			built++
		}

		input := "no input"
		inputPath := filepath.Join(unit.Path, filepath.FromSlash(fetch.InputRelPath))
		if info, err := os.Stat(inputPath); err == nil && info.Size() > 0 {
			input = "input ok"
			inputs++
		}

		fmt.Printf("%-8s %-8s %s\n", unit.Name, artifact, input)
	}
	fmt.Printf("%d units, %d built, %d with input\n", len(targets), built, inputs)
	return nil
}

func describeRepo(info *gitinfo.Info) string {
	desc := info.Short()
	if info.Branch != "" {
		desc = info.Branch + "@" + desc
	}
	if info.Dirty {
		desc += " (dirty)"
	}
	return desc
}
