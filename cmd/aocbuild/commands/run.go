package commands

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"git.home.luguber.info/inful/aoc2020/internal/build"
	"git.home.luguber.info/inful/aoc2020/internal/dayunit"
	"git.home.luguber.info/inful/aoc2020/internal/errors"
	"git.home.luguber.info/inful/aoc2020/internal/fetch"
	"git.home.luguber.info/inful/aoc2020/internal/workspace"
)

// RunCmd implements the 'run' command.
type RunCmd struct {
	Unit  string `arg:"" help:"Day unit to run (day01..day25)"`
	Input string `help:"Read puzzle input from this file instead of the unit's input/puzzle.txt" type:"existingfile"`
}

func (r *RunCmd) Run(_ *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}

	targets, err := dayunit.Discover(cfg.Root, dayunit.NewMatcher(cfg.Discovery.MaxDay))
	if err != nil {
		return err
	}
	unit, ok := targets.Get(r.Unit)
	if !ok {
		return errors.UnitNotFound(r.Unit)
	}

	ws := workspace.NewPersistentManager(cfg.Root, cfg.Build.ArtifactsDir)
	artifact := ws.ArtifactPath(unit.Name)
	if _, err := os.Stat(artifact); err != nil {
		fmt.Printf("Building %s\n", unit.Name)
		builder := build.NewGoBuilder(cfg.Root, cfg.Build.ArtifactsDir, cfg.Build.GoBinary, cfg.Build.TimeoutDuration())
		artifact, err = builder.Build(context.Background(), unit)
		if err != nil {
			return err
		}
	}

	in, err := r.openInput(unit)
	if err != nil {
		return err
	}
	defer in.Close()

	// #nosec G204 -- the artifact path is derived from the discovery pattern
	cmd := exec.Command(artifact)
	cmd.Stdin = in
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if stderrors.As(err, &exitErr) {
			// Mirror the unit program's exit code rather than remapping it.
			os.Exit(exitErr.ExitCode())
		}
		return errors.Wrap(err, errors.CategoryIO, errors.SeverityError,
			fmt.Sprintf("failed to run %s", artifact))
	}
	return nil
}

func (r *RunCmd) openInput(unit dayunit.DayUnit) (*os.File, error) {
	path := r.Input
	if path == "" {
		path = filepath.Join(unit.Path, filepath.FromSlash(fetch.InputRelPath))
	}

	in, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) && r.Input == "" {
			return nil, errors.New(errors.CategoryIO, errors.SeverityError,
				fmt.Sprintf("no puzzle input for %s; run 'aocbuild fetch %d' first", unit.Name, unit.Number()))
		}
		return nil, errors.Wrap(err, errors.CategoryIO, errors.SeverityError, "open puzzle input")
	}
	return in, nil
}
