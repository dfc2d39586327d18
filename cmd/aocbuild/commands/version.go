package commands

import (
	"fmt"
	"runtime"

	"git.home.luguber.info/inful/aoc2020/internal/version"
)

// VersionCmd implements the 'version' command.
type VersionCmd struct{}

func (v *VersionCmd) Run(_ *Global, _ *CLI) error {
	fmt.Printf("aocbuild %s\n", version.Version)
	fmt.Printf("  commit:  %s\n", version.GitCommit)
	fmt.Printf("  built:   %s\n", version.BuildTime)
	fmt.Printf("  runtime: %s\n", runtime.Version())
	return nil
}
