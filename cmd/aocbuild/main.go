// aocbuild discovers per-day Advent of Code units in a repository and
// builds them, on demand or as a long-running daemon.
package main

import (
	"log/slog"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/aoc2020/cmd/aocbuild/commands"
	"git.home.luguber.info/inful/aoc2020/internal/errors"
	"git.home.luguber.info/inful/aoc2020/internal/version"
)

func main() {
	cli := &commands.CLI{}
	ctx := kong.Parse(cli,
		kong.Name("aocbuild"),
		kong.Description("Build runner for an Advent of Code 2020 repository"),
		kong.UsageOnError(),
		kong.Vars{"version": version.Version},
	)

	if err := ctx.Run(&commands.Global{Logger: slog.Default()}, cli); err != nil {
		adapter := errors.NewCLIErrorAdapter(cli.Verbose, slog.Default())
		adapter.HandleError(err)
	}
}
