// Package commands defines the aocbuild CLI surface. Each subcommand is a
// kong command struct whose Run method receives the shared globals.
package commands

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/aoc2020/internal/config"
)

// Global context passed to subcommands if we need to share global state later.
type Global struct {
	Logger *slog.Logger
}

const defaultConfigPath = "aocbuild.yaml"

// CLI definition & global flags - used by commands that need access to root config.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"aocbuild.yaml"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Build      BuildCmd   `cmd:"" help:"Build one day unit, or all of them"`
	List       ListCmd    `cmd:"" help:"List discovered day units"`
	Run        RunCmd     `cmd:"" help:"Run a built day program against its puzzle input"`
	Fetch      FetchCmd   `cmd:"" help:"Download puzzle inputs from Advent of Code"`
	Status     StatusCmd  `cmd:"" help:"Show repository and artifact status"`
	History    HistoryCmd `cmd:"" help:"List recorded build results"`
	Index      IndexCmd   `cmd:"" help:"Regenerate the solutions index from day notes"`
	Shell      ShellCmd   `cmd:"" help:"Describe the development shell toolchain"`
	Init       InitCmd    `cmd:"" help:"Initialize a new configuration file"`
	Daemon     DaemonCmd  `cmd:"" help:"Run the build daemon with watch, schedule and HTTP endpoints"`
	VersionCmd VersionCmd `cmd:"" name:"version" help:"Show detailed version information"`
}

// AfterApply runs after flag parsing; set up logging once so config loading
// itself logs consistently. Commands re-apply the configured level after the
// config file is read.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

// loadConfig resolves the configuration for a command invocation. The default
// path is allowed to be absent; an explicitly flagged path is not.
func loadConfig(root *CLI) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if root.Config == defaultConfigPath {
		cfg, err = config.LoadOrDefault(root.Config)
	} else {
		cfg, err = config.Load(root.Config)
	}
	if err != nil {
		return nil, err
	}

	configureLogging(cfg, root.Verbose)
	return cfg, nil
}

// configureLogging applies the configured level and format. The --verbose
// flag wins over the config file.
func configureLogging(cfg *config.Config, verbose bool) {
	level := slogLevel(cfg.Logging.Level)
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Logging.Format == config.LogFormatJSON {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
}

func slogLevel(level config.LogLevel) slog.Level {
	switch level {
	case config.LogLevelDebug:
		return slog.LevelDebug
	case config.LogLevelWarn:
		return slog.LevelWarn
	case config.LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
