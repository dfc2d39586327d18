package commands

import (
	"context"
	"os/signal"
	"syscall"

	"git.home.luguber.info/inful/aoc2020/internal/daemon"
)

// DaemonCmd implements the 'daemon' command.
type DaemonCmd struct{}

func (c *DaemonCmd) Run(_ *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	d, err := daemon.New(cfg)
	if err != nil {
		return err
	}
	// Start blocks until the context is canceled and runs shutdown itself.
	return d.Start(ctx)
}
