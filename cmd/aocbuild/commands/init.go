package commands

import (
	"fmt"

	"git.home.luguber.info/inful/aoc2020/internal/config"
)

// InitCmd implements the 'init' command.
type InitCmd struct {
	Force bool `help:"Overwrite an existing configuration file"`
}

func (i *InitCmd) Run(_ *Global, root *CLI) error {
	path := root.Config
	if err := config.Init(path, i.Force); err != nil {
		return err
	}

	fmt.Printf("Created %s\n", path)
	fmt.Println("")
	fmt.Println("Next steps:")
	fmt.Println("  1. Set AOC_SESSION in your environment or a .env file")
	fmt.Println("  2. Run 'aocbuild fetch' to download puzzle inputs")
	fmt.Println("  3. Run 'aocbuild build' to compile every day unit")
	return nil
}
