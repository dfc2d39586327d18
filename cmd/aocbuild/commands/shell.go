package commands

import (
	"os"

	"git.home.luguber.info/inful/aoc2020/internal/devshell"
)

// ShellCmd implements the 'shell' command. It prints the development shell
// descriptor; provisioning the environment is left to outside tooling.
type ShellCmd struct{}

func (s *ShellCmd) Run(_ *Global, _ *CLI) error {
	data, err := devshell.Default().Render()
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}
