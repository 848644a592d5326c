package clicommand

import "github.com/urfave/cli"

// EnvrbwCommands is the top-level command set the binary exposes.
var EnvrbwCommands = []cli.Command{
	ExecCommand,
	SetCommand,
	UnsetCommand,
	ListCommand,
}
