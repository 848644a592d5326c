package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli"

	"github.com/envrbw/envrbw/clicommand"
	"github.com/envrbw/envrbw/version"
)

const appHelpTemplate = `Usage:

  {{.Name}} <command> [options...]

Available commands are:

  {{range .Commands}}{{.Name}}{{with .ShortName}}, {{.}}{{end}}{{ "\t" }}{{.Usage}}
  {{end}}
Running {{.Name}} NAMESPACE PROG [ARGS...] is a shorthand for the exec
command.

Use "{{.Name}} <command> --help" for more information about a command.
`

func main() {
	cli.AppHelpTemplate = appHelpTemplate

	app := cli.NewApp()
	app.Name = "envrbw"
	app.Version = version.FullVersion()
	app.Usage = "Runs commands with secrets from your password manager in the environment"
	app.Commands = clicommand.EnvrbwCommands

	// A bare `envrbw NAMESPACE PROG...` is the exec command.
	app.Flags = clicommand.ExecCommand.Flags
	app.Action = func(c *cli.Context) error {
		if len(c.Args()) == 0 {
			return cli.ShowAppHelp(c)
		}
		return clicommand.ExecAction(c)
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}
