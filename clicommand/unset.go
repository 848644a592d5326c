package clicommand

import (
	"github.com/urfave/cli"
)

const unsetHelpDescription = `Usage:

   envrbw unset [options] NAMESPACE KEY [KEY...]

Description:
   Removes variables from NAMESPACE. Keys that aren't stored are skipped
   with a warning; with --strict a missing key aborts the whole operation
   and nothing is written.

Examples:
   Removing ′API_KEY′ from the ′production′ namespace:

   $ envrbw unset production API_KEY
   Removed:
   - API_KEY`

type UnsetConfig struct {
	Namespace string `cli:"arg:0" label:"namespace" validate:"required"`

	Strict bool `cli:"strict"`

	GlobalConfig
}

var UnsetCommand = cli.Command{
	Name:        "unset",
	Usage:       "Removes variables from a namespace",
	Description: unsetHelpDescription,
	Flags: append(globalFlags(),
		cli.BoolFlag{
			Name:   "strict",
			Usage:  "Fail if any of the keys isn't stored in the namespace",
			EnvVar: "ENVRBW_STRICT",
		},
	),
	Action: unsetAction,
}

func unsetAction(c *cli.Context) error {
	cfg := UnsetConfig{}
	l, err := setupLoggerAndConfig(c, &cfg)
	if err != nil {
		return err
	}

	args := c.Args()
	if len(args) < 2 {
		return cli.NewExitError("A namespace and at least one key are required. See `envrbw unset --help`", 1)
	}
	keys := args[1:]

	diff, err := newSession(l, cfg.GlobalConfig).Unset(cfg.Namespace, keys, cfg.Strict)
	if err != nil {
		l.Fatal("%v", err)
	}

	if !cfg.Strict {
		for _, key := range keys {
			if _, ok := diff.Removed[key]; !ok {
				l.Warn("%s is not stored in namespace %q, skipping", key, cfg.Namespace)
			}
		}
	}

	printDiff(c.App.Writer, diff)
	return nil
}
