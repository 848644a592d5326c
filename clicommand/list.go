package clicommand

import (
	"fmt"

	"github.com/urfave/cli"
)

const listHelpDescription = `Usage:

   envrbw list [options] [NAMESPACE]

Description:
   Without a namespace, lists the namespaces in the folder. With one, lists
   the keys stored in that namespace; --show-value prints the values too.`

type ListConfig struct {
	Namespace string `cli:"arg:0"`

	ShowValue bool `cli:"show-value"`

	GlobalConfig
}

var ListCommand = cli.Command{
	Name:        "list",
	Usage:       "Lists namespaces, or the variables in one namespace",
	Description: listHelpDescription,
	Flags: append(globalFlags(),
		cli.BoolFlag{
			Name:   "show-value",
			Usage:  "Show the stored values, not just the keys",
			EnvVar: "ENVRBW_SHOW_VALUE",
		},
	),
	Action: listAction,
}

func listAction(c *cli.Context) error {
	cfg := ListConfig{}
	l, err := setupLoggerAndConfig(c, &cfg)
	if err != nil {
		return err
	}

	session := newSession(l, cfg.GlobalConfig)

	if cfg.Namespace == "" {
		namespaces, err := session.ListNamespaces()
		if err != nil {
			l.Fatal("%v", err)
		}
		for _, namespace := range namespaces {
			fmt.Fprintln(c.App.Writer, namespace)
		}
		return nil
	}

	pairs, err := session.LoadPairs(cfg.Namespace)
	if err != nil {
		l.Fatal("%v", err)
	}

	for _, key := range pairs.Keys() {
		if cfg.ShowValue {
			value, _ := pairs.Get(key)
			fmt.Fprintf(c.App.Writer, "%s=%s\n", key, value)
		} else {
			fmt.Fprintln(c.App.Writer, key)
		}
	}

	return nil
}
