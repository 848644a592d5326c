package clicommand

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/urfave/cli"
	"golang.org/x/term"

	"github.com/envrbw/envrbw/env"
)

const setHelpDescription = `Usage:

   envrbw set [options] NAMESPACE KEY [KEY...]

Description:
   Stores variables in NAMESPACE, creating the namespace entry if it does
   not exist yet.

   Each KEY may be given as KEY=value to set the value directly, or as a
   bare KEY to be prompted for the value. With --noecho the prompted input
   is not echoed back to the terminal.

Examples:
   Setting ′API_KEY′ and being prompted for ′DB_PASSWORD′:

   $ envrbw set production API_KEY=xyz DB_PASSWORD
   production.DB_PASSWORD:
   Added:
   + API_KEY
   + DB_PASSWORD`

type SetConfig struct {
	Namespace string `cli:"arg:0" label:"namespace" validate:"required"`

	NoEcho bool `cli:"noecho"`

	GlobalConfig
}

var SetCommand = cli.Command{
	Name:        "set",
	Usage:       "Stores variables in a namespace",
	Description: setHelpDescription,
	Flags: append(globalFlags(),
		cli.BoolFlag{
			Name:   "noecho",
			Usage:  "Don't echo prompted values back to the terminal",
			EnvVar: "ENVRBW_NOECHO",
		},
	),
	Action: setAction,
}

func setAction(c *cli.Context) error {
	cfg := SetConfig{}
	l, err := setupLoggerAndConfig(c, &cfg)
	if err != nil {
		return err
	}

	args := c.Args()
	if len(args) < 2 {
		return cli.NewExitError("A namespace and at least one key are required. See `envrbw set --help`", 1)
	}

	values := make(map[string]string)
	var prompts []string
	for _, arg := range args[1:] {
		if key, value, ok := env.Split(arg); ok {
			values[key] = value
			continue
		}
		prompts = append(prompts, arg)
	}

	if len(prompts) > 0 {
		prompted, err := promptValues(bufio.NewReader(os.Stdin), os.Stderr, cfg.Namespace, prompts, cfg.NoEcho)
		if err != nil {
			l.Fatal("Reading values: %v", err)
		}
		for key, value := range prompted {
			values[key] = value
		}
	}

	diff, err := newSession(l, cfg.GlobalConfig).Set(cfg.Namespace, values)
	if err != nil {
		l.Fatal("%v", err)
	}

	printDiff(c.App.Writer, diff)
	return nil
}

// promptValues asks for one value per key. All keys share the one reader so
// buffered input isn't lost between prompts.
func promptValues(in *bufio.Reader, out io.Writer, namespace string, keys []string, noecho bool) (map[string]string, error) {
	values := make(map[string]string, len(keys))

	for _, key := range keys {
		fmt.Fprintf(out, "%s.%s: ", namespace, key)

		if noecho && term.IsTerminal(int(os.Stdin.Fd())) {
			value, err := term.ReadPassword(int(os.Stdin.Fd()))
			fmt.Fprintln(out)
			if err != nil {
				return nil, fmt.Errorf("reading value for %s: %w", key, err)
			}
			values[key] = string(value)
			continue
		}

		line, err := in.ReadString('\n')
		if err != nil && (err != io.EOF || line == "") {
			return nil, fmt.Errorf("reading value for %s: %w", key, err)
		}
		values[key] = strings.TrimRight(line, "\r\n")
	}

	return values, nil
}

func printDiff(w io.Writer, diff env.Diff) {
	if len(diff.Added) > 0 {
		fmt.Fprintln(w, "Added:")
		for _, key := range sortedKeys(diff.Added) {
			fmt.Fprintf(w, "+ %s\n", key)
		}
	}
	if len(diff.Changed) > 0 {
		fmt.Fprintln(w, "Updated:")
		for _, key := range sortedKeys(diff.Changed) {
			fmt.Fprintf(w, "~ %s\n", key)
		}
	}
	if len(diff.Removed) > 0 {
		fmt.Fprintln(w, "Removed:")
		for _, key := range sortedKeys(diff.Removed) {
			fmt.Fprintf(w, "- %s\n", key)
		}
	}
	if diff.Empty() {
		fmt.Fprintln(w, "No variables added or updated.")
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
