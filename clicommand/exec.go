package clicommand

import (
	"os"
	"runtime"

	"github.com/urfave/cli"

	"github.com/envrbw/envrbw/process"
)

const execHelpDescription = `Usage:

   envrbw exec [options] NAMESPACE PROG [ARGS...]

Description:
   Loads the variables stored in NAMESPACE and runs PROG with them injected
   into its environment. Stored variables win over inherited ones with the
   same name.

   By default the envrbw process is replaced by PROG, so signals and the
   exit code are PROG's own. With --spawn (always on platforms without
   execve) PROG runs as a child process instead, and envrbw exits with the
   child's exit code.

Examples:
   Running a deploy script with the ′production′ variables:

   $ envrbw exec production ./deploy.sh --canary

   The same, via the default command:

   $ envrbw production ./deploy.sh --canary`

type ExecConfig struct {
	Namespace string `cli:"arg:0" label:"namespace" validate:"required"`

	Spawn bool `cli:"spawn"`
	PTY   bool `cli:"pty"`

	GlobalConfig
}

var ExecCommand = cli.Command{
	Name:        "exec",
	Usage:       "Runs a command with a namespace's variables in its environment",
	Description: execHelpDescription,
	Flags: append(globalFlags(),
		cli.BoolFlag{
			Name:   "spawn",
			Usage:  "Run the command as a child process instead of replacing envrbw",
			EnvVar: "ENVRBW_SPAWN",
		},
		cli.BoolFlag{
			Name:   "pty",
			Usage:  "Run the command in a PTY (implies --spawn)",
			EnvVar: "ENVRBW_PTY",
		},
	),
	Action: ExecAction,
}

// ExecAction is exported because running a command is also the app's default
// action, when no subcommand is named.
func ExecAction(c *cli.Context) error {
	cfg := ExecConfig{}
	l, err := setupLoggerAndConfig(c, &cfg)
	if err != nil {
		return err
	}

	args := c.Args()
	if len(args) < 2 {
		return cli.NewExitError("A namespace and a command are required. See `envrbw exec --help`", 1)
	}
	prog, progArgs := args[1], args[2:]

	pairs, err := newSession(l, cfg.GlobalConfig).LoadPairs(cfg.Namespace)
	if err != nil {
		l.Fatal("%v", err)
	}

	l.Debug("Injecting %d variables from namespace %q", pairs.Length(), cfg.Namespace)

	if !cfg.Spawn && !cfg.PTY && runtime.GOOS != "windows" {
		// Does not return unless it fails.
		if err := process.Exec(pairs, prog, progArgs); err != nil {
			l.Fatal("%v", err)
		}
		return nil
	}

	p := process.New(l, process.Config{
		Path:   prog,
		Args:   progArgs,
		Env:    process.Inject(os.Environ(), pairs),
		PTY:    cfg.PTY,
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	})

	code, err := p.Run()
	if err != nil {
		l.Fatal("%v", err)
	}

	os.Exit(code)
	return nil
}
