// Package process runs the target command with secrets injected into its
// environment, either by replacing the current process or by spawning a
// child and relaying its exit status.
package process

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"syscall"

	"github.com/envrbw/envrbw/env"
	"github.com/envrbw/envrbw/logger"
)

// Inject merges pairs over a base environment (usually os.Environ()).
// Injected pairs win on collision; everything else is inherited untouched.
func Inject(base []string, pairs *env.Environment) []string {
	merged := env.FromSlice(base)
	merged.Merge(pairs)
	return merged.ToSlice()
}

type Config struct {
	// Path is the command to run, resolved on PATH by exec.Command.
	Path string
	Args []string

	// Env is the complete child environment, not an addition to it.
	Env []string

	// PTY runs the child in a pseudo-terminal.
	PTY bool

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Process is a child process being run as a spawned subprocess. On platforms
// with execve the exec path in exec_unix.go is preferred; this is the
// fallback, and the only option when a PTY is wanted.
type Process struct {
	logger  logger.Logger
	conf    Config
	command *exec.Cmd
}

func New(l logger.Logger, c Config) *Process {
	return &Process{logger: l, conf: c}
}

// Run starts the child, forwards interrupt and termination signals to it,
// waits for it to finish, and returns its exit code. A non-zero exit from
// the child is a result, not an error.
func (p *Process) Run() (int, error) {
	p.command = exec.Command(p.conf.Path, p.conf.Args...)
	p.command.Env = p.conf.Env

	if p.conf.PTY {
		f, err := startPTY(p.command)
		if err != nil {
			return -1, fmt.Errorf("starting pty: %w", err)
		}
		defer f.Close() //nolint:errcheck // pty is torn down with the child

		if p.conf.Stdin != nil {
			go io.Copy(f, p.conf.Stdin) //nolint:errcheck // ends with the pty
		}
		go io.Copy(p.conf.Stdout, f) //nolint:errcheck // EIO on close is expected
	} else {
		p.command.Stdin = p.conf.Stdin
		p.command.Stdout = p.conf.Stdout
		p.command.Stderr = p.conf.Stderr

		if err := p.command.Start(); err != nil {
			return -1, fmt.Errorf("starting %s: %w", p.conf.Path, err)
		}
	}

	p.logger.Debug("[Process] Running %s with PID: %d", p.conf.Path, p.command.Process.Pid)

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(signals)

	go func() {
		for sig := range signals {
			p.logger.Debug("[Process] Forwarding signal %s to PID: %d", sig, p.command.Process.Pid)
			p.command.Process.Signal(sig) //nolint:errcheck // the child may already be gone
		}
	}()

	err := p.command.Wait()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode(), nil
		}
		return -1, err
	}

	return 0, nil
}
