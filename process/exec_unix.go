//go:build !windows

package process

import (
	"fmt"
	"os"
	"os/exec"

	"golang.org/x/sys/unix"

	"github.com/envrbw/envrbw/env"
)

// Exec replaces the current process with prog, with pairs injected over the
// inherited environment. It does not return on success.
func Exec(pairs *env.Environment, prog string, args []string) error {
	path, err := exec.LookPath(prog)
	if err != nil {
		return fmt.Errorf("looking up %q: %w", prog, err)
	}

	argv := append([]string{prog}, args...)
	if err := unix.Exec(path, argv, Inject(os.Environ(), pairs)); err != nil {
		return fmt.Errorf("exec %q: %w", prog, err)
	}
	return nil
}
