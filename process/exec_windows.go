//go:build windows

package process

import (
	"errors"

	"github.com/envrbw/envrbw/env"
)

// Exec is unsupported on windows; callers fall back to spawning a Process
// and relaying its exit code.
func Exec(pairs *env.Environment, prog string, args []string) error {
	return errors.New("process replacement is not supported on windows")
}
