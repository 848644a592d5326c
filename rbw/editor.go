package rbw

import (
	"fmt"
	"os"
	"strings"
)

// rbw has no flag for setting an entry's body directly: add and edit hand
// the body to $VISUAL. Writes therefore go through a throwaway shell script
// that replaces the editor temp file with the exact notes content.

func editorEnv(script string) []string {
	return []string{"VISUAL=" + script, "EDITOR=" + script}
}

// withEditorScript writes the script to a temp file, makes it executable,
// calls f with its path and cleans up afterwards.
func (c *Client) withEditorScript(notes string, f func(script string) error) error {
	script, err := os.CreateTemp("", "envrbw-editor-*.sh")
	if err != nil {
		return fmt.Errorf("creating editor script: %w", err)
	}
	defer os.Remove(script.Name()) //nolint:errcheck // best effort cleanup

	if _, err := script.WriteString(editorScript(notes)); err != nil {
		script.Close() //nolint:errcheck // already failing
		return fmt.Errorf("writing editor script: %w", err)
	}
	if err := script.Close(); err != nil {
		return fmt.Errorf("closing editor script: %w", err)
	}
	if err := os.Chmod(script.Name(), 0o700); err != nil {
		return fmt.Errorf("marking editor script executable: %w", err)
	}

	return f(script.Name())
}

// editorScript renders the script body. The content is passed as a printf
// argument rather than a format string, so '%' needs no escaping; single
// quotes are escaped for the shell.
func editorScript(notes string) string {
	escaped := strings.ReplaceAll(notes, "'", `'\''`)
	return "#!/bin/sh\nprintf '%s' '" + escaped + "' > \"$1\"\n"
}
