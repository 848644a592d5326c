package osutil

import (
	"errors"
	"os"
	"path/filepath"
)

// FileExists reports whether a file exists on the filesystem. Any error from
// os.Stat is treated as the file not being there, since most errors also mean
// the file isn't usable.
func FileExists(filename string) bool {
	_, err := os.Stat(filename)
	return err == nil
}

// NormalizeFilePath normalizes a path and returns a clean absolute version.
// It expands environment variables inside paths and converts "~/" into the
// user's home directory.
func NormalizeFilePath(path string) (string, error) {
	// don't normalize empty strings
	if path == "" {
		return "", nil
	}

	path, err := ExpandHome(os.ExpandEnv(path))
	if err != nil {
		return "", err
	}

	absolutePath, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}

	return absolutePath, nil
}

// ExpandHome replaces a leading "~" with the current user's home directory.
func ExpandHome(path string) (string, error) {
	if len(path) == 0 {
		return path, nil
	}

	if path[0] != '~' {
		return path, nil
	}

	if len(path) > 1 && path[1] != '/' && path[1] != '\\' {
		return "", errors.New("cannot expand user-specific home dir")
	}

	home, err := UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(home, path[1:]), nil
}
