// Package rbw wraps the rbw Bitwarden CLI for reading and writing secret
// entries. Auth is rbw's problem: every rbw command unlocks or logs in by
// itself as needed, so this client just runs commands and propagates
// failures without retrying.
package rbw

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"sort"
	"strings"

	"github.com/envrbw/envrbw/logger"
	"github.com/envrbw/envrbw/store"
)

type Config struct {
	// Path is the rbw executable, resolved on PATH. Defaults to "rbw".
	Path string
}

// Client drives the rbw CLI. It implements core.Secrets.
type Client struct {
	logger logger.Logger
	runner commandRunner
}

func NewClient(l logger.Logger, conf Config) *Client {
	path := conf.Path
	if path == "" {
		path = "rbw"
	}
	return &Client{
		logger: l,
		runner: execRunner{path: path},
	}
}

// commandRunner abstracts the actual rbw invocation so tests don't need the
// binary on PATH.
type commandRunner interface {
	// Capture runs rbw with args and returns its stdout and stderr.
	Capture(args ...string) (stdout, stderr []byte, err error)

	// Interactive runs rbw with args and stdio inherited, so rbw can prompt
	// for an unlock. extraEnv is appended to the inherited environment.
	Interactive(extraEnv []string, args ...string) error
}

type execRunner struct {
	path string
}

func (r execRunner) Capture(args ...string) ([]byte, []byte, error) {
	cmd := exec.Command(r.path, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.Bytes(), stderr.Bytes(), err
}

func (r execRunner) Interactive(extraEnv []string, args ...string) error {
	cmd := exec.Command(r.path, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = append(os.Environ(), extraEnv...)
	return cmd.Run()
}

// JSON shapes returned by `rbw list --raw` and `rbw get --raw`.

type listItem struct {
	Name   string `json:"name"`
	Folder string `json:"folder"`
	Type   string `json:"type"`
}

type rawItem struct {
	ID     string     `json:"id"`
	Type   string     `json:"type"`
	Notes  string     `json:"notes"`
	Fields []rawField `json:"fields"`
}

type rawField struct {
	Name  string `json:"name"`
	Value string `json:"value"`
	Type  string `json:"type"`
}

// ListNamespaces returns the names of all entries in the folder.
func (c *Client) ListNamespaces(folder string) ([]string, error) {
	stdout, stderr, err := c.runner.Capture("list", "--raw")
	if err != nil {
		return nil, commandError("rbw list", stderr, err)
	}

	var items []listItem
	if err := json.Unmarshal(stdout, &items); err != nil {
		return nil, fmt.Errorf("parsing `rbw list --raw` output: %w", err)
	}

	var names []string
	for _, item := range items {
		if item.Folder == folder {
			names = append(names, item.Name)
		}
	}
	sort.Strings(names)

	return names, nil
}

// GetEntry fetches one entry's notes and custom fields. An absent entry is
// (nil, nil), not an error.
func (c *Client) GetEntry(folder, name string) (*store.Entry, error) {
	stdout, stderr, err := c.runner.Capture("get", "--raw", "--folder", folder, name)
	if err != nil {
		if isNotFound(string(stderr)) {
			c.logger.Debug("No entry %q in folder %q", name, folder)
			return nil, nil
		}
		return nil, commandError("rbw get", stderr, err)
	}

	var item rawItem
	if err := json.Unmarshal(stdout, &item); err != nil {
		return nil, fmt.Errorf("parsing `rbw get --raw` output: %w", err)
	}

	entry := &store.Entry{
		ID:    item.ID,
		Name:  name,
		Kind:  kindFromType(item.Type),
		Notes: item.Notes,
	}
	for _, f := range item.Fields {
		// Only text and hidden fields can carry legacy pairs; boolean and
		// linked fields are skipped.
		switch f.Type {
		case "text", "hidden":
			entry.Fields = append(entry.Fields, store.Field{
				Name:   f.Name,
				Value:  f.Value,
				Hidden: f.Type == "hidden",
			})
		}
	}

	return entry, nil
}

// CreateEntry creates a new entry whose notes field is exactly notes. The
// write is a single atomic replacement of the body.
func (c *Client) CreateEntry(folder, name string, kind store.Kind, notes string) error {
	c.logger.Debug("Creating %s entry %q in folder %q", kind, name, folder)

	return c.withEditorScript(notes, func(script string) error {
		if err := c.runner.Interactive(editorEnv(script), "add", "--folder", folder, name); err != nil {
			return fmt.Errorf("`rbw add` failed: %w", err)
		}
		return nil
	})
}

// UpdateEntry replaces an existing entry's notes field with notes.
func (c *Client) UpdateEntry(folder, name, notes string) error {
	c.logger.Debug("Updating entry %q in folder %q", name, folder)

	return c.withEditorScript(notes, func(script string) error {
		if err := c.runner.Interactive(editorEnv(script), "edit", "--folder", folder, name); err != nil {
			return fmt.Errorf("`rbw edit` failed: %w", err)
		}
		return nil
	})
}

func kindFromType(t string) store.Kind {
	if t == "Note" {
		return store.SecureNote
	}
	return store.Login
}

// rbw signals absence only through its error text. The known spellings live
// here so a change in rbw's output needs exactly one edit.
var notFoundNeedles = []string{
	"no entry found",
	"no items found",
	"Entry not found",
}

func isNotFound(stderr string) bool {
	for _, needle := range notFoundNeedles {
		if strings.Contains(stderr, needle) {
			return true
		}
	}
	return false
}

func commandError(cmd string, stderr []byte, err error) error {
	if msg := strings.TrimSpace(string(stderr)); msg != "" {
		return fmt.Errorf("`%s` failed: %s: %w", cmd, msg, err)
	}
	return fmt.Errorf("`%s` failed: %w", cmd, err)
}
