// Package store implements the notes-field data model: the serialization of
// KEY=VALUE pair sets into password-manager entry notes, the legacy
// custom-field fallback, and the load/prepare-write orchestration over an
// abstract secret entry.
package store

import (
	"strings"

	"github.com/envrbw/envrbw/env"
)

// Kind is the underlying record kind of a secret entry. It determines the
// notes serialization layout and nothing else.
type Kind int

const (
	// Login entries reserve their first body line for the password field, so
	// serialized notes start with one blank line.
	Login Kind = iota

	// SecureNote entries have no password slot; serialized notes start
	// directly with the first pair.
	SecureNote
)

func (k Kind) String() string {
	switch k {
	case Login:
		return "login"
	case SecureNote:
		return "note"
	}
	return "unknown"
}

// SerializeNotes renders pairs as a notes body for an entry of the given
// kind. Login bodies begin with an empty line (the password-field
// placeholder); SecureNote bodies do not.
func SerializeNotes(kind Kind, pairs *env.Environment) string {
	body := pairs.Serialize()
	if kind == Login {
		return "\n" + body
	}
	return body
}

// ParseNotes parses a raw notes body into a pair set. It is format-agnostic:
// rbw normalizes SecureNote bodies by prepending a blank line before we ever
// see them, so at most one leading blank line is stripped and both entry
// kinds parse identically. The blank line is tolerated, never required.
func ParseNotes(raw string) *env.Environment {
	if after, ok := strings.CutPrefix(raw, "\r\n"); ok {
		raw = after
	} else if after, ok := strings.CutPrefix(raw, "\n"); ok {
		raw = after
	}
	return env.Parse(raw)
}
