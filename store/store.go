package store

import (
	"errors"
	"fmt"

	"github.com/envrbw/envrbw/env"
)

// ErrNoSuchKey is returned by PrepareWrite when a strict removal targets a
// key that is not present.
var ErrNoSuchKey = errors.New("no such key")

// Entry is an abstract secret-entry record, decoupled from however the
// external secret manager represents it.
type Entry struct {
	ID     string
	Name   string
	Kind   Kind
	Notes  string
	Fields []Field
}

// Load returns the pair set carried by an entry. The notes body is the
// primary source; if it yields nothing, the legacy custom fields are read
// instead. An entry with neither simply has no secrets yet, which is not an
// error.
func Load(entry *Entry) *env.Environment {
	pairs := ParseNotes(entry.Notes)
	if pairs.Length() == 0 {
		pairs = FromFields(entry.Fields)
	}
	return pairs
}

// Mutation is a batch of set/remove operations applied by PrepareWrite.
type Mutation struct {
	Set    map[string]string
	Remove []string

	// StrictRemove makes removal of an absent key an error instead of a
	// no-op.
	StrictRemove bool
}

// PrepareWrite applies a mutation and produces the entry kind and notes body
// to persist. An existing entry keeps its own kind, so the Login-vs-SecureNote
// layout survives edits; a nil entry starts from an empty pair set and is
// created as Login.
//
// Only the notes body of an existing entry is carried forward. Pairs that
// were loaded through the legacy-field fallback are never serialized back:
// writing to such an entry builds fresh notes content and leaves the old
// custom fields behind, shadowed. Migrating them is out of scope.
//
// Any failure happens before the caller gets anything to write, so a failed
// mutation can never cause a partial update.
func PrepareWrite(entry *Entry, m Mutation) (Kind, string, error) {
	kind := Login
	pairs := env.New()
	if entry != nil {
		kind = entry.Kind
		pairs = ParseNotes(entry.Notes)
	}

	for key, value := range m.Set {
		if err := pairs.Set(key, value); err != nil {
			return kind, "", err
		}
	}

	for _, key := range m.Remove {
		if !pairs.Remove(key) && m.StrictRemove {
			return kind, "", fmt.Errorf("%w: %q", ErrNoSuchKey, key)
		}
	}

	return kind, SerializeNotes(kind, pairs), nil
}
