// Package core ties the secret backend and the notes store together into
// the operations the CLI exposes. It owns no I/O of its own; everything
// flows through the Secrets backend.
package core

import (
	"errors"
	"fmt"

	"github.com/envrbw/envrbw/env"
	"github.com/envrbw/envrbw/logger"
	"github.com/envrbw/envrbw/store"
)

// ErrNamespaceNotFound is returned when an operation needs an existing
// namespace entry and the backend has none by that name.
var ErrNamespaceNotFound = errors.New("namespace not found")

// Secrets is the backend a Session reads and writes entries through.
// rbw.Client satisfies it; tests swap in a fake.
type Secrets interface {
	ListNamespaces(folder string) ([]string, error)
	GetEntry(folder, name string) (*store.Entry, error)
	CreateEntry(folder, name string, kind store.Kind, notes string) error
	UpdateEntry(folder, name, notes string) error
}

// Session is one configured connection to a folder of namespace entries.
type Session struct {
	Logger  logger.Logger
	Secrets Secrets
	Folder  string
}

// ListNamespaces returns the names of all entries in the session folder.
func (s *Session) ListNamespaces() ([]string, error) {
	names, err := s.Secrets.ListNamespaces(s.Folder)
	if err != nil {
		return nil, fmt.Errorf("listing namespaces in folder %q: %w", s.Folder, err)
	}
	return names, nil
}

// LoadPairs fetches a namespace and decodes its variables, falling back to
// legacy labeled fields when the notes body holds none.
func (s *Session) LoadPairs(namespace string) (*env.Environment, error) {
	entry, err := s.Secrets.GetEntry(s.Folder, namespace)
	if err != nil {
		return nil, fmt.Errorf("fetching namespace %q: %w", namespace, err)
	}
	if entry == nil {
		return nil, fmt.Errorf("namespace %q in folder %q: %w", namespace, s.Folder, ErrNamespaceNotFound)
	}
	return store.Load(entry), nil
}

// Set writes values into a namespace, creating the entry when it does not
// exist yet. It returns the difference between the stored variables before
// and after the write.
func (s *Session) Set(namespace string, values map[string]string) (env.Diff, error) {
	entry, err := s.Secrets.GetEntry(s.Folder, namespace)
	if err != nil {
		return env.Diff{}, fmt.Errorf("fetching namespace %q: %w", namespace, err)
	}

	return s.apply(namespace, entry, store.Mutation{Set: values})
}

// Unset removes keys from a namespace. When strict is set, a key absent
// from the stored variables is an error; otherwise it is skipped.
func (s *Session) Unset(namespace string, keys []string, strict bool) (env.Diff, error) {
	entry, err := s.Secrets.GetEntry(s.Folder, namespace)
	if err != nil {
		return env.Diff{}, fmt.Errorf("fetching namespace %q: %w", namespace, err)
	}
	if entry == nil {
		return env.Diff{}, fmt.Errorf("namespace %q in folder %q: %w", namespace, s.Folder, ErrNamespaceNotFound)
	}

	return s.apply(namespace, entry, store.Mutation{Remove: keys, StrictRemove: strict})
}

func (s *Session) apply(namespace string, entry *store.Entry, m store.Mutation) (env.Diff, error) {
	kind, notes, err := store.PrepareWrite(entry, m)
	if err != nil {
		return env.Diff{}, err
	}

	if entry == nil {
		s.Logger.Debug("[Session] Creating %s entry for namespace %q", kind, namespace)
		if err := s.Secrets.CreateEntry(s.Folder, namespace, kind, notes); err != nil {
			return env.Diff{}, fmt.Errorf("creating namespace %q: %w", namespace, err)
		}
		return store.ParseNotes(notes).Diff(env.New()), nil
	}

	s.Logger.Debug("[Session] Updating %s entry for namespace %q", kind, namespace)
	if err := s.Secrets.UpdateEntry(s.Folder, namespace, notes); err != nil {
		return env.Diff{}, fmt.Errorf("updating namespace %q: %w", namespace, err)
	}
	return store.ParseNotes(notes).Diff(store.ParseNotes(entry.Notes)), nil
}
