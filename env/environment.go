// Package env provides the KEY=VALUE pair set that envrbw keeps in an
// entry's notes field, along with helpers for working with process
// environments.
package env

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/puzpuzpuz/xsync/v2"
)

// ErrInvalidKey is returned by Set when a key is empty or contains '='.
var ErrInvalidKey = errors.New("invalid key")

// Environment is a map of keys to values. Keys are unique, and iteration and
// serialization order is always lexicographic by key, regardless of insertion
// order.
type Environment struct {
	underlying *xsync.MapOf[string, string]
}

func New() *Environment {
	return &Environment{underlying: xsync.NewMapOf[string]()}
}

func NewWithLength(length int) *Environment {
	return &Environment{underlying: xsync.NewMapOfPresized[string](length)}
}

// FromMap creates a new environment from a map. Keys that fail validation are
// dropped, the same as malformed lines in Parse.
func FromMap(m map[string]string) *Environment {
	env := &Environment{underlying: xsync.NewMapOfPresized[string](len(m))}

	for k, v := range m {
		env.Set(k, v) //nolint:errcheck // invalid keys are dropped
	}

	return env
}

// Split splits a variable (in the form "name=value") into the name and value
// substrings. If there is no '=', or the first '=' is at the start, it
// returns `"", "", false`.
func Split(l string) (name, value string, ok bool) {
	i := strings.IndexRune(l, '=')
	// Either there is no '=', or it is at the start of the string.
	// Both are disallowed.
	if i <= 0 {
		return "", "", false
	}
	return l[:i], l[i+1:], true
}

// FromSlice creates a new environment from a string slice of KEY=VALUE.
func FromSlice(s []string) *Environment {
	env := NewWithLength(len(s))

	for _, l := range s {
		if k, v, ok := Split(l); ok {
			env.underlying.Store(k, v)
		}
	}

	return env
}

// Parse reads KEY=VALUE lines out of a notes body. Lines that are empty after
// trimming, or start with '#', are skipped. Remaining lines are split on the
// first '=' only, so values may contain further '=' characters. Lines without
// a '=' are malformed and silently dropped. Later duplicates win.
//
// Parse never fails: the worst input produces an empty environment.
func Parse(text string) *Environment {
	env := New()

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if k, v, ok := Split(line); ok {
			env.underlying.Store(k, v)
		}
	}

	return env
}

// Serialize emits one KEY=VALUE line per pair, keys in ascending byte order,
// each line newline-terminated. An empty environment serializes to "".
func (e *Environment) Serialize() string {
	var sb strings.Builder
	for _, k := range e.Keys() {
		v, _ := e.Get(k)
		sb.WriteString(k)
		sb.WriteByte('=')
		sb.WriteString(v)
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Dump returns a copy of the environment as a plain map.
func (e *Environment) Dump() map[string]string {
	d := make(map[string]string, e.underlying.Size())
	e.underlying.Range(func(k, v string) bool {
		d[k] = v
		return true
	})

	return d
}

// Get returns a key from the environment.
func (e *Environment) Get(key string) (string, bool) {
	v, ok := e.underlying.Load(key)
	return v, ok
}

// Exists returns true/false depending on whether or not the key exists in the env.
func (e *Environment) Exists(key string) bool {
	_, ok := e.underlying.Load(key)
	return ok
}

// Set inserts or overwrites a key. A key must be non-empty and must not
// contain '='.
func (e *Environment) Set(key, value string) error {
	if key == "" || strings.ContainsRune(key, '=') {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	e.underlying.Store(key, value)
	return nil
}

// Remove deletes a key from the environment and reports whether a deletion
// occurred. Removing an absent key is a no-op, not an error.
func (e *Environment) Remove(key string) bool {
	if _, ok := e.underlying.Load(key); !ok {
		return false
	}
	e.underlying.Delete(key)
	return true
}

// Length returns the number of pairs in the environment.
func (e *Environment) Length() int {
	return e.underlying.Size()
}

// Keys returns the keys in ascending byte order.
func (e *Environment) Keys() []string {
	keys := make([]string, 0, e.underlying.Size())
	e.underlying.Range(func(k, _ string) bool {
		keys = append(keys, k)
		return true
	})
	sort.Strings(keys)

	return keys
}

// Diff returns the keys and values from this environment which are different
// in the other one.
func (e *Environment) Diff(other *Environment) Diff {
	diff := Diff{
		Added:   make(map[string]string),
		Changed: make(map[string]DiffPair),
		Removed: make(map[string]struct{}),
	}

	e.underlying.Range(func(k, v string) bool {
		otherV, ok := other.Get(k)
		if !ok {
			// This environment has added this key to other
			diff.Added[k] = v
			return true
		}

		if otherV != v {
			diff.Changed[k] = DiffPair{
				Old: otherV,
				New: v,
			}
		}

		return true
	})

	other.underlying.Range(func(k, _ string) bool {
		if _, ok := e.Get(k); !ok {
			diff.Removed[k] = struct{}{}
		}

		return true
	})

	return diff
}

// Merge merges another env into this one. Pairs from the other environment
// win on collision.
func (e *Environment) Merge(other *Environment) {
	if other == nil {
		return
	}

	other.underlying.Range(func(k, v string) bool {
		e.underlying.Store(k, v)
		return true
	})
}

// Copy returns a copy of the env.
func (e *Environment) Copy() *Environment {
	if e == nil {
		return New()
	}

	c := New()

	e.underlying.Range(func(k, v string) bool {
		c.underlying.Store(k, v)
		return true
	})

	return c
}

// ToSlice returns a sorted slice representation of the environment.
func (e *Environment) ToSlice() []string {
	s := []string{}
	e.underlying.Range(func(k, v string) bool {
		s = append(s, k+"="+v)
		return true
	})

	sort.Strings(s)

	return s
}

type Diff struct {
	Added   map[string]string
	Changed map[string]DiffPair
	Removed map[string]struct{}
}

type DiffPair struct {
	Old string
	New string
}

func (diff *Diff) Empty() bool {
	return len(diff.Added) == 0 && len(diff.Changed) == 0 && len(diff.Removed) == 0
}
