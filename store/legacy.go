package store

import "github.com/envrbw/envrbw/env"

// Field is a labeled custom field on an entry, the storage convention used by
// the predecessor tool (envwarden). Fields are a read-only compatibility
// path: envrbw loads them but never writes them.
type Field struct {
	Name   string
	Value  string
	Hidden bool
}

// FromFields builds a pair set from legacy custom fields: each field's label
// becomes the key and its value becomes the value, whether or not the field
// was marked hidden. Labels that can't be keys (empty, or containing '=')
// are dropped, the same as malformed notes lines.
func FromFields(fields []Field) *env.Environment {
	pairs := env.New()
	for _, f := range fields {
		pairs.Set(f.Name, f.Value) //nolint:errcheck // invalid labels are dropped
	}
	return pairs
}
