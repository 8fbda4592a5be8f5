// SPDX-License-Identifier: MPL-2.0

package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"iter"
	"slices"
)

// ErrDuplicateKey is the sentinel error wrapped by DuplicateKeyError.
var ErrDuplicateKey = errors.New("duplicate schema key")

type (
	// ConfigSchema maps configuration keys to their FieldSpec. Iteration follows
	// the insertion order of the source document. A ConfigSchema is immutable:
	// every accessor returns copies and derived schemas are new values.
	ConfigSchema struct {
		keys   []string
		fields map[string]FieldSpec
	}

	// DuplicateKeyError is returned by New when the same key is given twice.
	DuplicateKeyError struct {
		Key string
	}
)

// Error implements the error interface.
func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate schema key %q", e.Key)
}

// Unwrap returns ErrDuplicateKey so callers can use errors.Is for programmatic detection.
func (e *DuplicateKeyError) Unwrap() error { return ErrDuplicateKey }

// New builds a ConfigSchema from fields, preserving their order.
// An empty field list yields an empty schema; the non-empty rule only applies
// to documents passed through Validate.
func New(fields ...Field) (*ConfigSchema, error) {
	s := &ConfigSchema{
		keys:   make([]string, 0, len(fields)),
		fields: make(map[string]FieldSpec, len(fields)),
	}
	for _, f := range fields {
		if _, exists := s.fields[f.Key]; exists {
			return nil, &DuplicateKeyError{Key: f.Key}
		}
		s.keys = append(s.keys, f.Key)
		s.fields[f.Key] = f.Spec
	}
	return s, nil
}

// MustNew is like New but panics on duplicate keys. Intended for tests.
func MustNew(fields ...Field) *ConfigSchema {
	s, err := New(fields...)
	if err != nil {
		panic(err)
	}
	return s
}

// Len returns the number of keys.
func (s *ConfigSchema) Len() int {
	if s == nil {
		return 0
	}
	return len(s.keys)
}

// IsEmpty reports whether the schema has no keys.
func (s *ConfigSchema) IsEmpty() bool { return s.Len() == 0 }

// Keys returns the keys in schema order.
func (s *ConfigSchema) Keys() []string {
	if s == nil {
		return nil
	}
	return slices.Clone(s.keys)
}

// Has reports whether key is declared by the schema.
func (s *ConfigSchema) Has(key string) bool {
	if s == nil {
		return false
	}
	_, ok := s.fields[key]
	return ok
}

// Get returns the FieldSpec declared for key.
func (s *ConfigSchema) Get(key string) (FieldSpec, bool) {
	if s == nil {
		return FieldSpec{}, false
	}
	spec, ok := s.fields[key]
	return spec, ok
}

// All iterates the schema in order.
func (s *ConfigSchema) All() iter.Seq2[string, FieldSpec] {
	return func(yield func(string, FieldSpec) bool) {
		if s == nil {
			return
		}
		for _, k := range s.keys {
			if !yield(k, s.fields[k]) {
				return
			}
		}
	}
}

// Fields returns the schema as an ordered slice.
func (s *ConfigSchema) Fields() []Field {
	out := make([]Field, 0, s.Len())
	for k, spec := range s.All() {
		out = append(out, Field{Key: k, Spec: spec})
	}
	return out
}

// Filter returns a new schema holding the entries for which keep returns true,
// in the same order. The receiver is not modified.
func (s *ConfigSchema) Filter(keep func(key string, spec FieldSpec) bool) *ConfigSchema {
	out := &ConfigSchema{fields: make(map[string]FieldSpec)}
	for k, spec := range s.All() {
		if keep(k, spec) {
			out.keys = append(out.keys, k)
			out.fields[k] = spec
		}
	}
	return out
}

// Equal reports whether both schemas hold the same keys, specs, and order.
func (s *ConfigSchema) Equal(other *ConfigSchema) bool {
	if s.Len() != other.Len() {
		return false
	}
	for i, k := range s.Keys() {
		if other.keys[i] != k || !s.fields[k].Equal(other.fields[k]) {
			return false
		}
	}
	return true
}

// MarshalJSON encodes the schema back into document form, keeping key order.
func (s *ConfigSchema) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	i := 0
	for k, spec := range s.All() {
		if i > 0 {
			buf.WriteByte(',')
		}
		i++
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		val, err := spec.MarshalJSON()
		if err != nil {
			return nil, fmt.Errorf("encode field %q: %w", k, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
