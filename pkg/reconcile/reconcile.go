// SPDX-License-Identifier: MPL-2.0

// Package reconcile decides which schema keys still need a value by comparing
// a configuration schema with the keys an external source already resolves.
package reconcile

import (
	"github.com/opsfill/opsfill/pkg/schema"
)

type (
	// KeySet reports key presence. Values held by the source are never consulted.
	KeySet interface {
		Has(key string) bool
	}

	// Keys is a KeySet backed by a set of key names.
	Keys map[string]struct{}
)

// NewKeys builds a Keys set from names.
func NewKeys(names ...string) Keys {
	k := make(Keys, len(names))
	for _, n := range names {
		k[n] = struct{}{}
	}
	return k
}

// Has implements KeySet.
func (k Keys) Has(key string) bool {
	_, ok := k[key]
	return ok
}

// Diff returns the entries of s whose key is absent from known, in schema order.
// Presence is decided by exact key equality. Neither input is modified.
// A nil known set is treated as empty.
func Diff(s *schema.ConfigSchema, known KeySet) *schema.ConfigSchema {
	return s.Filter(func(key string, _ schema.FieldSpec) bool {
		return known == nil || !known.Has(key)
	})
}
