// SPDX-License-Identifier: MPL-2.0

package output

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/opsfill/opsfill/internal/collect"
	"github.com/opsfill/opsfill/internal/opsource"
	"github.com/opsfill/opsfill/pkg/schema"
)

type (
	// Entry is one top-level key of a Document.
	Entry struct {
		Key   string
		Value any
	}

	// Document is an ordered mapping of top-level keys to plain Go values
	// (string, bool, int64, float64, []any, map[string]any or nil).
	Document []Entry
)

// Keys returns the document keys in order.
func (d Document) Keys() []string {
	keys := make([]string, len(d))
	for i, e := range d {
		keys[i] = e.Key
	}
	return keys
}

// Lookup returns the value stored under key.
func (d Document) Lookup(key string) (any, bool) {
	for _, e := range d {
		if e.Key == key {
			return e.Value, true
		}
	}
	return nil, false
}

// Answers builds a document holding the collected answers in prompt order.
func Answers(answers collect.Answers) (Document, error) {
	doc := make(Document, 0, len(answers))
	for _, a := range answers {
		v, err := a.Value()
		if err != nil {
			return nil, err
		}
		doc = append(doc, Entry{Key: a.Key, Value: v})
	}
	return doc, nil
}

// Finished builds the completed configuration for s: every schema key in
// schema order, valued from the answers when the operator was asked and from
// the external tool otherwise. Keys the tool knows that s does not declare
// are left out.
func Finished(s *schema.ConfigSchema, known *opsource.ExternalConfig, answers collect.Answers) (Document, error) {
	doc := make(Document, 0, s.Len())
	for key := range s.All() {
		if a, ok := answers.Get(key); ok {
			v, err := a.Value()
			if err != nil {
				return nil, err
			}
			doc = append(doc, Entry{Key: key, Value: v})
			continue
		}

		raw, ok := known.Raw(key)
		if !ok {
			continue
		}
		v, err := decodeRaw(raw)
		if err != nil {
			return nil, fmt.Errorf("known value for %s: %w", key, err)
		}
		doc = append(doc, Entry{Key: key, Value: v})
	}
	return doc, nil
}

// Missing builds a schema document for the keys still missing, in the same
// shape the validator accepts.
func Missing(missing *schema.ConfigSchema) Document {
	doc := make(Document, 0, missing.Len())
	for key, spec := range missing.All() {
		doc = append(doc, Entry{Key: key, Value: specValue(spec)})
	}
	return doc
}

func specValue(spec schema.FieldSpec) map[string]any {
	if spec.IsEnum() {
		values := spec.EnumValues()
		literals := make([]any, len(values))
		for i, v := range values {
			literals[i] = v
		}
		return map[string]any{"type": literals}
	}
	return map[string]any{"type": spec.Scalar().String()}
}

// decodeRaw decodes a JSON value keeping integers as int64.
func decodeRaw(raw json.RawMessage) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return normalize(v), nil
}

func normalize(v any) any {
	switch t := v.(type) {
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return n
		}
		if f, err := t.Float64(); err == nil {
			return f
		}
		return t.String()
	case map[string]any:
		for k, e := range t {
			t[k] = normalize(e)
		}
		return t
	case []any:
		for i, e := range t {
			t[i] = normalize(e)
		}
		return t
	default:
		return v
	}
}
