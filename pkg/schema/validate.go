// SPDX-License-Identifier: MPL-2.0

package schema

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"unicode/utf8"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/tidwall/gjson"
)

const (
	// NotValidJSONMsg is reported when the input cannot be read or decoded.
	NotValidJSONMsg = "Not a valid JSON file"

	// InvalidSchemaMsg is reported for every structural rule violation.
	// It deliberately does not name the offending key.
	InvalidSchemaMsg = `Not a valid configuration schema: expected a non-empty object mapping each key to ` +
		`{"type": "string" | "int" | "float" | "bool" | "password" | ["value", ...]}`

	metaSchemaURL = "inmemory://opsfill/config_schema.json"
)

var (
	// ErrMalformedDocument is the sentinel error wrapped by MalformedDocumentError.
	ErrMalformedDocument = errors.New("malformed document")
	// ErrInvalidSchema is the sentinel error wrapped by InvalidSchemaError.
	ErrInvalidSchema = errors.New("invalid configuration schema")

	compiledMetaSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020
		if err := compiler.AddResource(metaSchemaURL, strings.NewReader(metaSchemaSource)); err != nil {
			return nil, fmt.Errorf("add meta-schema resource: %w", err)
		}
		return compiler.Compile(metaSchemaURL)
	})
)

//go:embed config_schema.json
var metaSchemaSource string

type (
	// MalformedDocumentError is returned when the input is unreadable or is not JSON.
	// Its message is always NotValidJSONMsg; Cause holds the underlying detail.
	MalformedDocumentError struct {
		Cause error
	}

	// InvalidSchemaError is returned when a decoded document breaks a structural rule.
	// Its message is always InvalidSchemaMsg; Cause holds the rule violation.
	InvalidSchemaError struct {
		Cause error
	}
)

// Error implements the error interface.
func (e *MalformedDocumentError) Error() string { return NotValidJSONMsg }

// Unwrap returns ErrMalformedDocument for errors.Is() compatibility.
func (e *MalformedDocumentError) Unwrap() error { return ErrMalformedDocument }

// Error implements the error interface.
func (e *InvalidSchemaError) Error() string { return InvalidSchemaMsg }

// Unwrap returns ErrInvalidSchema for errors.Is() compatibility.
func (e *InvalidSchemaError) Unwrap() error { return ErrInvalidSchema }

// Cause returns the detail hidden behind a fixed schema diagnostic, or nil
// when err is neither a MalformedDocumentError nor an InvalidSchemaError.
func Cause(err error) error {
	var malformed *MalformedDocumentError
	if errors.As(err, &malformed) {
		return malformed.Cause
	}
	var invalid *InvalidSchemaError
	if errors.As(err, &invalid) {
		return invalid.Cause
	}
	return nil
}

// Load reads the document at path and validates it.
// A missing or unreadable file is reported the same way as undecodable JSON.
func Load(path string) (*ConfigSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &MalformedDocumentError{Cause: err}
	}
	return Validate(data)
}

// Validate checks document against the structural rules and returns the
// resulting schema in document key order. It has no side effects.
func Validate(document []byte) (*ConfigSchema, error) {
	decoded, err := decode(document)
	if err != nil {
		return nil, &MalformedDocumentError{Cause: err}
	}

	meta, err := compiledMetaSchema()
	if err != nil {
		return nil, fmt.Errorf("internal error: %w", err)
	}
	if err := meta.Validate(decoded); err != nil {
		return nil, &InvalidSchemaError{Cause: err}
	}

	// The meta-schema guarantees a JSON object at the top level.
	fieldsByKey, _ := decoded.(map[string]any)

	fields := make([]Field, 0, len(fieldsByKey))
	for _, key := range documentKeyOrder(document) {
		spec, err := fieldSpecFrom(fieldsByKey[key])
		if err != nil {
			return nil, &InvalidSchemaError{Cause: fmt.Errorf("key %q: %w", key, err)}
		}
		fields = append(fields, Field{Key: key, Spec: spec})
	}

	return New(fields...)
}

// decode parses document as a single JSON value, keeping numbers exact.
func decode(document []byte) (any, error) {
	if !gjson.ValidBytes(document) {
		return nil, errors.New("document is not valid JSON")
	}
	// gjson keeps invalid UTF-8 in keys while encoding/json replaces it, so
	// the key order and the decoded fields would disagree.
	if !utf8.Valid(document) {
		return nil, errors.New("document is not valid UTF-8")
	}
	dec := json.NewDecoder(bytes.NewReader(document))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

// documentKeyOrder returns the top-level keys in the order they first appear.
// Decoding into a Go map loses this order, so keys are read with gjson.
func documentKeyOrder(document []byte) []string {
	var keys []string
	seen := make(map[string]struct{})
	gjson.ParseBytes(document).ForEach(func(key, _ gjson.Result) bool {
		k := key.String()
		if _, dup := seen[k]; !dup {
			seen[k] = struct{}{}
			keys = append(keys, k)
		}
		return true
	})
	return keys
}

// fieldSpecFrom converts a decoded field object into a FieldSpec.
func fieldSpecFrom(v any) (FieldSpec, error) {
	obj, ok := v.(map[string]any)
	if !ok {
		return FieldSpec{}, errors.New("field must be an object")
	}
	switch t := obj["type"].(type) {
	case string:
		return NewScalarField(ScalarType(t))
	case []any:
		values := make([]string, 0, len(t))
		for i, item := range t {
			s, ok := item.(string)
			if !ok {
				return FieldSpec{}, fmt.Errorf("enum value %d is not a string", i)
			}
			values = append(values, s)
		}
		return NewEnumField(values...)
	default:
		return FieldSpec{}, fmt.Errorf("unsupported type attribute %v", t)
	}
}
