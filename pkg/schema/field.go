// SPDX-License-Identifier: MPL-2.0

package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
)

const (
	// ScalarString accepts free text.
	ScalarString ScalarType = "string"
	// ScalarInt accepts text coercible to an integer.
	ScalarInt ScalarType = "int"
	// ScalarFloat accepts text coercible to a floating point number.
	ScalarFloat ScalarType = "float"
	// ScalarBool accepts a binary choice.
	ScalarBool ScalarType = "bool"
	// ScalarPassword accepts free text that must not be echoed.
	ScalarPassword ScalarType = "password"
)

var (
	// ErrInvalidScalarType is the sentinel error wrapped by InvalidScalarTypeError.
	ErrInvalidScalarType = errors.New("invalid scalar type")
	// ErrEmptyEnum is returned when an enum field declares no permitted values.
	ErrEmptyEnum = errors.New("enum must declare at least one value")
)

type (
	// ScalarType is one of the five recognized scalar type literals.
	ScalarType string

	// InvalidScalarTypeError is returned when a ScalarType value is not recognized.
	// It wraps ErrInvalidScalarType for errors.Is() compatibility.
	InvalidScalarTypeError struct {
		Value ScalarType
	}

	// FieldSpec describes the type constraint of a single configuration key.
	// A FieldSpec is either a scalar or an enum, never both. Fields are
	// unexported so a spec cannot change after construction.
	FieldSpec struct {
		scalar ScalarType
		enum   []string
	}

	// Field pairs a configuration key with its FieldSpec.
	Field struct {
		Key  string
		Spec FieldSpec
	}
)

// Error implements the error interface.
func (e *InvalidScalarTypeError) Error() string {
	return fmt.Sprintf("invalid scalar type %q (valid: %s)", e.Value, strings.Join(ScalarTypeNames(), ", "))
}

// Unwrap returns ErrInvalidScalarType so callers can use errors.Is for programmatic detection.
func (e *InvalidScalarTypeError) Unwrap() error { return ErrInvalidScalarType }

// ScalarTypeNames returns the recognized scalar type literals in declaration order.
func ScalarTypeNames() []string {
	return []string{
		string(ScalarString), string(ScalarInt), string(ScalarFloat),
		string(ScalarBool), string(ScalarPassword),
	}
}

// Validate returns nil if the ScalarType is one of the recognized literals.
func (t ScalarType) Validate() error {
	switch t {
	case ScalarString, ScalarInt, ScalarFloat, ScalarBool, ScalarPassword:
		return nil
	default:
		return &InvalidScalarTypeError{Value: t}
	}
}

// String returns the literal of the ScalarType.
func (t ScalarType) String() string { return string(t) }

// NewScalarField creates a FieldSpec for a scalar type.
func NewScalarField(t ScalarType) (FieldSpec, error) {
	if err := t.Validate(); err != nil {
		return FieldSpec{}, err
	}
	return FieldSpec{scalar: t}, nil
}

// NewEnumField creates a FieldSpec restricted to the given values, kept in order.
func NewEnumField(values ...string) (FieldSpec, error) {
	if len(values) == 0 {
		return FieldSpec{}, ErrEmptyEnum
	}
	return FieldSpec{enum: slices.Clone(values)}, nil
}

// MustScalar is like NewScalarField but panics on an unrecognized type.
// It is meant for literals in tests and package-level declarations.
func MustScalar(t ScalarType) FieldSpec {
	spec, err := NewScalarField(t)
	if err != nil {
		panic(err)
	}
	return spec
}

// MustEnum is like NewEnumField but panics when values is empty.
func MustEnum(values ...string) FieldSpec {
	spec, err := NewEnumField(values...)
	if err != nil {
		panic(err)
	}
	return spec
}

// IsEnum reports whether the spec restricts the key to a closed set of literals.
func (f FieldSpec) IsEnum() bool { return len(f.enum) > 0 }

// Scalar returns the scalar type, or "" for enum specs.
func (f FieldSpec) Scalar() ScalarType { return f.scalar }

// EnumValues returns a copy of the permitted values, or nil for scalar specs.
func (f FieldSpec) EnumValues() []string { return slices.Clone(f.enum) }

// Equal reports whether two specs describe the same constraint.
func (f FieldSpec) Equal(other FieldSpec) bool {
	return f.scalar == other.scalar && slices.Equal(f.enum, other.enum)
}

// String renders the spec the way it appears in the schema document.
func (f FieldSpec) String() string {
	if f.IsEnum() {
		return "[" + strings.Join(f.enum, ", ") + "]"
	}
	return string(f.scalar)
}

// MarshalJSON encodes the spec as a field object: {"type": ...}.
func (f FieldSpec) MarshalJSON() ([]byte, error) {
	if f.IsEnum() {
		return json.Marshal(struct {
			Type []string `json:"type"`
		}{Type: f.enum})
	}
	return json.Marshal(struct {
		Type ScalarType `json:"type"`
	}{Type: f.scalar})
}
