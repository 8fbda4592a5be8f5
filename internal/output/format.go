// SPDX-License-Identifier: MPL-2.0

package output

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// FormatJSON renders an indented JSON object.
	FormatJSON Format = "json"
	// FormatYAML renders a YAML mapping.
	FormatYAML Format = "yaml"
	// FormatTOML renders a TOML table.
	FormatTOML Format = "toml"
)

// ErrInvalidFormat is the sentinel error wrapped by InvalidFormatError.
var ErrInvalidFormat = errors.New("invalid output format")

type (
	// Format selects the document encoding.
	Format string

	// InvalidFormatError is returned when a Format value is not recognized.
	InvalidFormatError struct {
		Value Format
	}
)

// Error implements the error interface.
func (e *InvalidFormatError) Error() string {
	return fmt.Sprintf("invalid output format %q (valid: %s)", e.Value, strings.Join(FormatNames(), ", "))
}

// Unwrap returns ErrInvalidFormat for errors.Is() compatibility.
func (e *InvalidFormatError) Unwrap() error { return ErrInvalidFormat }

// FormatNames lists the recognized formats.
func FormatNames() []string {
	return []string{string(FormatJSON), string(FormatYAML), string(FormatTOML)}
}

// Validate returns nil for a recognized format.
func (f Format) Validate() error {
	switch f {
	case FormatJSON, FormatYAML, FormatTOML:
		return nil
	default:
		return &InvalidFormatError{Value: f}
	}
}

// String returns the format name.
func (f Format) String() string { return string(f) }
