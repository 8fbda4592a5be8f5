// SPDX-License-Identifier: MPL-2.0

package collect

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/opsfill/opsfill/pkg/schema"
)

var (
	// ErrNotInteger is returned for text that does not parse as an integer.
	ErrNotInteger = errors.New("not an integer")
	// ErrNotNumber is returned for text that does not parse as a finite number.
	ErrNotNumber = errors.New("not a number")
)

// ValidatorFor returns the input validator for t, or nil when any text is accepted.
func ValidatorFor(t schema.ScalarType) func(string) error {
	switch t {
	case schema.ScalarInt:
		return ValidateInt
	case schema.ScalarFloat:
		return ValidateFloat
	default:
		return nil
	}
}

// ValidateInt accepts base-10 integers that fit in 64 bits.
func ValidateInt(s string) error {
	if _, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64); err != nil {
		return fmt.Errorf("%q is %w", s, ErrNotInteger)
	}
	return nil
}

// ValidateFloat accepts finite decimal numbers.
func ValidateFloat(s string) error {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return fmt.Errorf("%q is %w", s, ErrNotNumber)
	}
	return nil
}

// FormatBool renders a confirm answer as its raw value.
func FormatBool(b bool) string {
	return strconv.FormatBool(b)
}

// normalizeNumber trims the surrounding whitespace a validator tolerated.
func normalizeNumber(s string) string {
	return strings.TrimSpace(s)
}
