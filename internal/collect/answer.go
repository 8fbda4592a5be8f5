// SPDX-License-Identifier: MPL-2.0

package collect

import (
	"fmt"
	"strconv"

	"github.com/opsfill/opsfill/pkg/schema"
)

type (
	// Answer is the raw value the operator gave for one key.
	Answer struct {
		Key  string
		Spec schema.FieldSpec
		Raw  string
	}

	// Answers holds collected values in prompt order.
	Answers []Answer
)

// Value converts the raw answer to the Go type its FieldSpec implies:
// int64 for int, float64 for float, bool for bool, string otherwise.
func (a Answer) Value() (any, error) {
	if a.Spec.IsEnum() {
		return a.Raw, nil
	}
	switch a.Spec.Scalar() {
	case schema.ScalarInt:
		n, err := strconv.ParseInt(a.Raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("answer for %s: %w", a.Key, ErrNotInteger)
		}
		return n, nil
	case schema.ScalarFloat:
		f, err := strconv.ParseFloat(a.Raw, 64)
		if err != nil {
			return nil, fmt.Errorf("answer for %s: %w", a.Key, ErrNotNumber)
		}
		return f, nil
	case schema.ScalarBool:
		b, err := strconv.ParseBool(a.Raw)
		if err != nil {
			return nil, fmt.Errorf("answer for %s: %w", a.Key, err)
		}
		return b, nil
	default:
		return a.Raw, nil
	}
}

// Get returns the answer for key.
func (as Answers) Get(key string) (Answer, bool) {
	for _, a := range as {
		if a.Key == key {
			return a, true
		}
	}
	return Answer{}, false
}

// Keys returns the answered keys in prompt order.
func (as Answers) Keys() []string {
	keys := make([]string, len(as))
	for i, a := range as {
		keys[i] = a.Key
	}
	return keys
}
