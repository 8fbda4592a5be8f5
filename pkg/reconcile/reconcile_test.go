// SPDX-License-Identifier: MPL-2.0

package reconcile

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/opsfill/opsfill/pkg/schema"
)

func TestDiff(t *testing.T) {
	t.Parallel()

	ab := schema.MustNew(
		schema.Field{Key: "A", Spec: schema.MustScalar(schema.ScalarString)},
		schema.Field{Key: "B", Spec: schema.MustScalar(schema.ScalarInt)},
	)

	tests := []struct {
		name     string
		schema   *schema.ConfigSchema
		known    KeySet
		wantKeys []string
	}{
		{name: "one key known", schema: ab, known: NewKeys("A"), wantKeys: []string{"B"}},
		{name: "nothing known", schema: ab, known: NewKeys(), wantKeys: []string{"A", "B"}},
		{name: "nil known set", schema: ab, known: nil, wantKeys: []string{"A", "B"}},
		{name: "disjoint keys", schema: ab, known: NewKeys("X", "Y"), wantKeys: []string{"A", "B"}},
		{name: "everything known", schema: ab, known: NewKeys("A", "B", "C"), wantKeys: []string{}},
		{name: "keys are case sensitive", schema: ab, known: NewKeys("a", "b"), wantKeys: []string{"A", "B"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Diff(tt.schema, tt.known)
			if diff := cmp.Diff(tt.wantKeys, got.Keys(), cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("Diff() keys mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDiffCarriesSpecsUnchanged(t *testing.T) {
	t.Parallel()

	s := schema.MustNew(
		schema.Field{Key: "A", Spec: schema.MustScalar(schema.ScalarString)},
		schema.Field{Key: "B", Spec: schema.MustScalar(schema.ScalarInt)},
	)

	missing := Diff(s, NewKeys("A"))
	want := schema.MustNew(schema.Field{Key: "B", Spec: schema.MustScalar(schema.ScalarInt)})
	if !missing.Equal(want) {
		t.Errorf("Diff() = %s, want %s", mustJSON(t, missing), mustJSON(t, want))
	}
	if s.Len() != 2 {
		t.Error("Diff() must not modify the input schema")
	}
}

func TestDiffIdentities(t *testing.T) {
	t.Parallel()

	s := schema.MustNew(
		schema.Field{Key: "A", Spec: schema.MustEnum("x", "y")},
		schema.Field{Key: "B", Spec: schema.MustScalar(schema.ScalarBool)},
	)

	if got := Diff(s, NewKeys()); !got.Equal(s) {
		t.Errorf("Diff(s, {}) = %s, want s", mustJSON(t, got))
	}
	if got := Diff(s, s); !got.IsEmpty() {
		t.Errorf("Diff(s, s) = %s, want {}", mustJSON(t, got))
	}
}

func mustJSON(t *testing.T, s *schema.ConfigSchema) string {
	t.Helper()
	b, err := s.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON() unexpected error: %v", err)
	}
	return string(b)
}

func genSchema() gopter.Gen {
	return gen.SliceOf(gen.Identifier()).Map(func(names []string) *schema.ConfigSchema {
		seen := make(map[string]struct{}, len(names))
		fields := make([]schema.Field, 0, len(names))
		for _, n := range names {
			if _, dup := seen[n]; dup {
				continue
			}
			seen[n] = struct{}{}
			fields = append(fields, schema.Field{Key: n, Spec: schema.MustScalar(schema.ScalarString)})
		}
		return schema.MustNew(fields...)
	})
}

func genKnown() gopter.Gen {
	return gen.SliceOf(gen.Identifier()).Map(func(names []string) Keys {
		return NewKeys(names...)
	})
}

func TestDiff_Property(t *testing.T) {
	t.Parallel()

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("key in diff iff key in schema and not in known", prop.ForAll(
		func(s *schema.ConfigSchema, known Keys) bool {
			missing := Diff(s, known)
			for _, k := range missing.Keys() {
				if !s.Has(k) || known.Has(k) {
					return false
				}
			}
			for _, k := range s.Keys() {
				if !known.Has(k) && !missing.Has(k) {
					return false
				}
			}
			return true
		},
		genSchema(), genKnown(),
	))

	properties.Property("diff preserves schema order", prop.ForAll(
		func(s *schema.ConfigSchema, known Keys) bool {
			missing := Diff(s, known).Keys()
			i := 0
			for _, k := range s.Keys() {
				if i < len(missing) && missing[i] == k {
					i++
				}
			}
			return i == len(missing)
		},
		genSchema(), genKnown(),
	))

	properties.Property("diff with the schema's own keys is empty", prop.ForAll(
		func(s *schema.ConfigSchema) bool {
			return Diff(s, s).IsEmpty() && Diff(s, NewKeys()).Equal(s)
		},
		genSchema(),
	))

	properties.TestingRun(t)
}
