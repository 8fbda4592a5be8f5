// SPDX-License-Identifier: MPL-2.0

package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestNewLevels(t *testing.T) {
	t.Parallel()

	var quiet bytes.Buffer
	New(&quiet, Options{}).Debug("hidden detail")
	if quiet.Len() != 0 {
		t.Errorf("debug output leaked without verbose: %q", quiet.String())
	}

	var loud bytes.Buffer
	New(&loud, Options{Verbose: true}).Debug("visible detail", "stage", "fetch")
	out := loud.String()
	if !strings.Contains(out, "visible detail") || !strings.Contains(out, "stage=fetch") {
		t.Errorf("verbose output = %q, want message and field", out)
	}
	if !strings.Contains(out, Prefix) {
		t.Errorf("verbose output = %q, want prefix %q", out, Prefix)
	}
}

func TestWithRun(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l, id := WithRun(New(&buf, Options{Verbose: true}))
	if _, err := uuid.Parse(id); err != nil {
		t.Fatalf("run id %q is not a UUID: %v", id, err)
	}
	l.Info("stage done")
	if !strings.Contains(buf.String(), "run="+id) {
		t.Errorf("output = %q, want run=%s", buf.String(), id)
	}
}
