// SPDX-License-Identifier: MPL-2.0

// Package logging builds the structured logger shared by the opsfill pipeline.
package logging

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// Prefix is printed in front of every log line.
const Prefix = "opsfill"

// Options configures New.
type Options struct {
	// Verbose lowers the level from warn to debug.
	Verbose bool
	// Timestamps adds a time field to every line.
	Timestamps bool
}

// New creates a logger writing to w. Diagnostics meant for the operator are
// printed by the CLI itself; the logger only carries supplementary detail.
func New(w io.Writer, opts Options) *log.Logger {
	level := log.WarnLevel
	if opts.Verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		Prefix:          Prefix,
		Level:           level,
		ReportTimestamp: opts.Timestamps,
	})
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.New(io.Discard)
}

// WithRun returns a child logger tagged with a fresh run id, and the id.
func WithRun(l *log.Logger) (*log.Logger, string) {
	id := uuid.NewString()
	return l.With("run", id), id
}
