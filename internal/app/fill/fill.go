// SPDX-License-Identifier: MPL-2.0

package fill

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/opsfill/opsfill/internal/collect"
	"github.com/opsfill/opsfill/internal/logging"
	"github.com/opsfill/opsfill/internal/opsource"
	"github.com/opsfill/opsfill/pkg/reconcile"
	"github.com/opsfill/opsfill/pkg/schema"
)

const (
	// StageValidate loads and checks the schema document.
	StageValidate Stage = "validate"
	// StageFetch queries the external config source.
	StageFetch Stage = "fetch"
	// StageDiff computes the missing keys.
	StageDiff Stage = "diff"
	// StageCollect prompts for the missing keys.
	StageCollect Stage = "collect"
)

// ErrInvalidRequest is the sentinel error wrapped by InvalidRequestError.
var ErrInvalidRequest = errors.New("invalid fill request")

type (
	// Stage names a pipeline step in log lines.
	Stage string

	// Source returns the configuration already known to the external tool.
	// *opsource.Adapter implements it.
	Source interface {
		FetchKnownKeys(ctx context.Context) (*opsource.ExternalConfig, error)
	}

	// Asker collects values for missing keys. *collect.Collector implements it.
	Asker interface {
		Collect(ctx context.Context, missing *schema.ConfigSchema) (collect.Answers, error)
	}

	// Request describes one run of the pipeline.
	Request struct {
		// SchemaPath is the JSON schema file to reconcile.
		SchemaPath string
		// Source is queried once for the known keys.
		Source Source
		// Asker prompts for the missing keys. Unused for dry runs.
		Asker Asker
		// DryRun stops after the diff.
		DryRun bool
		// Logger receives one debug line per stage. Nil discards.
		Logger *log.Logger
		// Wrap, when set, runs around the external query, e.g. to show a spinner.
		Wrap func(ctx context.Context, fetch func(context.Context) error) error
	}

	// Result is everything the pipeline learned. Answers is nil for dry
	// runs and when nothing was missing.
	Result struct {
		RunID   string
		Schema  *schema.ConfigSchema
		Known   *opsource.ExternalConfig
		Missing *schema.ConfigSchema
		Answers collect.Answers
	}

	// InvalidRequestError lists the Request fields that are unusable.
	InvalidRequestError struct {
		Fields []string
	}
)

// Error implements the error interface.
func (e *InvalidRequestError) Error() string {
	return fmt.Sprintf("invalid fill request: missing %s", strings.Join(e.Fields, ", "))
}

// Unwrap returns ErrInvalidRequest for errors.Is() compatibility.
func (e *InvalidRequestError) Unwrap() error { return ErrInvalidRequest }

// Validate reports unset required fields.
func (r Request) Validate() error {
	var missing []string
	if r.SchemaPath == "" {
		missing = append(missing, "SchemaPath")
	}
	if r.Source == nil {
		missing = append(missing, "Source")
	}
	if r.Asker == nil && !r.DryRun {
		missing = append(missing, "Asker")
	}
	if len(missing) > 0 {
		return &InvalidRequestError{Fields: missing}
	}
	return nil
}

// Complete reports whether the external tool already knew every key.
func (r *Result) Complete() bool {
	return r.Missing.IsEmpty()
}

// Run executes the pipeline. Errors from each stage are returned unwrapped so
// callers can classify them with errors.Is: schema.ErrMalformedDocument,
// schema.ErrInvalidSchema, opsource.ErrSourceFailed and collect.ErrCancelled.
// Cancelling ctx while the external tool runs also yields collect.ErrCancelled.
func Run(ctx context.Context, req Request) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	logger := req.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	logger, runID := logging.WithRun(logger)
	res := &Result{RunID: runID}

	s, err := schema.Load(req.SchemaPath)
	if err != nil {
		logger.Debug("schema rejected", "stage", StageValidate, "path", req.SchemaPath, "cause", schema.Cause(err))
		return nil, err
	}
	res.Schema = s
	logger.Debug("schema loaded", "stage", StageValidate, "path", req.SchemaPath, "keys", s.Len())

	fetch := func(ctx context.Context) error {
		known, err := req.Source.FetchKnownKeys(ctx)
		res.Known = known
		return err
	}
	if req.Wrap != nil {
		err = req.Wrap(ctx, fetch)
	} else {
		err = fetch(ctx)
	}
	if err != nil {
		if ctx.Err() != nil {
			logger.Debug("external query interrupted", "stage", StageFetch)
			return nil, collect.ErrCancelled
		}
		logger.Debug("external query failed", "stage", StageFetch, "err", err)
		return nil, err
	}
	logger.Debug("external config fetched", "stage", StageFetch, "known", res.Known.Len())

	res.Missing = reconcile.Diff(s, res.Known)
	logger.Debug("diff computed", "stage", StageDiff, "missing", res.Missing.Len())

	if req.DryRun || res.Missing.IsEmpty() {
		return res, nil
	}

	answers, err := req.Asker.Collect(ctx, res.Missing)
	if err != nil {
		logger.Debug("collection ended", "stage", StageCollect, "err", err)
		return nil, err
	}
	res.Answers = answers
	logger.Debug("answers collected", "stage", StageCollect, "answered", len(answers))

	return res, nil
}
