// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/opsfill/opsfill/internal/collect"
	"github.com/opsfill/opsfill/internal/issue"
	"github.com/opsfill/opsfill/internal/opsource"
	"github.com/opsfill/opsfill/pkg/schema"
)

// ServiceError pairs a pipeline error with its issue catalog entry.
// Always create via newServiceError.
type ServiceError struct {
	// Err is the underlying error (must not be nil).
	Err error
	// IssueID is the catalog entry explaining the failure, or 0.
	IssueID issue.ID
}

// newServiceError creates a ServiceError with a nil-Err panic guard.
func newServiceError(err error, issueID issue.ID) *ServiceError {
	if err == nil {
		panic("ServiceError: Err must not be nil")
	}
	return &ServiceError{Err: err, IssueID: issueID}
}

// Error implements the error interface.
func (e *ServiceError) Error() string { return e.Err.Error() }

// Unwrap returns the underlying error for errors.Is/As chains.
func (e *ServiceError) Unwrap() error { return e.Err }

// classifyError maps a pipeline error to its catalog entry.
// Cancellation is not a failure and is reported separately.
func classifyError(err error) *ServiceError {
	switch {
	case errors.Is(err, ErrNoConfigFile):
		return newServiceError(err, issue.NoConfigFileID)
	case errors.Is(err, schema.ErrMalformedDocument):
		return newServiceError(err, issue.InvalidJSONID)
	case errors.Is(err, schema.ErrInvalidSchema):
		return newServiceError(err, issue.InvalidSchemaID)
	case errors.Is(err, opsource.ErrSourceFailed):
		return newServiceError(err, issue.ExternalSourceFailedID)
	case errors.Is(err, collect.ErrCancelled):
		return newServiceError(err, issue.OperationCancelledID)
	default:
		var ae *issue.ActionableError
		if errors.As(err, &ae) && strings.Contains(ae.Operation, "configuration") {
			return newServiceError(err, issue.ConfigLoadFailedID)
		}
		return newServiceError(err, 0)
	}
}

// renderServiceError prints the one-line diagnostic. Verbose output adds the
// error chain and a pointer to the matching explain topic.
func renderServiceError(stderr io.Writer, svcErr *ServiceError, verbose bool) {
	if svcErr == nil {
		return
	}

	var ae *issue.ActionableError
	if errors.As(svcErr.Err, &ae) {
		fmt.Fprintln(stderr, renderLine(ErrorStyle, ae.Format(verbose)))
	} else {
		fmt.Fprintln(stderr, renderLine(ErrorStyle, svcErr.Error()))
		if verbose {
			var sb strings.Builder
			sb.WriteString("Error chain:")
			issue.WriteChain(&sb, chainRoot(svcErr.Err))
			fmt.Fprintln(stderr, renderLine(VerboseStyle, sb.String()))
		}
	}

	if !verbose || svcErr.IssueID == 0 {
		return
	}
	if entry := issue.Get(svcErr.IssueID); entry != nil {
		fmt.Fprintln(stderr, VerboseStyle.Render("Run ")+CmdStyle.Render("opsfill explain "+entry.Topic())+VerboseStyle.Render(" for help."))
	}
}

// chainRoot picks the error whose chain is worth printing: the hidden cause
// for schema diagnostics, the error itself otherwise.
func chainRoot(err error) error {
	if d := schema.Cause(err); d != nil {
		return d
	}
	return err
}
