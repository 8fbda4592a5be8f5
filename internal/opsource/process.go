// SPDX-License-Identifier: MPL-2.0

package opsource

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"

	"github.com/opsfill/opsfill/pkg/types"
)

type (
	// ProcessResult is the outcome of a finished process. A non-zero exit is a
	// value here, not an error.
	ProcessResult struct {
		ExitCode types.ExitCode
		Stdout   []byte
		Stderr   []byte
	}

	// Runner starts a process and waits for it to finish.
	// Implementations return an error only when the process could not be run
	// at all (binary missing, permission denied, context cancelled).
	Runner interface {
		Run(ctx context.Context, name string, args ...string) (*ProcessResult, error)
	}

	// ExecCommandFunc is the function signature for creating exec.Cmd.
	// This allows injection of mock implementations for testing.
	ExecCommandFunc func(ctx context.Context, name string, args ...string) *exec.Cmd

	// ExecRunner runs processes through os/exec with stdout and stderr captured.
	ExecRunner struct {
		execCommand ExecCommandFunc
	}
)

// NewExecRunner creates a Runner backed by exec.CommandContext.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{execCommand: exec.CommandContext}
}

// NewExecRunnerWith creates a Runner that builds commands with fn.
func NewExecRunnerWith(fn ExecCommandFunc) *ExecRunner {
	return &ExecRunner{execCommand: fn}
}

// Run implements Runner. Stdin is left unconnected so the child can never
// wait on the operator.
func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) (*ProcessResult, error) {
	var stdout, stderr bytes.Buffer

	cmd := r.execCommand(ctx, name, args...)
	cmd.Stdin = nil
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, fmt.Errorf("run %s: %w", name, ctxErr)
	}

	result := &ProcessResult{
		Stdout: stdout.Bytes(),
		Stderr: stderr.Bytes(),
	}
	if err == nil {
		return result, nil
	}

	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return nil, err
	}

	code := types.ExitCode(exitErr.ExitCode())
	if code.Validate() != nil {
		// Killed by a signal; ExitCode() reports -1.
		code = types.ExitFailure
	}
	result.ExitCode = code
	return result, nil
}
