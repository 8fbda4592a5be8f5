// SPDX-License-Identifier: MPL-2.0

package opsource

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/tidwall/gjson"

	"github.com/opsfill/opsfill/pkg/types"
)

// DefaultCommand is the external tool used when no override is configured.
const DefaultCommand = "ops"

var (
	// ErrSourceFailed is the sentinel error wrapped by FailureError.
	ErrSourceFailed = errors.New("external config source failed")
	// ErrUnparseableOutput is returned when the tool exits 0 without a JSON object on stdout.
	ErrUnparseableOutput = errors.New("output is not a JSON object")
	// ErrEmptyCommand is returned by New when the command name is blank.
	ErrEmptyCommand = errors.New("external command name must not be empty")
)

type (
	// ExternalConfig holds the configuration already resolved by the external
	// tool. Values are kept raw and never inspected; only key presence matters.
	ExternalConfig struct {
		keys   []string
		values map[string]json.RawMessage
	}

	// FailureError reports a failed query of the external tool.
	// When the tool wrote to stderr, Error returns that text verbatim.
	FailureError struct {
		Command  string
		ExitCode types.ExitCode
		Stderr   string
		Cause    error
	}

	// Adapter fetches known configuration keys from the external tool.
	Adapter struct {
		command string
		runner  Runner
		logger  *log.Logger
	}

	// Option configures an Adapter.
	Option func(*Adapter)
)

// Args returns the fixed arguments that request the tool's configuration as JSON.
func Args() []string { return []string{"-config", "-d"} }

// Error implements the error interface.
func (e *FailureError) Error() string {
	if strings.TrimSpace(e.Stderr) != "" {
		return strings.TrimRight(e.Stderr, "\r\n")
	}
	invocation := e.Command + " " + strings.Join(Args(), " ")
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", invocation, e.Cause)
	}
	return fmt.Sprintf("%s: exit status %s", invocation, e.ExitCode)
}

// Unwrap returns ErrSourceFailed and the cause, if any, for errors.Is() compatibility.
func (e *FailureError) Unwrap() []error {
	if e.Cause != nil {
		return []error{ErrSourceFailed, e.Cause}
	}
	return []error{ErrSourceFailed}
}

// WithRunner replaces the process runner.
func WithRunner(r Runner) Option {
	return func(a *Adapter) {
		a.runner = r
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *log.Logger) Option {
	return func(a *Adapter) {
		a.logger = l
	}
}

// New creates an Adapter that invokes command.
func New(command string, opts ...Option) (*Adapter, error) {
	if strings.TrimSpace(command) == "" {
		return nil, ErrEmptyCommand
	}
	a := &Adapter{
		command: command,
		runner:  NewExecRunner(),
		logger:  log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// Command returns the external command name.
func (a *Adapter) Command() string { return a.command }

// FetchKnownKeys runs the external tool once and returns its configuration.
func (a *Adapter) FetchKnownKeys(ctx context.Context) (*ExternalConfig, error) {
	a.logger.Debug("querying external config source", "cmd", a.command, "args", strings.Join(Args(), " "))

	res, err := a.runner.Run(ctx, a.command, Args()...)
	if err != nil {
		return nil, &FailureError{Command: a.command, ExitCode: types.ExitFailure, Cause: err}
	}

	if !res.ExitCode.IsSuccess() {
		a.logger.Debug("external config source failed", "cmd", a.command, "exit", res.ExitCode)
		return nil, &FailureError{
			Command:  a.command,
			ExitCode: res.ExitCode,
			Stderr:   string(res.Stderr),
		}
	}

	known, err := ParseExternalConfig(res.Stdout)
	if err != nil {
		return nil, &FailureError{Command: a.command, Cause: err}
	}

	a.logger.Debug("external config source answered", "cmd", a.command, "keys", known.Len())
	return known, nil
}

// ParseExternalConfig decodes stdout of the tool. It must be a single JSON object.
func ParseExternalConfig(data []byte) (*ExternalConfig, error) {
	if !gjson.ValidBytes(data) {
		return nil, ErrUnparseableOutput
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, ErrUnparseableOutput
	}

	cfg := &ExternalConfig{values: make(map[string]json.RawMessage)}
	root.ForEach(func(key, value gjson.Result) bool {
		k := key.String()
		if _, dup := cfg.values[k]; !dup {
			cfg.keys = append(cfg.keys, k)
		}
		cfg.values[k] = json.RawMessage(value.Raw)
		return true
	})
	return cfg, nil
}

// Has reports whether the tool already resolves key.
func (c *ExternalConfig) Has(key string) bool {
	if c == nil {
		return false
	}
	_, ok := c.values[key]
	return ok
}

// Len returns the number of resolved keys.
func (c *ExternalConfig) Len() int {
	if c == nil {
		return 0
	}
	return len(c.keys)
}

// Keys returns the resolved keys in the order the tool printed them.
func (c *ExternalConfig) Keys() []string {
	if c == nil {
		return nil
	}
	return slices.Clone(c.keys)
}

// Raw returns the undecoded value the tool printed for key.
func (c *ExternalConfig) Raw(key string) (json.RawMessage, bool) {
	if c == nil {
		return nil, false
	}
	v, ok := c.values[key]
	return slices.Clone(v), ok
}
