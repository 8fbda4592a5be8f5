// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/opsfill/opsfill/internal/opsource"
	"github.com/opsfill/opsfill/internal/output"
	"github.com/opsfill/opsfill/internal/tui"
)

var (
	// ErrInvalidOpsCommand is returned when the external command name is blank.
	ErrInvalidOpsCommand = errors.New("invalid ops command")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// Config is the opsfill application configuration.
	Config struct {
		// OpsCmd is the external command queried with "-config -d".
		OpsCmd string `json:"ops_cmd" mapstructure:"ops_cmd"`
		// UI configures prompts and diagnostics.
		UI UIConfig `json:"ui" mapstructure:"ui"`
		// Output configures how answers are printed.
		Output OutputConfig `json:"output" mapstructure:"output"`
	}

	// UIConfig configures the user interface.
	UIConfig struct {
		// Theme selects the prompt theme.
		Theme tui.Theme `json:"theme" mapstructure:"theme"`
		// Accessible forces line-based prompts.
		Accessible bool `json:"accessible" mapstructure:"accessible"`
		// Verbose enables debug logging and error chains.
		Verbose bool `json:"verbose" mapstructure:"verbose"`
	}

	// OutputConfig configures the answer document.
	OutputConfig struct {
		// Format is the document encoding.
		Format output.Format `json:"format" mapstructure:"format"`
	}

	// InvalidConfigError collects every field that failed validation.
	InvalidConfigError struct {
		FieldErrors []error
	}
)

// Error implements the error interface.
func (e *InvalidConfigError) Error() string {
	msgs := make([]string, len(e.FieldErrors))
	for i, err := range e.FieldErrors {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("invalid config: %s", strings.Join(msgs, "; "))
}

// Unwrap returns ErrInvalidConfig followed by the field errors, so errors.Is
// matches both the sentinel and the per-field causes.
func (e *InvalidConfigError) Unwrap() []error {
	return append([]error{ErrInvalidConfig}, e.FieldErrors...)
}

// Validate checks every field and reports all failures at once.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.OpsCmd) == "" {
		errs = append(errs, fmt.Errorf("ops_cmd: %w", ErrInvalidOpsCommand))
	}
	if err := c.UI.Theme.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("ui.theme: %w", err))
	}
	if err := c.Output.Format.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("output.format: %w", err))
	}
	if len(errs) > 0 {
		return &InvalidConfigError{FieldErrors: errs}
	}
	return nil
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		OpsCmd: opsource.DefaultCommand,
		UI: UIConfig{
			Theme:      tui.ThemeDefault,
			Accessible: false,
			Verbose:    false,
		},
		Output: OutputConfig{
			Format: output.FormatJSON,
		},
	}
}
