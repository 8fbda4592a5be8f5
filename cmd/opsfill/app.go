// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"io"
	"os"

	"github.com/opsfill/opsfill/internal/collect"
	"github.com/opsfill/opsfill/internal/config"
	"github.com/opsfill/opsfill/internal/opsource"
)

type (
	// App wires CLI services and shared dependencies. It is the composition
	// root for the CLI layer: every Cobra handler receives an App reference.
	App struct {
		Config   config.Provider
		Runner   opsource.Runner
		Prompter collect.Prompter
		stdin    io.Reader
		stdout   io.Writer
		stderr   io.Writer
	}

	// Dependencies defines the injection points for building an App. Nil
	// fields are replaced with production defaults by NewApp. A nil Prompter
	// means huh prompts configured from the loaded UI settings.
	Dependencies struct {
		Config   config.Provider
		Runner   opsource.Runner
		Prompter collect.Prompter
		Stdin    io.Reader
		Stdout   io.Writer
		Stderr   io.Writer
	}
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) *App {
	if deps.Stdin == nil {
		deps.Stdin = os.Stdin
	}
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}
	if deps.Runner == nil {
		deps.Runner = opsource.NewExecRunner()
	}

	return &App{
		Config:   deps.Config,
		Runner:   deps.Runner,
		Prompter: deps.Prompter,
		stdin:    deps.Stdin,
		stdout:   deps.Stdout,
		stderr:   deps.Stderr,
	}
}
