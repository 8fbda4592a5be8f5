// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/opsfill/opsfill/internal/app/fill"
	"github.com/opsfill/opsfill/internal/collect"
	"github.com/opsfill/opsfill/internal/config"
	"github.com/opsfill/opsfill/internal/logging"
	"github.com/opsfill/opsfill/internal/opsource"
	"github.com/opsfill/opsfill/internal/output"
	"github.com/opsfill/opsfill/internal/tui"
	"github.com/opsfill/opsfill/pkg/schema"
)

// introAsker prints the intro banner before the first prompt.
type introAsker struct {
	next *collect.Collector
	w    io.Writer
}

// Collect implements fill.Asker.
func (a *introAsker) Collect(ctx context.Context, missing *schema.ConfigSchema) (collect.Answers, error) {
	tui.Intro(a.w, fmt.Sprintf("opsfill: %d value(s) to fill in", missing.Len()))
	return a.next.Collect(ctx, missing)
}

// runFill is the root command: reconcile the schema and print the result.
func runFill(cmd *cobra.Command, app *App, opts *rootOptions, args []string) error {
	ctx := cmd.Context()
	stderr := app.stderr

	path, extra, err := schemaArg(args)
	if err != nil {
		return fail(stderr, err, opts.verbose)
	}
	if extra {
		fmt.Fprintln(stderr, renderLine(WarningStyle, AdditionalArgsMsg))
	}

	loaded, err := app.Config.Load(ctx, config.LoadOptions{ConfigFilePath: opts.configPath})
	if err != nil {
		return fail(stderr, err, opts.verbose)
	}
	cfg := loaded.Config
	if err = opts.apply(cmd, cfg); err != nil {
		return fail(stderr, err, opts.verbose)
	}
	verbose := cfg.UI.Verbose

	logger := logging.New(stderr, logging.Options{Verbose: verbose})
	if loaded.Path != "" {
		logger.Debug("configuration loaded", "path", loaded.Path)
	}

	source, err := opsource.New(cfg.OpsCmd, opsource.WithRunner(app.Runner), opsource.WithLogger(logger))
	if err != nil {
		return fail(stderr, err, verbose)
	}

	uiCfg := app.tuiConfig(cfg)
	prompter := app.Prompter
	if prompter == nil {
		prompter = tui.NewPrompter(uiCfg)
	}

	res, err := fill.Run(ctx, fill.Request{
		SchemaPath: path,
		Source:     source,
		Asker:      &introAsker{next: collect.New(prompter, collect.WithLogger(logger)), w: stderr},
		DryRun:     opts.dryRun,
		Logger:     logger,
		Wrap: func(ctx context.Context, fetch func(context.Context) error) error {
			return tui.Spin(ctx, uiCfg, "Asking "+source.Command()+" for known configuration", fetch)
		},
	})
	if errors.Is(err, collect.ErrCancelled) {
		tui.Cancel(stderr, OperationCancelledMsg)
		return nil
	}
	if err != nil {
		return fail(stderr, err, verbose)
	}

	doc, err := resultDocument(res, opts)
	if err != nil {
		return fail(stderr, err, verbose)
	}
	if err := output.Render(app.stdout, doc, cfg.Output.Format); err != nil {
		return fail(stderr, err, verbose)
	}

	switch {
	case opts.dryRun:
	case res.Complete():
		tui.Note(stderr, "All keys are already configured.")
	default:
		tui.Outro(stderr, "Configuration complete.")
	}
	return nil
}

// resultDocument selects what goes to stdout.
func resultDocument(res *fill.Result, opts *rootOptions) (output.Document, error) {
	switch {
	case opts.dryRun:
		return output.Missing(res.Missing), nil
	case opts.all:
		return output.Finished(res.Schema, res.Known, res.Answers)
	default:
		return output.Answers(res.Answers)
	}
}

// tuiConfig derives prompt settings from the terminal and the configuration.
func (a *App) tuiConfig(cfg *config.Config) tui.Config {
	c := tui.DefaultConfig()
	c.Theme = cfg.UI.Theme
	c.Accessible = c.Accessible || cfg.UI.Accessible || !isTerminalInput(a.stdin)
	c.Input = a.stdin
	c.Output = a.stderr
	if _, ok := a.stderr.(*os.File); !ok || c.Accessible {
		c.Animate = false
	}
	return c
}

// isTerminalInput reports whether r is a terminal. Readers that are not files,
// such as test input, never are.
func isTerminalInput(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
