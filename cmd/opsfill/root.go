// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/opsfill/opsfill/internal/config"
	"github.com/opsfill/opsfill/internal/output"
	"github.com/opsfill/opsfill/internal/tui"
	"github.com/opsfill/opsfill/pkg/types"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// rootOptions holds the flag values of one invocation.
type rootOptions struct {
	verbose    bool
	configPath string
	dryRun     bool
	all        bool
	accessible bool
	format     string
	opsCmd     string
	theme      string
}

// newRootCommand creates the opsfill command tree.
func newRootCommand(app *App) *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "opsfill [flags] <schema.json>",
		Short: "Fill in the configuration the ops tool does not know yet",
		Long: TitleStyle.Render("opsfill") + SubtitleStyle.Render(" - interactive configuration scaffolding") + `

opsfill reads a JSON configuration schema, asks the ops tool which keys it
already resolves ('ops -config -d'), and prompts only for the keys that are
still missing. The answers are printed to stdout.

` + SubtitleStyle.Render("Schema format:") + `
  {
    "name":   { "type": "string" },
    "port":   { "type": "int" },
    "token":  { "type": "password" },
    "region": { "type": ["eu-west-1", "us-east-1"] }
  }

` + SubtitleStyle.Render("Examples:") + `
  opsfill config.schema.json                 Prompt for missing keys
  opsfill --dry-run config.schema.json       Show which keys are missing
  opsfill --all -f yaml config.schema.json   Print the full configuration as YAML
  opsfill explain invalid-schema             Explain a diagnostic`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFill(cmd, app, opts, args)
		},
	}
	root.SetIn(app.stdin)
	root.SetOut(app.stdout)
	root.SetErr(app.stderr)

	pf := root.PersistentFlags()
	pf.BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose output")
	pf.StringVar(&opts.configPath, "config", "", "config file (default is $HOME/.config/opsfill/config.cue)")

	f := root.Flags()
	f.BoolVar(&opts.dryRun, "dry-run", false, "print the missing keys as a schema instead of prompting")
	f.BoolVar(&opts.all, "all", false, "print known and collected keys instead of only the answers")
	f.StringVarP(&opts.format, "format", "f", "", "output format: json, yaml or toml")
	f.StringVar(&opts.opsCmd, "ops-cmd", "", `external command queried for known keys (default "ops", env OPS_CMD)`)
	f.StringVar(&opts.theme, "theme", "", "prompt theme: default, charm, dracula, catppuccin or base16")
	f.BoolVar(&opts.accessible, "accessible", false, "use line-based prompts")
	root.MarkFlagsMutuallyExclusive("dry-run", "all")

	root.AddCommand(newConfigCommand(app, opts))
	root.AddCommand(newExplainCommand(app))

	return root
}

// apply layers the flags that were set on top of the loaded configuration
// and validates the result.
func (o *rootOptions) apply(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("verbose") {
		cfg.UI.Verbose = o.verbose
	}
	if flags.Changed("accessible") {
		cfg.UI.Accessible = o.accessible
	}
	if flags.Changed("theme") {
		cfg.UI.Theme = tui.Theme(o.theme)
	}
	if flags.Changed("format") {
		cfg.Output.Format = output.Format(o.format)
	}
	if flags.Changed("ops-cmd") {
		cfg.OpsCmd = o.opsCmd
	}
	return cfg.Validate()
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute runs the CLI with the process arguments and exits.
// This is called by main.main().
func Execute() {
	os.Exit(Main())
}

// Main runs the CLI with the process arguments and returns the exit code.
func Main() int {
	return run(context.Background(), os.Args[1:], Dependencies{})
}

// run executes one invocation and maps its outcome to an exit code.
func run(ctx context.Context, args []string, deps Dependencies) int {
	root := newRootCommand(NewApp(deps))
	root.SetArgs(args)

	// Pass version via fang.WithVersion() since fang overrides rootCmd.Version
	err := fang.Execute(
		ctx,
		root,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
		fang.WithErrorHandler(handleError),
	)
	if err == nil {
		return int(types.ExitSuccess)
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return int(exitErr.Code)
	}
	return int(types.ExitFailure)
}

// handleError prints errors that were not already reported by a command,
// such as unknown flags, as a single line.
func handleError(w io.Writer, _ fang.Styles, err error) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return
	}
	fmt.Fprintln(w, renderLine(ErrorStyle, err.Error()))
}

// fail reports err on stderr and returns the ExitError ending the command.
func fail(stderr io.Writer, err error, verbose bool) error {
	svcErr := classifyError(err)
	renderServiceError(stderr, svcErr, verbose)
	return &ExitError{Code: types.ExitFailure, Err: svcErr}
}
