// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opsfill/opsfill/internal/config"
	"github.com/opsfill/opsfill/internal/issue"
)

// newConfigCommand creates the `opsfill config` command tree.
func newConfigCommand(app *App, opts *rootOptions) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage opsfill configuration",
		Long: `Manage opsfill configuration.

Configuration is stored in:
  - Linux: ~/.config/opsfill/config.cue
  - macOS: ~/Library/Application Support/opsfill/config.cue
  - Windows: %APPDATA%\opsfill\config.cue

Every key can be overridden with an OPSFILL_* environment variable
(OPSFILL_UI_THEME, OPSFILL_OUTPUT_FORMAT, ...). The external command also
honors OPS_CMD.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration as CUE",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := app.Config.Load(cmd.Context(), config.LoadOptions{ConfigFilePath: opts.configPath})
			if err != nil {
				return fail(app.stderr, err, opts.verbose)
			}

			source := loaded.Path
			if source == "" {
				source = "defaults and environment"
			}
			fmt.Fprintf(app.stdout, "// source: %s\n", source)
			fmt.Fprint(app.stdout, config.GenerateCUE(loaded.Config))
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show the configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.configPath != "" {
				fmt.Fprintln(app.stdout, opts.configPath)
				return nil
			}
			path, err := config.ConfigFilePath()
			if err != nil {
				return fail(app.stderr, err, opts.verbose)
			}
			fmt.Fprintln(app.stdout, path)
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create the default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, created, err := config.CreateDefaultConfig()
			if err != nil {
				return fail(app.stderr, issue.WrapWithOperation(err, "create configuration"), opts.verbose)
			}
			if !created {
				fmt.Fprintln(app.stderr, renderLine(WarningStyle, "Configuration already exists: "+path))
				return nil
			}
			fmt.Fprintln(app.stdout, path)
			return nil
		},
	})

	return cfgCmd
}
