// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/opsfill/opsfill/internal/issue"
)

// newExplainCommand creates `opsfill explain [topic]`.
func newExplainCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "explain [topic]",
		Short: "Explain a diagnostic and how to fix it",
		Long: `Explain a diagnostic and how to fix it.

Without a topic, the available topics are listed.`,
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: issue.Topics(),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				for _, i := range issue.Values() {
					fmt.Fprintln(app.stdout, CmdStyle.Render(i.Topic()))
				}
				return nil
			}

			entry, ok := issue.Lookup(args[0])
			if !ok {
				err := fmt.Errorf("unknown topic %q (valid: %s)", args[0], strings.Join(issue.Topics(), ", "))
				return fail(app.stderr, err, false)
			}

			rendered, err := entry.Render(glamourStyle(app.stdout))
			if err != nil {
				return fail(app.stderr, err, false)
			}
			fmt.Fprint(app.stdout, rendered)
			return nil
		},
	}
}

// glamourStyle picks the dark theme for terminals and plain text otherwise.
func glamourStyle(w io.Writer) string {
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return "dark"
	}
	return "notty"
}
