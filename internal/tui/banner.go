// SPDX-License-Identifier: MPL-2.0

package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

const (
	colorPrimary = lipgloss.Color("#7C3AED")
	colorMuted   = lipgloss.Color("#6B7280")
	colorSuccess = lipgloss.Color("#10B981")
	colorWarning = lipgloss.Color("#F59E0B")
)

// Intro prints the inverse title banner that opens a run.
func Intro(w io.Writer, title string) {
	r := lipgloss.NewRenderer(w)
	style := r.NewStyle().
		Reverse(true).
		Bold(true).
		Foreground(colorPrimary).
		Padding(0, 1)
	fmt.Fprintln(w)
	fmt.Fprintln(w, style.Render(title))
}

// Outro prints the closing line of a successful run.
func Outro(w io.Writer, msg string) {
	r := lipgloss.NewRenderer(w)
	fmt.Fprintln(w, r.NewStyle().Foreground(colorSuccess).Render("✔ "+msg))
}

// Cancel prints the cancellation notice.
func Cancel(w io.Writer, msg string) {
	r := lipgloss.NewRenderer(w)
	fmt.Fprintln(w, r.NewStyle().Foreground(colorWarning).Render(msg))
}

// Note prints a muted informational line.
func Note(w io.Writer, msg string) {
	r := lipgloss.NewRenderer(w)
	fmt.Fprintln(w, r.NewStyle().Foreground(colorMuted).Render(msg))
}
