// SPDX-License-Identifier: MPL-2.0

// Package tui renders the operator-facing prompts of an opsfill run.
//
// It wraps charmbracelet/huh forms (input, select, confirm), the huh spinner,
// and lipgloss banners. Prompts are written to stderr so stdout stays free for
// the collected configuration. Accessible mode (line-based prompts) is used
// whenever stdin is not a terminal or ACCESSIBLE is set.
package tui
