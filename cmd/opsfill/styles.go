// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette shared by all CLI output, tuned for dark terminals.
const (
	// ColorPrimary is purple - used for titles and primary emphasis.
	ColorPrimary = lipgloss.Color("#7C3AED")
	// ColorMuted is gray - used for subtitles and de-emphasized content.
	ColorMuted = lipgloss.Color("#6B7280")
	// ColorError is red - used for diagnostics.
	ColorError = lipgloss.Color("#EF4444")
	// ColorWarning is amber - used for warnings.
	ColorWarning = lipgloss.Color("#F59E0B")
	// ColorHighlight is blue - used for commands and topics.
	ColorHighlight = lipgloss.Color("#3B82F6")
	// ColorVerbose is light gray - used for verbose output.
	ColorVerbose = lipgloss.Color("#9CA3AF")
)

var (
	// TitleStyle is for primary headers.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	// SubtitleStyle is for secondary headers and descriptions.
	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// ErrorStyle is for the one-line diagnostic.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError)

	// WarningStyle is for warnings.
	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)

	// CmdStyle is for command names and topics.
	CmdStyle = lipgloss.NewStyle().
			Foreground(ColorHighlight)

	// VerboseStyle is for error chains and other verbose detail.
	VerboseStyle = lipgloss.NewStyle().
			Foreground(ColorVerbose)
)

// renderLine styles a single-line message. Multi-line text is returned
// unchanged because lipgloss pads every line to the widest one, which would
// alter stderr relayed from the external tool.
func renderLine(style lipgloss.Style, msg string) string {
	if strings.Contains(msg, "\n") {
		return msg
	}
	return style.Render(msg)
}
