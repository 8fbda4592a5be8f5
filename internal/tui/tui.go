// SPDX-License-Identifier: MPL-2.0

package tui

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"
)

const (
	// ThemeDefault uses the default huh theme.
	ThemeDefault Theme = "default"
	// ThemeCharm uses the Charm theme.
	ThemeCharm Theme = "charm"
	// ThemeDracula uses the Dracula theme.
	ThemeDracula Theme = "dracula"
	// ThemeCatppuccin uses the Catppuccin theme.
	ThemeCatppuccin Theme = "catppuccin"
	// ThemeBase16 uses the Base16 theme.
	ThemeBase16 Theme = "base16"
)

// ErrInvalidTheme is the sentinel error wrapped by InvalidThemeError.
var ErrInvalidTheme = errors.New("invalid theme")

type (
	// Theme represents the visual theme for prompts.
	Theme string

	// InvalidThemeError is returned when a Theme value is not recognized.
	InvalidThemeError struct {
		Value Theme
	}

	// Config holds common configuration for TUI components.
	Config struct {
		// Theme specifies the visual theme to use.
		Theme Theme
		// Accessible enables line-based prompts for screen readers and pipes.
		Accessible bool
		// Animate enables the spinner; disabled when stdout is not a terminal.
		Animate bool
		// Input is where prompts read from.
		Input io.Reader
		// Output is where prompts and banners are written.
		Output io.Writer
	}
)

// Error implements the error interface.
func (e *InvalidThemeError) Error() string {
	return fmt.Sprintf("invalid theme %q (valid: %s)", e.Value, strings.Join(ThemeNames(), ", "))
}

// Unwrap returns ErrInvalidTheme for errors.Is() compatibility.
func (e *InvalidThemeError) Unwrap() error { return ErrInvalidTheme }

// ThemeNames lists the recognized theme names.
func ThemeNames() []string {
	return []string{
		string(ThemeDefault), string(ThemeCharm), string(ThemeDracula),
		string(ThemeCatppuccin), string(ThemeBase16),
	}
}

// Validate returns nil for a recognized theme.
func (t Theme) Validate() error {
	switch t {
	case ThemeDefault, ThemeCharm, ThemeDracula, ThemeCatppuccin, ThemeBase16:
		return nil
	default:
		return &InvalidThemeError{Value: t}
	}
}

// DefaultConfig returns the configuration for the current process.
// Accessible mode is enabled when stdin is not a terminal or when the
// ACCESSIBLE environment variable is set.
func DefaultConfig() Config {
	accessible := !isTerminal(os.Stdin) || os.Getenv("ACCESSIBLE") != ""
	return Config{
		Theme:      ThemeDefault,
		Accessible: accessible,
		Animate:    !accessible && isTerminal(os.Stdout) && isTerminal(os.Stderr),
		Input:      os.Stdin,
		Output:     os.Stderr,
	}
}

// isTerminal reports whether f is connected to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// huhTheme converts a Theme to a huh.Theme.
func huhTheme(t Theme) *huh.Theme {
	switch t {
	case ThemeCharm:
		return huh.ThemeCharm()
	case ThemeDracula:
		return huh.ThemeDracula()
	case ThemeCatppuccin:
		return huh.ThemeCatppuccin()
	case ThemeBase16:
		return huh.ThemeBase16()
	default:
		return huh.ThemeBase()
	}
}
