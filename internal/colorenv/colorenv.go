// Package colorenv decides whether the debug boxed view twig prints to
// stdout (cmd/twig's printDebugBox) may use color.
//
// A renderer is color-capable when NO_COLOR (https://no-color.org/) is
// unset and stdout is an actual terminal rather than a pipe or redirect.
// When it isn't, lipgloss is pinned to its Ascii profile so every styled
// render degrades to plain text. The prompt template's own ANSI codes
// (internal/shell) are a separate concern and untouched by this package.
package colorenv

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// colorCapable reports whether stdout can take color right now.
func colorCapable() bool {
	if _, noColor := os.LookupEnv("NO_COLOR"); noColor {
		return false
	}
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// ShouldDisableColor reports the opposite of colorCapable, for callers that
// read more naturally as a negative check before suppressing styling.
func ShouldDisableColor() bool {
	return !colorCapable()
}

// Apply pins the global lipgloss renderer to the Ascii profile when color
// isn't capable, and reports whether color ended up enabled.
func Apply() bool {
	if !colorCapable() {
		lipgloss.SetColorProfile(termenv.Ascii)
		return false
	}
	return true
}

// ForceDisable unconditionally switches lipgloss to the Ascii profile,
// regardless of environment — for tests that need deterministic plain-text
// rendering.
func ForceDisable() {
	lipgloss.SetColorProfile(termenv.Ascii)
}
