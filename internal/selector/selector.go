// Package selector chooses which prompt.format* template to render for a
// given invocation, based on terminal width.
package selector

import (
	"os"

	"github.com/charmbracelet/x/term"

	"github.com/jeffjose/twig/internal/config"
	"github.com/jeffjose/twig/internal/template"
)

// Renderer renders a parsed template to its final, visible-length-measurable
// string. The selector only needs enough of the render pipeline to measure
// dynamic-mode candidates, so it depends on this narrow function type rather
// than the full client pipeline.
type Renderer func(format string) (string, error)

// DetectWidth returns the controlling terminal's column count. Shell prompt
// substitution routinely redirects stdout into a pipe, so detection falls
// back to stderr's file descriptor, which is far more likely to still be
// the controlling TTY. Returns ok=false if neither is a terminal.
func DetectWidth() (width int, ok bool) {
	if w, _, err := term.GetSize(os.Stdout.Fd()); err == nil && w > 0 {
		return w, true
	}
	if w, _, err := term.GetSize(os.Stderr.Fd()); err == nil && w > 0 {
		return w, true
	}
	return 0, false
}

// Select picks the template string to render for prompt, given the detected
// terminal width (ok=false when no controlling terminal was found). render
// is used only in dynamic mode, to measure how wide the wide-format
// candidate actually comes out once variables are substituted.
//
// Static mode (prompt.WidthThreshold set): width below the threshold picks
// FormatNarrow (falling back to Format); otherwise picks FormatWide
// (falling back to Format).
//
// Dynamic mode (prompt.WidthThreshold unset): starts from FormatWide
// (falling back to Format), renders it, and measures its visible length. If
// that length plus padding would overflow the terminal, it falls back to
// FormatNarrow when one is configured.
func Select(prompt config.PromptConfig, width int, widthOK bool, render Renderer) (string, error) {
	wide := prompt.FormatWide
	if wide == "" {
		wide = prompt.Format
	}
	narrow := prompt.FormatNarrow
	if narrow == "" {
		narrow = prompt.Format
	}

	if prompt.WidthThreshold != nil {
		if !widthOK {
			return wide, nil
		}
		if width < *prompt.WidthThreshold {
			return narrow, nil
		}
		return wide, nil
	}

	if !widthOK || prompt.FormatNarrow == "" {
		return wide, nil
	}

	rendered, err := render(wide)
	if err != nil {
		return "", err
	}
	if template.VisibleLength(rendered)+prompt.Padding > width {
		return narrow, nil
	}
	return wide, nil
}
