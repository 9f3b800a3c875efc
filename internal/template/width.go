package template

import (
	"strings"

	"github.com/rivo/uniseg"
)

// VisibleLength returns the number of terminal columns s would occupy once
// every ANSI escape and shell-specific wrapper has been stripped, counting
// by grapheme cluster rather than by byte or rune so multi-codepoint
// emoji/combining sequences count once (spec §4.B.5). The responsive
// selector (internal/selector) calls this to decide whether a rendered wide
// format fits the terminal.
func VisibleLength(s string) int {
	stripped := StripEscapes(s)

	width := 0
	state := -1
	for len(stripped) > 0 {
		var w int
		_, stripped, w, state = uniseg.FirstGraphemeClusterInString(stripped, state)
		width += w
	}
	return width
}

// StripEscapes removes raw ANSI CSI sequences (ESC '[' ... final-byte) and
// the shell-specific non-printing wrappers bash (`\[...\]`) and zsh/tcsh
// (`%{...%}`) use around them, since none of these occupy a terminal
// column. Also used by cmd/twig's debug box to print a plain-text render of
// a styled prompt.
func StripEscapes(s string) string {
	var out strings.Builder
	out.Grow(len(s))

	runes := []rune(s)
	n := len(runes)
	for i := 0; i < n; {
		switch {
		case runes[i] == 0x1b && i+1 < n && runes[i+1] == '[':
			i += 2
			for i < n && !isCSIFinal(runes[i]) {
				i++
			}
			if i < n {
				i++ // consume final byte
			}
		case runes[i] == '\\' && i+1 < n && (runes[i+1] == '[' || runes[i+1] == ']'):
			i += 2
		case runes[i] == '%' && i+1 < n && (runes[i+1] == '{' || runes[i+1] == '}'):
			i += 2
		default:
			out.WriteRune(runes[i])
			i++
		}
	}
	return out.String()
}

func isCSIFinal(r rune) bool {
	return r >= 0x40 && r <= 0x7e
}
