package shell

import "fmt"

// rawFormatter is used for interactive terminal display (twig --debug, or a
// prompt consumer with no shell-specific line-editor to satisfy) — just the
// ANSI escape itself, no non-printing wrapper.
type rawFormatter struct{}

func (rawFormatter) FormatANSI(ansiCode, text, resetCode string) string {
	if text == "" {
		return ""
	}
	return fmt.Sprintf("%s[%sm%s%s[%sm", esc, ansiCode, text, esc, resetCode)
}

func (rawFormatter) Finalize(output string) string { return output }
