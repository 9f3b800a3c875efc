package shell

import "fmt"

// zshFormatter wraps each ANSI escape in %{ %}, zsh's equivalent of bash's
// \[ \] marker for PS1 width accounting.
type zshFormatter struct{}

func (zshFormatter) FormatANSI(ansiCode, text, resetCode string) string {
	if text == "" {
		return ""
	}
	return fmt.Sprintf("%%{%s[%sm%%}%s%%{%s[%sm%%}", esc, ansiCode, text, esc, resetCode)
}

// Finalize rewrites real newline bytes to the literal \n sequence, the same
// requirement tcsh has (spec §4.A): zsh's PROMPT assignment ends at the
// first raw newline it sees.
func (zshFormatter) Finalize(output string) string {
	return rewriteNewlines(output)
}
