package shell

import (
	"fmt"
	"strings"
)

// tcshFormatter wraps escapes the same way zsh does (%{ %}) but Finalize
// applies tcsh's own quirks on top: a literal newline inside `set prompt`
// terminates the assignment early, a bare `%` outside a %{ %} pair is
// tcsh's own prompt-escape introducer, and `!` expands history unless
// escaped.
type tcshFormatter struct{}

func (tcshFormatter) FormatANSI(ansiCode, text, resetCode string) string {
	if text == "" {
		return ""
	}
	return fmt.Sprintf("%%{%s[%sm%%}%s%%{%s[%sm%%}", esc, ansiCode, text, esc, resetCode)
}

func (tcshFormatter) Finalize(output string) string {
	// A "%}" immediately followed by a real newline reads, to tcsh, as the
	// close-marker swallowing the line break; insert a space to keep them
	// visually and functionally distinct before the newline itself is
	// rewritten to a literal "\n" below.
	output = strings.ReplaceAll(output, "%}\n", "%} \n")
	output = rewriteNewlines(output)
	output = doubleUnpairedPercent(output)
	output = strings.ReplaceAll(output, "!", `\!`)
	return output
}

// doubleUnpairedPercent doubles every '%' that is not part of one of our
// own "%{" / "%}" wrapper tokens, since tcsh otherwise treats a bare '%' as
// the start of one of its own prompt escape sequences.
func doubleUnpairedPercent(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != '%' {
			b.WriteByte(s[i])
			continue
		}
		if i+1 < len(s) && (s[i+1] == '{' || s[i+1] == '}') {
			b.WriteByte('%')
			b.WriteByte(s[i+1])
			i++
			continue
		}
		b.WriteString("%%")
	}
	return b.String()
}
