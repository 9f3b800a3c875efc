package shell

import "fmt"

// bashFormatter wraps each ANSI escape in \[ \], the marker bash's readline
// uses to exclude non-printing bytes from its cursor-position arithmetic.
// Without it, a colored PS1 makes bash miscount the prompt width and garble
// line-editing after a terminal resize or history recall.
type bashFormatter struct{}

func (bashFormatter) FormatANSI(ansiCode, text, resetCode string) string {
	if text == "" {
		return ""
	}
	return fmt.Sprintf("\\[%s[%sm\\]%s\\[%s[%sm\\]", esc, ansiCode, text, esc, resetCode)
}

func (bashFormatter) Finalize(output string) string { return output }
