package template

import (
	"os"
	"strings"
)

// Formatter wraps a styled fragment in the ANSI escaping conventions of one
// shell target (spec §4.A). Render calls FormatANSI once per non-empty
// styled fragment and Finalize once over the whole assembled output.
type Formatter interface {
	FormatANSI(ansiCode, text, resetCode string) string
	Finalize(output string) string
}

// Render walks the AST left to right exactly once, resolving NodeVariable
// against vars, NodeEnvVar against the process environment, and wrapping
// styled fragments via f. Conditional spaces are emitted only when the
// substitution immediately following them resolves non-empty (spec
// §4.B.4); an empty resolved value never gets wrapped in style codes, so a
// provider that has nothing to say leaves no stray escape sequences behind.
func Render(ast *AST, vars map[string]string, f Formatter) string {
	var out strings.Builder
	pendingSpace := false

	emit := func(value string, style Style) {
		if value == "" {
			pendingSpace = false
			return
		}
		if pendingSpace {
			out.WriteByte(' ')
		}
		pendingSpace = false

		if style.IsEmpty() {
			out.WriteString(value)
			return
		}
		out.WriteString(f.FormatANSI(ansiCode(style), value, "0"))
	}

	for _, node := range ast.Nodes {
		switch node.Kind {
		case NodeText:
			pendingSpace = false
			out.WriteString(node.Text)
		case NodeConditionalSpace:
			pendingSpace = true
		case NodeVariable:
			emit(vars[node.Name], node.Style)
		case NodeEnvVar:
			emit(os.Getenv(node.Name), node.Style)
		case NodeLiteral:
			emit(node.Text, node.Style)
		}
	}

	return f.Finalize(out.String())
}

// Discover returns the distinct provider-supplied variable names a template
// references, in first-occurrence order. Used by the registry to route
// which providers need to run for a given template (spec §4.B.3, §4.C.2) —
// environment variables and quoted literals never go through a provider, so
// only NodeVariable names are collected.
func Discover(ast *AST) []string {
	seen := make(map[string]bool)
	var names []string
	for _, node := range ast.Nodes {
		if node.Kind != NodeVariable {
			continue
		}
		if seen[node.Name] {
			continue
		}
		seen[node.Name] = true
		names = append(names, node.Name)
	}
	return names
}
