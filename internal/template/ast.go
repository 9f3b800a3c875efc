// Package template lexes, parses, validates, and renders twig's template
// mini-language: literal text, variable and environment substitutions,
// styled literals, and conditional-space markers.
package template

// Modifier is a style attribute independent of color.
type Modifier int

const (
	Bold Modifier = iota
	Italic
	Underline
	Dim
	Normal
)

// Color names the 8 base ANSI colors and their 8 bright variants.
// "dim" is historically spelled as a color name in style lists even though
// it behaves as a modifier at render time; parseStyle folds it into
// Style.Modifiers rather than Style.Color so render code only has to
// special-case modifiers, never colors, for "dim".
type Color int

const (
	ColorNone Color = iota
	Black
	Red
	Green
	Yellow
	Blue
	Magenta
	Cyan
	White
	BrightBlack
	BrightRed
	BrightGreen
	BrightYellow
	BrightBlue
	BrightMagenta
	BrightCyan
	BrightWhite
)

// Style is the parsed form of a comma-separated STYLE token list.
type Style struct {
	Color     Color
	Modifiers map[Modifier]bool
}

// IsEmpty reports whether the style carries no color and no modifiers, the
// case render.go uses to skip emitting any ANSI wrap at all.
func (s Style) IsEmpty() bool {
	return s.Color == ColorNone && len(s.Modifiers) == 0
}

// NodeKind discriminates the AST node variants. Node dispatch is a closed
// set (spec §3), so a tagged enum is used instead of an interface hierarchy.
type NodeKind int

const (
	NodeText NodeKind = iota
	NodeConditionalSpace
	NodeVariable
	NodeEnvVar
	NodeLiteral
)

// Node is a single AST element. Only the fields relevant to Kind are
// meaningful; this mirrors the closed, small variant set spec §9 calls for
// rather than one interface type per kind.
type Node struct {
	Kind  NodeKind
	Text  string // NodeText, NodeLiteral
	Name  string // NodeVariable, NodeEnvVar
	Style Style  // NodeVariable, NodeEnvVar, NodeLiteral
}

// AST is a parsed template: an ordered sequence of nodes.
type AST struct {
	Nodes []Node
}
