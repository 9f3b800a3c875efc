package template

import "strings"

var colorNames = map[string]Color{
	"black":          Black,
	"red":            Red,
	"green":          Green,
	"yellow":         Yellow,
	"blue":           Blue,
	"magenta":        Magenta,
	"cyan":           Cyan,
	"white":          White,
	"bright_black":   BrightBlack,
	"bright_red":     BrightRed,
	"bright_green":   BrightGreen,
	"bright_yellow":  BrightYellow,
	"bright_blue":    BrightBlue,
	"bright_magenta": BrightMagenta,
	"bright_cyan":    BrightCyan,
	"bright_white":   BrightWhite,
}

var modifierNames = map[string]Modifier{
	"bold":      Bold,
	"italic":    Italic,
	"underline": Underline,
	"normal":    Normal,
}

// parseStyle parses a comma-separated STYLE token list (spec §4.B.1).
// Unknown tokens are reported in errs but otherwise ignored — the rest of
// the style list still applies, matching "silently treated as no style" for
// the bad token alone rather than discarding the whole style.
func parseStyle(s string, pos int, errs *[]ParseError) Style {
	style := Style{Modifiers: map[Modifier]bool{}}
	if s == "" {
		return style
	}

	for _, raw := range strings.Split(s, ",") {
		tok := strings.TrimSpace(raw)
		if tok == "" {
			continue
		}
		lower := strings.ToLower(tok)

		// "dim" is spelled as a color historically but lives as a modifier.
		if lower == "dim" {
			style.Modifiers[Dim] = true
			continue
		}
		if c, ok := colorNames[lower]; ok {
			style.Color = c
			continue
		}
		if m, ok := modifierNames[lower]; ok {
			style.Modifiers[m] = true
			continue
		}

		if errs != nil {
			*errs = append(*errs, ParseError{
				Kind: KindStyleUnknown,
				Pos:  pos,
				Msg:  "unknown color or style modifier: " + tok,
			})
		}
	}

	return style
}

// ansiCode returns the SGR parameter string for a style, e.g. "32" or
// "1;32". Empty means no style codes should be emitted at all.
func ansiCode(s Style) string {
	var parts []string

	if s.Modifiers[Bold] {
		parts = append(parts, "1")
	}
	if s.Modifiers[Italic] {
		parts = append(parts, "3")
	}
	if s.Modifiers[Underline] {
		parts = append(parts, "4")
	}
	if s.Modifiers[Dim] {
		parts = append(parts, "2")
	}
	if s.Modifiers[Normal] {
		parts = append(parts, "0")
	}

	if code, ok := colorCodes[s.Color]; ok {
		parts = append(parts, code)
	}

	return strings.Join(parts, ";")
}

var colorCodes = map[Color]string{
	Black:         "30",
	Red:           "31",
	Green:         "32",
	Yellow:        "33",
	Blue:          "34",
	Magenta:       "35",
	Cyan:          "36",
	White:         "37",
	BrightBlack:   "90",
	BrightRed:     "91",
	BrightGreen:   "92",
	BrightYellow:  "93",
	BrightBlue:    "94",
	BrightMagenta: "95",
	BrightCyan:    "96",
	BrightWhite:   "97",
}
