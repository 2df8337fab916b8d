// Package textshape prepares certificate text for a PDF writer that places
// glyphs strictly left to right: numerals are normalised, Arabic letters are
// replaced by their contextual presentation forms and lines are reordered
// into visual order.
package textshape

// Direction is the base writing direction of a piece of text.
type Direction int

const (
	LTR Direction = iota
	RTL
)

func (d Direction) String() string {
	if d == RTL {
		return "rtl"
	}
	return "ltr"
}

// ParseDirection accepts "rtl" and "ltr"; anything else is LTR.
func ParseDirection(s string) Direction {
	if s == "rtl" {
		return RTL
	}
	return LTR
}

// Prepare runs the full pipeline on one logical line.
func Prepare(s string, dir Direction) string {
	return Visual(Reshape(NormalizeDigits(s)), dir)
}
