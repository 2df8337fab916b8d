package textshape

import "strings"

// forms holds the presentation forms of a letter: isolated, final, initial,
// medial. Letters with no initial form only join to the previous letter.
type forms [4]rune

const (
	isolated = iota
	final
	initial
	medial
)

var arabicForms = map[rune]forms{
	0x0621: {0xFE80, 0, 0, 0},
	0x0622: {0xFE81, 0xFE82, 0, 0},
	0x0623: {0xFE83, 0xFE84, 0, 0},
	0x0624: {0xFE85, 0xFE86, 0, 0},
	0x0625: {0xFE87, 0xFE88, 0, 0},
	0x0626: {0xFE89, 0xFE8A, 0xFE8B, 0xFE8C},
	0x0627: {0xFE8D, 0xFE8E, 0, 0},
	0x0628: {0xFE8F, 0xFE90, 0xFE91, 0xFE92},
	0x0629: {0xFE93, 0xFE94, 0, 0},
	0x062A: {0xFE95, 0xFE96, 0xFE97, 0xFE98},
	0x062B: {0xFE99, 0xFE9A, 0xFE9B, 0xFE9C},
	0x062C: {0xFE9D, 0xFE9E, 0xFE9F, 0xFEA0},
	0x062D: {0xFEA1, 0xFEA2, 0xFEA3, 0xFEA4},
	0x062E: {0xFEA5, 0xFEA6, 0xFEA7, 0xFEA8},
	0x062F: {0xFEA9, 0xFEAA, 0, 0},
	0x0630: {0xFEAB, 0xFEAC, 0, 0},
	0x0631: {0xFEAD, 0xFEAE, 0, 0},
	0x0632: {0xFEAF, 0xFEB0, 0, 0},
	0x0633: {0xFEB1, 0xFEB2, 0xFEB3, 0xFEB4},
	0x0634: {0xFEB5, 0xFEB6, 0xFEB7, 0xFEB8},
	0x0635: {0xFEB9, 0xFEBA, 0xFEBB, 0xFEBC},
	0x0636: {0xFEBD, 0xFEBE, 0xFEBF, 0xFEC0},
	0x0637: {0xFEC1, 0xFEC2, 0xFEC3, 0xFEC4},
	0x0638: {0xFEC5, 0xFEC6, 0xFEC7, 0xFEC8},
	0x0639: {0xFEC9, 0xFECA, 0xFECB, 0xFECC},
	0x063A: {0xFECD, 0xFECE, 0xFECF, 0xFED0},
	0x0640: {0x0640, 0x0640, 0x0640, 0x0640},
	0x0641: {0xFED1, 0xFED2, 0xFED3, 0xFED4},
	0x0642: {0xFED5, 0xFED6, 0xFED7, 0xFED8},
	0x0643: {0xFED9, 0xFEDA, 0xFEDB, 0xFEDC},
	0x0644: {0xFEDD, 0xFEDE, 0xFEDF, 0xFEE0},
	0x0645: {0xFEE1, 0xFEE2, 0xFEE3, 0xFEE4},
	0x0646: {0xFEE5, 0xFEE6, 0xFEE7, 0xFEE8},
	0x0647: {0xFEE9, 0xFEEA, 0xFEEB, 0xFEEC},
	0x0648: {0xFEED, 0xFEEE, 0, 0},
	0x0649: {0xFEEF, 0xFEF0, 0, 0},
	0x064A: {0xFEF1, 0xFEF2, 0xFEF3, 0xFEF4},
}

// lamAlef maps the alef variant following a lam to the ligature's isolated
// and final forms.
var lamAlef = map[rune][2]rune{
	0x0622: {0xFEF5, 0xFEF6},
	0x0623: {0xFEF7, 0xFEF8},
	0x0625: {0xFEF9, 0xFEFA},
	0x0627: {0xFEFB, 0xFEFC},
}

const lam = 0x0644

// isTransparent reports harakat and other marks that do not break joining.
func isTransparent(r rune) bool {
	return (r >= 0x064B && r <= 0x065F) || r == 0x0670
}

func joinsForward(r rune) bool {
	f, ok := arabicForms[r]
	return ok && f[initial] != 0
}

// ContainsArabic reports whether s holds at least one Arabic letter.
func ContainsArabic(s string) bool {
	return strings.IndexFunc(s, func(r rune) bool {
		return (r >= 0x0600 && r <= 0x06FF) || (r >= 0xFB50 && r <= 0xFEFC)
	}) >= 0
}

// Reshape substitutes Arabic letters with the presentation form matching
// their position in the word. Text stays in logical order.
func Reshape(s string) string {
	if !ContainsArabic(s) {
		return s
	}
	in := []rune(s)
	out := make([]rune, 0, len(in))
	for i := 0; i < len(in); i++ {
		r := in[i]
		f, ok := arabicForms[r]
		if !ok {
			out = append(out, r)
			continue
		}
		prev := neighbour(in, i, -1)
		joinPrev := prev >= 0 && joinsForward(in[prev])

		if r == lam {
			if next := neighbour(in, i, 1); next >= 0 {
				if lig, ok := lamAlef[in[next]]; ok {
					if joinPrev {
						out = append(out, lig[1])
					} else {
						out = append(out, lig[0])
					}
					// keep marks sitting between lam and alef
					out = append(out, in[i+1:next]...)
					i = next
					continue
				}
			}
		}

		next := neighbour(in, i, 1)
		joinNext := f[initial] != 0 && next >= 0
		if joinNext {
			joinNext = arabicForms[in[next]][final] != 0
		}

		var form rune
		switch {
		case joinPrev && joinNext:
			form = f[medial]
		case joinPrev:
			form = f[final]
		case joinNext:
			form = f[initial]
		default:
			form = f[isolated]
		}
		if form == 0 {
			form = f[isolated]
		}
		out = append(out, form)
	}
	return string(out)
}

// neighbour returns the index of the closest non-transparent rune in the
// given step direction, or -1 when it is not a joining letter.
func neighbour(in []rune, i, step int) int {
	for j := i + step; j >= 0 && j < len(in); j += step {
		if isTransparent(in[j]) {
			continue
		}
		if _, ok := arabicForms[in[j]]; ok {
			return j
		}
		return -1
	}
	return -1
}
