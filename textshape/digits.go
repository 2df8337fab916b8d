package textshape

import (
	"strings"
	"unicode"
)

// NormalizeDigits rewrites every decimal digit (Unicode category Nd) as the
// corresponding ASCII digit, so Eastern Arabic-Indic and Persian numerals
// never reach the printed page. It is idempotent.
func NormalizeDigits(s string) string {
	if isASCIIDigitsOnly(s) {
		return s
	}
	return strings.Map(func(r rune) rune {
		if r < 0x80 || !unicode.IsDigit(r) {
			return r
		}
		if d, ok := digitValue(r); ok {
			return '0' + d
		}
		return r
	}, s)
}

func isASCIIDigitsOnly(s string) bool {
	for _, r := range s {
		if r >= 0x80 && unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// digitValue finds the Nd range holding r. Decimal digit ranges are laid out
// as consecutive runs of ten starting at zero.
func digitValue(r rune) (rune, bool) {
	for _, rng := range unicode.Nd.R16 {
		lo, hi := rune(rng.Lo), rune(rng.Hi)
		if r >= lo && r <= hi && rng.Stride == 1 {
			return (r - lo) % 10, true
		}
	}
	for _, rng := range unicode.Nd.R32 {
		lo, hi := rune(rng.Lo), rune(rng.Hi)
		if r >= lo && r <= hi && rng.Stride == 1 {
			return (r - lo) % 10, true
		}
	}
	return 0, false
}
