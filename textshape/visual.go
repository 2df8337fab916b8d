package textshape

import "golang.org/x/text/unicode/bidi"

// resolved classes of the simplified bidi pass
const (
	clsL = iota
	clsR
	clsEN
	clsAN
	clsSep // ES, CS
	clsET
	clsNSM
	clsNeutral
)

var mirrors = map[rune]rune{
	'(': ')', ')': '(',
	'[': ']', ']': '[',
	'{': '}', '}': '{',
	'<': '>', '>': '<',
	'«': '»', '»': '«',
}

func classify(r rune) int {
	p, _ := bidi.LookupRune(r)
	switch p.Class() {
	case bidi.L:
		return clsL
	case bidi.R, bidi.AL:
		return clsR
	case bidi.EN:
		return clsEN
	case bidi.AN:
		return clsAN
	case bidi.ES, bidi.CS:
		return clsSep
	case bidi.ET:
		return clsET
	case bidi.NSM:
		return clsNSM
	default:
		return clsNeutral
	}
}

func isArabicLetterClass(r rune) bool {
	p, _ := bidi.LookupRune(r)
	return p.Class() == bidi.AL
}

// Visual reorders one logical line for left-to-right glyph placement. It
// implements the weak, neutral and implicit rules of the Unicode bidi
// algorithm for a single paragraph without explicit embeddings, which is all
// certificate fields contain.
func Visual(s string, dir Direction) string {
	in := []rune(s)
	if len(in) == 0 {
		return s
	}
	para := 0
	paraCls := clsL
	if dir == RTL {
		para = 1
		paraCls = clsR
	}
	cls := make([]int, len(in))
	for i, r := range in {
		cls[i] = classify(r)
	}

	// W1: marks take the class of what they follow.
	for i := range cls {
		if cls[i] == clsNSM {
			if i == 0 {
				cls[i] = paraCls
			} else {
				cls[i] = cls[i-1]
			}
		}
	}
	// W2 and W7: European numbers follow the last strong letter.
	lastStrong, lastAL := paraCls, false
	for i := range cls {
		switch cls[i] {
		case clsL, clsR:
			lastStrong = cls[i]
			lastAL = cls[i] == clsR && isArabicLetterClass(in[i])
		case clsEN:
			if lastAL {
				cls[i] = clsAN
			} else if lastStrong == clsL {
				cls[i] = clsL
			}
		}
	}
	// W4: a single separator between two numbers of the same type joins them.
	for i := 1; i+1 < len(cls); i++ {
		if cls[i] == clsSep && cls[i-1] == cls[i+1] && (cls[i-1] == clsEN || cls[i-1] == clsAN) {
			cls[i] = cls[i-1]
		}
	}
	// W5: terminators next to European numbers become numbers.
	for i := 0; i < len(cls); i++ {
		if cls[i] != clsET {
			continue
		}
		j := i
		for j < len(cls) && cls[j] == clsET {
			j++
		}
		if (i > 0 && cls[i-1] == clsEN) || (j < len(cls) && cls[j] == clsEN) {
			for k := i; k < j; k++ {
				cls[k] = clsEN
			}
		}
		i = j - 1
	}
	// N1 and N2: neutral runs take the surrounding direction when both sides
	// agree, the paragraph direction otherwise. Numbers count as R here.
	strongOf := func(c int) int {
		if c == clsL {
			return clsL
		}
		return clsR
	}
	for i := 0; i < len(cls); i++ {
		if !isNeutral(cls[i]) {
			continue
		}
		j := i
		for j < len(cls) && isNeutral(cls[j]) {
			j++
		}
		before, after := paraCls, paraCls
		if i > 0 {
			before = strongOf(cls[i-1])
		}
		if j < len(cls) {
			after = strongOf(cls[j])
		}
		resolved := paraCls
		if before == after {
			resolved = before
		}
		for k := i; k < j; k++ {
			cls[k] = resolved
		}
		i = j - 1
	}

	// I1 and I2: embedding levels.
	levels := make([]int, len(in))
	maxLevel := para
	for i, c := range cls {
		lvl := para
		if para == 0 {
			switch c {
			case clsR:
				lvl = 1
			case clsEN, clsAN:
				lvl = 2
			}
		} else if c != clsR {
			lvl = 2
		}
		levels[i] = lvl
		if lvl > maxLevel {
			maxLevel = lvl
		}
	}

	// L2: reverse every run at or above each odd-and-higher level.
	out := append([]rune(nil), in...)
	for lvl := maxLevel; lvl >= 1; lvl-- {
		for i := 0; i < len(out); i++ {
			if levels[i] < lvl {
				continue
			}
			j := i
			for j < len(out) && levels[j] >= lvl {
				j++
			}
			reverseRunes(out[i:j])
			reverseInts(levels[i:j])
			i = j
		}
	}
	// L4: mirrored glyphs on right-to-left levels.
	for i, r := range out {
		if levels[i]%2 == 1 {
			if m, ok := mirrors[r]; ok {
				out[i] = m
			}
		}
	}
	return string(out)
}

func isNeutral(c int) bool {
	return c == clsNeutral || c == clsSep || c == clsET
}

func reverseRunes(r []rune) {
	for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
		r[i], r[j] = r[j], r[i]
	}
}

func reverseInts(v []int) {
	for i, j := 0, len(v)-1; i < j; i, j = i+1, j-1 {
		v[i], v[j] = v[j], v[i]
	}
}
