package fieldvalue

import (
	"fmt"
	"strings"
	"time"

	"github.com/lolobelaiba-droid/graduation-guardian/textshape"
)

const (
	DirectionAuto = "auto"
	DirectionRTL  = "rtl"
	DirectionLTR  = "ltr"

	StyleNumeric = "numeric"
	StyleLong    = "long"
)

// DateFormat is the policy of one date category.
type DateFormat struct {
	Direction string `json:"direction" validate:"omitempty,oneof=auto rtl ltr"`
	Style     string `json:"style" validate:"omitempty,oneof=numeric long"`
	Separator string `json:"separator" validate:"omitempty,max=3"`
}

// DateFormatSettings holds one independent policy per date category.
type DateFormatSettings struct {
	Birth       DateFormat `json:"birth"`
	Defense     DateFormat `json:"defense"`
	Certificate DateFormat `json:"certificate"`
}

// DefaultDateFormats follows the field language and prints numeric dates.
func DefaultDateFormats() DateFormatSettings {
	d := DateFormat{Direction: DirectionAuto, Style: StyleNumeric, Separator: "/"}
	return DateFormatSettings{Birth: d, Defense: d, Certificate: d}
}

func (s DateFormatSettings) For(c DateCategory) DateFormat {
	var f DateFormat
	switch c {
	case DateBirth:
		f = s.Birth
	case DateDefense:
		f = s.Defense
	case DateCertificate:
		f = s.Certificate
	}
	if f.Direction == "" {
		f.Direction = DirectionAuto
	}
	if f.Style == "" {
		f.Style = StyleNumeric
	}
	if f.Separator == "" {
		f.Separator = "/"
	}
	return f
}

// EffectiveDirection decides how a field is written. Date fields follow the
// policy of their category (auto means: Arabic key → RTL, French key → LTR);
// every other field keeps its stored flag.
func EffectiveDirection(fieldKey string, baseIsRTL bool, settings DateFormatSettings) textshape.Direction {
	dk, ok := dateKeys[baseKey(fieldKey)]
	if !ok {
		if baseIsRTL {
			return textshape.RTL
		}
		return textshape.LTR
	}
	switch settings.For(dk.category).Direction {
	case DirectionRTL:
		return textshape.RTL
	case DirectionLTR:
		return textshape.LTR
	}
	switch languageOf(fieldKey) {
	case "ar":
		return textshape.RTL
	case "fr":
		return textshape.LTR
	}
	if baseIsRTL {
		return textshape.RTL
	}
	return textshape.LTR
}

var arabicMonths = [12]string{
	"جانفي", "فيفري", "مارس", "أفريل", "ماي", "جوان",
	"جويلية", "أوت", "سبتمبر", "أكتوبر", "نوفمبر", "ديسمبر",
}

var frenchMonths = [12]string{
	"janvier", "février", "mars", "avril", "mai", "juin",
	"juillet", "août", "septembre", "octobre", "novembre", "décembre",
}

// FormatDate renders t with the given policy. Numeric RTL dates are written
// year first so they read day-first once laid out right to left.
func FormatDate(t time.Time, f DateFormat, dir textshape.Direction) string {
	if f.Style == StyleLong {
		if dir == textshape.RTL {
			return fmt.Sprintf("%d %s %d", t.Day(), arabicMonths[t.Month()-1], t.Year())
		}
		day := fmt.Sprint(t.Day())
		if t.Day() == 1 {
			day = "1er"
		}
		return fmt.Sprintf("%s %s %d", day, frenchMonths[t.Month()-1], t.Year())
	}
	sep := f.Separator
	if sep == "" {
		sep = "/"
	}
	parts := []string{fmt.Sprintf("%02d", t.Day()), fmt.Sprintf("%02d", int(t.Month())), fmt.Sprintf("%04d", t.Year())}
	if dir == textshape.RTL {
		parts[0], parts[2] = parts[2], parts[0]
	}
	return strings.Join(parts, sep)
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02",
	"02/01/2006",
	"2006/01/02",
	"02-01-2006",
}

// ParseDate accepts the layouts found in imported spreadsheets.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(textshape.NormalizeDigits(s))
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
