package fieldvalue

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/lolobelaiba-droid/graduation-guardian/models"
	"github.com/lolobelaiba-droid/graduation-guardian/textshape"
)

// Record is a data row keyed by attribute name, as produced by
// models.Certificate.Record or by an import.
type Record map[string]any

// Resolver computes the display value of template fields.
type Resolver struct {
	Dates DateFormatSettings
}

func NewResolver(dates DateFormatSettings) *Resolver {
	return &Resolver{Dates: dates}
}

// Direction is EffectiveDirection under the resolver's date policy.
func (r *Resolver) Direction(f models.TemplateField) textshape.Direction {
	return EffectiveDirection(f.FieldKey, f.IsRTL, r.Dates)
}

// Value returns the text printed for f, in logical order with Western
// digits. An empty string means there is nothing to print.
func (r *Resolver) Value(rec Record, f models.TemplateField) string {
	return textshape.NormalizeDigits(r.raw(rec, f))
}

func (r *Resolver) raw(rec Record, f models.TemplateField) string {
	key := f.FieldKey
	switch {
	case IsStatic(key):
		if f.StaticText == nil {
			return ""
		}
		return *f.StaticText
	case IsMention(key):
		lang := languageOf(key)
		if lang == "" {
			lang = "fr"
			if f.IsRTL {
				lang = "ar"
			}
		}
		return MentionLabel(stringify(rec[mentionKey]), lang)
	case IsDate(key):
		dk := dateKeys[baseKey(key)]
		t, ok := asTime(rec[dk.source])
		if !ok {
			// Pre-formatted values (e.g. custom imports) are printed as is.
			return stringify(rec[key])
		}
		return FormatDate(t, r.Dates.For(dk.category), r.Direction(f))
	}
	return stringify(rec[key])
}

func asTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, !t.IsZero()
	case *time.Time:
		if t == nil {
			return time.Time{}, false
		}
		return *t, !t.IsZero()
	case string:
		return ParseDate(t)
	}
	return time.Time{}, false
}

func stringify(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(s)
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case fmt.Stringer:
		return s.String()
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}
