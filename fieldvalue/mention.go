package fieldvalue

import (
	"strings"

	"github.com/lolobelaiba-droid/graduation-guardian/models"
)

type label struct{ ar, fr string }

var mentionLabels = map[string]label{
	models.MentionHonorable:             {"مشرف", "Honorable"},
	models.MentionVeryHonorable:         {"مشرف جدا", "Très honorable"},
	models.MentionVeryHonorableCongrats: {"مشرف جدا مع تهنئة اللجنة", "Très honorable avec félicitations du jury"},
	models.MentionPassable:              {"مقبول", "Passable"},
	models.MentionAssezBien:             {"قريب من الحسن", "Assez bien"},
	models.MentionBien:                  {"حسن", "Bien"},
	models.MentionTresBien:              {"حسن جدا", "Très bien"},
	models.MentionExcellent:             {"ممتاز", "Excellent"},
}

// MentionLabel returns the localised label of an honour grade; unknown
// values are printed as stored.
func MentionLabel(value, lang string) string {
	l, ok := mentionLabels[value]
	if !ok {
		return value
	}
	if lang == "fr" {
		return l.fr
	}
	return l.ar
}

// ValidMention reports whether value is one of the known grades.
func ValidMention(value string) bool {
	_, ok := mentionLabels[value]
	return ok
}

// ParseMention accepts a grade key or one of its labels, as typed in
// imported spreadsheets.
func ParseMention(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if ValidMention(s) {
		return s, true
	}
	for key, l := range mentionLabels {
		if strings.EqualFold(s, l.fr) || s == l.ar || strings.EqualFold(strings.ReplaceAll(s, " ", "_"), key) {
			return key, true
		}
	}
	return "", false
}
