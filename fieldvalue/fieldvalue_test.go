package fieldvalue

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/lolobelaiba-droid/graduation-guardian/models"
	"github.com/lolobelaiba-droid/graduation-guardian/textshape"
)

func TestEffectiveDirection(t *testing.T) {
	auto := DefaultDateFormats()
	forced := DateFormatSettings{
		Birth:       DateFormat{Direction: DirectionLTR},
		Defense:     DateFormat{Direction: DirectionRTL},
		Certificate: DateFormat{Direction: DirectionAuto},
	}
	tests := []struct {
		key      string
		baseRTL  bool
		settings DateFormatSettings
		want     textshape.Direction
	}{
		{"birth_date_ar", false, auto, textshape.RTL},
		{"birth_date_fr", true, auto, textshape.LTR},
		{"birth_date_ar", true, forced, textshape.LTR},
		{"defense_date_fr", false, forced, textshape.RTL},
		{"certificate_date_fr", true, forced, textshape.LTR},
		{"full_name_ar", true, forced, textshape.RTL},
		{"full_name_ar", false, forced, textshape.LTR},
		{"certificate_number", false, auto, textshape.LTR},
	}
	for _, tt := range tests {
		got := EffectiveDirection(tt.key, tt.baseRTL, tt.settings)
		if got != tt.want {
			t.Errorf("EffectiveDirection(%q, %v) = %v, want %v", tt.key, tt.baseRTL, got, tt.want)
		}
	}
}

func TestResolverValue(t *testing.T) {
	born := time.Date(1990, time.March, 5, 0, 0, 0, 0, time.UTC)
	defended := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	rec := Record{
		"full_name_ar":       "محمد بن علي",
		"full_name_fr":       "  Mohamed Benali ",
		"date_of_birth":      born,
		"defense_date":       &defended,
		"mention":            models.MentionVeryHonorable,
		"certificate_number": "٢٠٢٤/١٥",
		"custom_lab":         3.5,
	}
	static := "الجمهورية الجزائرية"
	long := DateFormatSettings{Defense: DateFormat{Style: StyleLong}}

	tests := []struct {
		name  string
		field models.TemplateField
		dates DateFormatSettings
		want  string
	}{
		{"raw arabic", models.TemplateField{FieldKey: "full_name_ar", IsRTL: true}, DefaultDateFormats(), "محمد بن علي"},
		{"trimmed", models.TemplateField{FieldKey: "full_name_fr"}, DefaultDateFormats(), "Mohamed Benali"},
		{"static", models.TemplateField{FieldKey: StaticTextKey, StaticText: &static}, DefaultDateFormats(), static},
		{"static without text", models.TemplateField{FieldKey: "static_header"}, DefaultDateFormats(), ""},
		{"mention ar", models.TemplateField{FieldKey: "mention_ar"}, DefaultDateFormats(), "مشرف جدا"},
		{"mention fr", models.TemplateField{FieldKey: "mention_fr"}, DefaultDateFormats(), "Très honorable"},
		{"birth fr numeric", models.TemplateField{FieldKey: "birth_date_fr"}, DefaultDateFormats(), "05/03/1990"},
		{"birth ar numeric", models.TemplateField{FieldKey: "birth_date_ar", IsRTL: true}, DefaultDateFormats(), "1990/03/05"},
		{"defense fr long", models.TemplateField{FieldKey: "defense_date_fr"}, long, "1er juin 2024"},
		{"defense ar long", models.TemplateField{FieldKey: "defense_date_ar"}, long, "1 جوان 2024"},
		{"missing date", models.TemplateField{FieldKey: "certificate_date_fr"}, DefaultDateFormats(), ""},
		{"digits normalised", models.TemplateField{FieldKey: "certificate_number"}, DefaultDateFormats(), "2024/15"},
		{"custom number", models.TemplateField{FieldKey: "custom_lab"}, DefaultDateFormats(), "3.5"},
		{"unknown key", models.TemplateField{FieldKey: "nothing"}, DefaultDateFormats(), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewResolver(tt.dates)
			if got := r.Value(rec, tt.field); got != tt.want {
				t.Errorf("Value = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	for _, s := range []string{"2024-06-01", "01/06/2024", "٠١/٠٦/٢٠٢٤", "2024/06/01"} {
		got, ok := ParseDate(s)
		if !ok {
			t.Errorf("ParseDate(%q) failed", s)
			continue
		}
		if got.Year() != 2024 || got.Month() != time.June || got.Day() != 1 {
			t.Errorf("ParseDate(%q) = %v", s, got)
		}
	}
	if _, ok := ParseDate("not a date"); ok {
		t.Error("ParseDate accepted garbage")
	}
}

func TestDefaultFields(t *testing.T) {
	id := uuid.New()
	fields := DefaultFields(id, models.CategoryPhDLMD, "ar_fr")
	if len(fields) != 1+2*len(fieldSets[models.CategoryPhDLMD]) {
		t.Fatalf("got %d fields", len(fields))
	}
	seen := map[string]bool{}
	for i, f := range fields {
		if f.TemplateID != id {
			t.Errorf("field %s has template %s", f.FieldKey, f.TemplateID)
		}
		if f.SortOrder != i {
			t.Errorf("field %s order = %d, want %d", f.FieldKey, f.SortOrder, i)
		}
		if seen[f.FieldKey] {
			t.Errorf("duplicate key %s", f.FieldKey)
		}
		seen[f.FieldKey] = true
		if f.IsRTL != (languageOf(f.FieldKey) == "ar") {
			t.Errorf("field %s rtl = %v", f.FieldKey, f.IsRTL)
		}
		if f.FieldKey == "thesis_title_ar" && (f.Width == nil || *f.Width < 20) {
			t.Errorf("thesis title should wrap")
		}
	}

	single := DefaultFields(id, models.CategoryMaster, "fr")
	for _, f := range single {
		if languageOf(f.FieldKey) == "ar" {
			t.Errorf("french template got %s", f.FieldKey)
		}
	}
}
