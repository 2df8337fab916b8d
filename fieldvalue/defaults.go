package fieldvalue

import (
	"strings"

	"github.com/google/uuid"

	"github.com/lolobelaiba-droid/graduation-guardian/models"
)

const (
	DefaultArabicFont = "Amiri"
	DefaultLatinFont  = "Times"
)

// fieldSets lists the base keys printed on each category, top to bottom.
var fieldSets = map[string][]string{
	models.CategoryPhDLMD: {
		"full_name", "birth_date", "birthplace", "field", "branch", "specialty",
		"thesis_title", "supervisor", "defense_date", "mention", "certificate_date",
	},
	models.CategoryPhDScience: {
		"full_name", "birth_date", "birthplace", "specialty",
		"thesis_title", "supervisor", "defense_date", "mention", "certificate_date",
	},
	models.CategoryMaster: {
		"full_name", "birth_date", "birthplace", "field", "branch", "specialty",
		"mention", "certificate_date",
	},
}

// DefaultFields builds the initial field set of a new template laid out on
// an A4 landscape page: Arabic on the right half, French on the left half
// for bilingual templates, a single centred column otherwise.
func DefaultFields(templateID uuid.UUID, category, language string) []models.TemplateField {
	bases, ok := fieldSets[category]
	if !ok {
		bases = fieldSets[models.CategoryMaster]
	}
	type column struct {
		lang string
		x    float64
	}
	var cols []column
	switch {
	case strings.HasPrefix(language, "ar_"):
		cols = []column{{"ar", 222}, {"fr", 75}}
	case language == "ar":
		cols = []column{{"ar", 148.5}}
	default:
		cols = []column{{"fr", 148.5}}
	}

	var fields []models.TemplateField
	order := 0
	add := func(key string, x, y float64, width *float64, rtl bool) {
		info, _ := LookupKey(key)
		font := DefaultLatinFont
		if rtl {
			font = DefaultArabicFont
		}
		fields = append(fields, models.TemplateField{
			ID:         uuid.New(),
			TemplateID: templateID,
			FieldKey:   key,
			NameAr:     info.NameAr,
			NameFr:     info.NameFr,
			X:          x,
			Y:          y,
			Width:      width,
			FontName:   font,
			FontSize:   14,
			FontColor:  "#000000",
			Alignment:  models.AlignCenter,
			IsRTL:      rtl,
			IsVisible:  true,
			SortOrder:  order,
		})
		order++
	}

	add("certificate_number", 30, 25, nil, false)
	y := 60.0
	for _, base := range bases {
		for _, col := range cols {
			var width *float64
			if base == "thesis_title" {
				w := 120.0
				if len(cols) == 1 {
					w = 220
				}
				width = &w
			}
			add(base+"_"+col.lang, col.x, y, width, col.lang == "ar")
		}
		if base == "thesis_title" {
			y += 20
		} else {
			y += 11
		}
	}
	return fields
}
