package layout

import (
	"strings"

	"github.com/lolobelaiba-droid/graduation-guardian/models"
)

// Size is a page size in millimetres.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

const PageCustom = "custom"

// Portrait dimensions of the named paper sizes.
var presets = map[string]Size{
	"A3":     {297, 420},
	"A4":     {210, 297},
	"A5":     {148, 210},
	"B5":     {176, 250},
	"LETTER": {215.9, 279.4},
	"LEGAL":  {215.9, 355.6},
}

// PresetNames lists the accepted page size names.
var PresetNames = []string{"A3", "A4", "A5", "B5", "Letter", "Legal", PageCustom}

func ValidPageSize(name string) bool {
	if strings.EqualFold(name, PageCustom) {
		return true
	}
	_, ok := presets[strings.ToUpper(name)]
	return ok
}

// PageSize resolves a template's page dimensions. Orientation decides which
// side is the longer one, for presets and custom sizes alike. Unknown
// presets and incomplete custom sizes fall back to A4.
func PageSize(t models.Template) Size {
	size := presets["A4"]
	if strings.EqualFold(t.PageSize, PageCustom) {
		if t.CustomWidth != nil && t.CustomHeight != nil && *t.CustomWidth > 0 && *t.CustomHeight > 0 {
			size = Size{*t.CustomWidth, *t.CustomHeight}
		}
	} else if p, ok := presets[strings.ToUpper(t.PageSize)]; ok {
		size = p
	}
	long, short := size.Width, size.Height
	if short > long {
		long, short = short, long
	}
	if t.Orientation == models.OrientationLandscape {
		return Size{long, short}
	}
	return Size{short, long}
}
