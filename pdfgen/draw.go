package pdfgen

import (
	"log"
	"strconv"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/lolobelaiba-droid/graduation-guardian/fonts"
	"github.com/lolobelaiba-droid/graduation-guardian/models"
	"github.com/lolobelaiba-droid/graduation-guardian/textshape"
)

const (
	defaultFontSize = 14.0
	mmPerPoint      = 25.4 / 72
)

// surface is the subset of *gofpdf.Fpdf the engine draws with.
type surface interface {
	fonts.Sink
	AddPageFormat(orientationStr string, size gofpdf.SizeType)
	SetFont(familyStr, styleStr string, size float64)
	SetTextColor(r, g, b int)
	GetStringWidth(s string) float64
	Text(x, y float64, txtStr string)
	Err() bool
}

type drawer struct {
	s       surface
	faces   fonts.Faces
	cp1252  func(string) string
	spacing float64
}

// field draws one resolved value. X is the anchor named by the alignment
// and Y is the baseline of the first line.
func (d *drawer) field(f models.TemplateField, value string, dir textshape.Direction) {
	size := f.FontSize
	if size <= 0 {
		size = defaultFontSize
	}
	face := d.faces.For(f.FontName)
	if face.Builtin && textshape.ContainsArabic(value) {
		face = d.faces.Fallback
	}
	face = d.setFont(face, size)
	d.s.SetTextColor(parseColor(f.FontColor))

	lines := []string{value}
	if f.Width != nil && *f.Width > 0 {
		lines = d.wrap(value, *f.Width, dir, face)
	}
	lineHeight := size * mmPerPoint * d.spacing
	for i, line := range lines {
		text := d.encode(textshape.Prepare(line, dir), face)
		w := d.s.GetStringWidth(text)
		x := f.X
		switch f.Alignment {
		case models.AlignLeft:
		case models.AlignRight:
			x -= w
		default:
			x -= w / 2
		}
		d.s.Text(x, f.Y+float64(i)*lineHeight, text)
	}
}

// setFont selects face, falling back when the face cannot be set.
func (d *drawer) setFont(face fonts.Face, size float64) fonts.Face {
	d.s.SetFont(face.Family, face.Style, size)
	if !d.s.Err() {
		return face
	}
	log.Printf("⚠️ font %s could not be set: %v", face.Family, d.s.Error())
	d.s.ClearError()
	fb := d.faces.Fallback
	d.s.SetFont(fb.Family, fb.Style, size)
	return fb
}

func (d *drawer) encode(s string, face fonts.Face) string {
	if face.Builtin && d.cp1252 != nil {
		return d.cp1252(s)
	}
	return s
}

// wrap breaks value into lines no wider than width. Lines are measured in
// their printed form.
func (d *drawer) wrap(value string, width float64, dir textshape.Direction, face fonts.Face) []string {
	words := strings.Fields(value)
	if len(words) == 0 {
		return nil
	}
	measure := func(s string) float64 {
		return d.s.GetStringWidth(d.encode(textshape.Prepare(s, dir), face))
	}
	var lines []string
	cur := words[0]
	for _, w := range words[1:] {
		next := cur + " " + w
		if measure(next) <= width {
			cur = next
			continue
		}
		lines = append(lines, cur)
		cur = w
	}
	return append(lines, cur)
}

// parseColor reads #rgb or #rrggbb. Anything else is black.
func parseColor(s string) (r, g, b int) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 {
		return 0, 0, 0
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, 0, 0
	}
	return int(v >> 16 & 0xff), int(v >> 8 & 0xff), int(v & 0xff)
}
