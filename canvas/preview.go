package canvas

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"html/template"
	"io"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"

	"github.com/lolobelaiba-droid/graduation-guardian/layout"
	"github.com/lolobelaiba-droid/graduation-guardian/models"
)

const (
	GridMajorMM = 10
	GridMinorMM = 5
)

// mmPerPoint converts font sizes to the millimetre page space.
const mmPerPoint = 25.4 / 72

type RenderOptions struct {
	Scale float64
	Grid  bool
	// Values maps field ids to display text. Fields without an entry show
	// their label.
	Values map[uuid.UUID]string
	// Background is the raw background image. It is scaled down to the
	// page width before embedding.
	Background  []byte
	ShowHidden  bool
	Highlighted uuid.UUID
}

type previewField struct {
	ID        string
	Left, Top float64
	Width     float64
	FontSize  float64
	Font      string
	Color     string
	Align     string
	Shift     string
	Dir       string
	Text      string
	Hidden    bool
	Active    bool
}

type previewPage struct {
	Title         string
	Width, Height float64
	Grid          bool
	Major, Minor  float64
	Background    template.URL
	Fields        []previewField
}

var previewTmpl = template.Must(template.New("preview").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { margin: 0; }
.page { position: relative; overflow: hidden; background: #fff; width: {{.Width}}px; height: {{.Height}}px; }
.page.bg { background-size: 100% 100%; }
.grid { position: absolute; inset: 0; pointer-events: none;
  background-image:
    linear-gradient(to right, rgba(0,0,0,.18) 1px, transparent 1px),
    linear-gradient(to bottom, rgba(0,0,0,.18) 1px, transparent 1px),
    linear-gradient(to right, rgba(0,0,0,.07) 1px, transparent 1px),
    linear-gradient(to bottom, rgba(0,0,0,.07) 1px, transparent 1px);
  background-size: {{.Major}}px {{.Major}}px, {{.Major}}px {{.Major}}px, {{.Minor}}px {{.Minor}}px, {{.Minor}}px {{.Minor}}px; }
.field { position: absolute; white-space: nowrap; line-height: 1; }
.field.wrap { white-space: normal; }
.field.hidden { opacity: .35; }
.field.active { outline: 1px dashed #2563eb; }
</style>
</head>
<body>
<div class="page{{if .Background}} bg{{end}}"{{if .Background}} style="background-image: url('{{.Background}}')"{{end}}>
{{if .Grid}}<div class="grid"></div>{{end}}
{{range .Fields}}<div class="field{{if .Width}} wrap{{end}}{{if .Hidden}} hidden{{end}}{{if .Active}} active{{end}}" data-field="{{.ID}}" dir="{{.Dir}}"
  style="left: {{.Left}}px; top: {{.Top}}px;{{if .Width}} width: {{.Width}}px;{{end}} font-size: {{.FontSize}}px; font-family: '{{.Font}}'; color: {{.Color}}; text-align: {{.Align}}; transform: translate({{.Shift}}, -100%);">{{.Text}}</div>
{{end}}</div>
</body>
</html>
`))

// RenderHTML writes a preview of the template at the canvas scale. Field
// coordinates are anchors: x follows the alignment and y is the baseline.
func RenderHTML(w io.Writer, tpl models.Template, fields []models.TemplateField, opts RenderOptions) error {
	scale := opts.Scale
	if scale <= 0 {
		scale = PixelsPerMM
	}
	size := layout.PageSize(tpl)
	page := previewPage{
		Title:  tpl.Name,
		Width:  size.Width * scale,
		Height: size.Height * scale,
		Grid:   opts.Grid,
		Major:  GridMajorMM * scale,
		Minor:  GridMinorMM * scale,
	}
	if len(opts.Background) > 0 {
		uri, err := Thumbnail(bytes.NewReader(opts.Background), int(page.Width))
		if err != nil {
			return fmt.Errorf("canvas: background: %w", err)
		}
		page.Background = template.URL(uri)
	}
	for _, f := range fields {
		if !f.IsVisible && !opts.ShowHidden {
			continue
		}
		text, ok := opts.Values[f.ID]
		if !ok {
			text = label(f)
		}
		pf := previewField{
			ID:       f.ID.String(),
			Top:      f.Y * scale,
			FontSize: f.FontSize * mmPerPoint * scale,
			Font:     f.FontName,
			Color:    f.FontColor,
			Dir:      "ltr",
			Text:     text,
			Hidden:   !f.IsVisible,
			Active:   f.ID == opts.Highlighted,
		}
		if f.IsRTL {
			pf.Dir = "rtl"
		}
		if pf.Color == "" {
			pf.Color = "#000000"
		}
		if f.Width != nil {
			pf.Width = *f.Width * scale
		}
		switch f.Alignment {
		case models.AlignLeft:
			pf.Align, pf.Shift = "left", "0"
		case models.AlignRight:
			pf.Align, pf.Shift = "right", "-100%"
		default:
			pf.Align, pf.Shift = "center", "-50%"
		}
		pf.Left = f.X * scale
		page.Fields = append(page.Fields, pf)
	}
	return previewTmpl.Execute(w, page)
}

func label(f models.TemplateField) string {
	if f.StaticText != nil && *f.StaticText != "" {
		return *f.StaticText
	}
	if f.IsRTL && f.NameAr != "" {
		return f.NameAr
	}
	if f.NameFr != "" {
		return f.NameFr
	}
	return f.FieldKey
}

// Thumbnail decodes an image, fits it within maxWidth pixels and returns it
// as a PNG data URI.
func Thumbnail(r io.Reader, maxWidth int) (string, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return "", err
	}
	if maxWidth > 0 && img.Bounds().Dx() > maxWidth {
		img = imaging.Resize(img, maxWidth, 0, imaging.Lanczos)
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
