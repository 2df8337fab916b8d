// Package pdfgen renders certificate data records onto their template
// layout. Output holds only the variable text: certificates are printed on
// pre-printed paper, so the background image is never drawn.
package pdfgen

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/jung-kurt/gofpdf"

	"github.com/lolobelaiba-droid/graduation-guardian/fieldvalue"
	"github.com/lolobelaiba-droid/graduation-guardian/fonts"
	"github.com/lolobelaiba-droid/graduation-guardian/layout"
	"github.com/lolobelaiba-droid/graduation-guardian/models"
)

const Creator = "Graduation Guardian"

var ErrNoRecords = errors.New("no records to render")

// RenderError wraps a failure of one rendering step.
type RenderError struct {
	Op  string
	Err error
}

func (e *RenderError) Error() string { return fmt.Sprintf("pdfgen: %s: %v", e.Op, e.Err) }

func (e *RenderError) Unwrap() error { return e.Err }

type Engine struct {
	Fonts    *fonts.Loader
	Resolver *fieldvalue.Resolver
	// LineSpacing multiplies the font size to get the distance between
	// wrapped lines.
	LineSpacing float64
	Compress    bool
}

func NewEngine(loader *fonts.Loader, resolver *fieldvalue.Resolver) *Engine {
	if resolver == nil {
		resolver = fieldvalue.NewResolver(fieldvalue.DefaultDateFormats())
	}
	return &Engine{Fonts: loader, Resolver: resolver, LineSpacing: 1.3, Compress: true}
}

// RenderCertificates writes one page per record, in record order.
func (e *Engine) RenderCertificates(ctx context.Context, w io.Writer, records []fieldvalue.Record, fields []models.TemplateField, tpl models.Template) error {
	if len(records) == 0 {
		return &RenderError{Op: "render", Err: ErrNoRecords}
	}
	pdf := e.newDocument(tpl)
	if err := e.render(ctx, pdf, pdf.UnicodeTranslatorFromDescriptor(""), records, fields, tpl); err != nil {
		return err
	}
	if err := pdf.Output(w); err != nil {
		return &RenderError{Op: "output", Err: err}
	}
	return nil
}

// RenderSingleCertificate renders one record into memory.
func (e *Engine) RenderSingleCertificate(ctx context.Context, rec fieldvalue.Record, fields []models.TemplateField, tpl models.Template) ([]byte, error) {
	var buf bytes.Buffer
	if err := e.RenderCertificates(ctx, &buf, []fieldvalue.Record{rec}, fields, tpl); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (e *Engine) RenderToFile(ctx context.Context, path string, records []fieldvalue.Record, fields []models.TemplateField, tpl models.Template) error {
	f, err := os.Create(path)
	if err != nil {
		return &RenderError{Op: "create", Err: err}
	}
	if err := e.RenderCertificates(ctx, f, records, fields, tpl); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	if err := f.Close(); err != nil {
		return &RenderError{Op: "close", Err: err}
	}
	return nil
}

func (e *Engine) newDocument(tpl models.Template) *gofpdf.Fpdf {
	size := layout.PageSize(tpl)
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           gofpdf.SizeType{Wd: size.Width, Ht: size.Height},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCompression(e.Compress)
	pdf.SetTitle(tpl.Name, true)
	pdf.SetSubject(tpl.Category, true)
	pdf.SetCreator(Creator, true)
	return pdf
}

// visibleFields returns the drawable fields in template order.
func visibleFields(fields []models.TemplateField) []models.TemplateField {
	var out []models.TemplateField
	for _, f := range fields {
		if f.IsVisible {
			out = append(out, f)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].SortOrder < out[j].SortOrder })
	return out
}

func (e *Engine) render(ctx context.Context, s surface, cp1252 func(string) string, records []fieldvalue.Record, fields []models.TemplateField, tpl models.Template) error {
	size := layout.PageSize(tpl)
	visible := visibleFields(fields)

	names := make([]string, 0, len(visible))
	for _, f := range visible {
		names = append(names, f.FontName)
	}
	var faces fonts.Faces
	if e.Fonts != nil {
		faces = e.Fonts.RegisterForDocument(ctx, s, names)
	} else {
		faces = builtinFaces()
	}

	d := &drawer{s: s, faces: faces, cp1252: cp1252, spacing: e.LineSpacing}
	for _, rec := range records {
		s.AddPageFormat("P", gofpdf.SizeType{Wd: size.Width, Ht: size.Height})
		for _, f := range visible {
			value := e.Resolver.Value(rec, f)
			if value == "" {
				continue
			}
			d.field(f, value, e.Resolver.Direction(f))
		}
		if err := s.Error(); err != nil {
			return &RenderError{Op: "draw", Err: err}
		}
	}
	return nil
}

func builtinFaces() fonts.Faces {
	return fonts.Faces{Fallback: fonts.Face{Family: "Helvetica", Builtin: true}}
}
