package services

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log"
	"sort"

	"github.com/google/uuid"

	"github.com/lolobelaiba-droid/graduation-guardian/canvas"
	"github.com/lolobelaiba-droid/graduation-guardian/fieldvalue"
	"github.com/lolobelaiba-droid/graduation-guardian/fonts"
	"github.com/lolobelaiba-droid/graduation-guardian/layout"
	"github.com/lolobelaiba-droid/graduation-guardian/models"
	"github.com/lolobelaiba-droid/graduation-guardian/pdfgen"
	"github.com/lolobelaiba-droid/graduation-guardian/store"
)

var ErrPreviewDisabled = errors.New("PNG previews are disabled")

type RenderRequest struct {
	TemplateID     uuid.UUID   `json:"template_id" validate:"required"`
	CertificateIDs []uuid.UUID `json:"certificate_ids"`
}

type PreviewOptions struct {
	Grid          bool
	ShowHidden    bool
	CertificateID *uuid.UUID
	Highlighted   uuid.UUID
}

type RenderService struct {
	store      *store.Store
	fonts      *fonts.Loader
	settings   *SettingsService
	rasterizer *canvas.Rasterizer
	images     fonts.Fetcher
}

func (s *RenderService) resolver(ctx context.Context) (*fieldvalue.Resolver, error) {
	dates, err := s.settings.DateFormats(ctx)
	if err != nil {
		return nil, err
	}
	return fieldvalue.NewResolver(dates), nil
}

func (s *RenderService) engine(ctx context.Context) (*pdfgen.Engine, error) {
	r, err := s.resolver(ctx)
	if err != nil {
		return nil, err
	}
	return pdfgen.NewEngine(s.fonts, r), nil
}

func (s *RenderService) template(ctx context.Context, id uuid.UUID) (models.Template, []models.TemplateField, error) {
	t, err := s.store.Templates.GetByID(ctx, id)
	if err != nil {
		return models.Template{}, nil, err
	}
	fields, err := s.store.Fields.Search(ctx, store.Query{Filters: map[string]any{"template_id": id}})
	if err != nil {
		return models.Template{}, nil, err
	}
	sort.SliceStable(fields, func(i, j int) bool { return fields[i].SortOrder < fields[j].SortOrder })
	return t, fields, nil
}

func (s *RenderService) activeTemplate(ctx context.Context, category string) (uuid.UUID, error) {
	rows, err := s.store.Templates.Search(ctx, store.Query{Filters: map[string]any{"category": category}})
	if err != nil {
		return uuid.Nil, err
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Name < rows[j].Name })
	for _, t := range rows {
		if t.IsActive {
			return t.ID, nil
		}
	}
	return uuid.Nil, store.ErrNotFound
}

func records(certs []models.Certificate) []fieldvalue.Record {
	out := make([]fieldvalue.Record, len(certs))
	for i, c := range certs {
		out[i] = fieldvalue.Record(c.Record())
	}
	return out
}

// RenderBulk writes one page per certificate. Without explicit ids every
// record of the template's category is printed, by student number.
func (s *RenderService) RenderBulk(ctx context.Context, w io.Writer, req RenderRequest) (int, error) {
	if req.TemplateID == uuid.Nil {
		return 0, invalid("template_id is required")
	}
	t, fields, err := s.template(ctx, req.TemplateID)
	if err != nil {
		return 0, err
	}
	var certs []models.Certificate
	if len(req.CertificateIDs) > 0 {
		for _, id := range req.CertificateIDs {
			c, err := s.store.Certificates.GetByID(ctx, id)
			if err != nil {
				return 0, err
			}
			certs = append(certs, c)
		}
	} else {
		certs, err = s.store.Certificates.Search(ctx, store.Query{Filters: map[string]any{"category": t.Category}})
		if err != nil {
			return 0, err
		}
		sort.SliceStable(certs, func(i, j int) bool { return certs[i].StudentNumber < certs[j].StudentNumber })
	}
	if len(certs) == 0 {
		return 0, invalid("no certificates to print")
	}
	e, err := s.engine(ctx)
	if err != nil {
		return 0, err
	}
	if err := e.RenderCertificates(ctx, w, records(certs), fields, t); err != nil {
		return 0, err
	}
	log.Printf("✅ Rendered %d certificates with template %s", len(certs), t.Name)
	return len(certs), nil
}

// RenderOne renders a single certificate. A nil templateID selects the
// active template of the certificate's category.
func (s *RenderService) RenderOne(ctx context.Context, certID, templateID uuid.UUID) ([]byte, models.Certificate, error) {
	c, err := s.store.Certificates.GetByID(ctx, certID)
	if err != nil {
		return nil, models.Certificate{}, err
	}
	if templateID == uuid.Nil {
		if templateID, err = s.activeTemplate(ctx, c.Category); err != nil {
			return nil, c, err
		}
	}
	t, fields, err := s.template(ctx, templateID)
	if err != nil {
		return nil, c, err
	}
	e, err := s.engine(ctx)
	if err != nil {
		return nil, c, err
	}
	out, err := e.RenderSingleCertificate(ctx, fieldvalue.Record(c.Record()), fields, t)
	return out, c, err
}

// PreviewHTML writes the canvas preview of a template, filled with one
// certificate's values when CertificateID is set.
func (s *RenderService) PreviewHTML(ctx context.Context, w io.Writer, templateID uuid.UUID, opts PreviewOptions) error {
	t, fields, err := s.template(ctx, templateID)
	if err != nil {
		return err
	}
	ro := canvas.RenderOptions{Grid: opts.Grid, ShowHidden: opts.ShowHidden, Highlighted: opts.Highlighted}
	if opts.CertificateID != nil {
		c, err := s.store.Certificates.GetByID(ctx, *opts.CertificateID)
		if err != nil {
			return err
		}
		r, err := s.resolver(ctx)
		if err != nil {
			return err
		}
		rec := fieldvalue.Record(c.Record())
		ro.Values = make(map[uuid.UUID]string, len(fields))
		for _, f := range fields {
			ro.Values[f.ID] = r.Value(rec, f)
		}
	}
	if t.BackgroundImage != nil && s.images != nil {
		img, err := s.images.Fetch(ctx, *t.BackgroundImage)
		if err != nil {
			log.Printf("⚠️ Background of template %s unavailable: %v", t.ID, err)
		} else {
			ro.Background = img
		}
	}
	return canvas.RenderHTML(w, t, fields, ro)
}

func (s *RenderService) PreviewPNG(ctx context.Context, templateID uuid.UUID, opts PreviewOptions) ([]byte, error) {
	if s.rasterizer == nil {
		return nil, ErrPreviewDisabled
	}
	var buf bytes.Buffer
	if err := s.PreviewHTML(ctx, &buf, templateID, opts); err != nil {
		return nil, err
	}
	t, err := s.store.Templates.GetByID(ctx, templateID)
	if err != nil {
		return nil, err
	}
	size := layout.PageSize(t)
	return s.rasterizer.PNG(ctx, buf.String(), size.Width*canvas.PixelsPerMM, size.Height*canvas.PixelsPerMM)
}
