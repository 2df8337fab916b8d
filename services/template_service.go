package services

import (
	"context"
	"errors"
	"io"
	"sort"

	"github.com/google/uuid"

	"github.com/lolobelaiba-droid/graduation-guardian/fieldvalue"
	"github.com/lolobelaiba-droid/graduation-guardian/layout"
	"github.com/lolobelaiba-droid/graduation-guardian/models"
	"github.com/lolobelaiba-droid/graduation-guardian/store"
)

var ErrUploadDisabled = errors.New("background uploads are not configured")

type TemplateInput struct {
	Name         string   `json:"name" validate:"required,max=255"`
	Category     string   `json:"category" validate:"required,oneof=phd_lmd phd_science master"`
	Language     string   `json:"language" validate:"omitempty,oneof=ar fr en ar_fr ar_en"`
	Orientation  string   `json:"orientation" validate:"omitempty,oneof=portrait landscape"`
	PageSize     string   `json:"page_size"`
	CustomWidth  *float64 `json:"custom_width" validate:"omitempty,gt=0,lte=2000"`
	CustomHeight *float64 `json:"custom_height" validate:"omitempty,gt=0,lte=2000"`
	MarginTop    float64  `json:"margin_top" validate:"gte=0"`
	MarginRight  float64  `json:"margin_right" validate:"gte=0"`
	MarginBottom float64  `json:"margin_bottom" validate:"gte=0"`
	MarginLeft   float64  `json:"margin_left" validate:"gte=0"`
	IsActive     *bool    `json:"is_active"`
}

func (in TemplateInput) validate() error {
	if err := validateStruct(in); err != nil {
		return err
	}
	if in.PageSize != "" && !layout.ValidPageSize(in.PageSize) {
		return invalid("unknown page size %q", in.PageSize)
	}
	if in.PageSize == layout.PageCustom && (in.CustomWidth == nil || in.CustomHeight == nil) {
		return invalid("custom page size needs custom_width and custom_height")
	}
	return nil
}

func (in TemplateInput) apply(t *models.Template) {
	t.Name = in.Name
	t.Category = in.Category
	t.Language = in.Language
	if t.Language == "" {
		t.Language = "ar_fr"
	}
	t.Orientation = in.Orientation
	if t.Orientation == "" {
		t.Orientation = models.OrientationLandscape
	}
	t.PageSize = in.PageSize
	if t.PageSize == "" {
		t.PageSize = "A4"
	}
	t.CustomWidth, t.CustomHeight = in.CustomWidth, in.CustomHeight
	t.MarginTop, t.MarginRight, t.MarginBottom, t.MarginLeft = in.MarginTop, in.MarginRight, in.MarginBottom, in.MarginLeft
	if in.IsActive != nil {
		t.IsActive = *in.IsActive
	}
}

type FieldInput struct {
	FieldKey   string   `json:"field_key" validate:"required,max=100"`
	NameAr     string   `json:"field_name_ar" validate:"max=255"`
	NameFr     string   `json:"field_name_fr" validate:"max=255"`
	X          float64  `json:"position_x"`
	Y          float64  `json:"position_y"`
	Width      *float64 `json:"field_width" validate:"omitempty,gt=0"`
	FontName   string   `json:"font_name" validate:"max=100"`
	FontSize   float64  `json:"font_size" validate:"omitempty,gt=0,lte=200"`
	FontColor  string   `json:"font_color" validate:"omitempty,hexcolor"`
	Alignment  string   `json:"text_align" validate:"omitempty,oneof=left center right"`
	IsRTL      bool     `json:"is_rtl"`
	IsVisible  *bool    `json:"is_visible"`
	SortOrder  *int     `json:"field_order"`
	StaticText *string  `json:"static_text"`
}

func (in FieldInput) apply(f *models.TemplateField) {
	f.FieldKey = in.FieldKey
	f.NameAr, f.NameFr = in.NameAr, in.NameFr
	f.X, f.Y = in.X, in.Y
	f.Width = in.Width
	f.FontName = in.FontName
	f.FontSize = in.FontSize
	if f.FontSize == 0 {
		f.FontSize = 14
	}
	f.FontColor = in.FontColor
	if f.FontColor == "" {
		f.FontColor = "#000000"
	}
	f.Alignment = in.Alignment
	if f.Alignment == "" {
		f.Alignment = models.AlignCenter
	}
	f.IsRTL = in.IsRTL
	if in.IsVisible != nil {
		f.IsVisible = *in.IsVisible
	}
	if in.SortOrder != nil {
		f.SortOrder = *in.SortOrder
	}
	f.StaticText = in.StaticText
	if f.FontName == "" {
		f.FontName = fieldvalue.DefaultLatinFont
		if f.IsRTL {
			f.FontName = fieldvalue.DefaultArabicFont
		}
	}
}

type TemplateService struct {
	store    *store.Store
	activity *ActivityService
	settings *SettingsService
	uploader *BackgroundUploader
}

// Create stores a template and seeds it with the default field set of its
// category.
func (s *TemplateService) Create(ctx context.Context, in TemplateInput) (models.Template, []models.TemplateField, error) {
	if err := in.validate(); err != nil {
		return models.Template{}, nil, err
	}
	t := models.Template{ID: uuid.New(), IsActive: true, CreatedAt: now(), UpdatedAt: now()}
	in.apply(&t)
	if err := s.store.Templates.Insert(ctx, t); err != nil {
		return models.Template{}, nil, err
	}
	fields := fieldvalue.DefaultFields(t.ID, t.Category, t.Language)
	for i := range fields {
		fields[i].CreatedAt, fields[i].UpdatedAt = now(), now()
		if err := s.store.Fields.Insert(ctx, fields[i]); err != nil {
			return t, nil, err
		}
	}
	s.activity.Log(ctx, "create", "template", t.ID.String(), t.Name)
	return t, fields, nil
}

// List returns templates ordered by name, optionally for one category.
func (s *TemplateService) List(ctx context.Context, category string) ([]models.Template, error) {
	q := store.Query{}
	if category != "" {
		q.Filters = map[string]any{"category": category}
	}
	rows, err := s.store.Templates.Search(ctx, q)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Name < rows[j].Name })
	return rows, nil
}

func (s *TemplateService) Get(ctx context.Context, id uuid.UUID) (models.Template, []models.TemplateField, error) {
	t, err := s.store.Templates.GetByID(ctx, id)
	if err != nil {
		return models.Template{}, nil, err
	}
	fields, err := s.Fields(ctx, id)
	return t, fields, err
}

// Fields returns a template's fields in drawing order.
func (s *TemplateService) Fields(ctx context.Context, templateID uuid.UUID) ([]models.TemplateField, error) {
	fields, err := s.store.Fields.Search(ctx, store.Query{Filters: map[string]any{"template_id": templateID}})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(fields, func(i, j int) bool { return fields[i].SortOrder < fields[j].SortOrder })
	return fields, nil
}

// ActiveFor returns the first active template of a category.
func (s *TemplateService) ActiveFor(ctx context.Context, category string) (models.Template, error) {
	rows, err := s.List(ctx, category)
	if err != nil {
		return models.Template{}, err
	}
	for _, t := range rows {
		if t.IsActive {
			return t, nil
		}
	}
	return models.Template{}, store.ErrNotFound
}

func (s *TemplateService) Update(ctx context.Context, id uuid.UUID, in TemplateInput) (models.Template, error) {
	if err := in.validate(); err != nil {
		return models.Template{}, err
	}
	t, err := s.store.Templates.GetByID(ctx, id)
	if err != nil {
		return models.Template{}, err
	}
	in.apply(&t)
	t.UpdatedAt = now()
	if err := s.store.Templates.Update(ctx, t); err != nil {
		return models.Template{}, err
	}
	s.activity.Log(ctx, "update", "template", t.ID.String(), t.Name)
	return t, nil
}

// Delete removes a template and its fields.
func (s *TemplateService) Delete(ctx context.Context, id uuid.UUID) error {
	t, err := s.store.Templates.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if _, err := s.store.Fields.DeleteWhere(ctx, map[string]any{"template_id": id}); err != nil {
		return err
	}
	if err := s.store.Templates.Delete(ctx, id); err != nil {
		return err
	}
	s.activity.Log(ctx, "delete", "template", id.String(), t.Name)
	return nil
}

// Duplicate copies a template and all of its fields under a new name.
func (s *TemplateService) Duplicate(ctx context.Context, id uuid.UUID, name string) (models.Template, []models.TemplateField, error) {
	src, fields, err := s.Get(ctx, id)
	if err != nil {
		return models.Template{}, nil, err
	}
	dup := src
	dup.ID = uuid.New()
	dup.Name = name
	if dup.Name == "" {
		dup.Name = src.Name + " (copie)"
	}
	dup.CreatedAt, dup.UpdatedAt = now(), now()
	if err := s.store.Templates.Insert(ctx, dup); err != nil {
		return models.Template{}, nil, err
	}
	out := make([]models.TemplateField, len(fields))
	for i, f := range fields {
		f.ID = uuid.New()
		f.TemplateID = dup.ID
		f.CreatedAt, f.UpdatedAt = now(), now()
		if err := s.store.Fields.Insert(ctx, f); err != nil {
			return dup, nil, err
		}
		out[i] = f
	}
	s.activity.Log(ctx, "duplicate", "template", dup.ID.String(), src.ID.String())
	return dup, out, nil
}

// SetBackground stores or clears the background image reference.
func (s *TemplateService) SetBackground(ctx context.Context, id uuid.UUID, url *string) (models.Template, error) {
	t, err := s.store.Templates.GetByID(ctx, id)
	if err != nil {
		return models.Template{}, err
	}
	if url != nil && *url == "" {
		url = nil
	}
	t.BackgroundImage = url
	t.UpdatedAt = now()
	if err := s.store.Templates.Update(ctx, t); err != nil {
		return models.Template{}, err
	}
	return t, nil
}

// UploadBackground sends an image to the media host and stores its URL.
func (s *TemplateService) UploadBackground(ctx context.Context, id uuid.UUID, r io.Reader) (models.Template, error) {
	if s.uploader == nil {
		return models.Template{}, ErrUploadDisabled
	}
	if _, err := s.store.Templates.GetByID(ctx, id); err != nil {
		return models.Template{}, err
	}
	url, err := s.uploader.Upload(ctx, r, id)
	if err != nil {
		return models.Template{}, err
	}
	return s.SetBackground(ctx, id, &url)
}

// Layout loads the editable layout of a template. Field directions follow
// the current date policy.
func (s *TemplateService) Layout(ctx context.Context, templateID uuid.UUID) (*layout.Layout, models.Template, error) {
	t, fields, err := s.Get(ctx, templateID)
	if err != nil {
		return nil, models.Template{}, err
	}
	dates, err := s.settings.DateFormats(ctx)
	if err != nil {
		return nil, models.Template{}, err
	}
	resolver := fieldvalue.NewResolver(dates)
	l := layout.New(t, fields)
	l.DirectionOf = resolver.Direction
	return l, t, nil
}

// SaveLayout persists the pending changes of a layout.
func (s *TemplateService) SaveLayout(ctx context.Context, changed []models.TemplateField, deleted []uuid.UUID) error {
	for _, f := range changed {
		f.UpdatedAt = now()
		err := s.store.Fields.Update(ctx, f)
		if errors.Is(err, store.ErrNotFound) {
			f.CreatedAt = now()
			err = s.store.Fields.Insert(ctx, f)
		}
		if err != nil {
			return err
		}
	}
	for _, id := range deleted {
		if err := s.store.Fields.Delete(ctx, id); err != nil && !errors.Is(err, store.ErrNotFound) {
			return err
		}
	}
	return nil
}

func (s *TemplateService) commit(ctx context.Context, l *layout.Layout) error {
	if !l.Dirty() {
		return nil
	}
	if err := s.SaveLayout(ctx, l.Changes(), l.Deleted()); err != nil {
		return err
	}
	l.MarkSaved()
	return nil
}

// editField applies fn to the layout owning fieldID and saves the result.
func (s *TemplateService) editField(ctx context.Context, fieldID uuid.UUID, fn func(l *layout.Layout) (models.TemplateField, error)) (models.TemplateField, error) {
	f, err := s.store.Fields.GetByID(ctx, fieldID)
	if err != nil {
		return models.TemplateField{}, err
	}
	l, _, err := s.Layout(ctx, f.TemplateID)
	if err != nil {
		return models.TemplateField{}, err
	}
	out, err := fn(l)
	if err != nil {
		return models.TemplateField{}, err
	}
	return out, s.commit(ctx, l)
}

func (s *TemplateService) AddField(ctx context.Context, templateID uuid.UUID, in FieldInput) (models.TemplateField, error) {
	if err := validateStruct(in); err != nil {
		return models.TemplateField{}, err
	}
	l, _, err := s.Layout(ctx, templateID)
	if err != nil {
		return models.TemplateField{}, err
	}
	f := models.TemplateField{TemplateID: templateID, IsVisible: true}
	in.apply(&f)
	f = l.AddField(f)
	return f, s.commit(ctx, l)
}

func (s *TemplateService) UpdateField(ctx context.Context, fieldID uuid.UUID, in FieldInput) (models.TemplateField, error) {
	if err := validateStruct(in); err != nil {
		return models.TemplateField{}, err
	}
	return s.editField(ctx, fieldID, func(l *layout.Layout) (models.TemplateField, error) {
		f, _ := l.Field(fieldID)
		in.apply(&f)
		return l.UpdateField(f)
	})
}

func (s *TemplateService) DeleteField(ctx context.Context, fieldID uuid.UUID) error {
	_, err := s.editField(ctx, fieldID, func(l *layout.Layout) (models.TemplateField, error) {
		return models.TemplateField{}, l.DeleteField(fieldID)
	})
	return err
}

func (s *TemplateService) MoveField(ctx context.Context, fieldID uuid.UUID, dir layout.Direction, step float64) (models.TemplateField, error) {
	if step <= 0 {
		return models.TemplateField{}, invalid("step must be positive")
	}
	return s.editField(ctx, fieldID, func(l *layout.Layout) (models.TemplateField, error) {
		return l.MoveField(fieldID, dir, step)
	})
}

func (s *TemplateService) DragField(ctx context.Context, fieldID uuid.UUID, x, y float64) (models.TemplateField, error) {
	return s.editField(ctx, fieldID, func(l *layout.Layout) (models.TemplateField, error) {
		f, _, err := l.DragField(fieldID, x, y)
		return f, err
	})
}

func (s *TemplateService) ResizeField(ctx context.Context, fieldID uuid.UUID, width float64) (models.TemplateField, error) {
	return s.editField(ctx, fieldID, func(l *layout.Layout) (models.TemplateField, error) {
		f, _, err := l.ResizeField(fieldID, width)
		return f, err
	})
}

func (s *TemplateService) ToggleField(ctx context.Context, fieldID uuid.UUID) (models.TemplateField, error) {
	return s.editField(ctx, fieldID, func(l *layout.Layout) (models.TemplateField, error) {
		return l.ToggleVisibility(fieldID)
	})
}
