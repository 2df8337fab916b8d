package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/lolobelaiba-droid/graduation-guardian/models"
	"github.com/lolobelaiba-droid/graduation-guardian/spreadsheet"
	"github.com/lolobelaiba-droid/graduation-guardian/store"
	"github.com/lolobelaiba-droid/graduation-guardian/utils"
)

var searchColumns = []string{"student_number", "full_name_ar", "full_name_fr", "certificate_number"}

type CertificateService struct {
	store    *store.Store
	activity *ActivityService
}

// List returns the records of a category, or all records, by student number.
func (s *CertificateService) List(ctx context.Context, category string) ([]models.Certificate, error) {
	return s.Search(ctx, category, "")
}

func (s *CertificateService) Search(ctx context.Context, category, term string) ([]models.Certificate, error) {
	q := store.Query{Term: strings.TrimSpace(term), Columns: searchColumns}
	if category != "" {
		q.Filters = map[string]any{"category": category}
	}
	rows, err := s.store.Certificates.Search(ctx, q)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].StudentNumber < rows[j].StudentNumber })
	return rows, nil
}

func (s *CertificateService) Get(ctx context.Context, id uuid.UUID) (models.Certificate, error) {
	return s.store.Certificates.GetByID(ctx, id)
}

// ByIDs returns the records in the order of ids.
func (s *CertificateService) ByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Certificate, error) {
	out := make([]models.Certificate, 0, len(ids))
	for _, id := range ids {
		c, err := s.store.Certificates.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func (s *CertificateService) insert(ctx context.Context, c models.Certificate) (models.Certificate, error) {
	if err := validateCertificate(c); err != nil {
		return models.Certificate{}, err
	}
	c.ID = uuid.New()
	c.CreatedAt, c.UpdatedAt = now(), now()
	if err := s.store.Certificates.Insert(ctx, c); err != nil {
		return models.Certificate{}, err
	}
	return c, nil
}

func (s *CertificateService) Create(ctx context.Context, c models.Certificate) (models.Certificate, error) {
	c, err := s.insert(ctx, c)
	if err != nil {
		return c, err
	}
	s.activity.Log(ctx, "create", "certificate", c.ID.String(), c.StudentNumber)
	return c, nil
}

func (s *CertificateService) Update(ctx context.Context, id uuid.UUID, c models.Certificate) (models.Certificate, error) {
	cur, err := s.store.Certificates.GetByID(ctx, id)
	if err != nil {
		return models.Certificate{}, err
	}
	if err := validateCertificate(c); err != nil {
		return models.Certificate{}, err
	}
	c.ID = id
	c.CreatedAt = cur.CreatedAt
	c.UpdatedAt = now()
	if err := s.store.Certificates.Update(ctx, c); err != nil {
		return models.Certificate{}, err
	}
	s.activity.Log(ctx, "update", "certificate", id.String(), c.StudentNumber)
	return c, nil
}

// CreateFromValues builds a record from key/value input, the shape used by
// forms and spreadsheet rows.
func (s *CertificateService) CreateFromValues(ctx context.Context, category string, values map[string]string) (models.Certificate, error) {
	custom, err := s.customKeys(ctx)
	if err != nil {
		return models.Certificate{}, err
	}
	c, err := CertificateFromValues(category, values, custom)
	if err != nil {
		return models.Certificate{}, err
	}
	return s.Create(ctx, c)
}

// UpdateFromValues replaces a record with key/value input. An empty
// category keeps the current one.
func (s *CertificateService) UpdateFromValues(ctx context.Context, id uuid.UUID, category string, values map[string]string) (models.Certificate, error) {
	if category == "" {
		cur, err := s.store.Certificates.GetByID(ctx, id)
		if err != nil {
			return models.Certificate{}, err
		}
		category = cur.Category
	}
	custom, err := s.customKeys(ctx)
	if err != nil {
		return models.Certificate{}, err
	}
	c, err := CertificateFromValues(category, values, custom)
	if err != nil {
		return models.Certificate{}, err
	}
	return s.Update(ctx, id, c)
}

// AssignNumbers gives every record of the category that has no
// certificate number a fresh one starting with prefix. It returns how many
// records were numbered.
func (s *CertificateService) AssignNumbers(ctx context.Context, category, prefix string) (int, error) {
	if !validCategory(category) {
		return 0, invalid("unknown category %q", category)
	}
	all, err := s.store.Certificates.GetAll(ctx)
	if err != nil {
		return 0, err
	}
	taken := make(map[string]bool, len(all))
	for _, c := range all {
		if c.CertificateNumber != "" {
			taken[c.CertificateNumber] = true
		}
	}

	n := 0
	for _, c := range all {
		if c.Category != category || c.CertificateNumber != "" {
			continue
		}
		c.CertificateNumber = utils.GenerateUniqueCode(prefix, func(code string) bool { return taken[code] })
		taken[c.CertificateNumber] = true
		c.UpdatedAt = now()
		if err := s.store.Certificates.Update(ctx, c); err != nil {
			return n, err
		}
		n++
	}
	if n > 0 {
		s.activity.Log(ctx, "number", "certificate", category, fmt.Sprintf("%d records", n))
	}
	return n, nil
}

func (s *CertificateService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.store.Certificates.Delete(ctx, id); err != nil {
		return err
	}
	s.activity.Log(ctx, "delete", "certificate", id.String(), "")
	return nil
}

// ExportColumns lists the exported columns: the fixed attributes followed
// by the custom fields.
func (s *CertificateService) ExportColumns(ctx context.Context) ([]spreadsheet.Column, error) {
	cols := []spreadsheet.Column{{Key: "category", Header: "category"}}
	for _, k := range exportKeys {
		cols = append(cols, spreadsheet.Column{Key: k, Header: k})
	}
	custom, err := s.CustomFields(ctx)
	if err != nil {
		return nil, err
	}
	for _, f := range custom {
		cols = append(cols, spreadsheet.Column{Key: "custom_" + f.Key, Header: "custom_" + f.Key})
	}
	return cols, nil
}

var exportKeys = []string{
	"student_number", "full_name_ar", "full_name_fr", "gender", "date_of_birth",
	"birthplace_ar", "birthplace_fr", "university_ar", "university_fr",
	"faculty_ar", "faculty_fr", "field_ar", "field_fr", "branch_ar", "branch_fr",
	"specialty_ar", "specialty_fr", "thesis_title_ar", "thesis_title_fr",
	"supervisor_ar", "supervisor_fr", "jury_president_ar", "jury_president_fr",
	"jury_members_ar", "jury_members_fr", "defense_date", "mention",
	"certificate_number", "certificate_date",
}

// ExportRows flattens certificates into string rows keyed like ExportColumns.
// Dates are written as ISO dates so the file imports back unchanged.
func ExportRows(certs []models.Certificate) []map[string]string {
	rows := make([]map[string]string, len(certs))
	for i, c := range certs {
		row := map[string]string{"category": c.Category}
		for k, v := range c.Record() {
			switch t := v.(type) {
			case string:
				row[k] = t
			case interface{ Format(string) string }:
				row[k] = t.Format("2006-01-02")
			default:
				if v != nil {
					row[k] = strings.TrimSpace(fmt.Sprint(v))
				}
			}
		}
		rows[i] = row
	}
	return rows
}

func (s *CertificateService) CustomFields(ctx context.Context) ([]models.CustomField, error) {
	rows, err := s.store.CustomFields.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].SortOrder < rows[j].SortOrder })
	return rows, nil
}

type CustomFieldInput struct {
	Key       string `json:"field_key" validate:"required,max=100"`
	LabelAr   string `json:"label_ar" validate:"required,max=255"`
	LabelFr   string `json:"label_fr" validate:"max=255"`
	Category  string `json:"category" validate:"omitempty,oneof=phd_lmd phd_science master"`
	FieldType string `json:"field_type" validate:"omitempty,oneof=text date number"`
	SortOrder int    `json:"field_order"`
}

func (in CustomFieldInput) apply(f *models.CustomField) {
	f.Key = strings.ToLower(strings.TrimSpace(in.Key))
	f.LabelAr, f.LabelFr = in.LabelAr, in.LabelFr
	f.Category = in.Category
	f.FieldType = in.FieldType
	if f.FieldType == "" {
		f.FieldType = "text"
	}
	f.SortOrder = in.SortOrder
}

func (s *CertificateService) CreateCustomField(ctx context.Context, in CustomFieldInput) (models.CustomField, error) {
	if err := validateStruct(in); err != nil {
		return models.CustomField{}, err
	}
	f := models.CustomField{ID: uuid.New(), CreatedAt: now()}
	in.apply(&f)
	if !validKey(f.Key) {
		return models.CustomField{}, invalid("field_key may only contain letters, digits and underscores")
	}
	if _, known := columnSetters[f.Key]; known {
		return models.CustomField{}, invalid("%s is a built-in field", f.Key)
	}
	if err := s.store.CustomFields.Insert(ctx, f); err != nil {
		return models.CustomField{}, err
	}
	s.activity.Log(ctx, "create", "custom_field", f.ID.String(), f.Key)
	return f, nil
}

func (s *CertificateService) UpdateCustomField(ctx context.Context, id uuid.UUID, in CustomFieldInput) (models.CustomField, error) {
	if err := validateStruct(in); err != nil {
		return models.CustomField{}, err
	}
	f, err := s.store.CustomFields.GetByID(ctx, id)
	if err != nil {
		return models.CustomField{}, err
	}
	in.apply(&f)
	if err := s.store.CustomFields.Update(ctx, f); err != nil {
		return models.CustomField{}, err
	}
	return f, nil
}

func (s *CertificateService) DeleteCustomField(ctx context.Context, id uuid.UUID) error {
	if err := s.store.CustomFields.Delete(ctx, id); err != nil {
		return err
	}
	s.activity.Log(ctx, "delete", "custom_field", id.String(), "")
	return nil
}

func (s *CertificateService) customKeys(ctx context.Context) (map[string]bool, error) {
	fields, err := s.CustomFields(ctx)
	if err != nil {
		return nil, err
	}
	keys := make(map[string]bool, len(fields))
	for _, f := range fields {
		keys[f.Key] = true
	}
	return keys, nil
}

func validKey(k string) bool {
	if k == "" {
		return false
	}
	for _, r := range k {
		if !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '_') {
			return false
		}
	}
	return true
}
