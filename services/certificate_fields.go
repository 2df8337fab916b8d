package services

import (
	"strings"
	"time"

	"github.com/lolobelaiba-droid/graduation-guardian/fieldvalue"
	"github.com/lolobelaiba-droid/graduation-guardian/models"
)

type setter func(c *models.Certificate, v string) error

func text(dst func(c *models.Certificate) *string) setter {
	return func(c *models.Certificate, v string) error {
		*dst(c) = v
		return nil
	}
}

func date(dst func(c *models.Certificate) **time.Time) setter {
	return func(c *models.Certificate, v string) error {
		t, ok := fieldvalue.ParseDate(v)
		if !ok {
			return invalid("invalid date %q", v)
		}
		*dst(c) = &t
		return nil
	}
}

// columnSetters maps record keys to certificate attributes.
var columnSetters = map[string]setter{
	"student_number":     text(func(c *models.Certificate) *string { return &c.StudentNumber }),
	"full_name_ar":       text(func(c *models.Certificate) *string { return &c.FullNameAr }),
	"full_name_fr":       text(func(c *models.Certificate) *string { return &c.FullNameFr }),
	"gender":             text(func(c *models.Certificate) *string { return &c.Gender }),
	"birthplace_ar":      text(func(c *models.Certificate) *string { return &c.BirthplaceAr }),
	"birthplace_fr":      text(func(c *models.Certificate) *string { return &c.BirthplaceFr }),
	"university_ar":      text(func(c *models.Certificate) *string { return &c.UniversityAr }),
	"university_fr":      text(func(c *models.Certificate) *string { return &c.UniversityFr }),
	"faculty_ar":         text(func(c *models.Certificate) *string { return &c.FacultyAr }),
	"faculty_fr":         text(func(c *models.Certificate) *string { return &c.FacultyFr }),
	"field_ar":           text(func(c *models.Certificate) *string { return &c.FieldAr }),
	"field_fr":           text(func(c *models.Certificate) *string { return &c.FieldFr }),
	"specialty_ar":       text(func(c *models.Certificate) *string { return &c.SpecialtyAr }),
	"specialty_fr":       text(func(c *models.Certificate) *string { return &c.SpecialtyFr }),
	"branch_ar":          text(func(c *models.Certificate) *string { return &c.BranchAr }),
	"branch_fr":          text(func(c *models.Certificate) *string { return &c.BranchFr }),
	"thesis_title_ar":    text(func(c *models.Certificate) *string { return &c.ThesisTitleAr }),
	"thesis_title_fr":    text(func(c *models.Certificate) *string { return &c.ThesisTitleFr }),
	"supervisor_ar":      text(func(c *models.Certificate) *string { return &c.SupervisorAr }),
	"supervisor_fr":      text(func(c *models.Certificate) *string { return &c.SupervisorFr }),
	"jury_president_ar":  text(func(c *models.Certificate) *string { return &c.JuryPresidentAr }),
	"jury_president_fr":  text(func(c *models.Certificate) *string { return &c.JuryPresidentFr }),
	"jury_members_ar":    text(func(c *models.Certificate) *string { return &c.JuryMembersAr }),
	"jury_members_fr":    text(func(c *models.Certificate) *string { return &c.JuryMembersFr }),
	"certificate_number": text(func(c *models.Certificate) *string { return &c.CertificateNumber }),
	"date_of_birth":      date(func(c *models.Certificate) **time.Time { return &c.DateOfBirth }),
	"defense_date":       date(func(c *models.Certificate) **time.Time { return &c.DefenseDate }),
	"certificate_date":   date(func(c *models.Certificate) **time.Time { return &c.CertificateDate }),
	"mention": func(c *models.Certificate, v string) error {
		m, ok := fieldvalue.ParseMention(v)
		if !ok {
			return invalid("unknown mention %q", v)
		}
		c.Mention = m
		return nil
	},
}

// columnAliases are alternative spellings found in spreadsheets.
var columnAliases = map[string]string{
	"birth_date":    "date_of_birth",
	"matricule":     "student_number",
	"numero":        "student_number",
	"nom_prenom_ar": "full_name_ar",
	"nom_prenom":    "full_name_fr",
}

// CertificateFromValues builds a certificate of category from a key/value
// row. Keys naming a custom field, with or without the custom_ prefix, go
// to Extra; anything else unknown is ignored.
func CertificateFromValues(category string, values map[string]string, custom map[string]bool) (models.Certificate, error) {
	c := models.Certificate{Category: category}
	for key, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if alias, ok := columnAliases[key]; ok {
			key = alias
		}
		if set, ok := columnSetters[key]; ok {
			if err := set(&c, v); err != nil {
				return c, invalid("%s: %v", key, err)
			}
			continue
		}
		name := strings.TrimPrefix(key, "custom_")
		if custom[name] {
			if c.Extra == nil {
				c.Extra = map[string]any{}
			}
			c.Extra[name] = v
		}
	}
	return c, validateCertificate(c)
}

func validateCertificate(c models.Certificate) error {
	switch {
	case !validCategory(c.Category):
		return invalid("unknown category %q", c.Category)
	case strings.TrimSpace(c.StudentNumber) == "":
		return invalid("student_number is required")
	case strings.TrimSpace(c.FullNameAr) == "":
		return invalid("full_name_ar is required")
	case c.Mention != "" && !fieldvalue.ValidMention(c.Mention):
		return invalid("unknown mention %q", c.Mention)
	}
	return nil
}

func validCategory(c string) bool {
	for _, k := range models.Categories {
		if k == c {
			return true
		}
	}
	return false
}
