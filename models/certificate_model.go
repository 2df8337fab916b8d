package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	MentionHonorable             = "honorable"
	MentionVeryHonorable         = "very_honorable"
	MentionVeryHonorableCongrats = "very_honorable_congratulations"
	MentionPassable              = "passable"
	MentionAssezBien             = "assez_bien"
	MentionBien                  = "bien"
	MentionTresBien              = "tres_bien"
	MentionExcellent             = "excellent"
)

// Certificate is one graduate record. Doctoral and master records share the
// table and are told apart by Category.
type Certificate struct {
	ID                uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	Category          string            `gorm:"size:20;not null;uniqueIndex:idx_certificates_category_student" json:"category"`
	StudentNumber     string            `gorm:"size:50;not null;uniqueIndex:idx_certificates_category_student" json:"student_number"`
	FullNameAr        string            `gorm:"size:255;not null" json:"full_name_ar"`
	FullNameFr        string            `gorm:"size:255" json:"full_name_fr"`
	Gender            string            `gorm:"size:10" json:"gender"`
	DateOfBirth       *time.Time        `json:"date_of_birth,omitempty"`
	BirthplaceAr      string            `gorm:"size:255" json:"birthplace_ar"`
	BirthplaceFr      string            `gorm:"size:255" json:"birthplace_fr"`
	UniversityAr      string            `gorm:"size:255" json:"university_ar"`
	UniversityFr      string            `gorm:"size:255" json:"university_fr"`
	FacultyAr         string            `gorm:"size:255" json:"faculty_ar"`
	FacultyFr         string            `gorm:"size:255" json:"faculty_fr"`
	FieldAr           string            `gorm:"size:255" json:"field_ar"`
	FieldFr           string            `gorm:"size:255" json:"field_fr"`
	SpecialtyAr       string            `gorm:"size:255" json:"specialty_ar"`
	SpecialtyFr       string            `gorm:"size:255" json:"specialty_fr"`
	BranchAr          string            `gorm:"size:255" json:"branch_ar"`
	BranchFr          string            `gorm:"size:255" json:"branch_fr"`
	ThesisTitleAr     string            `gorm:"type:text" json:"thesis_title_ar"`
	ThesisTitleFr     string            `gorm:"type:text" json:"thesis_title_fr"`
	SupervisorAr      string            `gorm:"size:255" json:"supervisor_ar"`
	SupervisorFr      string            `gorm:"size:255" json:"supervisor_fr"`
	JuryPresidentAr   string            `gorm:"size:255" json:"jury_president_ar"`
	JuryPresidentFr   string            `gorm:"size:255" json:"jury_president_fr"`
	JuryMembersAr     string            `gorm:"type:text" json:"jury_members_ar"`
	JuryMembersFr     string            `gorm:"type:text" json:"jury_members_fr"`
	DefenseDate       *time.Time        `json:"defense_date,omitempty"`
	Mention           string            `gorm:"size:40" json:"mention"`
	CertificateNumber string            `gorm:"size:50" json:"certificate_number"`
	CertificateDate   *time.Time        `json:"certificate_date,omitempty"`
	Extra             datatypes.JSONMap `gorm:"type:jsonb" json:"extra,omitempty"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`
}

func (Certificate) TableName() string { return "certificates" }

func (c Certificate) EntityID() uuid.UUID { return c.ID }

// UniqueKey mirrors idx_certificates_category_student for stores without
// database constraints.
func (c Certificate) UniqueKey() string {
	return c.Category + "/" + c.StudentNumber
}

// Record flattens the certificate into the field-key map read by the
// rendering core. Custom field values are exposed as custom_<key>.
func (c Certificate) Record() map[string]any {
	rec := map[string]any{
		"student_number":     c.StudentNumber,
		"full_name_ar":       c.FullNameAr,
		"full_name_fr":       c.FullNameFr,
		"gender":             c.Gender,
		"birthplace_ar":      c.BirthplaceAr,
		"birthplace_fr":      c.BirthplaceFr,
		"university_ar":      c.UniversityAr,
		"university_fr":      c.UniversityFr,
		"faculty_ar":         c.FacultyAr,
		"faculty_fr":         c.FacultyFr,
		"field_ar":           c.FieldAr,
		"field_fr":           c.FieldFr,
		"specialty_ar":       c.SpecialtyAr,
		"specialty_fr":       c.SpecialtyFr,
		"branch_ar":          c.BranchAr,
		"branch_fr":          c.BranchFr,
		"thesis_title_ar":    c.ThesisTitleAr,
		"thesis_title_fr":    c.ThesisTitleFr,
		"supervisor_ar":      c.SupervisorAr,
		"supervisor_fr":      c.SupervisorFr,
		"jury_president_ar":  c.JuryPresidentAr,
		"jury_president_fr":  c.JuryPresidentFr,
		"jury_members_ar":    c.JuryMembersAr,
		"jury_members_fr":    c.JuryMembersFr,
		"mention":            c.Mention,
		"certificate_number": c.CertificateNumber,
	}
	if c.DateOfBirth != nil {
		rec["date_of_birth"] = *c.DateOfBirth
	}
	if c.DefenseDate != nil {
		rec["defense_date"] = *c.DefenseDate
	}
	if c.CertificateDate != nil {
		rec["certificate_date"] = *c.CertificateDate
	}
	for k, v := range c.Extra {
		rec["custom_"+k] = v
	}
	return rec
}
