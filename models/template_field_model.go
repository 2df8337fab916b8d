package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	AlignLeft   = "left"
	AlignCenter = "center"
	AlignRight  = "right"
)

// TemplateField is one positioned placeholder on a template. X and Y are in
// millimetres from the top-left corner of the unrotated page.
type TemplateField struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	TemplateID uuid.UUID `gorm:"type:uuid;not null;index" json:"template_id"`
	FieldKey   string    `gorm:"size:100;not null" json:"field_key"`
	NameAr     string    `gorm:"column:field_name_ar;size:255" json:"field_name_ar"`
	NameFr     string    `gorm:"column:field_name_fr;size:255" json:"field_name_fr"`
	X          float64   `gorm:"column:position_x;not null" json:"position_x"`
	Y          float64   `gorm:"column:position_y;not null" json:"position_y"`
	Width      *float64  `gorm:"column:field_width" json:"field_width,omitempty"`
	FontName   string    `gorm:"size:100" json:"font_name"`
	FontSize   float64   `gorm:"default:14" json:"font_size"`
	FontColor  string    `gorm:"size:9;default:'#000000'" json:"font_color"`
	Alignment  string    `gorm:"column:text_align;size:10;default:'center'" json:"text_align"`
	IsRTL      bool      `gorm:"not null" json:"is_rtl"`
	IsVisible  bool      `gorm:"not null" json:"is_visible"`
	SortOrder  int       `gorm:"column:field_order;default:0" json:"field_order"`
	StaticText *string   `gorm:"type:text" json:"static_text,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (TemplateField) TableName() string { return "certificate_template_fields" }

func (f TemplateField) EntityID() uuid.UUID { return f.ID }
