package models

import (
	"time"

	"github.com/google/uuid"
)

type CustomField struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Key       string    `gorm:"column:field_key;size:100;not null;unique" json:"field_key"`
	LabelAr   string    `gorm:"size:255;not null" json:"label_ar"`
	LabelFr   string    `gorm:"size:255" json:"label_fr"`
	Category  string    `gorm:"size:20" json:"category"`
	FieldType string    `gorm:"size:10;not null;default:'text'" json:"field_type"`
	SortOrder int       `gorm:"column:field_order;default:0" json:"field_order"`
	CreatedAt time.Time `json:"created_at"`
}

func (CustomField) TableName() string { return "custom_fields" }

func (f CustomField) EntityID() uuid.UUID { return f.ID }

func (f CustomField) UniqueKey() string { return f.Key }
