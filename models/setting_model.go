package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const SettingDateFormats = "date_formats"

type Setting struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Key       string         `gorm:"size:100;not null;unique" json:"key"`
	Value     datatypes.JSON `json:"value"`
	UpdatedAt time.Time      `json:"updated_at"`
}

func (Setting) TableName() string { return "settings" }

func (s Setting) EntityID() uuid.UUID { return s.ID }

func (s Setting) UniqueKey() string { return s.Key }
