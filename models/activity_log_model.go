package models

import (
	"time"

	"github.com/google/uuid"
)

type ActivityLog struct {
	ID        uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	UserID    *uuid.UUID `gorm:"type:uuid" json:"user_id,omitempty"`
	Action    string     `gorm:"size:50;not null" json:"action"`
	Entity    string     `gorm:"size:50;not null" json:"entity"`
	EntityRef string     `gorm:"size:100" json:"entity_ref"`
	Details   string     `gorm:"type:text" json:"details"`
	CreatedAt time.Time  `gorm:"index" json:"created_at"`
}

func (ActivityLog) TableName() string { return "activity_logs" }

func (a ActivityLog) EntityID() uuid.UUID { return a.ID }
