package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	CategoryPhDLMD     = "phd_lmd"
	CategoryPhDScience = "phd_science"
	CategoryMaster     = "master"
)

const (
	OrientationPortrait  = "portrait"
	OrientationLandscape = "landscape"
)

// Categories lists the certificate categories in display order.
var Categories = []string{CategoryPhDLMD, CategoryPhDScience, CategoryMaster}

type Template struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name            string    `gorm:"size:255;not null" json:"name"`
	Category        string    `gorm:"size:20;not null;index" json:"category"`
	Language        string    `gorm:"size:10;not null;default:'ar_fr'" json:"language"`
	Orientation     string    `gorm:"size:10;not null;default:'landscape'" json:"orientation"`
	PageSize        string    `gorm:"size:10;not null;default:'A4'" json:"page_size"`
	CustomWidth     *float64  `json:"custom_width,omitempty"`
	CustomHeight    *float64  `json:"custom_height,omitempty"`
	MarginTop       float64   `gorm:"default:0" json:"margin_top"`
	MarginRight     float64   `gorm:"default:0" json:"margin_right"`
	MarginBottom    float64   `gorm:"default:0" json:"margin_bottom"`
	MarginLeft      float64   `gorm:"default:0" json:"margin_left"`
	BackgroundImage *string   `gorm:"type:text" json:"background_image,omitempty"`
	IsActive        bool      `gorm:"not null" json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (Template) TableName() string { return "certificate_templates" }

func (t Template) EntityID() uuid.UUID { return t.ID }
