package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MCUPackage is a medical check-up package.
type MCUPackage struct {
	ID          uuid.UUID `gorm:"type:char(36);primaryKey"      json:"id"`
	Name        string    `gorm:"size:200;not null"             json:"name"  validate:"required"`
	Price       float64   `gorm:"not null"                      json:"price" validate:"required,gt=0"`
	Description string    `gorm:"type:text"                     json:"description"`
	Items       []string  `gorm:"type:text;serializer:json"     json:"items"`
	ImageURL    string    `gorm:"size:500"                      json:"image_url"`
	SortOrder   int       `gorm:"not null;default:0;index"      json:"sort_order"`
	IsActive    bool      `gorm:"not null;index"                json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName keeps the acronym readable.
func (MCUPackage) TableName() string { return "mcu_packages" }

// BeforeCreate assigns a random id.
func (m *MCUPackage) BeforeCreate(_ *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}

	return nil
}

// Key returns the primary key.
func (m *MCUPackage) Key() any { return m.ID }

// Retain keeps identity, creation time and the active flag from prev.
func (m *MCUPackage) Retain(prev *MCUPackage) {
	if prev == nil {
		m.ID, m.CreatedAt, m.IsActive = uuid.Nil, time.Time{}, true
		return
	}

	m.ID, m.CreatedAt, m.IsActive = prev.ID, prev.CreatedAt, prev.IsActive
}

// SetSortOrder implements resource.Sortable.
func (m *MCUPackage) SetSortOrder(n int) { m.SortOrder = n }
