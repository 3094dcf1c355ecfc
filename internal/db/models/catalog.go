package models

import "time"

// CatalogItem is a product or service shown in the eCatalog.
type CatalogItem struct {
	ID          uint      `gorm:"primaryKey"              json:"id"`
	Name        string    `gorm:"size:200;not null"       json:"name"     validate:"required"`
	Category    string    `gorm:"size:120;not null;index" json:"category" validate:"required"`
	Description string    `gorm:"type:text"               json:"description"`
	Price       float64   `gorm:"not null;default:0"      json:"price"    validate:"gte=0"`
	ImageURL    string    `gorm:"size:500"                json:"image_url"`
	SortOrder   int       `gorm:"not null;default:0"      json:"sort_order"`
	IsActive    bool      `gorm:"not null;index"          json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Key returns the primary key.
func (c *CatalogItem) Key() any { return c.ID }

// Retain keeps identity, creation time and the active flag from prev.
func (c *CatalogItem) Retain(prev *CatalogItem) {
	if prev == nil {
		c.ID, c.CreatedAt, c.IsActive = 0, time.Time{}, true
		return
	}

	c.ID, c.CreatedAt, c.IsActive = prev.ID, prev.CreatedAt, prev.IsActive
}
