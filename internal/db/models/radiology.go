package models

import "time"

// RadiologyPrice is one line of the radiology price list.
type RadiologyPrice struct {
	ID        uint      `gorm:"primaryKey"              json:"id"`
	Name      string    `gorm:"size:200;not null"       json:"name"     validate:"required"`
	Category  string    `gorm:"size:120;not null;index" json:"category" validate:"required"`
	Price     float64   `gorm:"not null"                json:"price"    validate:"required,gt=0"`
	Notes     string    `gorm:"size:500"                json:"notes"`
	IsActive  bool      `gorm:"not null;index"          json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Key returns the primary key.
func (r *RadiologyPrice) Key() any { return r.ID }

// Retain keeps identity, creation time and the active flag from prev.
func (r *RadiologyPrice) Retain(prev *RadiologyPrice) {
	if prev == nil {
		r.ID, r.CreatedAt, r.IsActive = 0, time.Time{}, true
		return
	}

	r.ID, r.CreatedAt, r.IsActive = prev.ID, prev.CreatedAt, prev.IsActive
}
