package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Newsletter is the monthly bulletin; one per (year, month).
type Newsletter struct {
	ID        uuid.UUID `gorm:"type:char(36);primaryKey"             json:"id"`
	Year      int       `gorm:"not null;uniqueIndex:idx_newsletter_period" json:"year"  validate:"required,gte=2000,lte=2100"`
	Month     int       `gorm:"not null;uniqueIndex:idx_newsletter_period" json:"month" validate:"required,gte=1,lte=12"`
	Title     string    `gorm:"size:250;not null"                    json:"title"    validate:"required"`
	FileURL   string    `gorm:"size:500;not null"                    json:"file_url" validate:"required,url"`
	CoverURL  string    `gorm:"size:500"                             json:"cover_url" validate:"omitempty,url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate assigns a random id.
func (n *Newsletter) BeforeCreate(_ *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}

	return nil
}

// Key returns the primary key.
func (n *Newsletter) Key() any { return n.ID }

// Retain keeps identity and creation time from prev; prev is nil on create.
func (n *Newsletter) Retain(prev *Newsletter) {
	if prev == nil {
		n.ID, n.CreatedAt = uuid.Nil, time.Time{}
		return
	}

	n.ID, n.CreatedAt = prev.ID, prev.CreatedAt
}
