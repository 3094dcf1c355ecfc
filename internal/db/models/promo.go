package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Promo is a promotional banner for the slideshow.
type Promo struct {
	ID        uuid.UUID `gorm:"type:char(36);primaryKey" json:"id"`
	Title     string    `gorm:"size:200;not null"        json:"title"     validate:"required"`
	ImageURL  string    `gorm:"size:500;not null"        json:"image_url" validate:"required,url"`
	LinkURL   string    `gorm:"size:500"                 json:"link_url"  validate:"omitempty,url"`
	StartDate string    `gorm:"size:10"                  json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate   string    `gorm:"size:10"                  json:"end_date"   validate:"omitempty,datetime=2006-01-02"`
	SortOrder int       `gorm:"not null;default:0;index" json:"sort_order"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate assigns a random id.
func (p *Promo) BeforeCreate(_ *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}

	return nil
}

// Key returns the primary key.
func (p *Promo) Key() any { return p.ID }

// Retain keeps identity and creation time from prev; prev is nil on create.
func (p *Promo) Retain(prev *Promo) {
	if prev == nil {
		p.ID, p.CreatedAt = uuid.Nil, time.Time{}
		return
	}

	p.ID, p.CreatedAt = prev.ID, prev.CreatedAt
}

// SetSortOrder implements resource.Sortable.
func (p *Promo) SetSortOrder(n int) { p.SortOrder = n }
