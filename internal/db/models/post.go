package models

import "time"

// Post is a news article or health tip.
type Post struct {
	ID          uint       `gorm:"primaryKey"              json:"id"`
	Title       string     `gorm:"size:250;not null"       json:"title"   validate:"required"`
	Content     string     `gorm:"type:text;not null"      json:"content" validate:"required"`
	Category    string     `gorm:"size:120;index"          json:"category"`
	ImageURL    string     `gorm:"size:500"                json:"image_url"`
	PublishedAt *time.Time `json:"published_at"`
	IsActive    bool       `gorm:"not null;index"          json:"is_active"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Key returns the primary key.
func (p *Post) Key() any { return p.ID }

// Retain keeps identity, creation time and the active flag from prev.
func (p *Post) Retain(prev *Post) {
	if prev == nil {
		p.ID, p.CreatedAt, p.IsActive = 0, time.Time{}, true
		return
	}

	p.ID, p.CreatedAt, p.IsActive = prev.ID, prev.CreatedAt, prev.IsActive
}
