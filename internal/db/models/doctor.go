package models

import "time"

// Doctor is a practitioner shown on the dashboard and the display clients.
type Doctor struct {
	ID          uint      `gorm:"primaryKey"                 json:"id"`
	Name        string    `gorm:"size:200;not null"          json:"name"        validate:"required"`
	Specialty   string    `gorm:"size:120;not null;index"    json:"specialty"   validate:"required"`
	Phone       string    `gorm:"size:50"                    json:"phone"`
	Schedule    string    `gorm:"type:text"                  json:"schedule"`
	PhotoURL    string    `gorm:"size:500"                   json:"photo_url"`
	Description string    `gorm:"type:text"                  json:"description"`
	SortOrder   int       `gorm:"not null;default:0"         json:"sort_order"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Key returns the primary key.
func (d *Doctor) Key() any { return d.ID }

// Retain keeps identity and creation time from prev; prev is nil on create.
func (d *Doctor) Retain(prev *Doctor) {
	if prev == nil {
		d.ID, d.CreatedAt = 0, time.Time{}
		return
	}

	d.ID, d.CreatedAt = prev.ID, prev.CreatedAt
}
