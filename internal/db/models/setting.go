// Package models contains database model definitions.
package models

import "time"

// Setting is one entry of the generic key/value settings table.
// Value is stored verbatim; callers decide whether it holds JSON.
type Setting struct {
	ID        uint64    `gorm:"primaryKey"                        json:"-"`
	Key       string    `gorm:"size:191;uniqueIndex;not null"     json:"key"`
	Value     string    `gorm:"type:text"                         json:"value"`
	Enabled   bool      `gorm:"not null"                          json:"enabled"`
	UpdatedAt time.Time `json:"updated_at"`
}
