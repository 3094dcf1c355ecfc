package models

import "time"

// DateLayout is the format of all calendar date columns.
const DateLayout = "2006-01-02"

// Leave is a period during which a doctor is not available.
// Dates are stored as YYYY-MM-DD so they compare lexically on every engine.
type Leave struct {
	ID        uint      `gorm:"primaryKey"             json:"id"`
	DoctorID  uint      `gorm:"not null;index"         json:"doctor_id"  validate:"required"`
	Doctor    *Doctor   `gorm:"constraint:OnDelete:CASCADE" json:"doctor,omitempty" validate:"-"`
	StartDate string    `gorm:"size:10;not null;index" json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string    `gorm:"size:10;not null;index" json:"end_date"   validate:"required,datetime=2006-01-02"`
	Reason    string    `gorm:"size:500"               json:"reason"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Key returns the primary key.
func (l *Leave) Key() any { return l.ID }

// Retain keeps identity and creation time from prev; prev is nil on create.
func (l *Leave) Retain(prev *Leave) {
	l.Doctor = nil

	if prev == nil {
		l.ID, l.CreatedAt = 0, time.Time{}
		return
	}

	l.ID, l.CreatedAt = prev.ID, prev.CreatedAt
}
