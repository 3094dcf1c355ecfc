// Package doctor holds doctor queries that go beyond the generic resource store.
package doctor

import (
	"context"

	"gorm.io/gorm"

	"github.com/MediBoard/MediBoard/internal/db/models"
)

// Group is the doctors of one specialty.
type Group struct {
	Specialty string          `json:"specialty"`
	Doctors   []models.Doctor `json:"doctors"`
}

// Grouped returns all doctors grouped by specialty, both sorted by name.
func Grouped(ctx context.Context, db *gorm.DB) ([]Group, error) {
	var doctors []models.Doctor
	if err := db.WithContext(ctx).Order("specialty asc, sort_order asc, name asc").Find(&doctors).Error; err != nil {
		return nil, err
	}

	groups := []Group{}
	for _, d := range doctors {
		if n := len(groups); n == 0 || groups[n-1].Specialty != d.Specialty {
			groups = append(groups, Group{Specialty: d.Specialty})
		}

		last := &groups[len(groups)-1]
		last.Doctors = append(last.Doctors, d)
	}

	return groups, nil
}

// OnLeave returns the doctors with a leave covering date (YYYY-MM-DD).
func OnLeave(ctx context.Context, db *gorm.DB, date string) ([]models.Doctor, error) {
	sub := db.Model(&models.Leave{}).
		Select("doctor_id").
		Where("start_date <= ? AND end_date >= ?", date, date)

	doctors := []models.Doctor{}
	err := db.WithContext(ctx).
		Where("id IN (?)", sub).
		Order("name asc").
		Find(&doctors).Error

	return doctors, err
}
