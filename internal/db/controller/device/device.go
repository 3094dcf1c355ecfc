// Package device records heartbeats of the display clients.
package device

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/MediBoard/MediBoard/internal/db/models"
)

var (
	// ErrDeviceNotFound is returned when a heartbeat row does not exist.
	ErrDeviceNotFound = errors.New("device not found")
	// ErrDeviceIDEmpty is returned for a heartbeat without device id.
	ErrDeviceIDEmpty = errors.New("device_id is required")
)

// Status is a heartbeat row with its computed online flag.
type Status struct {
	models.DeviceHeartbeat
	Online bool `json:"online"`
}

// Heartbeat upserts the row of hb.DeviceID and stamps it with now.
func Heartbeat(ctx context.Context, db *gorm.DB, hb models.DeviceHeartbeat, now time.Time) (*models.DeviceHeartbeat, error) {
	if hb.DeviceID == "" {
		return nil, ErrDeviceIDEmpty
	}

	hb.ID = 0
	hb.LastSeen = now.UTC()

	err := db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "device_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "kind", "version", "ip", "last_seen"}),
	}).Create(&hb).Error
	if err != nil {
		return nil, err
	}

	var stored models.DeviceHeartbeat
	if err = db.WithContext(ctx).Where(&models.DeviceHeartbeat{DeviceID: hb.DeviceID}).First(&stored).Error; err != nil {
		return nil, err
	}

	return &stored, nil
}

// List returns every device, most recently seen first. A device is online
// when its last heartbeat is younger than window.
func List(ctx context.Context, db *gorm.DB, window time.Duration, now time.Time) ([]Status, error) {
	var rows []models.DeviceHeartbeat
	if err := db.WithContext(ctx).Order("last_seen desc").Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]Status, 0, len(rows))
	for _, r := range rows {
		out = append(out, Status{
			DeviceHeartbeat: r,
			Online:          now.Sub(r.LastSeen) <= window,
		})
	}

	return out, nil
}

// Delete removes a device row by id.
func Delete(ctx context.Context, db *gorm.DB, id uint) error {
	result := db.WithContext(ctx).Delete(&models.DeviceHeartbeat{}, id)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrDeviceNotFound
	}

	return nil
}
