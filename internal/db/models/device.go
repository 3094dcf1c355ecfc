package models

import "time"

// DeviceHeartbeat is the last sign of life of a display client.
type DeviceHeartbeat struct {
	ID        uint      `gorm:"primaryKey"                   json:"id"`
	DeviceID  string    `gorm:"size:120;uniqueIndex;not null" json:"device_id" validate:"required,max=120"`
	Name      string    `gorm:"size:200"                     json:"name"`
	Kind      string    `gorm:"size:50"                      json:"kind"      validate:"omitempty,oneof=slideshow ecatalog kiosk"`
	Version   string    `gorm:"size:50"                      json:"version"`
	IP        string    `gorm:"size:64"                      json:"ip"`
	LastSeen  time.Time `gorm:"not null;index"               json:"last_seen"`
	CreatedAt time.Time `json:"created_at"`
}
