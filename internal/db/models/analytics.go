package models

// AnalyticsCounter counts one event name per calendar day.
type AnalyticsCounter struct {
	ID    uint   `gorm:"primaryKey"                                  json:"-"`
	Event string `gorm:"size:120;not null;uniqueIndex:idx_event_day" json:"event"`
	Day   string `gorm:"size:10;not null;uniqueIndex:idx_event_day"  json:"day"`
	Count int64  `gorm:"column:hits;not null;default:0"              json:"count"`
}

// All returns every model for AutoMigrate.
func All() []any {
	return []any{
		&Setting{},
		&Doctor{},
		&Leave{},
		&CatalogItem{},
		&RadiologyPrice{},
		&MCUPackage{},
		&Promo{},
		&Post{},
		&Newsletter{},
		&DeviceHeartbeat{},
		&AnalyticsCounter{},
	}
}
