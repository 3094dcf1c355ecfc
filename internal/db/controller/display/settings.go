// Package display stores the behaviour of the slideshow and eCatalog clients.
package display

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/MediBoard/MediBoard/internal/db/controller/setting"
)

const (
	// SettingKey is the key used to store the display configuration in the settings table.
	SettingKey = "display"
)

type (
	// Settings represents the display client configuration.
	Settings struct {
		SlideIntervalSeconds int    `json:"slide_interval_seconds" validate:"gte=1,lte=3600"`
		OnlineWindowSeconds  int    `json:"online_window_seconds"  validate:"gte=10,lte=86400"`
		RefreshMinutes       int    `json:"refresh_minutes"        validate:"gte=1,lte=1440"`
		ShowClock            bool   `json:"show_clock"`
		Theme                string `json:"theme"                  validate:"oneof=light dark"`
		Announcement         string `json:"announcement"           validate:"max=500"`
	}
)

// Defaults returns the configuration used before anything is saved.
func Defaults() Settings {
	return Settings{
		SlideIntervalSeconds: 8,
		OnlineWindowSeconds:  120,
		RefreshMinutes:       15,
		ShowClock:            true,
		Theme:                "light",
	}
}

// OnlineWindow is the time after the last heartbeat a device still counts as online.
func (d Settings) OnlineWindow() time.Duration {
	return time.Duration(d.OnlineWindowSeconds) * time.Second
}

// Load loads the display settings. A missing or undecodable value yields the defaults.
func (d *Settings) Load(ctx context.Context, db *gorm.DB) error {
	*d = Defaults()

	s, err := setting.Get(ctx, db, SettingKey)
	if err != nil {
		if errors.Is(err, setting.ErrSettingNotFound) {
			return nil
		}

		return err
	}

	if err = json.Unmarshal([]byte(s.Value), d); err != nil {
		log.Warn().Err(err).Str("key", SettingKey).Msg("stored display config is not valid, using defaults")

		*d = Defaults()
	}

	return nil
}

// Save validates and stores the display settings.
func (d *Settings) Save(ctx context.Context, db *gorm.DB, validate *validator.Validate) error {
	if err := validate.Struct(d); err != nil {
		return err
	}

	_, err := setting.Set(ctx, db, setting.Entry{Key: SettingKey, Value: d})

	return err
}

// Seed stores the defaults unless a display config already exists.
func Seed(ctx context.Context, db *gorm.DB) error {
	_, err := setting.Get(ctx, db, SettingKey)
	if err == nil {
		return nil
	}

	if !errors.Is(err, setting.ErrSettingNotFound) {
		return err
	}

	d := Defaults()

	_, err = setting.Set(ctx, db, setting.Entry{Key: SettingKey, Value: &d})

	return err
}
