// Package popupad stores the popup advertisement shown by the display clients.
package popupad

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/MediBoard/MediBoard/internal/db/controller/setting"
)

// ErrImageRequired is returned when an enabled popup has no image.
var ErrImageRequired = errors.New("image_url is required when the popup is enabled")

const (
	// SettingKey is the key used to store the popup ad in the settings table.
	SettingKey = "popup_ad"
)

type (
	// Settings represents the popup advertisement configuration.
	Settings struct {
		Enabled        bool   `json:"enabled"`
		Title          string `json:"title"           validate:"max=200"`
		ImageURL       string `json:"image_url"       validate:"omitempty,url"`
		LinkURL        string `json:"link_url"        validate:"omitempty,url"`
		DisplaySeconds int    `json:"display_seconds" validate:"gte=1,lte=600"`
		StartDate      string `json:"start_date"      validate:"omitempty,datetime=2006-01-02"`
		EndDate        string `json:"end_date"        validate:"omitempty,datetime=2006-01-02"`
	}
)

// Defaults returns a disabled popup.
func Defaults() Settings {
	return Settings{DisplaySeconds: 10}
}

// Load loads the popup settings. A missing or undecodable value yields the defaults.
func (p *Settings) Load(ctx context.Context, db *gorm.DB) error {
	*p = Defaults()

	s, err := setting.Get(ctx, db, SettingKey)
	if err != nil {
		if errors.Is(err, setting.ErrSettingNotFound) {
			return nil
		}

		return err
	}

	if err = json.Unmarshal([]byte(s.Value), p); err != nil {
		log.Warn().Err(err).Str("key", SettingKey).Msg("stored popup ad is not valid, using defaults")

		*p = Defaults()
	}

	return nil
}

// Save validates and stores the popup settings.
func (p *Settings) Save(ctx context.Context, db *gorm.DB, validate *validator.Validate) error {
	if err := validate.Struct(p); err != nil {
		return err
	}

	if p.Enabled && p.ImageURL == "" {
		return ErrImageRequired
	}

	_, err := setting.Set(ctx, db, setting.Entry{Key: SettingKey, Value: p})

	return err
}
