// Package setting provides the generic key/value settings store.
//
// Mutation is upsert-only plus an explicit delete. Values are opaque strings:
// anything that is not already a string is JSON-encoded before it is stored.
package setting

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/MediBoard/MediBoard/internal/db/models"
)

var (
	// ErrSettingNotFound is returned when a setting is not found.
	ErrSettingNotFound = errors.New("setting not found")
	// ErrSettingKeyEmpty is returned when a key is empty.
	ErrSettingKeyEmpty = errors.New("setting key cannot be empty")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// Entry is one setting to upsert. A nil Enabled keeps the stored flag,
// or enables a newly created key.
type Entry struct {
	Key     string `json:"key"`
	Value   any    `json:"value"`
	Enabled *bool  `json:"enabled,omitempty"`
}

// Get retrieves a setting by its key.
func Get(ctx context.Context, db *gorm.DB, key string) (*models.Setting, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if key == "" {
		return nil, ErrSettingKeyEmpty
	}

	var s models.Setting
	err := db.WithContext(ctx).Where(&models.Setting{Key: key}).First(&s).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSettingNotFound
		}

		return nil, err
	}

	return &s, nil
}

// GetAll retrieves all settings ordered by key.
func GetAll(ctx context.Context, db *gorm.DB) ([]models.Setting, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var settings []models.Setting
	if err := db.WithContext(ctx).Order(clause.OrderByColumn{Column: clause.Column{Name: "key"}}).
		Find(&settings).Error; err != nil {
		return nil, err
	}

	return settings, nil
}

// Set upserts a single entry and returns the stored row.
func Set(ctx context.Context, db *gorm.DB, e Entry) (*models.Setting, error) {
	if err := SetMany(ctx, db, []Entry{e}); err != nil {
		return nil, err
	}

	return Get(ctx, db, e.Key)
}

// SetMany upserts all entries in one transaction.
func SetMany(ctx context.Context, db *gorm.DB, entries []Entry) error {
	if db == nil {
		return ErrDBNil
	}

	for _, e := range entries {
		if e.Key == "" {
			return ErrSettingKeyEmpty
		}
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, e := range entries {
			if err := upsert(tx, e); err != nil {
				return err
			}
		}

		return nil
	})
}

func upsert(tx *gorm.DB, e Entry) error {
	value, err := Encode(e.Value)
	if err != nil {
		return err
	}

	row := models.Setting{
		Key:       e.Key,
		Value:     value,
		Enabled:   true,
		UpdatedAt: time.Now().UTC(),
	}

	update := []string{"value", "updated_at"}
	if e.Enabled != nil {
		row.Enabled = *e.Enabled
		update = append(update, "enabled")
	}

	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns(update),
	}).Create(&row).Error
}

// Delete removes a setting. Deleting an absent key is not an error.
func Delete(ctx context.Context, db *gorm.DB, key string) error {
	if db == nil {
		return ErrDBNil
	}
	if key == "" {
		return ErrSettingKeyEmpty
	}

	return db.WithContext(ctx).Where(&models.Setting{Key: key}).Delete(&models.Setting{}).Error
}

// Encode turns value into its stored form. Strings are stored verbatim.
func Encode(value any) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case json.RawMessage:
		trimmed := bytes.TrimSpace(v)

		var s string
		if bytes.HasPrefix(trimmed, []byte(`"`)) && json.Unmarshal(trimmed, &s) == nil {
			return s, nil
		}

		return string(trimmed), nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return "", err
	}

	return string(data), nil
}

// Decode returns the JSON value of raw when it parses, else raw itself.
func Decode(raw string) any {
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return raw
	}

	return v
}
