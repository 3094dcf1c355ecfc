// Package analytics keeps per day event counters.
//
// The counters are optional: when the table does not exist the package
// degrades to empty results instead of failing the request.
package analytics

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/MediBoard/MediBoard/internal/db/dberr"
	"github.com/MediBoard/MediBoard/internal/db/models"
)

const (
	// DefaultDays is the summary window when none is given.
	DefaultDays = 7
	// MaxDays caps the summary window.
	MaxDays = 365

	dayLayout = models.DateLayout
)

// ErrEventEmpty is returned when tracking an empty event name.
var ErrEventEmpty = errors.New("event is required")

type (
	// Day is one row of the daily breakdown.
	Day struct {
		Day   string `json:"day"`
		Event string `json:"event"`
		Count int64  `json:"count"`
	}

	// Summary aggregates the counters of a window.
	Summary struct {
		From   string           `json:"from"`
		To     string           `json:"to"`
		Totals map[string]int64 `json:"totals"`
		Daily  []Day            `json:"daily"`
	}
)

// Track increments the counter of event for the day of now.
// It reports false when analytics storage is unavailable.
func Track(ctx context.Context, db *gorm.DB, event string, now time.Time) (bool, error) {
	if event == "" {
		return false, ErrEventEmpty
	}

	increment := "hits + 1"
	if db.Dialector.Name() == "postgres" {
		increment = "analytics_counters.hits + 1"
	}

	err := db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "event"}, {Name: "day"}},
		DoUpdates: clause.Assignments(map[string]any{"hits": gorm.Expr(increment)}),
	}).Create(&models.AnalyticsCounter{
		Event: event,
		Day:   now.UTC().Format(dayLayout),
		Count: 1,
	}).Error
	if err != nil {
		if dberr.IsMissingTable(err) {
			log.Warn().Err(err).Str("event", event).Msg("analytics table missing, event dropped")

			return false, nil
		}

		return false, err
	}

	return true, nil
}

// Summarize returns the counters of the last days days up to now.
func Summarize(ctx context.Context, db *gorm.DB, days int, now time.Time) (Summary, error) {
	if days < 1 {
		days = DefaultDays
	}

	days = min(days, MaxDays)

	now = now.UTC()
	s := Summary{
		From:   now.AddDate(0, 0, -(days - 1)).Format(dayLayout),
		To:     now.Format(dayLayout),
		Totals: map[string]int64{},
		Daily:  []Day{},
	}

	var rows []models.AnalyticsCounter

	err := db.WithContext(ctx).
		Where("day >= ? AND day <= ?", s.From, s.To).
		Order("day asc, event asc").
		Find(&rows).Error
	if err != nil {
		if dberr.IsMissingTable(err) {
			log.Warn().Err(err).Msg("analytics table missing, returning empty summary")

			return s, nil
		}

		return Summary{}, err
	}

	for _, r := range rows {
		s.Totals[r.Event] += r.Count
		s.Daily = append(s.Daily, Day{Day: r.Day, Event: r.Event, Count: r.Count})
	}

	return s, nil
}
