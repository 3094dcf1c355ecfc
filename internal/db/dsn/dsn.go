// Package dsn provides Data Source Name construction utilities for database connections.
package dsn

import (
	"fmt"
	"strings"

	"github.com/MediBoard/MediBoard/internal/config"
)

// sqliteForeignKeys turns on foreign key enforcement for every pooled connection.
const sqliteForeignKeys = "_pragma=foreign_keys(1)"

// Create builds the Data Source Name for the configured gorm engine.
func Create(cfg *config.Config) string {
	db := cfg.DB

	switch db.GormEngine {
	case config.EnginePostgres:
		out := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s",
			db.Host,
			db.Port,
			db.User,
			db.Password,
			db.Name,
		)
		if db.Extras != "" {
			out += " " + strings.TrimSpace(db.Extras)
		}

		return out
	case config.EngineSQLite:
		return db.Name + "?" + strings.Join(sqliteParams(db.Extras), "&")
	default:
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?%s",
			db.User,
			db.Password,
			db.Host,
			db.Port,
			db.Name,
			db.Extras,
		)
	}
}

// sqliteParams keeps the driver parameters ("_pragma", "_txlock", ...) from
// extras and drops server style settings such as sslmode.
func sqliteParams(extras string) []string {
	fields := strings.FieldsFunc(strings.TrimPrefix(strings.TrimSpace(extras), "?"), func(r rune) bool {
		return r == '&' || r == ' '
	})

	params := make([]string, 0, len(fields)+1)
	hasForeignKeys := false

	for _, f := range fields {
		if !strings.HasPrefix(f, "_") {
			continue
		}

		if strings.HasPrefix(f, "_pragma=foreign_keys") {
			hasForeignKeys = true
		}

		params = append(params, f)
	}

	if !hasForeignKeys {
		params = append(params, sqliteForeignKeys)
	}

	return params
}
