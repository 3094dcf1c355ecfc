// Package connect opens the configured database and brings its schema up to date.
package connect

import (
	"context"

	"github.com/glebarez/sqlite"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/MediBoard/MediBoard/internal/config"
	"github.com/MediBoard/MediBoard/internal/db/controller/display"
	"github.com/MediBoard/MediBoard/internal/db/dsn"
	"github.com/MediBoard/MediBoard/internal/db/models"
)

// Open connects with the gorm driver of cfg.DB.GormEngine and applies the pool settings.
func Open(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector

	source := dsn.Create(cfg)

	switch cfg.DB.GormEngine {
	case config.EnginePostgres:
		dialector = postgres.Open(source)
	case config.EngineMySQL:
		dialector = gormmysql.Open(source)
	case config.EngineSQLite:
		dialector = sqlite.Open(source)
	default:
		return nil, config.ErrUnknownGormEngine
	}

	gormCfg := &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)}
	if cfg.DevMode {
		gormCfg.Logger = logger.Default.LogMode(logger.Info)
	}

	db, err := gorm.Open(dialector, gormCfg)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get sql.DB")
	}

	if cfg.DB.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.DB.MaxOpenConns)
	}

	if cfg.DB.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.DB.MaxIdleConns)
	}

	if cfg.DB.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.DB.ConnMaxLifetime)
	}

	log.Info().Str("engine", cfg.DB.GormEngine).Msg("database connected")

	return db, nil
}

// Migrate creates or alters every table and seeds the display defaults.
func Migrate(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(models.All()...); err != nil {
		return errors.Wrap(err, "failed to migrate database")
	}

	if err := display.Seed(ctx, db); err != nil {
		return errors.Wrap(err, "failed to seed display config")
	}

	return nil
}
