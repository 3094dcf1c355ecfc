// Package daemon wires the long running server together.
package daemon

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/MediBoard/MediBoard/internal/api"
	"github.com/MediBoard/MediBoard/internal/config"
	"github.com/MediBoard/MediBoard/internal/db/connect"
	"github.com/MediBoard/MediBoard/internal/logger"
	"github.com/MediBoard/MediBoard/internal/web"
)

// ErrConfigNil is returned by New without configuration.
var ErrConfigNil = errors.New("config is nil")

// Daemon represents the main application daemon.
type Daemon struct {
	cfg        *config.Config
	webService *web.Service
}

// Start serves until SIGINT or SIGTERM.
func (d *Daemon) Start() error {
	go d.webService.WaitShutdown()

	addr := fmt.Sprintf(":%d", d.cfg.Webserver.Port)
	log.Info().Str("addr", addr).Str("url", d.cfg.Webserver.URL).Msg("starting web service")

	return d.webService.Start(addr)
}

// New initialises logging, opens and migrates the database and builds the web service.
func New(cfg *config.Config) (*Daemon, error) {
	if cfg == nil {
		return nil, ErrConfigNil
	}

	if err := logger.Init(cfg.Log); err != nil {
		return nil, errors.Wrap(err, "failed to init logger")
	}

	db, err := connect.Open(cfg)
	if err != nil {
		return nil, err
	}

	if err = connect.Migrate(context.Background(), db); err != nil {
		return nil, err
	}

	r, err := api.New(cfg, db)
	if err != nil {
		return nil, err
	}

	return &Daemon{
		cfg:        cfg,
		webService: web.New(cfg, r),
	}, nil
}
