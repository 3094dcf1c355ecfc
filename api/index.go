// Package handler is the serverless entry point. The platform calls Handler
// for every request below the function mount path.
package handler

import (
	"net/http"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/MediBoard/MediBoard/internal/api"
	"github.com/MediBoard/MediBoard/internal/config"
	"github.com/MediBoard/MediBoard/internal/db/connect"
	"github.com/MediBoard/MediBoard/internal/logger"
	"github.com/MediBoard/MediBoard/internal/serverless"
)

var (
	once    sync.Once        //nolint:gochecknoglobals
	serve   http.HandlerFunc //nolint:gochecknoglobals
	initErr error            //nolint:gochecknoglobals
)

// Handler serves one request; the router is built on the first call of a cold start.
func Handler(w http.ResponseWriter, r *http.Request) {
	once.Do(setup)

	if initErr != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"message":"Internal server error"}`))

		return
	}

	serve(w, r)
}

func setup() {
	cfg, err := config.ReadConfig("")
	if err != nil {
		initErr = err
		log.Error().Err(err).Msg("failed to read config")

		return
	}

	if err = logger.Init(cfg.Log); err != nil {
		log.Warn().Err(err).Msg("failed to init logger, using defaults")
	}

	db, err := connect.Open(&cfg)
	if err != nil {
		initErr = err
		log.Error().Err(err).Msg("failed to open database")

		return
	}

	rt, err := api.New(&cfg, db)
	if err != nil {
		initErr = err
		log.Error().Err(err).Msg("failed to build router")

		return
	}

	serve = serverless.Handler(rt, int64(max(cfg.Upload.MaxBytes*2, serverless.DefaultMaxBody)))
}
