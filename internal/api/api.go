// Package api declares the route table and the handlers behind it.
//
// Both transport bindings serve the *router.Router returned by New, so
// there is one route table, one CORS list and one cookie name.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/MediBoard/MediBoard/internal/auth"
	"github.com/MediBoard/MediBoard/internal/config"
	"github.com/MediBoard/MediBoard/internal/notify"
	"github.com/MediBoard/MediBoard/internal/router"
	"github.com/MediBoard/MediBoard/internal/upload"
)

// ErrNilConfigOrDB is returned when New is called without config or database.
var ErrNilConfigOrDB = errors.New("api: config or db is nil")

type (
	// Uploader stores an image and returns where it lives.
	Uploader interface {
		Upload(ctx context.Context, filename string, data []byte) (upload.Result, error)
		MaxBytes() int
	}

	// API holds the dependencies shared by the handlers.
	API struct {
		cfg      *config.Config
		db       *gorm.DB
		gate     *auth.Gate
		validate *validator.Validate
		notifier notify.Sender
		uploader Uploader
		now      func() time.Time
	}

	// Option customises New.
	Option func(*API)
)

// WithNotifier replaces the push notification sender built from the config.
func WithNotifier(s notify.Sender) Option {
	return func(a *API) { a.notifier = s }
}

// WithUploader replaces the image upload client built from the config.
func WithUploader(u Uploader) Option {
	return func(a *API) { a.uploader = u }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(a *API) { a.now = now }
}

// New builds the router with every route registered.
func New(cfg *config.Config, db *gorm.DB, opts ...Option) (*router.Router, error) {
	if cfg == nil || db == nil {
		return nil, ErrNilConfigOrDB
	}

	gate, err := auth.NewGate(cfg.Auth, cfg.DevMode)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create auth gate")
	}

	a := &API{
		cfg:      cfg,
		db:       db,
		gate:     gate,
		validate: newValidator(),
		now:      time.Now,
	}

	for _, opt := range opts {
		opt(a)
	}

	if a.notifier == nil {
		a.notifier = notify.New(cfg.Notification)
	}

	if a.uploader == nil {
		a.uploader = upload.New(cfg.Upload)
	}

	r := router.New(router.Options{
		AllowedOrigins: cfg.Webserver.AllowedOrigins,
		PathPrefixes:   cfg.Webserver.PathPrefixes,
		Timeout:        cfg.Webserver.RequestTimeout,
		Gate:           gate,
	})

	// evaluation order matters: first match wins
	r.Handle(a.systemRoutes()...)
	r.Handle(a.authRoutes()...)
	r.Handle(a.settingRoutes()...)
	r.Handle(a.typedSettingRoutes()...)
	r.Handle(a.doctorRoutes()...)
	r.Handle(a.leaveRoutes()...)
	r.Handle(a.catalogRoutes()...)
	r.Handle(a.radiologyRoutes()...)
	r.Handle(a.mcuRoutes()...)
	r.Handle(a.promoRoutes()...)
	r.Handle(a.postRoutes()...)
	r.Handle(a.newsletterRoutes()...)
	r.Handle(a.deviceRoutes()...)
	r.Handle(a.analyticsRoutes()...)
	r.Handle(a.uploadRoutes()...)

	return r, nil
}

func (a *API) systemRoutes() []router.Route {
	return []router.Route{
		{Method: http.MethodGet, Match: router.Exact("/health"), Handler: a.health},
	}
}

func (a *API) health(ctx context.Context, _ *router.Request) (*router.Response, error) {
	sqlDB, err := a.db.DB()
	if err != nil {
		return nil, err
	}

	if err = sqlDB.PingContext(ctx); err != nil {
		return nil, errors.Wrap(err, "database ping")
	}

	return router.JSON(http.StatusOK, map[string]string{"status": "ok", "title": a.cfg.Title})
}
