// Package web serves the router over fiber for long running deployments.
package web

import (
	"bytes"
	"errors"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strconv"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/MediBoard/MediBoard/internal/config"
	fiberlog "github.com/MediBoard/MediBoard/internal/logger/adapter/fiber"
	"github.com/MediBoard/MediBoard/internal/router"
)

const metricsURI = "/metrics"

var requestsTotal = promauto.NewCounterVec( //nolint:gochecknoglobals
	prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Number of dispatched requests, differentiated by method and status.",
	},
	[]string{"method", "status"},
)

// Service represents the web service.
type Service struct {
	App          *fiber.App
	cfg          *config.Config
	fastShutDown bool
	alive        atomic.Bool
	router       *router.Router
}

// Start starts the web service on the given address.
func (s *Service) Start(addr string) error {
	var doneFiber = make(chan bool)

	go func() {
		if err := s.App.Listen(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Msgf("fiber listen error: %v", err)
		}

		doneFiber <- true
	}()

	<-doneFiber // wait for fiber to stop

	return nil
}

// WaitShutdown waits for SIGINT or SIGTERM and stops the server gracefully.
func (s *Service) WaitShutdown() {
	irqSig := make(chan os.Signal, 1)
	signal.Notify(irqSig, syscall.SIGINT, syscall.SIGTERM)

	sig := <-irqSig
	log.Info().Msgf("shutdown request (signal: %v)", sig)

	// Graceful shutdown for reverse proxies: set status to fail, so checkalive returns fail.
	if !s.fastShutDown {
		log.Info().Msgf(
			"graceful shutdown: return 503 while %d seconds to let LB to remove this pod from active targets",
			s.cfg.Webserver.ShutDownTime,
		)

		s.alive.Store(false)
		time.Sleep(time.Duration(s.cfg.Webserver.ShutDownTime) * time.Second)
	}

	serverShutdown := make(chan struct{})

	go func() {
		log.Info().Msg("stopping http server ...")

		err := s.App.Shutdown()
		if err != nil {
			log.Error().Err(err).Msg("")
		}

		serverShutdown <- struct{}{}
	}()

	<-serverShutdown
	log.Info().Msg("http server was stopped ... good bye...")
}

// New creates the fiber app in front of r.
func New(cfg *config.Config, r *router.Router) *Service {
	if cfg == nil {
		panic("config cannot be nil")
	}

	if r == nil {
		panic("router cannot be nil")
	}

	app := fiber.New(
		fiber.Config{
			ReadBufferSize:        8192,
			AppName:               cfg.Title,
			CaseSensitive:         true,
			Prefork:               false,
			Immutable:             true,
			DisableStartupMessage: !cfg.DevMode,
			BodyLimit:             max(cfg.Upload.MaxBytes*2, fiber.DefaultBodyLimit),
		},
	)

	service := &Service{
		App:          app,
		cfg:          cfg,
		fastShutDown: cfg.DevMode,
		router:       r,
	}
	service.alive.Store(true)

	app.Use(fiberlog.New(fiberlog.Config{
		Config:        cfg.Log,
		CheckAliveURI: cfg.Webserver.CheckAliveURI,
	}))

	if !cfg.Webserver.DisableRecover {
		app.Use(recover.New())
	}

	if cfg.Webserver.CheckAliveURI != "" {
		app.Get(cfg.Webserver.CheckAliveURI, service.checkAlive)
	}

	app.Get(metricsURI, adaptor.HTTPHandler(promhttp.Handler()))

	// everything else goes through the route table
	app.Use(service.dispatch)

	return service
}

func (s *Service) checkAlive(c *fiber.Ctx) error {
	if !s.alive.Load() {
		return c.SendStatus(fiber.StatusServiceUnavailable)
	}

	return c.SendString("OK")
}

func (s *Service) dispatch(c *fiber.Ctx) error {
	query, err := url.ParseQuery(string(c.Request().URI().QueryString()))
	if err != nil {
		query = url.Values{}
	}

	header := http.Header{}
	c.Request().Header.VisitAll(func(k, v []byte) {
		header.Add(string(k), string(v))
	})

	resp := s.router.Dispatch(c.UserContext(), router.Request{
		Method:   c.Method(),
		Path:     c.Path(),
		Query:    query,
		Header:   header,
		Body:     bytes.Clone(c.Body()),
		RemoteIP: c.IP(),
	})

	requestsTotal.WithLabelValues(c.Method(), strconv.Itoa(resp.Status)).Inc()

	for k, values := range resp.Header {
		for i, v := range values {
			if i == 0 && k != "Set-Cookie" {
				c.Set(k, v)
			} else {
				c.Response().Header.Add(k, v)
			}
		}
	}

	c.Status(resp.Status)

	return c.Send(resp.Body)
}
