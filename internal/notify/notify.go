// Package notify sends push notifications through a OneSignal compatible provider.
package notify

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/MediBoard/MediBoard/internal/config"
)

var (
	// ErrProviderStatus is returned when the provider answers with a non 2xx status.
	ErrProviderStatus = errors.New("push provider returned an error status")
	// ErrDeadlineExceeded is returned when ctx expires before the request starts.
	ErrDeadlineExceeded = errors.New("push notification deadline exceeded")
)

type (
	// Alert is a provider independent notification.
	Alert struct {
		Heading       string
		Content       string
		TargetSegment string
	}

	// Sender delivers alerts.
	Sender interface {
		Send(ctx context.Context, a Alert) error
	}

	// OneSignal posts alerts to the OneSignal notifications endpoint.
	OneSignal struct {
		cfg config.Notification
	}

	// Noop drops every alert.
	Noop struct{}

	payload struct {
		AppID            string            `json:"app_id"`
		Headings         map[string]string `json:"headings"`
		Contents         map[string]string `json:"contents"`
		IncludedSegments []string          `json:"included_segments"`
	}
)

// New returns a OneSignal sender, or Noop when notifications are disabled.
func New(cfg config.Notification) Sender {
	if !cfg.Enabled || cfg.URL == "" || cfg.AppID == "" {
		log.Info().Msg("push notifications disabled")

		return Noop{}
	}

	return &OneSignal{cfg: cfg}
}

// Send implements Sender.
func (Noop) Send(context.Context, Alert) error { return nil }

// Send implements Sender.
func (o *OneSignal) Send(ctx context.Context, a Alert) error {
	timeout := o.cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	if deadline, ok := ctx.Deadline(); ok {
		left := time.Until(deadline)
		if left <= 0 {
			return ErrDeadlineExceeded
		}

		timeout = min(timeout, left)
	}

	segment := a.TargetSegment
	if segment == "" {
		segment = o.cfg.TargetSegment
	}

	agent := fiber.Post(o.cfg.URL).
		Timeout(timeout).
		Set(fiber.HeaderAuthorization, "Basic "+o.cfg.APIKey).
		JSON(payload{
			AppID:            o.cfg.AppID,
			Headings:         map[string]string{"en": a.Heading},
			Contents:         map[string]string{"en": a.Content},
			IncludedSegments: []string{segment},
		})

	code, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	if code < fiber.StatusOK || code >= fiber.StatusMultipleChoices {
		return fmt.Errorf("%w: %d %s", ErrProviderStatus, code, body)
	}

	log.Debug().Str("heading", a.Heading).Str("segment", segment).Msg("push notification sent")

	return nil
}
