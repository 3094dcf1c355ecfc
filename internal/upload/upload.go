// Package upload forwards images to a Cloudinary compatible provider.
package upload

import (
	"context"
	"crypto/sha1" //nolint:gosec // the provider mandates sha1 request signatures
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/MediBoard/MediBoard/internal/config"
	"github.com/MediBoard/MediBoard/internal/uniuri"
)

var (
	// ErrNotConfigured is returned when no provider URL or credentials are set.
	ErrNotConfigured = errors.New("image upload provider is not configured")
	// ErrProviderStatus is returned when the provider answers with a non 2xx status.
	ErrProviderStatus = errors.New("image upload provider returned an error status")
	// ErrEmptyFile is returned for a zero length upload.
	ErrEmptyFile = errors.New("uploaded file is empty")
)

// Result is what the dashboard needs to reference the stored image.
type Result struct {
	SecureURL string `json:"secure_url"`
	PublicID  string `json:"public_id"`
}

// Client uploads files with signed requests.
type Client struct {
	cfg config.Upload
	now func() time.Time
}

// New creates an upload client.
func New(cfg config.Upload) *Client {
	return &Client{cfg: cfg, now: time.Now}
}

// MaxBytes is the largest accepted file.
func (c *Client) MaxBytes() int { return c.cfg.MaxBytes }

// Upload sends data as filename and returns the stored location.
func (c *Client) Upload(ctx context.Context, filename string, data []byte) (Result, error) {
	if c.cfg.URL == "" || c.cfg.APIKey == "" || c.cfg.APISecret == "" {
		return Result{}, ErrNotConfigured
	}

	if len(data) == 0 {
		return Result{}, ErrEmptyFile
	}

	timeout := c.cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	if deadline, ok := ctx.Deadline(); ok {
		timeout = min(timeout, time.Until(deadline))
		if timeout <= 0 {
			return Result{}, context.DeadlineExceeded
		}
	}

	params := map[string]string{
		"public_id": uniuri.PublicID(c.cfg.Folder),
		"timestamp": strconv.FormatInt(c.now().Unix(), 10),
	}

	args := fiber.AcquireArgs()
	defer fiber.ReleaseArgs(args)

	for k, v := range params {
		args.Set(k, v)
	}

	args.Set("api_key", c.cfg.APIKey)
	args.Set("signature", Sign(params, c.cfg.APISecret))

	agent := fiber.Post(c.cfg.URL).
		Timeout(timeout).
		FileData(&fiber.FormFile{Fieldname: "file", Name: filename, Content: data}).
		MultipartForm(args)

	code, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return Result{}, errors.Join(errs...)
	}

	if code < fiber.StatusOK || code >= fiber.StatusMultipleChoices {
		return Result{}, fmt.Errorf("%w: %d %s", ErrProviderStatus, code, body)
	}

	var res Result
	if err := json.Unmarshal(body, &res); err != nil {
		return Result{}, fmt.Errorf("decode provider response: %w", err)
	}

	return res, nil
}

// Sign computes the provider signature: sha1 over the params sorted by
// name and joined as k=v pairs with &, followed by the secret.
func Sign(params map[string]string, secret string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}

	slices.Sort(keys)

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte('&')
		}

		b.WriteString(k + "=" + params[k])
	}

	b.WriteString(secret)

	sum := sha1.Sum([]byte(b.String())) //nolint:gosec
	return hex.EncodeToString(sum[:])
}
