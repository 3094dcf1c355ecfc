package web

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MediBoard/MediBoard/internal/api"
	"github.com/MediBoard/MediBoard/internal/config"
	"github.com/MediBoard/MediBoard/internal/db/dbtest"
	"github.com/MediBoard/MediBoard/internal/logger"
)

func newTestService(t *testing.T) *Service {
	t.Helper()

	cfg := &config.Config{
		DevMode: true,
		Title:   "MediBoard",
		Auth:    config.Auth{AdminPassword: "s3cret", CookieName: "adminAuth", CookieMaxAge: time.Hour},
		Log:     logger.Log{},
		Webserver: config.Webserver{
			AllowedOrigins: []string{"https://dashboard.example.com"},
			PathPrefixes:   []string{"/.netlify/functions/api", "/api"},
			RequestTimeout: 5 * time.Second,
			CheckAliveURI:  "/checkalive",
		},
	}

	r, err := api.New(cfg, dbtest.Open(t))
	require.NoError(t, err)

	return New(cfg, r)
}

func TestNewPanicsOnNil(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { New(nil, nil) })
	assert.Panics(t, func() { New(&config.Config{}, nil) })
}

func TestCheckAlive(t *testing.T) {
	t.Parallel()

	s := newTestService(t)

	resp, err := s.App.Test(httptest.NewRequest(http.MethodGet, "/checkalive", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	s.alive.Store(false)

	resp, err = s.App.Test(httptest.NewRequest(http.MethodGet, "/checkalive", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestMetrics(t *testing.T) {
	t.Parallel()

	s := newTestService(t)

	_, err := s.App.Test(httptest.NewRequest(http.MethodGet, "/api/health", nil))
	require.NoError(t, err)

	resp, err := s.App.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "http_requests_total")
}

func TestDispatch(t *testing.T) {
	t.Parallel()

	s := newTestService(t)

	tests := []struct {
		name       string
		method     string
		target     string
		body       string
		cookie     string
		wantStatus int
		wantBody   map[string]any
	}{
		{
			name:       "health behind netlify prefix",
			method:     http.MethodGet,
			target:     "/.netlify/functions/api/health",
			wantStatus: http.StatusOK,
			wantBody:   map[string]any{"status": "ok", "title": "MediBoard"},
		},
		{
			name:       "unknown route",
			method:     http.MethodGet,
			target:     "/api/unknown?x=1",
			wantStatus: http.StatusNotFound,
			wantBody:   map[string]any{"message": "Route not found", "path": "/unknown", "method": "GET"},
		},
		{
			name:       "auth required",
			method:     http.MethodGet,
			target:     "/auth/check",
			wantStatus: http.StatusUnauthorized,
			wantBody:   map[string]any{"message": "Unauthorized"},
		},
		{
			name:       "auth cookie accepted",
			method:     http.MethodGet,
			target:     "/auth/check",
			cookie:     "adminAuth=s3cret",
			wantStatus: http.StatusOK,
			wantBody:   map[string]any{"authenticated": true},
		},
		{
			name:       "non numeric id",
			method:     http.MethodGet,
			target:     "/api/doctors/abc",
			wantStatus: http.StatusNotFound,
			wantBody:   map[string]any{"message": "Route not found", "path": "/doctors/abc", "method": "GET"},
		},
		{
			name:       "create doctor",
			method:     http.MethodPost,
			target:     "/api/doctors",
			body:       `{"name":"Dr. A","specialty":"Cardiology"}`,
			cookie:     "adminAuth=s3cret",
			wantStatus: http.StatusCreated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.target, strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")

			if tt.cookie != "" {
				req.Header.Set("Cookie", tt.cookie)
			}

			resp, err := s.App.Test(req)
			require.NoError(t, err)
			require.Equal(t, tt.wantStatus, resp.StatusCode)
			assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

			if tt.wantBody == nil {
				return
			}

			var got map[string]any
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
			assert.Equal(t, tt.wantBody, got)
		})
	}
}

func TestDispatchCookieAndCORS(t *testing.T) {
	t.Parallel()

	s := newTestService(t)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"password":"s3cret"}`))
	req.Header.Set("Origin", "https://dashboard.example.com")

	resp, err := s.App.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	cookies := resp.Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "adminAuth", cookies[0].Name)
	assert.Equal(t, "s3cret", cookies[0].Value)
	assert.Equal(t, "https://dashboard.example.com", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", resp.Header.Get("Access-Control-Allow-Credentials"))

	req = httptest.NewRequest(http.MethodOptions, "/api/doctors", nil)
	resp, err = s.App.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}
