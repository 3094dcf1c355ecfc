package config

import (
	"time"

	"github.com/MediBoard/MediBoard/internal/logger"
)

// Config overall data structure.
type Config struct {
	DevMode      bool // enable dev mode for development
	DB           DB
	Log          logger.Log
	Title        string
	Webserver    Webserver
	Auth         Auth
	Settings     Settings
	Notification Notification
	Upload       Upload
}

// Webserver implement webserver settings.
type Webserver struct {
	DisableRecover bool          // disable recover middleware
	Port           int           // listening port for the webserver
	ShutDownTime   int           // wait time for shutdown in seconds
	URL            string        // public base url of the api
	AllowedOrigins []string      // origins echoed in Access-Control-Allow-Origin
	PathPrefixes   []string      // mount prefixes stripped before routing
	RequestTimeout time.Duration // upper bound for a single dispatch incl. db work
	CheckAliveURI  string
}

// Auth holds the admin gate settings.
type Auth struct {
	AdminPassword string
	CookieName    string
	CookieMaxAge  time.Duration
}

// Settings controls the behaviour of the settings endpoints.
type Settings struct {
	// AcceptLegacyMapPayload enables the object-map batch shape
	// {"key": {"value": ..., "enabled": ...}} on POST /settings.
	AcceptLegacyMapPayload bool
}

// Notification configures the push notification provider used on leave creation.
type Notification struct {
	Enabled       bool
	URL           string
	AppID         string
	APIKey        string
	TargetSegment string
	Timeout       time.Duration
}

// Upload configures the image hosting provider.
type Upload struct {
	URL       string // provider upload endpoint, e.g. https://api.cloudinary.com/v1_1/<cloud>/image/upload
	APIKey    string
	APISecret string
	Folder    string
	Timeout   time.Duration
	MaxBytes  int
}
