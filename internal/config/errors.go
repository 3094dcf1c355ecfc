package config

import (
	"errors"
)

var (
	// ErrEmptyURL error if config webserver.URL is empty.
	ErrEmptyURL = errors.New("config webserver.url can not be empty")

	// ErrWebServerPortCanNotBeZero error if config webserver listening port is 0.
	ErrWebServerPortCanNotBeZero = errors.New("config webserver.port listening port can not be 0")

	// ErrEmptyAdminPassword is returned when no admin secret is configured.
	ErrEmptyAdminPassword = errors.New("config auth.adminpassword can not be empty")

	// ErrUnknownGormEngine is returned for an unsupported db.gormengine value.
	ErrUnknownGormEngine = errors.New("config db.gormengine must be postgres, mysql or sqlite")
)
