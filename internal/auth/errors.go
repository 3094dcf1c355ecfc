package auth

import "errors"

var (
	// ErrUnauthorized is returned when the admin cookie is missing or wrong.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrSecretNotCookieSafe is returned for a password that cannot travel in a cookie unchanged.
	ErrSecretNotCookieSafe = errors.New("admin password contains characters not allowed in a cookie value")

	// ErrEmptySecret is returned when no admin password is configured.
	ErrEmptySecret = errors.New("admin password is empty")
)
