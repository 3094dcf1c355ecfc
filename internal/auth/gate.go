package auth

import (
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/MediBoard/MediBoard/internal/config"
)

// Gate checks the admin cookie against the configured password.
type Gate struct {
	secret     string
	cookieName string
	maxAge     time.Duration
	devMode    bool
}

// NewGate creates a gate from the auth configuration.
// In dev mode the cookie is sent without Secure and with SameSite=Lax,
// so it works over plain http://localhost.
func NewGate(cfg config.Auth, devMode bool) (*Gate, error) {
	if cfg.AdminPassword == "" {
		return nil, ErrEmptySecret
	}

	if !cookieSafe(cfg.AdminPassword) {
		return nil, ErrSecretNotCookieSafe
	}

	name := cfg.CookieName
	if name == "" {
		name = "adminAuth"
	}

	return &Gate{
		secret:     cfg.AdminPassword,
		cookieName: name,
		maxAge:     cfg.CookieMaxAge,
		devMode:    devMode,
	}, nil
}

// CookieName returns the name of the admin cookie.
func (g *Gate) CookieName() string { return g.cookieName }

// Check validates the raw Cookie header. Unparsable pairs are skipped.
func (g *Gate) Check(cookieHeader string) error {
	if cookieHeader == "" {
		return ErrUnauthorized
	}

	r := http.Request{Header: http.Header{"Cookie": {cookieHeader}}}

	c, err := r.Cookie(g.cookieName)
	if err != nil {
		return ErrUnauthorized
	}

	if !g.matches(c.Value) {
		return ErrUnauthorized
	}

	return nil
}

// Login returns the Set-Cookie value for a correct password.
func (g *Gate) Login(password string) (string, error) {
	if !g.matches(password) {
		return "", ErrUnauthorized
	}

	return g.cookie(g.secret, int(g.maxAge.Seconds())).String(), nil
}

// Logout returns a Set-Cookie value that expires the admin cookie.
func (g *Gate) Logout() string {
	return g.cookie("", -1).String()
}

func (g *Gate) matches(candidate string) bool {
	return subtle.ConstantTimeCompare([]byte(candidate), []byte(g.secret)) == 1
}

func (g *Gate) cookie(value string, maxAge int) *http.Cookie {
	c := &http.Cookie{
		Name:     g.cookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	}

	if g.devMode {
		c.Secure = false
		c.SameSite = http.SameSiteLaxMode
	}

	return c
}

// cookieSafe reports whether s only holds RFC 6265 cookie-octets.
func cookieSafe(s string) bool {
	for i := range len(s) {
		b := s[i]
		if b < 0x21 || b > 0x7e || b == '"' || b == ',' || b == ';' || b == '\\' {
			return false
		}
	}

	return true
}
