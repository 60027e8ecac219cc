// Package cookie reads and writes the anonymous cart session cookie.
package cookie

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"net/http"
	"time"
)

// DefaultSessionName is used when no cookie name is configured.
const DefaultSessionName = "storefront_session"

// SessionMaxAge is how long an anonymous cart session survives without activity.
const SessionMaxAge = 30 * 24 * time.Hour

// Config holds cookie settings shared by every session write.
type Config struct {
	// Name of the session cookie.
	Name string

	// Domain scopes the cookie. Empty means host-only.
	Domain string

	// Secure should be true anywhere TLS terminates in front of the app.
	Secure bool
}

// NewConfig returns a Config, falling back to DefaultSessionName.
func NewConfig(name, domain string, secure bool) *Config {
	if name == "" {
		name = DefaultSessionName
	}
	return &Config{Name: name, Domain: domain, Secure: secure}
}

// SetSession writes the session cookie and refreshes its lifetime.
func (c *Config) SetSession(w http.ResponseWriter, value string) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.Name,
		Value:    value,
		Domain:   c.Domain,
		Path:     "/",
		MaxAge:   int(SessionMaxAge.Seconds()),
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSession expires the session cookie. Called after a merge has
// moved the anonymous cart into the account.
func (c *Config) ClearSession(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.Name,
		Value:    "",
		Domain:   c.Domain,
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Session returns the session id carried by r, or "".
func (c *Config) Session(r *http.Request) string {
	return Get(r, c.Name)
}

// Get retrieves a cookie value from the request.
// Returns empty string if cookie not found.
func Get(r *http.Request, name string) string {
	cookie, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// GenerateSessionID returns a random URL-safe session identifier.
func GenerateSessionID() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate session id: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
