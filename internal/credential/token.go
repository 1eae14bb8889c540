package credential

import (
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the subset of JWT claims the client cares about. The
// client never verifies the signature (it has no key and the backend
// re-checks every request); claims are decoded only to know when to
// prompt for a fresh login and which role to render UI for.
type Claims struct {
	Subject   string
	Username  string
	Role      string
	ExpiresAt time.Time
}

// InspectToken decodes the token's claims without verification.
func InspectToken(token string) (Claims, error) {
	parser := jwt.NewParser()

	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return Claims{}, fmt.Errorf("decoding token: %w", err)
	}

	out := Claims{}
	if sub, err := claims.GetSubject(); err == nil {
		out.Subject = sub
	}
	if v, ok := claims["username"].(string); ok {
		out.Username = v
	}
	if v, ok := claims["role"].(string); ok {
		out.Role = v
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		out.ExpiresAt = exp.Time
	}

	return out, nil
}

// Expired reports whether the claims carry an expiry in the past. A
// token with no expiry claim counts as usable; the backend is the
// final authority either way.
func (c Claims) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && now.After(c.ExpiresAt)
}

// Store is the in-process token holder handed to the API client. It
// reads through to the keyring once and caches the value; Login and
// Logout keep both in sync.
type Store struct {
	mu    sync.RWMutex
	token string
}

// NewStore creates a Store primed with any token already persisted in
// the keyring.
func NewStore() *Store {
	return &Store{token: LoadToken()}
}

// Token implements api.TokenSource.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// SetToken caches the token and persists it to the keyring.
func (s *Store) SetToken(token string) error {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
	return SaveToken(token)
}

// Clear drops the cached token and removes it from the keyring.
func (s *Store) Clear() error {
	s.mu.Lock()
	s.token = ""
	s.mu.Unlock()
	return ClearToken()
}
