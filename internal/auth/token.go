package auth

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNoExpiry is returned when the access token carries no exp claim.
var ErrNoExpiry = errors.New("access token has no expiry")

// TokenSource yields the bearer token to attach to outgoing requests.
// An empty string means no Authorization header is sent.
type TokenSource interface {
	Token() string
}

// StaticToken is a fixed token, mostly useful in tests and for the exporter.
type StaticToken string

func (t StaticToken) Token() string { return string(t) }

// TokenFunc adapts a function to TokenSource.
type TokenFunc func() string

func (f TokenFunc) Token() string { return f() }

// MemoryToken holds a token in memory, for long running processes that log
// in by themselves instead of reading the persisted token.
type MemoryToken struct {
	mu    sync.RWMutex
	token string
}

func (m *MemoryToken) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token
}

func (m *MemoryToken) Set(token string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
}

// ExpiresAt reads the exp claim of an access token. The signature is not
// verified; only the backend holds the key.
func ExpiresAt(token string) (time.Time, error) {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}, fmt.Errorf("parse access token: %w", err)
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, ErrNoExpiry
	}
	return claims.ExpiresAt.Time, nil
}

// Expired reports whether the token's exp claim is before now.
// Tokens that cannot be parsed, or have no exp claim, are not considered expired.
func Expired(token string, now time.Time) bool {
	exp, err := ExpiresAt(token)
	if err != nil {
		return false
	}
	return now.After(exp)
}
