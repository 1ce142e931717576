// Package identity holds helpers shared by the identity provider adapters.
package identity

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Surya-Mathivanan/pathway-cli/internal/core/domain"
)

// Listeners is a registry of identity listeners.
type Listeners struct {
	mu     sync.Mutex
	nextID int
	fns    map[int]func(*domain.Identity)
}

// Add registers fn and returns a function that removes it.
func (l *Listeners) Add(fn func(*domain.Identity)) func() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.fns == nil {
		l.fns = make(map[int]func(*domain.Identity))
	}
	id := l.nextID
	l.nextID++
	l.fns[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Lock()
			delete(l.fns, id)
			l.mu.Unlock()
		})
	}
}

// Len returns the number of registered listeners.
func (l *Listeners) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.fns)
}

// Publish calls every listener with a copy of identity.
// Listeners run outside the registry lock and may unsubscribe.
func (l *Listeners) Publish(identity *domain.Identity) {
	l.mu.Lock()
	fns := make([]func(*domain.Identity), 0, len(l.fns))
	for _, fn := range l.fns {
		fns = append(fns, fn)
	}
	l.mu.Unlock()

	for _, fn := range fns {
		fn(clone(identity))
	}
}

func clone(identity *domain.Identity) *domain.Identity {
	if identity == nil {
		return nil
	}
	cp := *identity
	return &cp
}

// Claims are the OpenID Connect claims read from an ID token.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
}

// ParseIDToken reads the claims of an ID token without verifying its
// signature.
func ParseIDToken(raw string) (*Claims, error) {
	if raw == "" {
		return nil, errors.New("empty id token")
	}
	var claims Claims
	if _, _, err := jwt.NewParser().ParseUnverified(raw, &claims); err != nil {
		return nil, fmt.Errorf("parse id token: %w", err)
	}
	return &claims, nil
}

// Identity converts the claims to a domain identity.
func (c *Claims) Identity() *domain.Identity {
	return &domain.Identity{Subject: c.Subject, Email: c.Email, Name: c.Name}
}

// Expired reports whether the token's exp claim is before now plus leeway.
// Tokens without exp never expire.
func (c *Claims) Expired(now time.Time, leeway time.Duration) bool {
	if c.ExpiresAt == nil {
		return false
	}
	return !now.Add(leeway).Before(c.ExpiresAt.Time)
}
