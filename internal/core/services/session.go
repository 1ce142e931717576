package services

import (
	"context"
	"sync"

	"github.com/Surya-Mathivanan/pathway-cli/internal/core/domain"
	"github.com/Surya-Mathivanan/pathway-cli/internal/core/ports/driven"
	"github.com/Surya-Mathivanan/pathway-cli/internal/core/ports/driving"
	"github.com/Surya-Mathivanan/pathway-cli/internal/logger"
)

// Ensure SessionGate implements the interfaces.
var (
	_ driving.SessionService = (*SessionGate)(nil)
	_ driven.TokenProvider   = (*SessionGate)(nil)
)

// SessionGate holds the authentication state for the whole process.
// Only the identity provider's callback writes it; every other component
// reads snapshots.
type SessionGate struct {
	provider driven.IdentityProvider

	mu          sync.RWMutex
	session     domain.Session
	unsubscribe func()
	listeners   map[int]func(domain.Session)
	nextID      int
}

// NewSessionGate creates a gate over the given identity provider.
// The gate starts signed out until Open delivers the initial identity.
func NewSessionGate(provider driven.IdentityProvider) *SessionGate {
	return &SessionGate{
		provider:  provider,
		listeners: make(map[int]func(domain.Session)),
	}
}

// Open subscribes to the identity provider.
func (g *SessionGate) Open() error {
	g.mu.Lock()
	if g.unsubscribe != nil {
		g.mu.Unlock()
		return domain.ErrGateAlreadyOpen
	}
	// Placeholder so a concurrent Open fails while Subscribe runs.
	g.unsubscribe = func() {}
	g.mu.Unlock()

	unsubscribe := g.provider.Subscribe(g.deliver)

	g.mu.Lock()
	g.unsubscribe = unsubscribe
	g.mu.Unlock()
	return nil
}

// Close unsubscribes from the identity provider. Listeners stay registered
// but receive no further deliveries.
func (g *SessionGate) Close() {
	g.mu.Lock()
	unsubscribe := g.unsubscribe
	g.unsubscribe = nil
	g.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
}

// deliver is the provider callback and the only writer of the session.
func (g *SessionGate) deliver(identity *domain.Identity) {
	session := domain.NewSession(identity)

	g.mu.Lock()
	g.session = session
	listeners := make([]func(domain.Session), 0, len(g.listeners))
	for _, l := range g.listeners {
		listeners = append(listeners, l)
	}
	g.mu.Unlock()

	if session.Authenticated {
		logger.Debug("session: signed in as %s", session.Identity.DisplayName())
	} else {
		logger.Debug("session: signed out")
	}

	for _, l := range listeners {
		l(session)
	}
}

// Observe registers a listener notified on every identity change.
func (g *SessionGate) Observe(listener func(domain.Session)) func() {
	g.mu.Lock()
	id := g.nextID
	g.nextID++
	g.listeners[id] = listener
	g.mu.Unlock()

	return func() {
		g.mu.Lock()
		delete(g.listeners, id)
		g.mu.Unlock()
	}
}

// IsAuthenticated reports the latest delivered state.
func (g *SessionGate) IsAuthenticated() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.session.Authenticated
}

// Session returns a snapshot of the latest delivered state.
func (g *SessionGate) Session() domain.Session {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if g.session.Identity == nil {
		return domain.Session{}
	}
	return domain.NewSession(g.session.Identity)
}

// SignIn delegates to the identity provider. The session changes only when
// the provider delivers the new identity.
func (g *SessionGate) SignIn(ctx context.Context) error {
	return g.provider.SignIn(ctx)
}

// Logout delegates to the identity provider.
func (g *SessionGate) Logout(ctx context.Context) error {
	return g.provider.SignOut(ctx)
}

// CurrentToken returns the freshest bearer token, or "" when signed out.
func (g *SessionGate) CurrentToken(ctx context.Context) (string, error) {
	if !g.IsAuthenticated() {
		return "", nil
	}
	return g.provider.Token(ctx)
}

// GetToken implements driven.TokenProvider for the REST adapter.
func (g *SessionGate) GetToken(ctx context.Context) (string, error) {
	return g.CurrentToken(ctx)
}
