// Package static provides an identity provider backed by a preconfigured
// bearer token, for headless use and development servers.
package static

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/Surya-Mathivanan/pathway-cli/internal/adapters/driven/identity"
	"github.com/Surya-Mathivanan/pathway-cli/internal/core/domain"
	"github.com/Surya-Mathivanan/pathway-cli/internal/core/ports/driven"
	"github.com/Surya-Mathivanan/pathway-cli/internal/logger"
)

// Ensure Provider implements the interface.
var _ driven.IdentityProvider = (*Provider)(nil)

// TokenSubject is the subject used when the token carries no claims.
const TokenSubject = "token"

// Provider serves a fixed bearer token.
type Provider struct {
	mu         sync.Mutex
	configured string
	token      string
	listeners  identity.Listeners
}

// New creates a provider for token. An empty token starts signed out.
func New(token string) *Provider {
	token = strings.TrimSpace(token)
	return &Provider{configured: token, token: token}
}

// Subscribe registers a listener and delivers the current identity.
func (p *Provider) Subscribe(listener func(*domain.Identity)) func() {
	unsubscribe := p.listeners.Add(listener)
	p.mu.Lock()
	current := identityFor(p.token)
	p.mu.Unlock()
	listener(current)
	return unsubscribe
}

// SignIn restores the configured token after a sign-out.
func (p *Provider) SignIn(_ context.Context) error {
	p.mu.Lock()
	if p.configured == "" {
		p.mu.Unlock()
		return fmt.Errorf("%w: no token configured, set auth.token or PATHWAY_TOKEN", domain.ErrNotAuthenticated)
	}
	p.token = p.configured
	who := identityFor(p.token)
	p.mu.Unlock()

	logger.Info("using configured token for %s", who.DisplayName())
	p.listeners.Publish(who)
	return nil
}

// SignOut forgets the token for the rest of the process.
// The configuration is left unchanged.
func (p *Provider) SignOut(_ context.Context) error {
	p.mu.Lock()
	p.token = ""
	p.mu.Unlock()

	p.listeners.Publish(nil)
	return nil
}

// Token returns the configured token.
func (p *Provider) Token(_ context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.token == "" {
		return "", domain.ErrNotAuthenticated
	}
	return p.token, nil
}

// identityFor derives an identity from token. JWTs contribute their claims.
func identityFor(token string) *domain.Identity {
	if token == "" {
		return nil
	}
	if claims, err := identity.ParseIDToken(token); err == nil && claims.Subject != "" {
		return claims.Identity()
	}
	return &domain.Identity{Subject: TokenSubject, Name: "Token user"}
}
