// Package google provides browser sign-in with Google as the identity
// provider. It runs the OAuth authorization code flow with PKCE, keeps the
// issued tokens in a credentials store, and refreshes them on demand.
package google

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"github.com/Surya-Mathivanan/pathway-cli/internal/adapters/driven/identity"
	"github.com/Surya-Mathivanan/pathway-cli/internal/core/domain"
	"github.com/Surya-Mathivanan/pathway-cli/internal/core/ports/driven"
	"github.com/Surya-Mathivanan/pathway-cli/internal/logger"
)

// Ensure Provider implements the interface.
var _ driven.IdentityProvider = (*Provider)(nil)

// ProviderName is the credentials store key for Google sign-in.
const ProviderName = "google"

// Default configuration values.
const (
	DefaultSignInTimeout = 5 * time.Minute
	// refreshLeeway is how early an ID token is treated as expired.
	refreshLeeway = time.Minute
)

// CodeReceiver receives the authorization redirect.
type CodeReceiver interface {
	Start() error
	RedirectURI() string
	WaitForCode(ctx context.Context) (string, error)
	Stop() error
}

// ProfileFetcher resolves the signed-in user's profile.
type ProfileFetcher interface {
	Fetch(ctx context.Context, ts oauth2.TokenSource) (*domain.Identity, error)
}

// Config holds configuration for the Google provider.
type Config struct {
	// Auth carries the OAuth client and endpoints (required).
	Auth domain.AuthSettings

	// Store persists credentials between runs (required).
	Store driven.CredentialsStore

	// NewReceiver creates the redirect receiver for a sign-in (required).
	NewReceiver func(state string) (CodeReceiver, error)

	// OpenBrowser opens the authorization URL. Failures are logged and the
	// flow continues so the user can open the URL by hand.
	OpenBrowser func(url string) error

	// ShowURL is called with the authorization URL before the browser opens.
	ShowURL func(url string)

	// Profile resolves the user profile (default: Google userinfo).
	Profile ProfileFetcher

	// SignInTimeout bounds the wait for the redirect (default: 5m).
	SignInTimeout time.Duration
}

// Provider is the Google identity provider.
type Provider struct {
	oauth       oauth2.Config
	store       driven.CredentialsStore
	newReceiver func(state string) (CodeReceiver, error)
	openBrowser func(url string) error
	showURL     func(url string)
	profile     ProfileFetcher
	timeout     time.Duration
	now         func() time.Time

	mu        sync.Mutex
	loaded    bool
	creds     *domain.Credentials
	listeners identity.Listeners
}

// New creates a Google identity provider.
func New(cfg Config) (*Provider, error) {
	if !cfg.Auth.IsConfigured() {
		return nil, fmt.Errorf("%w: oauth client is not configured", domain.ErrInvalidInput)
	}
	if cfg.Store == nil {
		return nil, fmt.Errorf("%w: credentials store is required", domain.ErrInvalidInput)
	}
	if cfg.NewReceiver == nil {
		return nil, fmt.Errorf("%w: callback receiver is required", domain.ErrInvalidInput)
	}
	if cfg.Profile == nil {
		cfg.Profile = &UserinfoFetcher{}
	}
	if cfg.SignInTimeout == 0 {
		cfg.SignInTimeout = DefaultSignInTimeout
	}

	return &Provider{
		oauth: oauth2.Config{
			ClientID:     cfg.Auth.ClientID,
			ClientSecret: cfg.Auth.ClientSecret,
			Endpoint: oauth2.Endpoint{
				AuthURL:  cfg.Auth.AuthURL,
				TokenURL: cfg.Auth.TokenURL,
			},
			Scopes: cfg.Auth.Scopes,
		},
		store:       cfg.Store,
		newReceiver: cfg.NewReceiver,
		openBrowser: cfg.OpenBrowser,
		showURL:     cfg.ShowURL,
		profile:     cfg.Profile,
		timeout:     cfg.SignInTimeout,
		now:         time.Now,
	}, nil
}

// Subscribe registers a listener and immediately delivers the current
// identity, loading stored credentials on first use.
func (p *Provider) Subscribe(listener func(*domain.Identity)) func() {
	unsubscribe := p.listeners.Add(listener)

	p.mu.Lock()
	p.loadLocked(context.Background())
	current := identityOf(p.creds)
	p.mu.Unlock()

	listener(current)
	return unsubscribe
}

// loadLocked reads stored credentials once. Caller must hold p.mu.
func (p *Provider) loadLocked(ctx context.Context) {
	if p.loaded {
		return
	}
	p.loaded = true
	creds, err := p.store.GetByProvider(ctx, ProviderName)
	if err != nil {
		logger.Warn("load stored credentials: %v", err)
		return
	}
	p.creds = creds
}

func identityOf(creds *domain.Credentials) *domain.Identity {
	if creds == nil {
		return nil
	}
	id := creds.Identity
	return &id
}

// SignIn runs the browser authorization code flow with PKCE.
func (p *Provider) SignIn(ctx context.Context) error {
	logger.Section("Sign In")

	state := oauth2.GenerateVerifier()
	verifier := oauth2.GenerateVerifier()

	receiver, err := p.newReceiver(state)
	if err != nil {
		return fmt.Errorf("create callback receiver: %w", err)
	}
	if err := receiver.Start(); err != nil {
		return fmt.Errorf("start callback server: %w", err)
	}
	defer func() {
		if err := receiver.Stop(); err != nil {
			logger.Warn("stop callback server: %v", err)
		}
	}()

	cfg := p.oauth
	cfg.RedirectURL = receiver.RedirectURI()
	authURL := cfg.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.ApprovalForce,
		oauth2.S256ChallengeOption(verifier),
	)
	if p.showURL != nil {
		p.showURL(authURL)
	}
	if p.openBrowser != nil {
		if err := p.openBrowser(authURL); err != nil {
			logger.Warn("open browser: %v", err)
		}
	}

	waitCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	code, err := receiver.WaitForCode(waitCtx)
	if err != nil {
		return err
	}

	tok, err := cfg.Exchange(ctx, code, oauth2.VerifierOption(verifier))
	if err != nil {
		return fmt.Errorf("exchange authorization code: %w", err)
	}
	logger.Debug("token exchange complete, expiry=%s", tok.Expiry.Format(time.RFC3339))

	who, err := p.resolveIdentity(ctx, cfg, tok)
	if err != nil {
		return err
	}

	p.mu.Lock()
	p.loadLocked(ctx)
	now := p.now()
	creds := domain.Credentials{
		ID:        uuid.NewString(),
		Provider:  ProviderName,
		Identity:  *who,
		Token:     fromOAuth2(tok, ""),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if p.creds != nil {
		creds.ID = p.creds.ID
		creds.CreatedAt = p.creds.CreatedAt
	}
	if err := p.store.Save(ctx, creds); err != nil {
		p.mu.Unlock()
		return fmt.Errorf("save credentials: %w", err)
	}
	p.creds = &creds
	p.mu.Unlock()

	logger.Info("signed in as %s", who.DisplayName())
	p.listeners.Publish(who)
	return nil
}

// resolveIdentity reads the ID token claims and fills gaps from userinfo.
func (p *Provider) resolveIdentity(ctx context.Context, cfg oauth2.Config, tok *oauth2.Token) (*domain.Identity, error) {
	var who *domain.Identity
	if claims, err := identity.ParseIDToken(idTokenOf(tok)); err == nil {
		who = claims.Identity()
	} else {
		logger.Debug("no usable id token: %v", err)
	}

	if who == nil || who.Email == "" || who.Name == "" {
		profile, err := p.profile.Fetch(ctx, cfg.TokenSource(ctx, tok))
		switch {
		case err != nil && who == nil:
			return nil, fmt.Errorf("fetch profile: %w", err)
		case err != nil:
			logger.Warn("fetch profile: %v", err)
		case who == nil:
			who = profile
		default:
			if who.Email == "" {
				who.Email = profile.Email
			}
			if who.Name == "" {
				who.Name = profile.Name
			}
		}
	}
	if who.Subject == "" {
		return nil, fmt.Errorf("%w: identity has no subject", domain.ErrNotAuthenticated)
	}
	return who, nil
}

// SignOut removes stored credentials and delivers a nil identity.
func (p *Provider) SignOut(ctx context.Context) error {
	p.mu.Lock()
	p.loadLocked(ctx)
	creds := p.creds
	p.creds = nil
	p.mu.Unlock()

	if creds != nil {
		if err := p.store.Delete(ctx, creds.ID); err != nil && !errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("delete credentials: %w", err)
		}
	}
	logger.Info("signed out")
	p.listeners.Publish(nil)
	return nil
}

// Token returns the bearer credential, refreshing expired tokens first.
func (p *Provider) Token(ctx context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.loadLocked(ctx)
	if p.creds == nil {
		return "", domain.ErrNotAuthenticated
	}
	if !p.needsRefresh(p.creds.Token) {
		return p.creds.Token.BearerCredential(), nil
	}
	if p.creds.Token.RefreshToken == "" {
		return "", fmt.Errorf("%w: no refresh token", domain.ErrTokenRefreshFailed)
	}

	logger.Debug("refreshing access token")
	stale := toOAuth2(p.creds.Token)
	stale.Expiry = p.now().Add(-time.Second)
	fresh, err := p.oauth.TokenSource(ctx, stale).Token()
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrTokenRefreshFailed, err)
	}

	updated := *p.creds
	updated.Token = fromOAuth2(fresh, p.liveIDToken(p.creds.Token.IDToken))
	if updated.Token.RefreshToken == "" {
		updated.Token.RefreshToken = p.creds.Token.RefreshToken
	}
	updated.UpdatedAt = p.now()
	if err := p.store.Save(ctx, updated); err != nil {
		logger.Warn("save refreshed credentials: %v", err)
	}
	p.creds = &updated
	return updated.Token.BearerCredential(), nil
}

func (p *Provider) needsRefresh(tok domain.OAuthToken) bool {
	now := p.now()
	if !tok.Expiry.IsZero() && !now.Add(refreshLeeway).Before(tok.Expiry) {
		return true
	}
	if tok.IDToken == "" {
		return false
	}
	claims, err := identity.ParseIDToken(tok.IDToken)
	if err != nil {
		return false
	}
	return claims.Expired(now, refreshLeeway)
}

// liveIDToken returns raw unless it has expired. A refresh response
// without an id_token then falls back to the new access token.
func (p *Provider) liveIDToken(raw string) string {
	if raw == "" {
		return ""
	}
	claims, err := identity.ParseIDToken(raw)
	if err == nil && claims.Expired(p.now(), refreshLeeway) {
		return ""
	}
	return raw
}

func idTokenOf(tok *oauth2.Token) string {
	if raw, ok := tok.Extra("id_token").(string); ok {
		return raw
	}
	return ""
}

func fromOAuth2(tok *oauth2.Token, previousIDToken string) domain.OAuthToken {
	idToken := idTokenOf(tok)
	if idToken == "" {
		idToken = previousIDToken
	}
	return domain.OAuthToken{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		IDToken:      idToken,
		TokenType:    tok.Type(),
		Expiry:       tok.Expiry,
	}
}

func toOAuth2(tok domain.OAuthToken) *oauth2.Token {
	return &oauth2.Token{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		TokenType:    tok.TokenType,
		Expiry:       tok.Expiry,
	}
}
