package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Surya-Mathivanan/pathway-cli/internal/core/domain"
)

func TestSessionGate_StartsSignedOut(t *testing.T) {
	gate := NewSessionGate(&mockIdentityProvider{})

	assert.False(t, gate.IsAuthenticated())
	assert.Nil(t, gate.Session().Identity)
}

func TestSessionGate_Open_DeliversInitialIdentity(t *testing.T) {
	provider := &mockIdentityProvider{initial: &domain.Identity{Subject: "u1", Email: "a@example.com"}}
	gate := NewSessionGate(provider)

	require.NoError(t, gate.Open())

	assert.True(t, gate.IsAuthenticated())
	session := gate.Session()
	require.NotNil(t, session.Identity)
	assert.Equal(t, "u1", session.Identity.Subject)
}

func TestSessionGate_Open_OnlyOnce(t *testing.T) {
	provider := &mockIdentityProvider{}
	gate := NewSessionGate(provider)

	require.NoError(t, gate.Open())
	err := gate.Open()

	assert.ErrorIs(t, err, domain.ErrGateAlreadyOpen)
	assert.Equal(t, 1, provider.subscribes)
}

func TestSessionGate_FollowsProviderDeliveries(t *testing.T) {
	provider := &mockIdentityProvider{}
	gate := NewSessionGate(provider)
	require.NoError(t, gate.Open())

	provider.deliver(&domain.Identity{Subject: "u1"})
	assert.True(t, gate.IsAuthenticated())

	require.NoError(t, gate.Logout(context.Background()))
	assert.False(t, gate.IsAuthenticated())
	assert.Nil(t, gate.Session().Identity)
}

func TestSessionGate_SignIn_StateChangesOnlyOnDelivery(t *testing.T) {
	provider := &mockIdentityProvider{}
	gate := NewSessionGate(provider)
	require.NoError(t, gate.Open())

	require.NoError(t, gate.SignIn(context.Background()))
	assert.False(t, gate.IsAuthenticated(), "sign-in success alone does not authenticate")

	provider.deliver(&domain.Identity{Subject: "u1"})
	assert.True(t, gate.IsAuthenticated())
}

func TestSessionGate_ProviderErrorsPropagate(t *testing.T) {
	signInErr := errors.New("popup closed")
	signOutErr := errors.New("network down")
	provider := &mockIdentityProvider{signInErr: signInErr, signOutErr: signOutErr}
	gate := NewSessionGate(provider)

	assert.ErrorIs(t, gate.SignIn(context.Background()), signInErr)
	assert.ErrorIs(t, gate.Logout(context.Background()), signOutErr)
}

func TestSessionGate_Observe(t *testing.T) {
	provider := &mockIdentityProvider{}
	gate := NewSessionGate(provider)

	var mu sync.Mutex
	var seen []bool
	unsubscribe := gate.Observe(func(s domain.Session) {
		mu.Lock()
		seen = append(seen, s.Authenticated)
		mu.Unlock()
	})

	require.NoError(t, gate.Open())
	provider.deliver(&domain.Identity{Subject: "u1"})
	provider.deliver(nil)
	unsubscribe()
	provider.deliver(&domain.Identity{Subject: "u2"})

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []bool{false, true, false}, seen)
}

func TestSessionGate_Close_Unsubscribes(t *testing.T) {
	provider := &mockIdentityProvider{}
	gate := NewSessionGate(provider)
	require.NoError(t, gate.Open())

	gate.Close()
	provider.deliver(&domain.Identity{Subject: "u1"})

	assert.True(t, provider.unsubscribed)
	assert.False(t, gate.IsAuthenticated())
	assert.NoError(t, gate.Open(), "gate can be reopened after close")
}

func TestSessionGate_CurrentToken(t *testing.T) {
	provider := &mockIdentityProvider{token: "fresh-token"}
	gate := NewSessionGate(provider)
	require.NoError(t, gate.Open())

	token, err := gate.CurrentToken(context.Background())
	require.NoError(t, err)
	assert.Empty(t, token, "no token while signed out")
	assert.Zero(t, provider.tokenCalls)

	provider.deliver(&domain.Identity{Subject: "u1"})

	token, err = gate.GetToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "fresh-token", token)

	_, _ = gate.CurrentToken(context.Background())
	assert.Equal(t, 2, provider.tokenCalls, "token is fetched on every call")
}

func TestSessionGate_SessionIsACopy(t *testing.T) {
	provider := &mockIdentityProvider{initial: &domain.Identity{Subject: "u1"}}
	gate := NewSessionGate(provider)
	require.NoError(t, gate.Open())

	s := gate.Session()
	s.Identity.Subject = "mutated"

	assert.Equal(t, "u1", gate.Session().Identity.Subject)
}
