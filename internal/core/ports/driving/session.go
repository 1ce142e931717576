package driving

import (
	"context"

	"github.com/Surya-Mathivanan/pathway-cli/internal/core/domain"
)

// SessionService holds the process-wide authentication state.
type SessionService interface {
	// Open subscribes to the identity provider. It must be called once.
	Open() error

	// Close unsubscribes from the identity provider.
	Close()

	// Observe registers a listener notified on every identity change.
	Observe(listener func(domain.Session)) (unsubscribe func())

	// IsAuthenticated reports the latest delivered state.
	IsAuthenticated() bool

	// Session returns a snapshot of the latest delivered state.
	Session() domain.Session

	// SignIn runs the provider's sign-in. Callers should react to the
	// observed state rather than the return value.
	SignIn(ctx context.Context) error

	// Logout signs the user out.
	Logout(ctx context.Context) error

	// CurrentToken returns the freshest bearer token, or "" if signed out.
	CurrentToken(ctx context.Context) (string, error)
}
