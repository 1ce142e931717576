package driven

import (
	"context"

	"github.com/Surya-Mathivanan/pathway-cli/internal/core/domain"
)

// IdentityProvider is the external source of sign-in state.
//
// It is push-based: the provider calls the subscribed listener with the
// current identity right after Subscribe, and again whenever the identity
// changes. A nil identity means signed out.
type IdentityProvider interface {
	// Subscribe registers a listener and returns a function that removes it.
	Subscribe(listener func(identity *domain.Identity)) (unsubscribe func())

	// SignIn runs the provider's interactive sign-in.
	// On success the new identity is delivered to listeners.
	SignIn(ctx context.Context) error

	// SignOut clears the current identity. Listeners receive nil.
	SignOut(ctx context.Context) error

	// Token returns a bearer credential for the signed-in identity,
	// refreshing it first when required.
	Token(ctx context.Context) (string, error)
}
