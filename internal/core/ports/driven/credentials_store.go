package driven

import (
	"context"

	"github.com/Surya-Mathivanan/pathway-cli/internal/core/domain"
)

// CredentialsStore persists the signed-in user's tokens between runs.
// At most one set of credentials is kept per identity provider.
type CredentialsStore interface {
	// Save stores credentials. Creates if new, updates if exists.
	Save(ctx context.Context, creds domain.Credentials) error

	// Get retrieves credentials by ID.
	Get(ctx context.Context, id string) (*domain.Credentials, error)

	// GetByProvider retrieves the credentials issued by a provider.
	// Returns nil if none are stored.
	GetByProvider(ctx context.Context, provider string) (*domain.Credentials, error)

	// Delete removes credentials by ID.
	Delete(ctx context.Context, id string) error
}
