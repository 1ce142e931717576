package driven

import "context"

// TokenProvider provides bearer tokens for authenticated API calls.
// Implementations handle token refresh transparently.
//
// The REST adapter calls GetToken once per request; tokens are never cached
// across requests by the caller.
type TokenProvider interface {
	// GetToken returns the freshest bearer token.
	// Returns an empty string when no user is signed in.
	GetToken(ctx context.Context) (string, error)

	// IsAuthenticated returns true if a user is currently signed in.
	IsAuthenticated() bool
}
