package domain

import "time"

// Credentials stores the signed-in user's tokens between runs.
// At most one set of credentials is active per provider.
type Credentials struct {
	// ID is the unique identifier (UUID).
	ID string `json:"id"`

	// Provider names the identity provider that issued the tokens (e.g. "google").
	Provider string `json:"provider"`

	// Identity is the profile resolved when the credentials were issued.
	Identity Identity `json:"identity"`

	// Token holds the OAuth tokens.
	Token OAuthToken `json:"token"`

	// CreatedAt is when the credentials were created.
	CreatedAt time.Time `json:"created_at"`
	// UpdatedAt is when the credentials were last updated.
	UpdatedAt time.Time `json:"updated_at"`
}

// IsAuthenticated returns true if the credentials contain a usable token.
func (c *Credentials) IsAuthenticated() bool {
	return c.Token.BearerCredential() != ""
}

// NeedsRefresh returns true if the tokens need refreshing.
func (c *Credentials) NeedsRefresh() bool {
	return c.Token.IsExpired() && c.Token.RefreshToken != ""
}
