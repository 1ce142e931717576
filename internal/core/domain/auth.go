package domain

import "time"

// OAuthToken represents stored OAuth credentials.
type OAuthToken struct {
	// AccessToken is the bearer token for API access.
	AccessToken string `json:"access_token"`
	// RefreshToken is used to obtain new access tokens.
	RefreshToken string `json:"refresh_token,omitempty"`
	// IDToken is the OpenID Connect identity token, when the provider issues one.
	// The pathway service authenticates requests with it.
	IDToken string `json:"id_token,omitempty"`
	// TokenType is typically "Bearer".
	TokenType string `json:"token_type"`
	// Expiry is when the access token expires.
	Expiry time.Time `json:"expiry,omitempty"`
}

// IsExpired returns true if the token has expired.
func (t *OAuthToken) IsExpired() bool {
	if t.Expiry.IsZero() {
		return false
	}
	return time.Now().After(t.Expiry)
}

// BearerCredential returns the credential to attach to backend requests.
// The identity token is preferred; the access token is the fallback.
func (t *OAuthToken) BearerCredential() string {
	if t.IDToken != "" {
		return t.IDToken
	}
	return t.AccessToken
}
