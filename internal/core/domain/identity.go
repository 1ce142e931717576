package domain

import "strings"

// Identity is the opaque user identity delivered by the identity provider.
type Identity struct {
	// Subject is the provider's stable user identifier.
	Subject string `json:"subject"`
	// Email is the user's email address, if shared.
	Email string `json:"email,omitempty"`
	// Name is the user's display name, if shared.
	Name string `json:"name,omitempty"`
}

// DisplayName returns the most human-friendly label available.
func (i Identity) DisplayName() string {
	switch {
	case strings.TrimSpace(i.Name) != "":
		return i.Name
	case i.Email != "":
		return i.Email
	default:
		return i.Subject
	}
}

// Session is a point-in-time snapshot of the authentication state.
// Authenticated is true exactly when Identity is non-nil.
type Session struct {
	Identity      *Identity
	Authenticated bool
}

// NewSession builds a session snapshot from a provider delivery.
// A nil identity produces an unauthenticated session.
func NewSession(identity *Identity) Session {
	if identity == nil {
		return Session{}
	}
	cp := *identity
	return Session{Identity: &cp, Authenticated: true}
}
