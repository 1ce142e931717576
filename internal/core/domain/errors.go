package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidTransition indicates a wizard action was attempted from the wrong step.
	ErrInvalidTransition = errors.New("invalid wizard transition")

	// ErrExportInProgress indicates an export is already running.
	ErrExportInProgress = errors.New("export in progress")

	// ErrNoPathway indicates the user has no generated pathway yet.
	ErrNoPathway = errors.New("no pathway")

	// Authentication Errors.

	// ErrUnauthorized indicates the backend rejected the request credentials (HTTP 401).
	ErrUnauthorized = errors.New("unauthorized")

	// ErrSignInRequired indicates the caller must send the user to the sign-in surface.
	ErrSignInRequired = errors.New("sign-in required")

	// ErrNotAuthenticated indicates no identity is currently signed in.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrTokenRefreshFailed indicates token refresh operation failed.
	ErrTokenRefreshFailed = errors.New("token refresh failed")

	// ErrGateAlreadyOpen indicates the session gate was subscribed more than once.
	ErrGateAlreadyOpen = errors.New("session gate already open")

	// Service Errors.

	// ErrServiceFailure indicates a non-authorization failure from the pathway service.
	ErrServiceFailure = errors.New("service failure")

	// ErrRateLimited indicates the client-side rate limit rejected the request.
	ErrRateLimited = errors.New("rate limited")

	// ErrRenderFailed indicates the plan surface could not be rendered.
	ErrRenderFailed = errors.New("render failed")
)

// ServiceError is a non-authorization failure reported by the pathway service.
// Message is the service's human-readable error, when it sent one.
type ServiceError struct {
	Status  int
	Message string
}

func (e *ServiceError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("service failure: status %d", e.Status)
	}
	return fmt.Sprintf("service failure: status %d: %s", e.Status, e.Message)
}

// Unwrap lets errors.Is match ErrServiceFailure.
func (e *ServiceError) Unwrap() error {
	return ErrServiceFailure
}

// ServiceMessage returns the service's message from err, or fallback.
func ServiceMessage(err error, fallback string) string {
	var se *ServiceError
	if errors.As(err, &se) && se.Message != "" {
		return se.Message
	}
	return fallback
}

// ChatFallbackAnswer is shown in place of an answer when the chat call fails.
const ChatFallbackAnswer = "Sorry, I encountered an error. Please try again."
