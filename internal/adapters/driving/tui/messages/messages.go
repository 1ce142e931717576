// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"errors"

	"github.com/Surya-Mathivanan/pathway-cli/internal/core/domain"
)

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewSignIn is the sign-in prompt.
	ViewSignIn
	// ViewQuestionnaire is the adaptive intake wizard.
	ViewQuestionnaire
	// ViewDashboard summarises the current pathway, history and tips.
	ViewDashboard
	// ViewPathway lists tracked items with their completion state.
	ViewPathway
	// ViewChat is the study assistant.
	ViewChat
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewSignIn:
		return "signin"
	case ViewQuestionnaire:
		return "questionnaire"
	case ViewDashboard:
		return "dashboard"
	case ViewPathway:
		return "pathway"
	case ViewChat:
		return "chat"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// Protected reports whether the view requires a signed-in user.
func (v ViewType) Protected() bool {
	switch v {
	case ViewQuestionnaire, ViewDashboard, ViewPathway, ViewChat:
		return true
	default:
		return false
	}
}

// RequiresSignIn reports whether err means the backend rejected the
// credentials and the user must sign in again.
func RequiresSignIn(err error) bool {
	return errors.Is(err, domain.ErrUnauthorized) || errors.Is(err, domain.ErrSignInRequired)
}

// SessionChanged carries a new authentication state from the session gate.
type SessionChanged struct {
	Session domain.Session
}

// SignInFinished signals the interactive sign-in returned.
type SignInFinished struct {
	Err error
}

// WizardUpdated carries the wizard state after a transition.
type WizardUpdated struct {
	State domain.WizardState
	Err   error
}

// PathwayGenerated carries the result of plan generation.
type PathwayGenerated struct {
	Pathway *domain.Pathway
	Err     error
}

// DashboardLoaded carries the dashboard data.
type DashboardLoaded struct {
	Dashboard *domain.Dashboard
	Err       error
}

// ProgressLoaded carries a progress snapshot after a reload or toggle.
type ProgressLoaded struct {
	Snapshot domain.ProgressSnapshot
	Err      error
}

// ExportFinished carries the result of an export.
type ExportFinished struct {
	Record *domain.ExportRecord
	Err    error
}

// ChatAnswered carries the assistant's reply.
type ChatAnswered struct {
	Question string
	Answer   string
	Err      error
}

// ConfigReloaded signals the configuration file changed on disk.
type ConfigReloaded struct {
	Err error
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
