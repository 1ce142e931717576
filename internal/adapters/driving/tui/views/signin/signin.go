// Package signin provides the account view: sign-in prompt when signed out,
// identity and sign-out when signed in.
package signin

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Surya-Mathivanan/pathway-cli/internal/adapters/driving/tui/messages"
	"github.com/Surya-Mathivanan/pathway-cli/internal/adapters/driving/tui/styles"
	"github.com/Surya-Mathivanan/pathway-cli/internal/core/domain"
	"github.com/Surya-Mathivanan/pathway-cli/internal/core/ports/driving"
)

// signedOutMsg reports the result of a logout.
type signedOutMsg struct {
	err error
}

// View is the account view.
type View struct {
	styles  *styles.Styles
	session driving.SessionService
	spinner spinner.Model

	current domain.Session
	pending messages.ViewType
	// rejected is set when the backend refused the current credentials.
	rejected bool
	waiting  bool
	err     error
	width   int
	height  int
	ready   bool
}

// NewView creates a new account view.
func NewView(s *styles.Styles, session driving.SessionService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = s.Selected

	v := &View{
		styles:  s,
		session: session,
		spinner: sp,
		pending: messages.ViewMenu,
	}
	if session != nil {
		v.current = session.Session()
	}
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	v.err = nil
	return nil
}

// SetPending records the protected view to show once sign-in completes.
func (v *View) SetPending(view messages.ViewType) {
	v.pending = view
}

// Pending returns the view to show after sign-in.
func (v *View) Pending() messages.ViewType {
	return v.pending
}

// Reject marks the current credentials as refused by the backend. The view
// then offers a fresh sign-in instead of sign-out.
func (v *View) Reject() {
	v.rejected = true
}

// Rejected reports whether the backend refused the current credentials.
func (v *View) Rejected() bool {
	return v.rejected
}

// SetSession updates the displayed authentication state.
func (v *View) SetSession(s domain.Session) {
	v.current = s
}

// Waiting reports whether a sign-in or sign-out is in flight.
func (v *View) Waiting() bool {
	return v.waiting
}

// Err returns the last sign-in error.
func (v *View) Err() error {
	return v.err
}

// Update handles messages for the account view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		if v.waiting {
			return v, nil
		}
		switch msg.String() {
		case "esc":
			return v, changeView(messages.ViewMenu)
		case "enter":
			v.err = nil
			v.waiting = true
			if v.current.Authenticated && !v.rejected {
				return v, tea.Batch(v.spinner.Tick, v.signOut())
			}
			return v, tea.Batch(v.spinner.Tick, v.signIn())
		}
		return v, nil

	case messages.SignInFinished:
		v.waiting = false
		v.err = msg.Err
		if msg.Err == nil {
			v.rejected = false
		}
		return v, nil

	case signedOutMsg:
		v.waiting = false
		v.err = msg.err
		if msg.err == nil {
			v.pending = messages.ViewMenu
			v.rejected = false
		}
		return v, nil

	case spinner.TickMsg:
		if !v.waiting {
			return v, nil
		}
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		return v, cmd
	}

	return v, nil
}

func (v *View) signIn() tea.Cmd {
	return func() tea.Msg {
		if v.session == nil {
			return messages.SignInFinished{Err: errors.New("session service not available")}
		}
		return messages.SignInFinished{Err: v.session.SignIn(context.Background())}
	}
}

func (v *View) signOut() tea.Cmd {
	return func() tea.Msg {
		if v.session == nil {
			return signedOutMsg{err: errors.New("session service not available")}
		}
		return signedOutMsg{err: v.session.Logout(context.Background())}
	}
}

// View renders the account view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Account"))
	b.WriteString("\n\n")

	switch {
	case v.waiting && v.current.Authenticated && !v.rejected:
		b.WriteString(v.spinner.View() + " Signing out...")
	case v.waiting:
		b.WriteString(v.spinner.View() + " Complete sign-in in your browser...")
	case v.current.Authenticated && v.rejected:
		b.WriteString(v.styles.Warning.Render("Your session has expired. Sign in again to continue."))
		b.WriteString("\n\n")
		b.WriteString(v.styles.Help.Render("[Enter] Sign in  [Esc] Back"))
	case v.current.Authenticated && v.current.Identity != nil:
		b.WriteString(v.styles.Muted.Render("Signed in as "))
		b.WriteString(v.styles.Normal.Render(v.current.Identity.DisplayName()))
		if email := v.current.Identity.Email; email != "" && email != v.current.Identity.DisplayName() {
			b.WriteString(v.styles.Muted.Render(" <" + email + ">"))
		}
		b.WriteString("\n\n")
		b.WriteString(v.styles.Help.Render("[Enter] Sign out  [Esc] Back"))
	default:
		b.WriteString(v.styles.Normal.Render("Sign in to create and track your study pathway."))
		if v.pending.Protected() {
			b.WriteString("\n")
			b.WriteString(v.styles.Warning.Render("Sign in required for " + v.pending.String() + "."))
		}
		b.WriteString("\n\n")
		b.WriteString(v.styles.Help.Render("[Enter] Sign in  [Esc] Back"))
	}

	if v.err != nil {
		b.WriteString("\n\n")
		b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))
	}

	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

func changeView(view messages.ViewType) tea.Cmd {
	return func() tea.Msg {
		return messages.ViewChanged{View: view}
	}
}
