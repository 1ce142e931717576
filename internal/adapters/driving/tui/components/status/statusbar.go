// Package status provides status bar components for the TUI.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Surya-Mathivanan/pathway-cli/internal/adapters/driving/tui/keymap"
	"github.com/Surya-Mathivanan/pathway-cli/internal/adapters/driving/tui/styles"
)

// State represents the current application state for display.
type State string

const (
	StateReady   State = "ready"
	StateLoading State = "loading"
	StateError   State = "error"
	StateHelp    State = "help"
	StatePathway State = "pathway"
)

// Bar displays the signed-in user, application status and keybinding hints.
type Bar struct {
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	state   State
	message string
	user    string
	width   int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &Bar{
		styles: s,
		keymap: km,
		state:  StateReady,
		width:  80,
	}
}

// Init initialises the status bar.
func (s *Bar) Init() tea.Cmd {
	return nil
}

// Update handles status bar messages.
func (s *Bar) Update(msg tea.Msg) (*Bar, tea.Cmd) {
	return s, nil
}

// View renders the status bar.
func (s *Bar) View() string {
	left := s.renderLeft()
	right := s.renderRight()

	padding := s.width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		padding = 1
	}

	return s.styles.StatusBar.Width(s.width).Render(
		left + strings.Repeat(" ", padding) + right,
	)
}

func (s *Bar) renderLeft() string {
	var status string
	switch s.state {
	case StateLoading:
		msg := s.message
		if msg == "" {
			msg = "Loading..."
		}
		status = s.styles.Muted.Render(msg)
	case StateError:
		if s.message != "" {
			status = s.styles.Error.Render(fmt.Sprintf("Error: %s", s.message))
		} else {
			status = s.styles.Error.Render("Error")
		}
	case StateHelp:
		status = s.styles.Normal.Render("Help")
	case StateReady, StatePathway:
		if s.message != "" {
			status = s.styles.Normal.Render(s.message)
		} else {
			status = s.styles.Muted.Render("Ready")
		}
	default:
		status = s.styles.Muted.Render("Ready")
	}

	if s.user == "" {
		return status
	}
	return s.styles.Selected.Render(s.user) + s.styles.Muted.Render(" · ") + status
}

func (s *Bar) renderRight() string {
	var bindings []key.Binding
	if s.state == StatePathway {
		bindings = s.keymap.PathwayHelp()
	} else {
		bindings = s.keymap.ShortHelp()
	}

	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return s.styles.Muted.Render(strings.Join(hints, " | "))
}

// SetState sets the current state.
func (s *Bar) SetState(state State) {
	s.state = state
}

// State returns the current state.
func (s *Bar) State() State {
	return s.state
}

// SetMessage sets a custom message.
func (s *Bar) SetMessage(message string) {
	s.message = message
}

// Message returns the current message.
func (s *Bar) Message() string {
	return s.message
}

// SetUser sets the label of the signed-in user. Empty hides it.
func (s *Bar) SetUser(user string) {
	s.user = user
}

// User returns the signed-in user label.
func (s *Bar) User() string {
	return s.user
}

// SetWidth sets the status bar width.
func (s *Bar) SetWidth(width int) {
	s.width = width
}

// Width returns the current width.
func (s *Bar) Width() int {
	return s.width
}

// Clear resets state and message. The user label is kept.
func (s *Bar) Clear() {
	s.state = StateReady
	s.message = ""
}
