package tui

import (
	"context"
	"fmt"
	"sync"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Surya-Mathivanan/pathway-cli/internal/adapters/driving/tui/components/status"
	"github.com/Surya-Mathivanan/pathway-cli/internal/adapters/driving/tui/keymap"
	"github.com/Surya-Mathivanan/pathway-cli/internal/adapters/driving/tui/messages"
	"github.com/Surya-Mathivanan/pathway-cli/internal/adapters/driving/tui/styles"
	"github.com/Surya-Mathivanan/pathway-cli/internal/adapters/driving/tui/views/chat"
	"github.com/Surya-Mathivanan/pathway-cli/internal/adapters/driving/tui/views/dashboard"
	"github.com/Surya-Mathivanan/pathway-cli/internal/adapters/driving/tui/views/menu"
	"github.com/Surya-Mathivanan/pathway-cli/internal/adapters/driving/tui/views/pathway"
	"github.com/Surya-Mathivanan/pathway-cli/internal/adapters/driving/tui/views/questionnaire"
	"github.com/Surya-Mathivanan/pathway-cli/internal/adapters/driving/tui/views/signin"
	"github.com/Surya-Mathivanan/pathway-cli/internal/core/domain"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	styles    *styles.Styles
	keymap    *keymap.KeyMap
	statusBar *status.Bar

	menuView          *menu.View
	signinView        *signin.View
	questionnaireView *questionnaire.View
	dashboardView     *dashboard.View
	pathwayView       *pathway.View
	chatView          *chat.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// session is the last authentication state seen from the gate.
	session domain.Session

	// sessions carries gate deliveries into the update loop. It holds at
	// most one pending session, the latest.
	sessions    chan domain.Session
	unsubscribe func()

	// program is set while Run is active.
	mu      sync.Mutex
	program *tea.Program

	// err holds the last error that occurred.
	err error

	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	a := &App{
		ports:             ports,
		ctx:               context.Background(),
		styles:            s,
		keymap:            km,
		statusBar:         status.NewBar(s, km),
		menuView:          menu.NewView(s),
		signinView:        signin.NewView(s, ports.Session),
		questionnaireView: questionnaire.NewView(s, ports.Wizard),
		dashboardView:     dashboard.NewView(s, ports.Pathway),
		pathwayView:       pathway.NewView(s, ports.Progress, ports.Export),
		chatView:          chat.NewView(s, ports.Assistant),
		currentView:       messages.ViewMenu,
		sessions:          make(chan domain.Session, 1),
	}
	a.pathwayView.SetExportDir(ports.exportDir())
	a.applySession(ports.Session.Session())
	return a, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	a.subscribe()
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("pathway"),
		a.waitForSession(),
	)
}

// subscribe registers with the session gate once.
func (a *App) subscribe() {
	if a.unsubscribe != nil {
		return
	}
	a.unsubscribe = a.ports.Session.Observe(func(s domain.Session) {
		for {
			select {
			case a.sessions <- s:
				return
			default:
			}
			// Replace a stale pending session with the newer one.
			select {
			case <-a.sessions:
			default:
			}
		}
	})
}

// waitForSession blocks until the gate delivers, then feeds the update loop.
func (a *App) waitForSession() tea.Cmd {
	return func() tea.Msg {
		select {
		case s := <-a.sessions:
			return messages.SessionChanged{Session: s}
		case <-a.ctx.Done():
			return nil
		}
	}
}

// Close stops listening to the session gate.
func (a *App) Close() {
	if a.unsubscribe != nil {
		a.unsubscribe()
		a.unsubscribe = nil
	}
}

// Update implements tea.Model.
//
//nolint:gocyclo // central message handler requires complexity
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if a.currentView == messages.ViewHelp {
			if msg.Type == tea.KeyEsc {
				a.currentView = messages.ViewMenu
			}
			return a, nil
		}
		if a.currentView == messages.ViewMenu && keymap.Matches(msg.String(), a.keymap.Help) {
			a.currentView = messages.ViewHelp
			return a, nil
		}
		return a, a.forward(msg)

	case messages.ViewChanged:
		return a, a.navigate(msg.View)

	case messages.SessionChanged:
		cmd = a.onSession(msg.Session)
		return a, tea.Batch(cmd, a.waitForSession())

	case messages.SignInFinished:
		a.signinView, cmd = a.signinView.Update(msg)
		if msg.Err != nil {
			a.err = msg.Err
			return a, cmd
		}
		return a, tea.Batch(cmd, a.onSession(a.ports.Session.Session()))

	case messages.WizardUpdated:
		a.rejectOn(msg.Err)
		a.questionnaireView, cmd = a.questionnaireView.Update(msg)
		return a, cmd

	case messages.PathwayGenerated:
		a.rejectOn(msg.Err)
		a.questionnaireView, cmd = a.questionnaireView.Update(msg)
		return a, cmd

	case messages.DashboardLoaded:
		a.rejectOn(msg.Err)
		a.dashboardView, cmd = a.dashboardView.Update(msg)
		return a, cmd

	case messages.ProgressLoaded:
		a.rejectOn(msg.Err)
		a.pathwayView, cmd = a.pathwayView.Update(msg)
		return a, cmd

	case messages.ExportFinished:
		a.rejectOn(msg.Err)
		a.pathwayView, cmd = a.pathwayView.Update(msg)
		return a, cmd

	case messages.ChatAnswered:
		a.rejectOn(msg.Err)
		a.chatView, cmd = a.chatView.Update(msg)
		return a, cmd

	case messages.ConfigReloaded:
		if msg.Err != nil {
			a.err = msg.Err
			a.statusBar.SetState(status.StateError)
			a.statusBar.SetMessage("config reload failed: " + msg.Err.Error())
			return a, nil
		}
		a.pathwayView.SetExportDir(a.ports.exportDir())
		a.statusBar.SetState(status.StateReady)
		a.statusBar.SetMessage("Configuration reloaded")
		return a, nil

	case messages.ErrorOccurred:
		a.err = msg.Err
		a.statusBar.SetState(status.StateError)
		if msg.Err != nil {
			a.statusBar.SetMessage(msg.Err.Error())
		}
		return a, nil

	case messages.Quit:
		return a, tea.Quit

	case spinner.TickMsg:
		return a, a.forward(msg)
	}

	return a, nil
}

// forward sends a message to the active view.
func (a *App) forward(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch a.currentView {
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewSignIn:
		a.signinView, cmd = a.signinView.Update(msg)
	case messages.ViewQuestionnaire:
		a.questionnaireView, cmd = a.questionnaireView.Update(msg)
	case messages.ViewDashboard:
		a.dashboardView, cmd = a.dashboardView.Update(msg)
	case messages.ViewPathway:
		a.pathwayView, cmd = a.pathwayView.Update(msg)
	case messages.ViewChat:
		a.chatView, cmd = a.chatView.Update(msg)
	case messages.ViewHelp:
	}
	return cmd
}

// rejectOn flags the account view when the backend refused the credentials.
// The view that received the error issues the redirect itself.
func (a *App) rejectOn(err error) {
	if messages.RequiresSignIn(err) {
		a.signinView.Reject()
	}
}

// navigate switches views. Protected views redirect to sign-in while signed
// out and are shown once the session becomes authenticated.
func (a *App) navigate(view messages.ViewType) tea.Cmd {
	if view.Protected() && !a.session.Authenticated {
		a.signinView.SetPending(view)
		a.currentView = messages.ViewSignIn
		return a.signinView.Init()
	}
	if view == messages.ViewSignIn && a.currentView.Protected() {
		a.signinView.SetPending(a.currentView)
	}

	a.currentView = view
	a.statusBar.Clear()

	switch view {
	case messages.ViewSignIn:
		return a.signinView.Init()
	case messages.ViewQuestionnaire:
		return a.questionnaireView.Init()
	case messages.ViewDashboard:
		return a.dashboardView.Init()
	case messages.ViewPathway:
		return a.pathwayView.Init()
	case messages.ViewChat:
		return a.chatView.Init()
	case messages.ViewMenu, messages.ViewHelp:
	}
	return nil
}

// onSession applies a new session and performs any pending redirect.
func (a *App) onSession(s domain.Session) tea.Cmd {
	a.applySession(s)

	if !s.Authenticated && a.currentView.Protected() {
		return a.navigate(a.currentView)
	}
	if s.Authenticated && a.currentView == messages.ViewSignIn && a.signinView.Pending().Protected() {
		target := a.signinView.Pending()
		a.signinView.SetPending(messages.ViewMenu)
		return a.navigate(target)
	}
	return nil
}

func (a *App) applySession(s domain.Session) {
	a.session = s
	a.signinView.SetSession(s)
	user := ""
	if s.Authenticated && s.Identity != nil {
		user = s.Identity.DisplayName()
	}
	a.menuView.SetUser(user)
	a.statusBar.SetUser(user)
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	var body string
	switch a.currentView {
	case messages.ViewSignIn:
		body = a.signinView.View()
	case messages.ViewQuestionnaire:
		body = a.questionnaireView.View()
	case messages.ViewDashboard:
		body = a.dashboardView.View()
	case messages.ViewPathway:
		body = a.pathwayView.View()
	case messages.ViewChat:
		body = a.chatView.View()
	case messages.ViewHelp:
		body = a.viewHelp()
	default:
		body = a.menuView.View()
	}

	return body + "\n\n" + a.viewStatus()
}

func (a *App) viewStatus() string {
	if a.statusBar.State() != status.StateError {
		switch a.currentView {
		case messages.ViewPathway:
			a.statusBar.SetState(status.StatePathway)
		case messages.ViewHelp:
			a.statusBar.SetState(status.StateHelp)
		default:
			a.statusBar.SetState(status.StateReady)
		}
	}
	return a.statusBar.View()
}

// viewHelp renders the help view.
func (a *App) viewHelp() string {
	return `Help

Navigation:
  esc         Back to Menu
  ctrl+c      Quit

Menu:
  j/k, ↑/↓    Navigate options
  enter       Select option
  ?           Help
  q           Quit

New Pathway:
  j/k         Move between choices
  h/l         Change a study detail
  enter       Confirm step

My Pathway:
  j/k, ↑/↓    Navigate items
  space/x     Toggle done
  e           Export PDF
  r           Refresh

Account:
  enter       Sign in or sign out

[esc] back to menu`
}

// Run starts the TUI application and blocks until it exits.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))

	a.mu.Lock()
	a.program = p
	a.mu.Unlock()

	defer func() {
		a.mu.Lock()
		a.program = nil
		a.mu.Unlock()
		a.Close()
	}()

	_, err := p.Run()
	return err
}

// Notify delivers a message from outside the update loop, such as a
// configuration reload. It is a no-op when the program is not running.
func (a *App) Notify(msg tea.Msg) {
	a.mu.Lock()
	p := a.program
	a.mu.Unlock()
	if p != nil {
		p.Send(msg)
	}
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Session returns the last session seen by the app.
func (a *App) Session() domain.Session {
	return a.session
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions on the app and every view.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.statusBar.SetWidth(width)

	viewHeight := height - 2
	a.menuView.SetDimensions(width, viewHeight)
	a.signinView.SetDimensions(width, viewHeight)
	a.questionnaireView.SetDimensions(width, viewHeight)
	a.dashboardView.SetDimensions(width, viewHeight)
	a.pathwayView.SetDimensions(width, viewHeight)
	a.chatView.SetDimensions(width, viewHeight)
}
