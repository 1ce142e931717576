// Package dashboard provides the overview view: current pathway progress,
// pathway history and motivational tips.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Surya-Mathivanan/pathway-cli/internal/adapters/driving/tui/messages"
	"github.com/Surya-Mathivanan/pathway-cli/internal/adapters/driving/tui/styles"
	"github.com/Surya-Mathivanan/pathway-cli/internal/core/domain"
	"github.com/Surya-Mathivanan/pathway-cli/internal/core/ports/driving"
)

const maxHistory = 5

// View is the dashboard view.
type View struct {
	styles   *styles.Styles
	pathways driving.PathwayService
	bar      progress.Model

	data    *domain.Dashboard
	loading bool
	err     error
	width   int
	height  int
}

// NewView creates a new dashboard view.
func NewView(s *styles.Styles, pathways driving.PathwayService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:   s,
		pathways: pathways,
		bar:      progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
	}
}

// Init loads the dashboard.
func (v *View) Init() tea.Cmd {
	v.loading = true
	v.err = nil
	return v.load()
}

func (v *View) load() tea.Cmd {
	return func() tea.Msg {
		if v.pathways == nil {
			return messages.DashboardLoaded{Err: errors.New("pathway service not available")}
		}
		d, err := v.pathways.Dashboard(context.Background())
		return messages.DashboardLoaded{Dashboard: d, Err: err}
	}
}

// Data returns the loaded dashboard, nil before the first successful load.
func (v *View) Data() *domain.Dashboard {
	return v.data
}

// Err returns the last load error.
func (v *View) Err() error {
	return v.err
}

// Update handles messages for the dashboard view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.DashboardLoaded:
		v.loading = false
		v.err = msg.Err
		if msg.Err == nil {
			v.data = msg.Dashboard
		}
		if messages.RequiresSignIn(msg.Err) {
			return v, changeView(messages.ViewSignIn)
		}
		return v, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return v, changeView(messages.ViewMenu)
		case "r":
			if v.loading {
				return v, nil
			}
			return v, v.Init()
		case "enter", "p":
			return v, changeView(messages.ViewPathway)
		case "n":
			return v, changeView(messages.ViewQuestionnaire)
		}
	}
	return v, nil
}

// View renders the dashboard.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Dashboard"))
	b.WriteString("\n\n")

	switch {
	case v.loading && v.data == nil:
		b.WriteString(v.styles.Muted.Render("Loading dashboard..."))
	case v.data == nil:
	case v.data.Current == nil:
		b.WriteString(v.styles.Normal.Render("You have no pathway yet."))
		b.WriteString("\n")
		b.WriteString(v.styles.Muted.Render("Press n to answer the questionnaire and generate one."))
		b.WriteString("\n")
	default:
		v.viewCurrent(&b)
	}

	if v.data != nil {
		v.viewHistory(&b)
		v.viewTips(&b)
	}

	if v.err != nil {
		b.WriteString("\n")
		b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[Enter] Open pathway  [n] New  [r] Refresh  [Esc] Back"))
	return b.String()
}

func (v *View) viewCurrent(b *strings.Builder) {
	p := v.data.Current
	pr := v.data.Progress

	card := fmt.Sprintf("%s\n\n%s %s\n%s",
		v.styles.Subtitle.Render(p.Title),
		v.bar.ViewAs(float64(pr.Percentage)/100),
		v.styles.Percent(pr.Percentage),
		v.styles.Muted.Render(fmt.Sprintf("%d of %d items completed · %d days",
			pr.Completed, pr.Total, len(p.Schedule.Daily))),
	)
	b.WriteString(v.styles.Card.Render(card))
	b.WriteString("\n")
}

func (v *View) viewHistory(b *strings.Builder) {
	if len(v.data.History) == 0 {
		return
	}
	b.WriteString("\n")
	b.WriteString(v.styles.Subtitle.Render("Your pathways"))
	b.WriteString("\n")
	for i, s := range v.data.History {
		if i == maxHistory {
			b.WriteString(v.styles.Muted.Render(fmt.Sprintf("  ... and %d more", len(v.data.History)-maxHistory)))
			b.WriteString("\n")
			break
		}
		created := "-"
		if s.CreatedAt != nil {
			created = s.CreatedAt.Format("Jan 2, 2006")
		}
		fmt.Fprintf(b, "  %s %s\n", v.styles.Normal.Render(s.Title),
			v.styles.Muted.Render(fmt.Sprintf("(%d days, %s)", s.Days, created)))
	}
}

func (v *View) viewTips(b *strings.Builder) {
	if len(v.data.Tips) == 0 {
		return
	}
	b.WriteString("\n")
	b.WriteString(v.styles.Subtitle.Render("Tips"))
	b.WriteString("\n")
	for _, tip := range v.data.Tips {
		b.WriteString("  • " + v.styles.Normal.Render(tip) + "\n")
	}
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	barWidth := width - 20
	if barWidth > 60 {
		barWidth = 60
	}
	if barWidth < 10 {
		barWidth = 10
	}
	v.bar.Width = barWidth
}

func changeView(view messages.ViewType) tea.Cmd {
	return func() tea.Msg {
		return messages.ViewChanged{View: view}
	}
}
