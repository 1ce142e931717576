// Package chat provides the study assistant view for the TUI.
package chat

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Surya-Mathivanan/pathway-cli/internal/adapters/driving/tui/components/input"
	"github.com/Surya-Mathivanan/pathway-cli/internal/adapters/driving/tui/messages"
	"github.com/Surya-Mathivanan/pathway-cli/internal/adapters/driving/tui/styles"
	"github.com/Surya-Mathivanan/pathway-cli/internal/core/domain"
	"github.com/Surya-Mathivanan/pathway-cli/internal/core/ports/driving"
)

// Entry is one question and its answer.
type Entry struct {
	Question string
	Answer   string
	Failed   bool
}

// View is the assistant chat view.
type View struct {
	styles    *styles.Styles
	assistant driving.AssistantService
	prompt    *input.Field
	spinner   spinner.Model

	transcript []Entry
	waiting    bool
	width      int
	height     int
}

// NewView creates a new chat view.
func NewView(s *styles.Styles, assistant driving.AssistantService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = s.Selected

	return &View{
		styles:    s,
		assistant: assistant,
		prompt:    input.NewField(s, "Ask", "How should I approach dynamic programming?"),
		spinner:   sp,
	}
}

// Init focuses the prompt.
func (v *View) Init() tea.Cmd {
	return v.prompt.Focus()
}

// Transcript returns the conversation so far.
func (v *View) Transcript() []Entry {
	return v.transcript
}

// Waiting reports whether an answer is pending.
func (v *View) Waiting() bool {
	return v.waiting
}

func (v *View) ask(question string) tea.Cmd {
	return func() tea.Msg {
		if v.assistant == nil {
			return messages.ChatAnswered{Question: question, Err: errors.New("assistant service not available")}
		}
		answer, err := v.assistant.Ask(context.Background(), question)
		return messages.ChatAnswered{Question: question, Answer: answer, Err: err}
	}
}

// Update handles messages for the chat view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.ChatAnswered:
		v.waiting = false
		entry := Entry{Question: msg.Question, Answer: msg.Answer}
		if msg.Err != nil {
			entry.Answer = domain.ChatFallbackAnswer
			entry.Failed = true
		}
		v.transcript = append(v.transcript, entry)
		if messages.RequiresSignIn(msg.Err) {
			return v, changeView(messages.ViewSignIn)
		}
		return v, nil

	case spinner.TickMsg:
		if !v.waiting {
			return v, nil
		}
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		return v, cmd

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEsc:
			return v, changeView(messages.ViewMenu)
		case tea.KeyEnter:
			if v.waiting {
				return v, nil
			}
			question := v.prompt.Submit()
			if question == "" {
				return v, nil
			}
			v.waiting = true
			return v, tea.Batch(v.spinner.Tick, v.ask(question))
		}
		if v.waiting {
			return v, nil
		}
		var cmd tea.Cmd
		v.prompt, cmd = v.prompt.Update(msg)
		return v, cmd
	}
	return v, nil
}

// View renders the transcript and prompt.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Study Assistant"))
	b.WriteString("\n\n")

	if len(v.transcript) == 0 && !v.waiting {
		b.WriteString(v.styles.Muted.Render("Ask anything about your preparation."))
		b.WriteString("\n\n")
	}

	for _, e := range v.visible() {
		b.WriteString(v.styles.Selected.Render("You: ") + v.styles.Normal.Render(e.Question))
		b.WriteString("\n")
		answer := v.styles.Normal.Render(e.Answer)
		if e.Failed {
			answer = v.styles.Error.Render(e.Answer)
		}
		b.WriteString(v.styles.Subtitle.Render("Assistant: ") + answer)
		b.WriteString("\n\n")
	}

	if v.waiting {
		b.WriteString(v.spinner.View() + " Thinking...")
		b.WriteString("\n\n")
	}

	b.WriteString(v.prompt.View())
	b.WriteString("\n\n")
	b.WriteString(v.styles.Help.Render("[Enter] Send  [Esc] Back"))
	return b.String()
}

// visible returns the tail of the transcript that fits the view height.
func (v *View) visible() []Entry {
	limit := (v.height - 10) / 3
	if limit < 1 {
		limit = 1
	}
	if v.height == 0 || len(v.transcript) <= limit {
		return v.transcript
	}
	return v.transcript[len(v.transcript)-limit:]
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.prompt.SetWidth(width)
}

func changeView(view messages.ViewType) tea.Cmd {
	return func() tea.Msg {
		return messages.ViewChanged{View: view}
	}
}
