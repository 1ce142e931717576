// Package questionnaire provides the adaptive intake wizard view for the TUI.
package questionnaire

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Surya-Mathivanan/pathway-cli/internal/adapters/driving/tui/components/input"
	"github.com/Surya-Mathivanan/pathway-cli/internal/adapters/driving/tui/messages"
	"github.com/Surya-Mathivanan/pathway-cli/internal/adapters/driving/tui/styles"
	"github.com/Surya-Mathivanan/pathway-cli/internal/core/domain"
	"github.com/Surya-Mathivanan/pathway-cli/internal/core/ports/driving"
)

// Detail fields on the details step.
const (
	fieldHours = iota
	fieldLanguage
	fieldPrep
	fieldCount
)

// View walks the user through the questionnaire wizard.
type View struct {
	styles  *styles.Styles
	wizard  driving.WizardService
	spinner spinner.Model
	score   *input.Field

	state    domain.WizardState
	levelIdx int
	field    int
	hoursIdx int
	langIdx  int
	prepIdx  int
	starting bool
	err      error
	width    int
	height   int
}

// NewView creates a new questionnaire view.
func NewView(s *styles.Styles, wizard driving.WizardService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = s.Selected

	score := input.NewField(s, "Score", fmt.Sprintf("0-%d", domain.MaxQuizScore))
	score.SetCharLimit(2)

	return &View{
		styles:  s,
		wizard:  wizard,
		spinner: sp,
		score:   score,
	}
}

// Init resets the wizard and starts a new questionnaire.
func (v *View) Init() tea.Cmd {
	v.err = nil
	v.levelIdx = 0
	v.score.Reset()
	if v.wizard == nil {
		v.err = errors.New("wizard service not available")
		return nil
	}
	v.wizard.Reset()
	v.state = v.wizard.State()
	return v.start()
}

func (v *View) start() tea.Cmd {
	v.starting = true
	return func() tea.Msg {
		err := v.wizard.Start(context.Background())
		return messages.WizardUpdated{State: v.wizard.State(), Err: err}
	}
}

func (v *View) generate() tea.Cmd {
	return func() tea.Msg {
		p, err := v.wizard.Generate(context.Background())
		return messages.PathwayGenerated{Pathway: p, Err: err}
	}
}

// State returns the last observed wizard state.
func (v *View) State() domain.WizardState {
	return v.state
}

// Err returns the last input or service error.
func (v *View) Err() error {
	return v.err
}

// Update handles messages for the questionnaire view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.WizardUpdated:
		v.starting = false
		v.state = msg.State
		v.err = msg.Err
		if errors.Is(msg.Err, domain.ErrSignInRequired) {
			return v, changeView(messages.ViewSignIn)
		}
		return v, nil

	case messages.PathwayGenerated:
		v.state = v.wizard.State()
		if msg.Err != nil {
			if errors.Is(msg.Err, domain.ErrSignInRequired) {
				v.err = msg.Err
				return v, changeView(messages.ViewSignIn)
			}
			return v, nil
		}
		v.err = nil
		return v, changeView(messages.ViewPathway)

	case spinner.TickMsg:
		if v.state.Step != domain.StepSubmitting && !v.starting {
			return v, nil
		}
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		return v, cmd

	case tea.KeyMsg:
		return v.handleKey(msg)
	}

	return v, nil
}

func (v *View) handleKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	if v.starting || v.state.Step == domain.StepSubmitting {
		return v, nil
	}
	if msg.Type == tea.KeyEsc {
		return v, changeView(messages.ViewMenu)
	}
	if v.wizard == nil {
		return v, nil
	}

	switch v.state.Step {
	case domain.StepLanding:
		if msg.Type == tea.KeyEnter {
			v.err = nil
			return v, tea.Batch(v.spinner.Tick, v.start())
		}
	case domain.StepLevelSelect:
		return v.handleLevelKey(msg)
	case domain.StepDetails:
		return v.handleDetailsKey(msg)
	case domain.StepQuiz:
		return v.handleQuizKey(msg)
	case domain.StepConfirm:
		if msg.Type == tea.KeyEnter {
			v.err = nil
			v.state.Step = domain.StepSubmitting
			return v, tea.Batch(v.spinner.Tick, v.generate())
		}
	case domain.StepDone:
		if msg.Type == tea.KeyEnter {
			return v, changeView(messages.ViewPathway)
		}
	case domain.StepSubmitting:
	}
	return v, nil
}

func (v *View) handleLevelKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	levels := domain.AllSkillLevels()
	switch msg.String() {
	case "up", "k":
		if v.levelIdx > 0 {
			v.levelIdx--
		}
	case "down", "j":
		if v.levelIdx < len(levels)-1 {
			v.levelIdx++
		}
	case "enter":
		v.err = v.wizard.SelectLevel(levels[v.levelIdx])
		v.state = v.wizard.State()
		if v.err == nil {
			v.syncDetails()
		}
	}
	return v, nil
}

// syncDetails positions the detail selectors on the current answers.
func (v *View) syncDetails() {
	a := v.state.Answers
	v.field = fieldHours
	v.hoursIdx = indexOf(domain.AllHoursPerDay(), a.HoursPerDay)
	v.langIdx = indexOf(domain.AllLanguages(), a.ProgrammingLanguage)
	v.prepIdx = indexOf(domain.AllPrepTimes(), a.PrepTime)
}

func (v *View) handleDetailsKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.field > 0 {
			v.field--
		}
	case "down", "j", "tab":
		if v.field < fieldCount-1 {
			v.field++
		}
	case "left", "h":
		v.cycle(-1)
	case "right", "l":
		v.cycle(1)
	case "enter":
		v.err = v.wizard.SubmitDetails(
			domain.AllHoursPerDay()[v.hoursIdx],
			domain.AllLanguages()[v.langIdx],
			domain.AllPrepTimes()[v.prepIdx],
		)
		v.state = v.wizard.State()
		if v.err == nil && v.state.Step == domain.StepQuiz {
			v.score.Reset()
			return v, v.score.Focus()
		}
	}
	return v, nil
}

func (v *View) cycle(delta int) {
	wrap := func(i, n int) int { return ((i+delta)%n + n) % n }
	switch v.field {
	case fieldHours:
		v.hoursIdx = wrap(v.hoursIdx, len(domain.AllHoursPerDay()))
	case fieldLanguage:
		v.langIdx = wrap(v.langIdx, len(domain.AllLanguages()))
	case fieldPrep:
		v.prepIdx = wrap(v.prepIdx, len(domain.AllPrepTimes()))
	}
}

func (v *View) handleQuizKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	if msg.Type != tea.KeyEnter {
		var cmd tea.Cmd
		v.score, cmd = v.score.Update(msg)
		return v, cmd
	}

	raw := strings.TrimSpace(v.score.Value())
	score, err := strconv.Atoi(raw)
	if err != nil {
		v.err = fmt.Errorf("%w: score must be a number between 0 and %d", domain.ErrInvalidInput, domain.MaxQuizScore)
		return v, nil
	}
	v.err = v.wizard.SubmitQuiz(score)
	v.state = v.wizard.State()
	return v, nil
}

// View renders the current wizard step.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("New Pathway"))
	b.WriteString("\n")
	b.WriteString(v.styles.Muted.Render(stepLabel(v.state.Step)))
	b.WriteString("\n\n")

	if v.state.Warning != "" {
		b.WriteString(v.styles.Warning.Render(v.state.Warning))
		b.WriteString("\n\n")
	}

	switch {
	case v.starting:
		b.WriteString(v.spinner.View() + " Preparing questionnaire...")
	case v.state.Step == domain.StepLanding:
		b.WriteString(v.styles.Normal.Render("Answer a few questions to get a study plan tailored to you."))
		b.WriteString("\n\n")
		b.WriteString(v.styles.Help.Render("[Enter] Start  [Esc] Back"))
	case v.state.Step == domain.StepLevelSelect:
		v.viewLevels(&b)
	case v.state.Step == domain.StepDetails:
		v.viewDetails(&b)
	case v.state.Step == domain.StepQuiz:
		v.viewQuiz(&b)
	case v.state.Step == domain.StepConfirm:
		v.viewConfirm(&b)
	case v.state.Step == domain.StepSubmitting:
		b.WriteString(v.spinner.View() + " Generating your pathway...")
	case v.state.Step == domain.StepDone:
		b.WriteString(v.styles.Success.Render("Your pathway is ready."))
		b.WriteString("\n\n")
		b.WriteString(v.styles.Help.Render("[Enter] View pathway  [Esc] Menu"))
	}

	if v.err != nil {
		b.WriteString("\n\n")
		b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))
	}
	return b.String()
}

func (v *View) viewLevels(b *strings.Builder) {
	b.WriteString(v.styles.Subtitle.Render("What is your current skill level?"))
	b.WriteString("\n\n")
	for i, level := range domain.AllSkillLevels() {
		label := level.Description()
		if level.RequiresQuiz() {
			label += v.styles.Muted.Render("  (short quiz)")
		}
		if i == v.levelIdx {
			b.WriteString("> " + v.styles.Selected.Render(label))
		} else {
			b.WriteString("  " + v.styles.Normal.Render(label))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[j/k] Navigate  [Enter] Select  [Esc] Back"))
}

func (v *View) viewDetails(b *strings.Builder) {
	rows := []struct {
		label string
		value string
	}{
		{"Hours per day", domain.AllHoursPerDay()[v.hoursIdx].String()},
		{"Language", domain.AllLanguages()[v.langIdx].Description()},
		{"Preparation time", domain.AllPrepTimes()[v.prepIdx].String()},
	}
	for i, row := range rows {
		value := "< " + row.value + " >"
		if i == v.field {
			b.WriteString("> " + v.styles.Normal.Render(fmt.Sprintf("%-18s", row.label)) + v.styles.Selected.Render(value))
		} else {
			b.WriteString("  " + v.styles.Muted.Render(fmt.Sprintf("%-18s", row.label)) + v.styles.Normal.Render(value))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[j/k] Field  [h/l] Change  [Enter] Continue  [Esc] Back"))
}

func (v *View) viewQuiz(b *strings.Builder) {
	b.WriteString(v.styles.Subtitle.Render(
		fmt.Sprintf("Calibration quiz for %s", v.state.Answers.SkillLevel.Description())))
	b.WriteString("\n")
	b.WriteString(v.styles.Muted.Render(fmt.Sprintf(
		"Enter your score out of %d. Below %d moves you down one level.",
		domain.MaxQuizScore, domain.DowngradeThreshold)))
	b.WriteString("\n\n")
	b.WriteString(v.score.View())
	b.WriteString("\n\n")
	b.WriteString(v.styles.Help.Render("[Enter] Submit  [Esc] Back"))
}

func (v *View) viewConfirm(b *strings.Builder) {
	a := v.state.Answers
	b.WriteString(v.styles.Subtitle.Render("Review your answers"))
	b.WriteString("\n\n")
	fmt.Fprintf(b, "  Skill level:       %s\n", a.SkillLevel.Description())
	fmt.Fprintf(b, "  Hours per day:     %s\n", a.HoursPerDay)
	fmt.Fprintf(b, "  Language:          %s\n", a.ProgrammingLanguage.Description())
	fmt.Fprintf(b, "  Preparation time:  %s\n", a.PrepTime)

	if q := v.state.Quiz; q != nil {
		b.WriteString("\n")
		if q.Downgraded() {
			b.WriteString(v.styles.Warning.Render(fmt.Sprintf(
				"Quiz score %d/%d: level adjusted from %s to %s.",
				q.Score, domain.MaxQuizScore, q.LevelBefore.Description(), q.LevelAfter.Description())))
		} else {
			b.WriteString(v.styles.Success.Render(fmt.Sprintf(
				"Quiz score %d/%d: level confirmed.", q.Score, domain.MaxQuizScore)))
		}
		b.WriteString("\n")
	}

	if v.state.Error != "" {
		b.WriteString("\n")
		b.WriteString(v.styles.Error.Render(v.state.Error))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[Enter] Generate pathway  [Esc] Back"))
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.score.SetWidth(width)
}

func stepLabel(step domain.WizardStep) string {
	switch step {
	case domain.StepLevelSelect:
		return "Step 1 of 4: skill level"
	case domain.StepDetails:
		return "Step 2 of 4: study details"
	case domain.StepQuiz:
		return "Step 3 of 4: calibration"
	case domain.StepConfirm, domain.StepSubmitting:
		return "Step 4 of 4: confirm"
	default:
		return ""
	}
}

func indexOf[T comparable](values []T, v T) int {
	for i, candidate := range values {
		if candidate == v {
			return i
		}
	}
	return 0
}

func changeView(view messages.ViewType) tea.Cmd {
	return func() tea.Msg {
		return messages.ViewChanged{View: view}
	}
}
