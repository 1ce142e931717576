// Package pathway provides the pathway view: schedule, tracked items with
// completion toggles, and PDF export.
package pathway

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

// row is one selectable item with its section.
type row struct {
	kind domain.SectionKind
	item domain.SectionItem
}

// View is the pathway view.
type View struct {
	styles    *styles.Styles
	tracker   driving.ProgressService
	exporter  driving.ExportService
	bar       progress.Model
	exportDir string

	snapshot  domain.ProgressSnapshot
	rows      []row
	selected  int
	loading   bool
	toggling  bool
	exporting bool
	notice    string
	err       error
	width     int
	height    int
}

// NewView creates a new pathway view.
func NewView(s *styles.Styles, tracker driving.ProgressService, exporter driving.ExportService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:   s,
		tracker:  tracker,
		exporter: exporter,
		bar:      progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
	}
}

// SetExportDir sets the directory PDF exports are written to.
func (v *View) SetExportDir(dir string) {
	v.exportDir = dir
}

// Init reloads the pathway from the service.
func (v *View) Init() tea.Cmd {
	v.err = nil
	v.notice = ""
	if v.tracker == nil {
		v.err = errors.New("progress service not available")
		return nil
	}
	v.setSnapshot(v.tracker.Snapshot())
	v.loading = true
	return func() tea.Msg {
		snap, err := v.tracker.Reload(context.Background())
		return messages.ProgressLoaded{Snapshot: snap, Err: err}
	}
}

func (v *View) toggle(id string) tea.Cmd {
	v.toggling = true
	return func() tea.Msg {
		snap, err := v.tracker.Toggle(context.Background(), id)
		return messages.ProgressLoaded{Snapshot: snap, Err: err}
	}
}

func (v *View) export() tea.Cmd {
	p := v.snapshot.Pathway
	dir := v.exportDir
	v.exporting = true
	return func() tea.Msg {
		rec, err := v.exporter.Export(context.Background(), p, domain.ExportFormatPDF, dir)
		return messages.ExportFinished{Record: rec, Err: err}
	}
}

// Snapshot returns the displayed snapshot.
func (v *View) Snapshot() domain.ProgressSnapshot {
	return v.snapshot
}

// Selected returns the selected item, if any.
func (v *View) Selected() (domain.SectionItem, bool) {
	if v.selected < 0 || v.selected >= len(v.rows) {
		return domain.SectionItem{}, false
	}
	return v.rows[v.selected].item, true
}

// Busy reports whether a reload, toggle or export is in flight.
func (v *View) Busy() bool {
	return v.loading || v.toggling || v.exporting
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}

// Notice returns the last informational message.
func (v *View) Notice() string {
	return v.notice
}

// Update handles messages for the pathway view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.ProgressLoaded:
		v.loading = false
		v.toggling = false
		v.err = msg.Err
		v.setSnapshot(msg.Snapshot)
		if messages.RequiresSignIn(msg.Err) {
			return v, changeView(messages.ViewSignIn)
		}
		return v, nil

	case messages.ExportFinished:
		v.exporting = false
		v.err = msg.Err
		if msg.Err == nil && msg.Record != nil {
			v.notice = fmt.Sprintf("Exported %d page(s) to %s", msg.Record.Pages, msg.Record.Path)
		}
		if messages.RequiresSignIn(msg.Err) {
			return v, changeView(messages.ViewSignIn)
		}
		return v, nil

	case tea.KeyMsg:
		return v.handleKey(msg)
	}
	return v, nil
}

func (v *View) handleKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return v, changeView(messages.ViewMenu)
	case "up", "k":
		if v.selected > 0 {
			v.selected--
		}
		return v, nil
	case "down", "j":
		if v.selected < len(v.rows)-1 {
			v.selected++
		}
		return v, nil
	}

	if v.Busy() || v.tracker == nil {
		return v, nil
	}

	switch msg.String() {
	case " ", "space", "x":
		item, ok := v.Selected()
		if !ok {
			return v, nil
		}
		v.notice = ""
		return v, v.toggle(item.ID)
	case "r":
		return v, v.Init()
	case "e":
		if v.exporter == nil {
			v.err = errors.New("export service not available")
			return v, nil
		}
		if v.snapshot.Pathway == nil {
			v.err = domain.ErrNoPathway
			return v, nil
		}
		v.err = nil
		v.notice = "Exporting PDF..."
		return v, v.export()
	case "n":
		if v.snapshot.Pathway == nil {
			return v, changeView(messages.ViewQuestionnaire)
		}
	}
	return v, nil
}

// setSnapshot replaces the displayed state, keeping the cursor on the same
// item when it still exists.
func (v *View) setSnapshot(snap domain.ProgressSnapshot) {
	var selectedID string
	var selectedKind domain.SectionKind
	if r, ok := v.selectedRow(); ok {
		selectedID, selectedKind = r.item.ID, r.kind
	}

	v.snapshot = snap
	v.rows = v.rows[:0]
	if snap.Pathway != nil {
		for _, kind := range domain.AllSectionKinds() {
			for _, item := range snap.Pathway.Sections.Items(kind) {
				v.rows = append(v.rows, row{kind: kind, item: item})
			}
		}
	}

	v.selected = 0
	for i, r := range v.rows {
		if r.item.ID == selectedID && r.kind == selectedKind {
			v.selected = i
			break
		}
	}
}

func (v *View) selectedRow() (row, bool) {
	if v.selected < 0 || v.selected >= len(v.rows) {
		return row{}, false
	}
	return v.rows[v.selected], true
}

// View renders the pathway.
func (v *View) View() string {
	var b strings.Builder

	p := v.snapshot.Pathway
	switch {
	case p != nil:
		b.WriteString(v.styles.Title.Render(p.Title))
	default:
		b.WriteString(v.styles.Title.Render("My Pathway"))
	}
	b.WriteString("\n\n")

	switch {
	case p == nil && v.loading:
		b.WriteString(v.styles.Muted.Render("Loading pathway..."))
		b.WriteString("\n")
	case p == nil:
		b.WriteString(v.styles.Normal.Render("No pathway yet. Press n to create one."))
		b.WriteString("\n")
	default:
		pr := v.snapshot.Progress
		fmt.Fprintf(&b, "%s %s\n", v.bar.ViewAs(float64(pr.Percentage)/100),
			v.styles.Muted.Render(fmt.Sprintf("%d of %d items completed", pr.Completed, pr.Total)))
		v.viewSchedule(&b, p)
		v.viewItems(&b)
	}

	if v.notice != "" {
		b.WriteString("\n")
		b.WriteString(v.styles.Success.Render(v.notice))
		b.WriteString("\n")
	}
	if v.err != nil {
		b.WriteString("\n")
		b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))
		b.WriteString("\n")
	}
	return b.String()
}

func (v *View) viewSchedule(b *strings.Builder, p *domain.Pathway) {
	days := p.SortedDays()
	if len(days) == 0 {
		return
	}
	b.WriteString("\n")
	b.WriteString(v.styles.Subtitle.Render("Schedule"))
	b.WriteString("\n")
	for _, d := range days {
		line := fmt.Sprintf("Day %d: %s", d.Day, d.Focus)
		if d.Time != "" {
			line += fmt.Sprintf(" (%s hours)", d.Time)
		}
		b.WriteString("  " + v.styles.Normal.Render(line) + "\n")
		if len(d.Topics) > 0 {
			b.WriteString("    " + v.styles.Muted.Render(strings.Join(d.Topics, ", ")) + "\n")
		}
	}
}

func (v *View) viewItems(b *strings.Builder) {
	var current domain.SectionKind
	for i, r := range v.rows {
		if r.kind != current {
			current = r.kind
			b.WriteString("\n")
			b.WriteString(v.styles.Section(current))
			b.WriteString("\n")
		}
		cursor := "  "
		if i == v.selected {
			cursor = "> "
		}
		line := cursor + v.styles.Checkbox(r.item.Completed) + " " + v.styles.ItemTitle(r.item.Title, r.item.Completed)
		if link := r.item.Link(); link != "" && i == v.selected {
			line += " " + v.styles.Muted.Render(link)
		}
		b.WriteString(line + "\n")
	}
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	barWidth := width - 30
	if barWidth > 50 {
		barWidth = 50
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
