// Package styles holds the colours and lipgloss styles shared by the views.
package styles

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/Surya-Mathivanan/pathway-cli/internal/core/domain"
)

// Palette is the set of colours the views draw with.
type Palette struct {
	// Accent marks titles and the cursor row.
	Accent lipgloss.Color
	// Heading is used for card and list headings.
	Heading lipgloss.Color
	Text    lipgloss.Color
	Subdued lipgloss.Color
	// Panel is the status bar background.
	Panel   lipgloss.Color
	Outline lipgloss.Color

	Done    lipgloss.Color
	Caution lipgloss.Color
	Failure lipgloss.Color

	// Section headings in the pathway view, one per tracked collection.
	Coding lipgloss.Color
	Video  lipgloss.Color
	Theory lipgloss.Color
}

// DefaultPalette returns the dark palette.
func DefaultPalette() *Palette {
	return &Palette{
		Accent:  lipgloss.Color("#4F46E5"),
		Heading: lipgloss.Color("#0EA5E9"),
		Text:    lipgloss.Color("#E5E7EB"),
		Subdued: lipgloss.Color("#6B7280"),
		Panel:   lipgloss.Color("#1F2937"),
		Outline: lipgloss.Color("#374151"),
		Done:    lipgloss.Color("#22C55E"),
		Caution: lipgloss.Color("#F59E0B"),
		Failure: lipgloss.Color("#EF4444"),
		Coding:  lipgloss.Color("#A78BFA"),
		Video:   lipgloss.Color("#F87171"),
		Theory:  lipgloss.Color("#34D399"),
	}
}

// Styles are the lipgloss styles built from a palette.
type Styles struct {
	palette *Palette

	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Normal   lipgloss.Style
	Muted    lipgloss.Style
	Selected lipgloss.Style
	Error    lipgloss.Style
	Success  lipgloss.Style
	Warning  lipgloss.Style
	Help     lipgloss.Style

	// InputField frames the chat prompt.
	InputField lipgloss.Style
	StatusBar  lipgloss.Style

	// Card frames the current pathway on the dashboard.
	Card lipgloss.Style

	// Done strikes through completed item titles.
	Done lipgloss.Style

	sections map[domain.SectionKind]lipgloss.Style
}

// NewStyles builds styles from p, or from the default palette when p is nil.
func NewStyles(p *Palette) *Styles {
	if p == nil {
		p = DefaultPalette()
	}

	fg := func(c lipgloss.Color) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(c)
	}
	framed := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(p.Outline)

	return &Styles{
		palette:  p,
		Title:    fg(p.Accent).Bold(true),
		Subtitle: fg(p.Heading).Bold(true),
		Normal:   fg(p.Text),
		Muted:    fg(p.Subdued),
		Selected: fg(p.Text).Background(p.Accent).Bold(true),
		Error:    fg(p.Failure),
		Success:  fg(p.Done),
		Warning:  fg(p.Caution),
		Help:     fg(p.Subdued),

		InputField: framed.Padding(0, 1),
		StatusBar:  fg(p.Subdued).Background(p.Panel).Padding(0, 1),
		Card:       framed.Padding(0, 2).MarginBottom(1),
		Done:       fg(p.Done).Strikethrough(true),

		sections: map[domain.SectionKind]lipgloss.Style{
			domain.SectionCodingProblems:    fg(p.Coding).Bold(true),
			domain.SectionYoutubeReferences: fg(p.Video).Bold(true),
			domain.SectionTheoryContent:     fg(p.Theory).Bold(true),
		},
	}
}

// DefaultStyles returns styles for the default palette.
func DefaultStyles() *Styles {
	return NewStyles(DefaultPalette())
}

// Palette returns the colours behind these styles.
func (s *Styles) Palette() *Palette {
	return s.palette
}

// Section renders the heading of a tracked collection.
func (s *Styles) Section(kind domain.SectionKind) string {
	st, ok := s.sections[kind]
	if !ok {
		st = s.Subtitle
	}
	return st.Render(kind.Description())
}

// Percent renders a completion percentage: amber until half done, heading
// colour after, green at 100.
func (s *Styles) Percent(p int) string {
	label := fmt.Sprintf("%d%%", p)
	switch {
	case p >= 100:
		return s.Success.Bold(true).Render(label)
	case p >= 50:
		return s.Subtitle.Render(label)
	default:
		return s.Warning.Render(label)
	}
}

// Checkbox renders a completion marker.
func (s *Styles) Checkbox(done bool) string {
	if done {
		return s.Success.Render("[x]")
	}
	return s.Muted.Render("[ ]")
}

// ItemTitle renders an item title, struck through when done.
func (s *Styles) ItemTitle(title string, done bool) string {
	if done {
		return s.Done.Render(title)
	}
	return s.Normal.Render(title)
}
