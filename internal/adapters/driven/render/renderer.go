// Package render draws a pathway onto a single tall raster surface.
package render

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"math"
	"strings"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/Surya-Mathivanan/pathway-cli/internal/core/domain"
	"github.com/Surya-Mathivanan/pathway-cli/internal/core/ports/driven"
)

// Ensure Renderer implements the interface.
var _ driven.SurfaceRenderer = (*Renderer)(nil)

// Surface geometry in unscaled pixels.
const (
	SurfaceWidth = 800.0
	margin       = 40.0
	lineSpacing  = 1.45
)

type style int

const (
	styleTitle style = iota
	styleHeading
	styleSubheading
	styleBody
	styleMuted
	styleDone
)

var (
	colorText   = color.RGBA{R: 0x1F, G: 0x2A, B: 0x44, A: 0xFF}
	colorMuted  = color.RGBA{R: 0x6B, G: 0x72, B: 0x80, A: 0xFF}
	colorDone   = color.RGBA{R: 0x16, G: 0xA3, B: 0x4A, A: 0xFF}
	colorAccent = color.RGBA{R: 0x4F, G: 0x46, B: 0xE5, A: 0xFF}
)

// line is one logical paragraph before wrapping.
type line struct {
	text   string
	style  style
	indent float64
	// space is extra vertical space above the line, in unscaled pixels.
	space float64
}

// Renderer draws pathways with the Go fonts.
type Renderer struct {
	regular *truetype.Font
	bold    *truetype.Font
}

// New parses the embedded fonts.
func New() (*Renderer, error) {
	regular, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse regular font: %w", err)
	}
	bold, err := truetype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse bold font: %w", err)
	}
	return &Renderer{regular: regular, bold: bold}, nil
}

func (r *Renderer) face(s style, scale float64) font.Face {
	f, size := r.regular, 13.0
	switch s {
	case styleTitle:
		f, size = r.bold, 26
	case styleHeading:
		f, size = r.bold, 18
	case styleSubheading:
		f, size = r.bold, 14
	case styleMuted:
		size = 12
	}
	return truetype.NewFace(f, &truetype.Options{
		Size:    size * scale,
		DPI:     72,
		Hinting: font.HintingNone,
	})
}

func colorOf(s style) color.Color {
	switch s {
	case styleMuted:
		return colorMuted
	case styleDone:
		return colorDone
	case styleHeading:
		return colorAccent
	default:
		return colorText
	}
}

// Render draws p at the given scale. The surface is SurfaceWidth*scale
// pixels wide and as tall as the content needs.
func (r *Renderer) Render(ctx context.Context, p *domain.Pathway, scale float64) (image.Image, error) {
	if p == nil {
		return nil, domain.ErrNoPathway
	}
	if scale <= 0 {
		scale = 1
	}

	faces := make(map[style]font.Face)
	for _, s := range []style{styleTitle, styleHeading, styleSubheading, styleBody, styleMuted, styleDone} {
		faces[s] = r.face(s, scale)
	}

	width := SurfaceWidth * scale
	pad := margin * scale

	type row struct {
		text   string
		style  style
		x, y   float64
		height float64
	}
	measure := gg.NewContext(1, 1)
	var rows []row
	y := pad
	for _, ln := range layoutLines(p) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		measure.SetFontFace(faces[ln.style])
		h := measure.FontHeight() * lineSpacing
		x := pad + ln.indent*scale
		y += ln.space * scale
		for _, wrapped := range measure.WordWrap(ln.text, width-pad-x) {
			rows = append(rows, row{text: wrapped, style: ln.style, x: x, y: y, height: h})
			y += h
		}
	}
	height := int(math.Ceil(y + pad))

	dc := gg.NewContext(int(width), height)
	dc.SetColor(color.White)
	dc.Clear()

	dc.SetColor(colorAccent)
	dc.DrawRectangle(0, 0, width, 6*scale)
	dc.Fill()

	for _, rw := range rows {
		dc.SetFontFace(faces[rw.style])
		dc.SetColor(colorOf(rw.style))
		dc.DrawStringAnchored(rw.text, rw.x, rw.y, 0, 1)
	}
	return dc.Image(), nil
}

// layoutLines turns a pathway into the paragraphs drawn on the surface.
func layoutLines(p *domain.Pathway) []line {
	progress := domain.ComputeProgress(p)
	lines := []line{
		{text: p.Title, style: styleTitle},
		{text: fmt.Sprintf("Progress: %d%% (%d of %d items completed)",
			progress.Percentage, progress.Completed, progress.Total), style: styleMuted, space: 4},
	}

	days := p.SortedDays()
	if len(days) > 0 {
		lines = append(lines, line{text: "Schedule", style: styleHeading, space: 18})
	}
	for _, d := range days {
		head := fmt.Sprintf("Day %d: %s", d.Day, d.Focus)
		if d.Time != "" {
			head += fmt.Sprintf(" (%s hours)", d.Time)
		}
		lines = append(lines, line{text: head, style: styleSubheading, space: 10})
		if len(d.Topics) > 0 {
			lines = append(lines, line{text: "Topics: " + strings.Join(d.Topics, ", "), style: styleBody, indent: 16})
		}
		if d.Details != nil && strings.TrimSpace(*d.Details) != "" {
			lines = append(lines, line{text: *d.Details, style: styleMuted, indent: 16})
		}
		if d.Resources != nil {
			lines = append(lines, resourceLines(d.Resources)...)
		}
	}

	for _, kind := range domain.AllSectionKinds() {
		items := p.Sections.Items(kind)
		if len(items) == 0 {
			continue
		}
		lines = append(lines, line{text: kind.Description(), style: styleHeading, space: 18})
		for _, item := range items {
			lines = append(lines, itemLine(item))
		}
	}
	return lines
}

func resourceLines(res *domain.DayResources) []line {
	var out []line
	add := func(label string, items []domain.SectionItem) {
		for _, item := range items {
			text := label + ": " + item.Title
			if link := item.Link(); link != "" {
				text += " - " + link
			}
			out = append(out, line{text: text, style: styleMuted, indent: 32})
		}
	}
	add("Practice", res.Practice)
	add("Video", res.Youtube)
	add("Theory", res.Theory)
	return out
}

func itemLine(item domain.SectionItem) line {
	mark, st := "[ ]", styleBody
	if item.Completed {
		mark, st = "[x]", styleDone
	}
	text := mark + " " + item.Title
	if link := item.Link(); link != "" {
		text += " - " + link
	}
	return line{text: text, style: st, indent: 8, space: 2}
}
