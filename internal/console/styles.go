package console

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// styles holds every style used by the renderer and prompters. They are
// built from a lipgloss.Renderer so color detection follows the output writer.
type styles struct {
	title   lipgloss.Style
	key     lipgloss.Style
	example lipgloss.Style
	hint    lipgloss.Style
	dim     lipgloss.Style
	success lipgloss.Style
	warning lipgloss.Style
	errorS  lipgloss.Style
	bold    lipgloss.Style
	header  lipgloss.Style
	cell    lipgloss.Style
	border  lipgloss.Style

	successPanel lipgloss.Style
	warningPanel lipgloss.Style
	infoPanel    lipgloss.Style
}

const (
	colorCyan    = lipgloss.Color("39")
	colorGreen   = lipgloss.Color("42")
	colorYellow  = lipgloss.Color("214")
	colorRed     = lipgloss.Color("196")
	colorMagenta = lipgloss.Color("170")
	colorBlue    = lipgloss.Color("33")
	colorGray    = lipgloss.Color("245")
)

func newStyles(r *lipgloss.Renderer, noColor bool) styles {
	if noColor {
		r.SetColorProfile(termenv.Ascii)
	}

	panel := r.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)

	return styles{
		title:   r.NewStyle().Bold(true),
		key:     r.NewStyle().Foreground(colorCyan),
		example: r.NewStyle().Foreground(colorYellow),
		hint:    r.NewStyle().Foreground(colorMagenta),
		dim:     r.NewStyle().Foreground(colorGray).Faint(true),
		success: r.NewStyle().Foreground(colorGreen).Bold(true),
		warning: r.NewStyle().Foreground(colorYellow).Bold(true),
		errorS:  r.NewStyle().Foreground(colorRed).Bold(true),
		bold:    r.NewStyle().Bold(true),
		header:  r.NewStyle().Bold(true).Padding(0, 1),
		cell:    r.NewStyle().Padding(0, 1),
		border:  r.NewStyle().Foreground(colorGray),

		successPanel: panel.BorderForeground(colorGreen),
		warningPanel: panel.BorderForeground(colorYellow),
		infoPanel:    panel.BorderForeground(colorBlue),
	}
}
