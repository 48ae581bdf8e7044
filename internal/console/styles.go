package console

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

// styles holds the console palette. Colors follow the writer's terminal
// profile, so piped output stays plain.
type styles struct {
	Heading lipgloss.Style
	Label   lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Warn    lipgloss.Style
	Error   lipgloss.Style
}

func newStyles(out io.Writer, noColor bool) styles {
	r := lipgloss.NewRenderer(out)
	if noColor {
		plain := r.NewStyle()
		return styles{plain, plain, plain, plain, plain, plain}
	}
	return styles{
		Heading: r.NewStyle().Bold(true).Foreground(lipgloss.Color("69")),
		Label:   r.NewStyle().Foreground(lipgloss.Color("245")),
		Muted:   r.NewStyle().Foreground(lipgloss.Color("241")),
		Success: r.NewStyle().Bold(true).Foreground(lipgloss.Color("42")),
		Warn:    r.NewStyle().Foreground(lipgloss.Color("214")),
		Error:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("196")),
	}
}
