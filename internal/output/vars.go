package output

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

type styles struct {
	success lipgloss.Style
	summary lipgloss.Style
	err     lipgloss.Style
	detail  lipgloss.Style
}

// newStyles binds the palette to w so colour is only emitted when w is a
// terminal that supports it.
func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		success: r.NewStyle().Foreground(lipgloss.Color("37")),           // dark green
		summary: r.NewStyle().Bold(true).Foreground(lipgloss.Color("2")), // green
		err:     r.NewStyle().Foreground(lipgloss.Color("9")),            // red
		detail:  r.NewStyle().Foreground(lipgloss.Color("250")),          // light grey
	}
}
