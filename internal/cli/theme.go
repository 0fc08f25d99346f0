package cli

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Theme styles diagnostics on the error stream. The renderer is bound to that
// stream, so redirected output stays plain text.
type Theme struct {
	Error   lipgloss.Style
	Warning lipgloss.Style
	Detail  lipgloss.Style
}

func NewTheme(w io.Writer) Theme {
	r := lipgloss.NewRenderer(w)
	return Theme{
		Error:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
		Warning: r.NewStyle().Foreground(lipgloss.Color("11")),
		Detail:  r.NewStyle().Faint(true),
	}
}
