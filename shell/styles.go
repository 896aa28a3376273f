package shell

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

type styles struct {
	title lipgloss.Style
	cmd   lipgloss.Style
	muted lipgloss.Style
	err   lipgloss.Style
}

// newStyles binds the styles to out so colour is dropped when out is not a terminal.
func newStyles(out io.Writer) styles {
	r := lipgloss.NewRenderer(out)
	return styles{
		title: r.NewStyle().Bold(true).Foreground(lipgloss.Color("#3b82f6")),
		cmd:   r.NewStyle().Foreground(lipgloss.Color("#10b981")),
		muted: r.NewStyle().Foreground(lipgloss.Color("#64748b")),
		err:   r.NewStyle().Foreground(lipgloss.Color("#ef4444")),
	}
}
