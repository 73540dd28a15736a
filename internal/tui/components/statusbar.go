package components

import (
	"strings"

	"github.com/theirongolddev/iexpense/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Status is the right-hand message of the status bar.
type Status struct {
	Text string
	Bad  bool // rendered in the warning color
	Good bool // rendered in the success color
}

// RenderStatusBar renders the bottom status bar: key hints on the left and
// the current status on the right.
func RenderStatusBar(width int, hints string, status Status) string {
	t := theme.Active

	base := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)

	right := status.Text
	switch {
	case status.Bad:
		right = base.Foreground(t.Red).Bold(true).Render(right)
	case status.Good:
		right = base.Foreground(t.Green).Render(right)
	default:
		right = base.Render(right)
	}
	left := base.Render(" " + hints)

	padding := width - lipgloss.Width(left) - lipgloss.Width(right) - 1
	if padding < 1 {
		padding = 1
	}

	bar := left + base.Render(strings.Repeat(" ", padding)) + right + base.Render(" ")
	return lipgloss.NewStyle().Width(width).Background(t.Surface).Render(bar)
}
