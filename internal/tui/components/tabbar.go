package components

import (
	"strings"

	"github.com/theirongolddev/iexpense/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Tab represents a single tab in the tab bar.
type Tab struct {
	Name   string
	Key    rune
	KeyPos int // position of the shortcut letter in the name (-1 if not in name)
}

// Tabs defines all available tabs.
var Tabs = []Tab{
	{Name: "Expenses", Key: 'e', KeyPos: 0},
	{Name: "Chart", Key: 'c', KeyPos: 0},
	{Name: "Budget", Key: 'b', KeyPos: 0},
}

func renderTab(tab Tab, active bool) string {
	t := theme.Active

	pad := lipgloss.NewStyle().Background(t.Surface)
	if active {
		return lipgloss.NewStyle().
			Foreground(t.AccentBright).
			Background(t.SurfaceHover).
			Bold(true).
			Padding(0, 1).
			Render(tab.Name)
	}

	inactive := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	key := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	dim := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	var body string
	if tab.KeyPos >= 0 && tab.KeyPos < len(tab.Name) {
		body = inactive.Render(tab.Name[:tab.KeyPos]) +
			dim.Render("[") + key.Render(string(tab.Name[tab.KeyPos])) + dim.Render("]") +
			inactive.Render(tab.Name[tab.KeyPos+1:])
	} else {
		body = inactive.Render(tab.Name) +
			dim.Render("[") + key.Render(string(tab.Key)) + dim.Render("]")
	}
	return pad.Render(" ") + body + pad.Render(" ")
}

// TabVisualWidth returns the rendered width of a tab, used for mouse hit
// testing. It must match RenderTabBar.
func TabVisualWidth(tab Tab, active bool) int {
	return lipgloss.Width(renderTab(tab, active))
}

// RenderTabBar renders the tab bar with the given active index, followed by
// a separator line.
func RenderTabBar(activeIdx int, width int) string {
	t := theme.Active

	sep := lipgloss.NewStyle().Foreground(t.Border).Background(t.Surface).Render("│")
	parts := make([]string, 0, len(Tabs))
	for i, tab := range Tabs {
		parts = append(parts, renderTab(tab, i == activeIdx))
	}

	row := lipgloss.NewStyle().
		Background(t.Surface).
		Width(width).
		Render(strings.Join(parts, sep))
	line := lipgloss.NewStyle().
		Foreground(t.Border).
		Background(t.Background).
		Render(strings.Repeat("─", max(0, width)))
	return row + "\n" + line
}

// TabIdxByKey returns the tab index for a given key press, or -1.
func TabIdxByKey(key rune) int {
	for i, tab := range Tabs {
		if tab.Key == key {
			return i
		}
	}
	return -1
}
