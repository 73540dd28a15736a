package components

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/theirongolddev/iexpense/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Segment is one slice of a breakdown chart.
type Segment struct {
	Label string
	Value float64
	Color lipgloss.Color
}

// segmentWidths splits width across segments in proportion to their values.
// Every shown segment gets at least one cell and the widths sum to exactly
// width. When there are more non-zero segments than cells, only the largest
// width of them are shown.
func segmentWidths(segments []Segment, width int) []int {
	widths := make([]int, len(segments))
	if width <= 0 {
		return widths
	}

	shown := make([]int, 0, len(segments))
	for i, s := range segments {
		if s.Value > 0 {
			shown = append(shown, i)
		}
	}
	if len(shown) == 0 {
		return widths
	}
	slices.SortStableFunc(shown, func(a, b int) int {
		return cmp.Compare(segments[b].Value, segments[a].Value)
	})
	if len(shown) > width {
		shown = shown[:width]
	}

	var total float64
	for _, i := range shown {
		total += segments[i].Value
	}
	used := 0
	for _, i := range shown {
		widths[i] = max(1, int(segments[i].Value/total*float64(width)))
		used += widths[i]
	}
	// shown[0] is the largest segment.
	if used < width {
		widths[shown[0]] += width - used
	}
	for used > width {
		widest := shown[0]
		for _, i := range shown {
			if widths[i] > widths[widest] {
				widest = i
			}
		}
		widths[widest]--
		used--
	}
	return widths
}

// StackedBar renders segments as one proportional bar, the terminal stand-in
// for a pie chart.
func StackedBar(segments []Segment, width int) string {
	t := theme.Active
	widths := segmentWidths(segments, width)

	var b strings.Builder
	for i, s := range segments {
		if widths[i] == 0 {
			continue
		}
		style := lipgloss.NewStyle().Foreground(s.Color).Background(t.Surface)
		b.WriteString(style.Render(strings.Repeat("█", widths[i])))
	}
	return b.String()
}

// Legend renders one line per segment: a color swatch, the label padded to
// labelW, and the caller-formatted detail text.
func Legend(segments []Segment, details []string, labelW int) string {
	t := theme.Active
	labelStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	detailStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	lines := make([]string, 0, len(segments))
	for i, s := range segments {
		swatch := lipgloss.NewStyle().Foreground(s.Color).Background(t.Surface).Render("■")
		detail := ""
		if i < len(details) {
			detail = details[i]
		}
		lines = append(lines, swatch+
			spaceStyle.Render(" ")+
			labelStyle.Render(fmt.Sprintf("%-*s", labelW, truncate(s.Label, labelW)))+
			spaceStyle.Render("  ")+
			detailStyle.Render(detail))
	}
	return strings.Join(lines, "\n")
}

// HBar renders a single horizontal bar scaled against maxValue.
func HBar(value, maxValue float64, width int, color lipgloss.Color) string {
	t := theme.Active
	if maxValue <= 0 || width <= 0 {
		return ""
	}
	n := int(value / maxValue * float64(width))
	n = max(0, min(n, width))
	if n == 0 && value > 0 {
		n = 1
	}
	filled := lipgloss.NewStyle().Foreground(color).Background(t.Surface).Render(strings.Repeat("█", n))
	empty := lipgloss.NewStyle().Background(t.Surface).Render(strings.Repeat(" ", width-n))
	return filled + empty
}

func truncate(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}
