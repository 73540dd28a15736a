package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/iexpense/internal/cli"
	"github.com/theirongolddev/iexpense/internal/model"
	"github.com/theirongolddev/iexpense/internal/pipeline"
	"github.com/theirongolddev/iexpense/internal/tui/components"
	"github.com/theirongolddev/iexpense/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

// categorySegments turns category totals into chart segments, cycling
// through the theme's segment colors.
func categorySegments(groups []model.CategoryTotal) []components.Segment {
	colors := theme.Active.Segments()
	segments := make([]components.Segment, len(groups))
	for i, g := range groups {
		segments[i] = components.Segment{
			Label: g.Type,
			Value: g.Total.InexactFloat64(),
			Color: colors[i%len(colors)],
		}
	}
	return segments
}

// legendDetail formats a legend entry: the total with two decimals followed
// by the currency symbol, and its whole-number share of all spending.
func legendDetail(g model.CategoryTotal, grand decimal.Decimal, currency string) string {
	share, ok := pipeline.ShareOfSpend(g.Total, grand)
	return cli.FormatAmount(g.Total, currency) + "  " + cli.FormatShare(share, ok)
}

func (a App) renderChartTab(cw int) string {
	t := theme.Active
	records := a.store.Items()
	groups := pipeline.ByCategory(records)

	if len(groups) == 0 {
		muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
		return components.ContentCard("Spending by Type", muted.Render("No expenses to display"), cw)
	}

	inner := components.CardInnerWidth(cw)
	grand := pipeline.GrandTotal(records)
	segments := categorySegments(groups)

	labelW := 8
	for _, g := range groups {
		labelW = max(labelW, len([]rune(g.Type)))
	}
	labelW = min(labelW, 20)

	details := make([]string, len(groups))
	for i, g := range groups {
		details[i] = legendDetail(g, grand, a.opts.Currency)
	}

	var body strings.Builder
	body.WriteString(components.StackedBar(segments, inner))
	body.WriteString("\n\n")
	body.WriteString(components.Legend(segments, details, labelW))

	totalStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface).Bold(true)
	body.WriteString("\n\n")
	body.WriteString(totalStyle.Render("Total " + cli.FormatMoney(grand, a.opts.Currency)))

	var b strings.Builder
	b.WriteString(components.ContentCard("Spending by Type", body.String(), cw))
	b.WriteString("\n")
	b.WriteString(components.ContentCard("Per Type", a.renderTypeBars(groups, segments, inner), cw))
	return b.String()
}

// renderTypeBars lists each type with a bar scaled to the largest type,
// its count, and its share of the budget.
func (a App) renderTypeBars(groups []model.CategoryTotal, segments []components.Segment, w int) string {
	t := theme.Active
	labelStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	const labelW, countW, pctW = 12, 8, 14
	barW := max(w-labelW-countW-pctW-3, 5)
	budget := a.store.Budget()
	maxVal := segments[0].Value

	lines := make([]string, 0, len(groups))
	for i, g := range groups {
		pct, ok := pipeline.PercentOfTotal(g.Total, budget)
		lines = append(lines,
			labelStyle.Render(fmt.Sprintf("%-*s", labelW, truncStr(g.Type, labelW)))+
				spaceStyle.Render(" ")+
				components.HBar(segments[i].Value, maxVal, barW, segments[i].Color)+
				spaceStyle.Render(" ")+
				mutedStyle.Render(fmt.Sprintf("%*s", countW, fmt.Sprintf("%d items", g.Count)))+
				spaceStyle.Render(" ")+
				mutedStyle.Render(fmt.Sprintf("%*s", pctW, cli.FormatPercent(pct, ok)+" of bgt")))
	}
	return strings.Join(lines, "\n")
}
