package tui

import (
	"strings"

	"github.com/theirongolddev/iexpense/internal/cli"
	"github.com/theirongolddev/iexpense/internal/pipeline"
	"github.com/theirongolddev/iexpense/internal/tui/components"
	"github.com/theirongolddev/iexpense/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderBudgetTab(cw int) string {
	t := theme.Active
	state := a.store.State()
	stats := pipeline.Budget(state)

	var b strings.Builder
	b.WriteString(components.MetricCardRow([]components.Metric{
		{Label: "Budget", Value: cli.FormatMoney(stats.TotalBudget, a.opts.Currency), Note: budgetNote(stats.HasBudget)},
		{Label: "Spent", Value: cli.FormatMoney(stats.Spent, a.opts.Currency)},
		{Label: "Remaining", Value: cli.FormatRemaining(stats.Remaining, a.opts.Currency), Alert: stats.OverBudget},
	}, cw))
	b.WriteString("\n")

	inner := components.CardInnerWidth(cw)
	muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	if !stats.HasBudget {
		b.WriteString(components.ContentCard("Utilization",
			muted.Render("No budget set. Press s to set one."), cw))
		return b.String()
	}

	const labelW = 12
	barW := max(inner-labelW-7, 10)

	var body strings.Builder
	body.WriteString(components.BudgetBar("Total", stats.BudgetUsedPercent/100, labelW, barW))

	for _, g := range pipeline.ByCategory(state.Records) {
		pct, ok := pipeline.PercentOfTotal(g.Total, stats.TotalBudget)
		if !ok {
			continue
		}
		body.WriteString("\n")
		body.WriteString(components.BudgetBar(truncStr(g.Type, labelW), pct/100, labelW, barW))
	}

	if stats.OverBudget {
		over := lipgloss.NewStyle().Foreground(t.Red).Background(t.Surface).Bold(true)
		body.WriteString("\n\n")
		body.WriteString(over.Render("Over budget by " + cli.FormatMoney(stats.Remaining.Neg(), a.opts.Currency)))
	}

	b.WriteString(components.ContentCard("Utilization", body.String(), cw))
	return b.String()
}
