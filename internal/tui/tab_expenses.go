package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/iexpense/internal/cli"
	"github.com/theirongolddev/iexpense/internal/model"
	"github.com/theirongolddev/iexpense/internal/pipeline"
	"github.com/theirongolddev/iexpense/internal/tui/components"
	"github.com/theirongolddev/iexpense/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
)

// listState tracks the expense list: cursor, scroll offset, the active type
// filter, and the multi-selection (by ID, so it survives filtering).
type listState struct {
	cursor     int
	offset     int
	typeFilter string
	selected   map[uuid.UUID]bool
}

func (l *listState) clamp(n int) {
	l.cursor = max(0, min(l.cursor, n-1))
	l.offset = max(0, min(l.offset, l.cursor))
}

// listOverhead is the number of content lines around the list rows: metric
// cards, the card border and title, and the column header.
const listOverhead = 9

// chromeHeight is the tab bar, its rule, the filter row, and the status bar.
const chromeHeight = 4

func (a App) listRows() int {
	return max(a.height-chromeHeight-listOverhead, 3)
}

// scrollToCursor keeps the cursor inside the visible window of rows.
func (a *App) scrollToCursor() {
	rows := a.listRows()
	if a.list.cursor < a.list.offset {
		a.list.offset = a.list.cursor
	}
	if a.list.cursor >= a.list.offset+rows {
		a.list.offset = a.list.cursor - rows + 1
	}
}

func (a *App) moveCursor(delta int) {
	a.list.cursor += delta
	a.list.clamp(len(a.visible()))
}

// updateExpensesKey handles keys specific to the expenses tab. handled is
// false for keys that fall through to the global bindings.
func (a App) updateExpensesKey(key string) (m tea.Model, cmd tea.Cmd, handled bool) {
	rows := a.visible()

	switch key {
	case "j", "down":
		a.moveCursor(1)
	case "k", "up":
		a.moveCursor(-1)
	case "g", "home":
		a.list.cursor = 0
		a.list.offset = 0
	case "G", "end":
		a.list.cursor = len(rows) - 1
		a.list.clamp(len(rows))
	case " ":
		if len(rows) == 0 {
			return a, nil, true
		}
		id := rows[a.list.cursor].ID
		if a.list.selected[id] {
			delete(a.list.selected, id)
		} else {
			a.list.selected[id] = true
		}
		a.moveCursor(1)
	case "esc":
		clear(a.list.selected)
	case "d", "delete":
		a.deleteSelected(rows)
	default:
		return a, nil, false
	}

	a.scrollToCursor()
	return a, nil, true
}

// deleteSelected removes the selected rows, or the row under the cursor when
// nothing is selected. Rows are addressed by their offset in the filtered
// view, the same way a swipe or multi-select delete addresses them.
func (a *App) deleteSelected(rows []model.Expense) {
	if len(rows) == 0 {
		return
	}

	var offsets []int
	if len(a.list.selected) > 0 {
		for i, e := range rows {
			if a.list.selected[e.ID] {
				offsets = append(offsets, i)
			}
		}
	} else {
		offsets = []int{a.list.cursor}
	}

	n := a.store.RemoveAt(a.list.typeFilter, offsets...)
	clear(a.list.selected)
	a.afterMutation()
	if n == 1 {
		a.setFlash("Deleted 1 expense", false)
	} else {
		a.setFlash(fmt.Sprintf("Deleted %d expenses", n), false)
	}
}

func (a App) renderExpensesTab(cw, contentH int) string {
	t := theme.Active
	state := a.store.State()
	stats := pipeline.Budget(state)
	rows := a.visible()

	var b strings.Builder
	b.WriteString(components.MetricCardRow([]components.Metric{
		{Label: "Spent", Value: cli.FormatMoney(stats.Spent, a.opts.Currency),
			Note: fmt.Sprintf("%d expenses", len(state.Records))},
		{Label: "Budget", Value: cli.FormatMoney(stats.TotalBudget, a.opts.Currency),
			Note: budgetNote(stats.HasBudget)},
		{Label: "Remaining", Value: cli.FormatMoney(stats.Remaining, a.opts.Currency),
			Note: remainingNote(stats.OverBudget), Alert: stats.OverBudget},
		{Label: "Shown", Value: cli.FormatMoney(pipeline.GrandTotal(rows), a.opts.Currency),
			Note: filterNote(a.list.typeFilter)},
	}, cw))
	b.WriteString("\n")

	title := "Expenses"
	if a.list.typeFilter != "" {
		title = "Expenses · " + a.list.typeFilter
	}

	if len(rows) == 0 {
		empty := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
		msg := "No expenses yet. Press a to add one."
		if a.list.typeFilter != "" {
			msg = "No " + a.list.typeFilter + " expenses. Press f to change the filter."
		}
		b.WriteString(components.ContentCard(title, empty.Render(msg), cw))
		return b.String()
	}

	b.WriteString(components.ContentCard(title, a.renderExpenseRows(rows, components.CardInnerWidth(cw), contentH), cw))
	return b.String()
}

func (a App) renderExpenseRows(rows []model.Expense, w, contentH int) string {
	t := theme.Active

	headerStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	cursorStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.SurfaceHover).Bold(true)

	amountW := 14
	typeW := 12
	markW := 4 // "▸ ✓ " or spaces
	nameW := max(w-markW-typeW-amountW-2, 8)

	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("%*s%-*s %-*s %*s",
		markW, "", nameW, "Name", typeW, "Type", amountW, "Amount")))

	visibleRows := max(contentH-listOverhead, 3)
	end := min(a.list.offset+visibleRows, len(rows))
	for i := a.list.offset; i < end; i++ {
		e := rows[i]
		mark := "  "
		if i == a.list.cursor {
			mark = "▸ "
		}
		check := "  "
		if a.list.selected[e.ID] {
			check = "✓ "
		}

		line := fmt.Sprintf("%s%s%-*s %-*s %*s",
			mark, check,
			nameW, truncStr(e.Name, nameW),
			typeW, truncStr(e.Type, typeW),
			amountW, cli.FormatMoney(e.Amount, a.opts.Currency))

		b.WriteString("\n")
		if i == a.list.cursor {
			b.WriteString(cursorStyle.Width(w).Render(line))
		} else {
			b.WriteString(rowStyle.Render(line))
		}
	}

	if len(rows) > visibleRows {
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render(fmt.Sprintf("%d-%d of %d", a.list.offset+1, end, len(rows))))
	}
	return b.String()
}

func budgetNote(hasBudget bool) string {
	if !hasBudget {
		return "press s to set"
	}
	return ""
}

func remainingNote(over bool) string {
	if over {
		return "over budget"
	}
	return ""
}

func filterNote(filter string) string {
	if filter == "" {
		return "all types"
	}
	return filter
}

func truncStr(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}
