// Package pipeline derives budget figures and category breakdowns from
// expense records. Nothing here holds state.
package pipeline

import (
	"sort"

	"github.com/theirongolddev/iexpense/internal/model"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// GrandTotal returns the sum of all record amounts.
func GrandTotal(records []model.Expense) decimal.Decimal {
	total := decimal.Zero
	for _, r := range records {
		total = total.Add(r.Amount)
	}
	return total
}

// Remaining returns the total budget minus everything spent. A negative
// result is valid and means the budget is exceeded.
func Remaining(state model.BudgetState) decimal.Decimal {
	return state.TotalBudget.Sub(GrandTotal(state.Records))
}

// ByCategory groups records by type and sums the amount per group.
// Groups are returned by total descending, ties broken by name.
func ByCategory(records []model.Expense) []model.CategoryTotal {
	groups := make(map[string]*model.CategoryTotal)

	for _, r := range records {
		ct, ok := groups[r.Type]
		if !ok {
			ct = &model.CategoryTotal{Type: r.Type, Total: decimal.Zero}
			groups[r.Type] = ct
		}
		ct.Total = ct.Total.Add(r.Amount)
		ct.Count++
	}

	totals := make([]model.CategoryTotal, 0, len(groups))
	for _, ct := range groups {
		totals = append(totals, *ct)
	}
	sort.Slice(totals, func(i, j int) bool {
		if c := totals[i].Total.Cmp(totals[j].Total); c != 0 {
			return c > 0
		}
		return totals[i].Type < totals[j].Type
	})

	return totals
}

// PercentOfTotal returns groupTotal as a percentage of totalBudget.
// ok is false when totalBudget is zero and the ratio is undefined.
func PercentOfTotal(groupTotal, totalBudget decimal.Decimal) (pct float64, ok bool) {
	return percent(groupTotal, totalBudget)
}

// ShareOfSpend returns groupTotal as a percentage of all spending.
// ok is false when nothing has been spent.
func ShareOfSpend(groupTotal, grandTotal decimal.Decimal) (pct float64, ok bool) {
	return percent(groupTotal, grandTotal)
}

func percent(part, whole decimal.Decimal) (float64, bool) {
	if whole.IsZero() {
		return 0, false
	}
	return part.Div(whole).Mul(hundred).InexactFloat64(), true
}

// Budget computes the derived budget figures for state.
func Budget(state model.BudgetState) model.BudgetStats {
	spent := GrandTotal(state.Records)
	remaining := state.TotalBudget.Sub(spent)
	stats := model.BudgetStats{
		TotalBudget: state.TotalBudget,
		Spent:       spent,
		Remaining:   remaining,
		OverBudget:  remaining.IsNegative(),
		HasBudget:   !state.TotalBudget.IsZero(),
	}
	stats.BudgetUsedPercent, _ = PercentOfTotal(spent, state.TotalBudget)
	return stats
}

// FilterByType returns records whose type equals typeFilter, preserving
// order. An empty filter returns records unchanged.
func FilterByType(records []model.Expense, typeFilter string) []model.Expense {
	if typeFilter == "" {
		return records
	}
	var out []model.Expense
	for _, r := range records {
		if r.Type == typeFilter {
			out = append(out, r)
		}
	}
	return out
}

// Types returns the distinct record types in first-seen order.
func Types(records []model.Expense) []string {
	seen := make(map[string]struct{})
	var types []string
	for _, r := range records {
		if _, ok := seen[r.Type]; ok {
			continue
		}
		seen[r.Type] = struct{}{}
		types = append(types, r.Type)
	}
	return types
}
