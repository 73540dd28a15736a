package model

import "github.com/shopspring/decimal"

// CategoryTotal holds the aggregated amount for one expense type.
type CategoryTotal struct {
	Type  string
	Total decimal.Decimal
	Count int
}

// BudgetStats holds the derived budget figures shown in summaries.
type BudgetStats struct {
	TotalBudget       decimal.Decimal
	Spent             decimal.Decimal
	Remaining         decimal.Decimal
	OverBudget        bool
	BudgetUsedPercent float64 // 0 when TotalBudget is zero
	HasBudget         bool
}
