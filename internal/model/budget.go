package model

import "github.com/shopspring/decimal"

// BudgetState is the total budget together with the ordered expense records.
type BudgetState struct {
	TotalBudget decimal.Decimal
	Records     []Expense
}

// Spent returns the sum of all record amounts.
func (s BudgetState) Spent() decimal.Decimal {
	total := decimal.Zero
	for _, r := range s.Records {
		total = total.Add(r.Amount)
	}
	return total
}

// Remaining returns TotalBudget minus the amount spent. It may be negative.
func (s BudgetState) Remaining() decimal.Decimal {
	return s.TotalBudget.Sub(s.Spent())
}

// OverBudget reports whether spending exceeds the total budget.
func (s BudgetState) OverBudget() bool {
	return s.Remaining().IsNegative()
}
