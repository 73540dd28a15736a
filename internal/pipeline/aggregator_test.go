package pipeline

import (
	"math"
	"testing"

	"github.com/theirongolddev/iexpense/internal/model"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func mustExpense(t *testing.T, name, typ, amount string) model.Expense {
	t.Helper()
	e, err := model.NewExpense(name, typ, dec(amount))
	if err != nil {
		t.Fatalf("NewExpense(%q): %v", name, err)
	}
	return e
}

func TestRemaining_Example(t *testing.T) {
	state := model.BudgetState{TotalBudget: dec("100")}

	state.Records = append(state.Records, mustExpense(t, "Coffee", model.TypePersonal, "4.5"))
	if got := Remaining(state); !got.Equal(dec("95.5")) {
		t.Fatalf("Remaining = %s, want 95.5", got)
	}

	state.Records = append(state.Records, mustExpense(t, "Rent", model.TypeBusiness, "120"))
	if got := Remaining(state); !got.Equal(dec("-24.5")) {
		t.Fatalf("Remaining = %s, want -24.5", got)
	}

	stats := Budget(state)
	if !stats.OverBudget {
		t.Fatal("OverBudget = false, want true")
	}
	if math.Abs(stats.BudgetUsedPercent-124.5) > 1e-9 {
		t.Fatalf("BudgetUsedPercent = %.4f, want 124.5", stats.BudgetUsedPercent)
	}
}

func TestRemaining_DecreasesByAddedAmount(t *testing.T) {
	state := model.BudgetState{TotalBudget: dec("250")}
	amounts := []string{"0", "0.01", "19.99", "100", "333.33"}

	for _, a := range amounts {
		before := Remaining(state)
		r := mustExpense(t, "item", model.TypePersonal, a)
		state.Records = append(state.Records, r)
		after := Remaining(state)
		if want := before.Sub(r.Amount); !after.Equal(want) {
			t.Fatalf("after adding %s: Remaining = %s, want %s", a, after, want)
		}
	}
}

func TestByCategory_SumsToGrandTotal(t *testing.T) {
	records := []model.Expense{
		mustExpense(t, "Coffee", model.TypePersonal, "4.5"),
		mustExpense(t, "Rent", model.TypeBusiness, "120"),
		mustExpense(t, "Lunch", model.TypePersonal, "12.25"),
		mustExpense(t, "Taxi", "Travel", "30"),
	}

	groups := ByCategory(records)
	if len(groups) != 3 {
		t.Fatalf("groups = %d, want 3", len(groups))
	}

	sum := decimal.Zero
	count := 0
	for _, g := range groups {
		sum = sum.Add(g.Total)
		count += g.Count
	}
	if !sum.Equal(GrandTotal(records)) {
		t.Fatalf("sum of groups = %s, want %s", sum, GrandTotal(records))
	}
	if count != len(records) {
		t.Fatalf("sum of counts = %d, want %d", count, len(records))
	}

	if groups[0].Type != model.TypeBusiness || !groups[0].Total.Equal(dec("120")) {
		t.Errorf("groups[0] = %s %s, want Business 120", groups[0].Type, groups[0].Total)
	}
	if groups[1].Type != "Travel" {
		t.Errorf("groups[1].Type = %s, want Travel", groups[1].Type)
	}
	if groups[2].Type != model.TypePersonal || !groups[2].Total.Equal(dec("16.75")) || groups[2].Count != 2 {
		t.Errorf("groups[2] = %+v, want Personal 16.75 x2", groups[2])
	}
}

func TestByCategory_Empty(t *testing.T) {
	if got := ByCategory(nil); len(got) != 0 {
		t.Fatalf("ByCategory(nil) = %v, want empty", got)
	}
}

func TestPercentOfTotal(t *testing.T) {
	pct, ok := PercentOfTotal(dec("25"), dec("200"))
	if !ok || math.Abs(pct-12.5) > 1e-9 {
		t.Fatalf("PercentOfTotal(25, 200) = %.4f, %v; want 12.5, true", pct, ok)
	}

	pct, ok = PercentOfTotal(dec("25"), decimal.Zero)
	if ok || pct != 0 {
		t.Fatalf("PercentOfTotal(25, 0) = %.4f, %v; want 0, false", pct, ok)
	}

	if _, ok := ShareOfSpend(decimal.Zero, decimal.Zero); ok {
		t.Fatal("ShareOfSpend(0, 0) ok = true, want false")
	}
}

func TestFilterByTypeAndTypes(t *testing.T) {
	records := []model.Expense{
		mustExpense(t, "a", model.TypePersonal, "1"),
		mustExpense(t, "b", model.TypeBusiness, "2"),
		mustExpense(t, "c", model.TypePersonal, "3"),
	}

	personal := FilterByType(records, model.TypePersonal)
	if len(personal) != 2 || personal[0].Name != "a" || personal[1].Name != "c" {
		t.Fatalf("FilterByType(Personal) = %v", personal)
	}
	if got := FilterByType(records, ""); len(got) != 3 {
		t.Fatalf("FilterByType(\"\") len = %d, want 3", len(got))
	}
	if got := FilterByType(records, "personal"); len(got) != 0 {
		t.Fatalf("FilterByType is case-insensitive, got %d matches", len(got))
	}

	types := Types(records)
	if len(types) != 2 || types[0] != model.TypePersonal || types[1] != model.TypeBusiness {
		t.Fatalf("Types = %v, want [Personal Business]", types)
	}
}
