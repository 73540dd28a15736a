package cmd

import (
	"strings"
	"testing"

	"github.com/theirongolddev/iexpense/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func fixedExpense(id, name string) model.Expense {
	return model.Expense{ID: uuid.MustParse(id), Name: name, Type: model.TypePersonal, Amount: decimal.NewFromInt(1)}
}

func TestResolveIDs(t *testing.T) {
	items := []model.Expense{
		fixedExpense("aaaa1111-0000-4000-8000-000000000001", "Coffee"),
		fixedExpense("aaaa2222-0000-4000-8000-000000000002", "Rent"),
		fixedExpense("bbbb3333-0000-4000-8000-000000000003", "Lunch"),
	}

	ids, err := resolveIDs(items, []string{"BBBB", "aaaa2", items[0].ID.String()})
	if err != nil {
		t.Fatalf("resolveIDs: %v", err)
	}
	want := []uuid.UUID{items[2].ID, items[1].ID, items[0].ID}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("ids[%d] = %s, want %s", i, ids[i], want[i])
		}
	}
}

func TestResolveIDsErrors(t *testing.T) {
	items := []model.Expense{
		fixedExpense("aaaa1111-0000-4000-8000-000000000001", "Coffee"),
		fixedExpense("aaaa2222-0000-4000-8000-000000000002", "Rent"),
	}

	tests := []struct {
		ref  string
		want string
	}{
		{"aaaa", "ambiguous"},
		{"cccc", "no expense"},
	}
	for _, tt := range tests {
		_, err := resolveIDs(items, []string{tt.ref})
		if err == nil || !strings.Contains(err.Error(), tt.want) {
			t.Errorf("resolveIDs(%q) error = %v, want %q", tt.ref, err, tt.want)
		}
	}
}
