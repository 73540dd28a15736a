package tui

import (
	"errors"
	"strings"
	"testing"

	"github.com/theirongolddev/iexpense/internal/expenses"
	"github.com/theirongolddev/iexpense/internal/export"
	"github.com/theirongolddev/iexpense/internal/logging"
	"github.com/theirongolddev/iexpense/internal/model"
	"github.com/theirongolddev/iexpense/internal/tui/components"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
)

type memKV struct {
	data    map[string]string
	failSet bool
}

func newMemKV() *memKV { return &memKV{data: map[string]string{}} }

func (m *memKV) Get(key string) (string, bool, error) {
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memKV) Set(key, value string) error {
	if m.failSet {
		return errors.New("disk full")
	}
	m.data[key] = value
	return nil
}

func newTestApp(t *testing.T, kv expenses.KV, filter string, items ...[3]string) App {
	t.Helper()
	store := expenses.Load(kv, logging.Discard())
	for _, it := range items {
		e, err := model.NewExpense(it[0], it[1], decimal.RequireFromString(it[2]))
		if err != nil {
			t.Fatalf("NewExpense(%v): %v", it, err)
		}
		store.Add(e)
	}
	a := NewApp(store, Options{
		Currency:   "$",
		Categories: []string{"Personal", "Business"},
		TypeFilter: filter,
		Logger:     logging.Discard(),
	})
	a.width, a.height = 100, 40
	return a
}

func press(t *testing.T, a App, keys ...string) App {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case " ":
			msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		m, _ := a.Update(msg)
		a = m.(App)
	}
	return a
}

func names(records []model.Expense) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Name
	}
	return out
}

func TestTabAtXMatchesTabWidths(t *testing.T) {
	for active := range components.Tabs {
		a := App{activeTab: active}
		pos := 0
		for i, tab := range components.Tabs {
			w := components.TabVisualWidth(tab, i == active)
			if got := a.tabAtX(pos + w/2); got != i {
				t.Fatalf("active=%d x=%d -> tab=%d, want %d", active, pos+w/2, got, i)
			}
			pos += w + 1
		}
		if got := a.tabAtX(pos + 50); got != -1 {
			t.Fatalf("tabAtX past the last tab = %d, want -1", got)
		}
	}
}

func TestDeleteSelectedInFilteredView(t *testing.T) {
	a := newTestApp(t, newMemKV(), "Personal",
		[3]string{"Coffee", "Personal", "4.5"},
		[3]string{"Rent", "Business", "120"},
		[3]string{"Lunch", "Personal", "12"},
	)

	// Select the first Personal row, which moves the cursor to Lunch, then delete.
	a = press(t, a, " ", "d")

	got := strings.Join(names(a.store.Items()), ",")
	if got != "Rent,Lunch" {
		t.Fatalf("items after delete = %s, want Rent,Lunch", got)
	}
	if len(a.list.selected) != 0 {
		t.Fatalf("selection not cleared: %v", a.list.selected)
	}
}

func TestDeleteCursorRowWithoutSelection(t *testing.T) {
	a := newTestApp(t, newMemKV(), "",
		[3]string{"Coffee", "Personal", "4.5"},
		[3]string{"Rent", "Business", "120"},
	)

	a = press(t, a, "j", "d")

	got := strings.Join(names(a.store.Items()), ",")
	if got != "Coffee" {
		t.Fatalf("items after delete = %s, want Coffee", got)
	}
	if a.list.cursor != 0 {
		t.Fatalf("cursor = %d, want 0 after deleting the last row", a.list.cursor)
	}
}

func TestEscClearsSelection(t *testing.T) {
	a := newTestApp(t, newMemKV(), "",
		[3]string{"Coffee", "Personal", "4.5"},
		[3]string{"Rent", "Business", "120"},
	)
	a = press(t, a, " ", " ")
	if len(a.list.selected) != 2 {
		t.Fatalf("selected = %d, want 2", len(a.list.selected))
	}
	a = press(t, a, "esc")
	if len(a.list.selected) != 0 {
		t.Fatalf("selected after esc = %d, want 0", len(a.list.selected))
	}
}

func TestCycleFilter(t *testing.T) {
	a := newTestApp(t, newMemKV(), "",
		[3]string{"Coffee", "Personal", "4.5"},
		[3]string{"Flight", "Travel", "300"},
	)

	want := []string{"Personal", "Business", "Travel", ""}
	for _, w := range want {
		a = press(t, a, "f")
		if a.list.typeFilter != w {
			t.Fatalf("filter = %q, want %q", a.list.typeFilter, w)
		}
	}
}

func TestSubmitAddForm(t *testing.T) {
	a := newTestApp(t, newMemKV(), "")
	a.exported = true

	a.formKind = formAdd
	a.addVals = ExpenseValues{Name: "Coffee", Type: "Personal", Amount: "4,50"}
	a.submitForm()

	items := a.store.Items()
	if len(items) != 1 || items[0].Name != "Coffee" || !items[0].Amount.Equal(decimal.RequireFromString("4.5")) {
		t.Fatalf("items = %+v, want one Coffee at 4.5", items)
	}
	if a.exported {
		t.Fatal("export indicator should reset after a change")
	}
	if a.flashBad {
		t.Fatalf("flash = %q, want success", a.flash)
	}
}

func TestSubmitAddFormInvalid(t *testing.T) {
	a := newTestApp(t, newMemKV(), "")
	a.formKind = formAdd
	a.addVals = ExpenseValues{Name: "  ", Amount: "3"}
	a.submitForm()

	if a.store.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", a.store.Len())
	}
	if !a.flashBad {
		t.Fatal("invalid expense should flash an error")
	}
}

func TestSubmitBudgetForm(t *testing.T) {
	a := newTestApp(t, newMemKV(), "")
	a.formKind = formBudget
	a.budgetVals = BudgetValues{Amount: "100"}
	a.submitForm()

	if !a.store.Budget().Equal(decimal.NewFromInt(100)) {
		t.Fatalf("Budget() = %s, want 100", a.store.Budget())
	}
}

func TestExportDoneSetsIndicator(t *testing.T) {
	a := newTestApp(t, newMemKV(), "")
	a.exporting = true

	m, _ := a.Update(ExportDoneMsg{Format: export.FormatCSV, Path: "Expenses.csv"})
	a = m.(App)
	if !a.exported || a.exporting {
		t.Fatalf("exported=%v exporting=%v, want true false", a.exported, a.exporting)
	}
	if !strings.Contains(a.renderFilterRow(a.width), "Exported") {
		t.Fatal("filter row should show the export indicator")
	}

	m, _ = a.Update(ExportDoneMsg{Format: export.FormatCSV, Path: "x.csv", Err: errors.New("denied")})
	a = m.(App)
	if !a.flashBad {
		t.Fatal("failed export should flash an error")
	}
}

func TestStatusShowsPersistFailure(t *testing.T) {
	kv := newMemKV()
	a := newTestApp(t, kv, "")
	kv.failSet = true

	a.formKind = formAdd
	a.addVals = ExpenseValues{Name: "Coffee", Amount: "4.5"}
	a.submitForm()

	st := a.status()
	if !st.Bad || !strings.Contains(st.Text, "Not saved") {
		t.Fatalf("status = %+v, want a save failure", st)
	}
}

func TestChartTabEmpty(t *testing.T) {
	a := newTestApp(t, newMemKV(), "")
	if got := a.renderChartTab(80); !strings.Contains(got, "No expenses to display") {
		t.Fatalf("empty chart tab = %q", got)
	}
}

func TestLegendDetail(t *testing.T) {
	g := model.CategoryTotal{Type: "Business", Total: decimal.RequireFromString("120"), Count: 1}
	got := legendDetail(g, decimal.RequireFromString("124.5"), "$")
	if got != "120.00$  96%" {
		t.Fatalf("legendDetail = %q, want %q", got, "120.00$  96%")
	}
}

func TestViewRendersEveryTab(t *testing.T) {
	a := newTestApp(t, newMemKV(), "",
		[3]string{"Coffee", "Personal", "4.5"},
		[3]string{"Rent", "Business", "120"},
	)
	a.store.SetBudget(decimal.NewFromInt(100))

	for _, key := range []string{"e", "c", "b"} {
		a = press(t, a, key)
		if v := a.View(); v == "" {
			t.Fatalf("tab %s rendered empty", key)
		}
	}
	if a.activeTab != tabBudget {
		t.Fatalf("activeTab = %d, want %d", a.activeTab, tabBudget)
	}
}

func TestViewTooNarrow(t *testing.T) {
	a := newTestApp(t, newMemKV(), "")
	a.width = 40
	if got := a.View(); !strings.Contains(got, "too narrow") {
		t.Fatalf("View() = %q, want the narrow-terminal message", got)
	}
}
