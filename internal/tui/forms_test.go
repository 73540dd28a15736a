package tui

import (
	"errors"
	"reflect"
	"testing"

	"github.com/theirongolddev/iexpense/internal/config"
	"github.com/theirongolddev/iexpense/internal/model"
	"github.com/theirongolddev/iexpense/internal/tui/theme"

	"github.com/shopspring/decimal"
)

func TestExpenseValues(t *testing.T) {
	tests := []struct {
		name    string
		vals    ExpenseValues
		wantErr error
		want    string
	}{
		{"valid", ExpenseValues{Name: " Coffee ", Type: "Personal", Amount: "$4.50"}, nil, "4.5"},
		{"empty name", ExpenseValues{Name: "", Type: "Personal", Amount: "1"}, model.ErrEmptyName, ""},
		{"negative", ExpenseValues{Name: "Refund", Amount: "-3"}, model.ErrNegativeAmount, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := tt.vals.Expense()
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Expense() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Expense() error = %v", err)
			}
			if e.Name != "Coffee" || e.Amount.String() != tt.want {
				t.Fatalf("Expense() = %+v, want Coffee at %s", e, tt.want)
			}
		})
	}

	if _, err := (ExpenseValues{Name: "x", Amount: "abc"}).Expense(); err == nil {
		t.Fatal("non-numeric amount should fail")
	}
}

func TestNewExpenseFormDefaultsType(t *testing.T) {
	vals := ExpenseValues{}
	if NewExpenseForm([]string{"Food", "Rent"}, &vals) == nil {
		t.Fatal("NewExpenseForm returned nil")
	}
	if vals.Type != "Food" {
		t.Fatalf("Type = %q, want the first category", vals.Type)
	}
}

func TestCategoryOptions(t *testing.T) {
	got := categoryOptions([]string{"Personal", "Business"}, "Travel")
	want := []string{"Personal", "Business", "Travel"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("categoryOptions = %v, want %v", got, want)
	}

	got = categoryOptions(nil, "")
	want = []string{model.TypePersonal, model.TypeBusiness}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("categoryOptions(nil) = %v, want %v", got, want)
	}
}

func TestSplitCategories(t *testing.T) {
	got := splitCategories(" Food, Rent,,Food , Travel ")
	want := []string{"Food", "Rent", "Travel"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("splitCategories = %v, want %v", got, want)
	}
}

func TestSetupValuesApply(t *testing.T) {
	defer theme.SetActive("flexoki-dark")

	cfg := config.DefaultConfig()
	vals := SetupValuesFrom(cfg, decimal.NewFromInt(250))
	if vals.Budget != "250" || vals.Categories != "Personal, Business" {
		t.Fatalf("SetupValuesFrom = %+v", vals)
	}

	vals.Currency = "€"
	vals.Categories = "Food, Rent"
	vals.Theme = "tokyo-night"
	vals.Budget = "300,5"

	budget, ok, err := vals.Apply(&cfg)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if !ok || !budget.Equal(decimal.RequireFromString("300.5")) {
		t.Fatalf("Apply budget = %s ok=%v, want 300.5 true", budget, ok)
	}
	if cfg.Display.CurrencySymbol != "€" {
		t.Fatalf("CurrencySymbol = %q", cfg.Display.CurrencySymbol)
	}
	if !reflect.DeepEqual(cfg.General.Categories, []string{"Food", "Rent"}) {
		t.Fatalf("Categories = %v", cfg.General.Categories)
	}
	if cfg.General.DefaultType != "Food" {
		t.Fatalf("DefaultType = %q, want Food since Personal was dropped", cfg.General.DefaultType)
	}
	if theme.Active.Name != "tokyo-night" {
		t.Fatalf("active theme = %q", theme.Active.Name)
	}
}

func TestSetupValuesApplyBlankBudget(t *testing.T) {
	cfg := config.DefaultConfig()
	_, ok, err := SetupValues{Theme: "flexoki-dark"}.Apply(&cfg)
	if err != nil || ok {
		t.Fatalf("Apply blank budget: ok=%v err=%v, want false nil", ok, err)
	}
	if cfg.Display.CurrencySymbol != "$" {
		t.Fatalf("blank currency should keep $, got %q", cfg.Display.CurrencySymbol)
	}
}

func TestValidateAmount(t *testing.T) {
	if err := validateAmount("12.5"); err != nil {
		t.Fatalf("validateAmount(12.5) = %v", err)
	}
	if err := validateAmount("-1"); !errors.Is(err, model.ErrNegativeAmount) {
		t.Fatalf("validateAmount(-1) = %v, want ErrNegativeAmount", err)
	}
	if err := validateAmount("ten"); err == nil {
		t.Fatal("validateAmount(ten) should fail")
	}
}
