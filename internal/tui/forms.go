package tui

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/theirongolddev/iexpense/internal/config"
	"github.com/theirongolddev/iexpense/internal/model"
	"github.com/theirongolddev/iexpense/internal/tui/theme"

	"github.com/charmbracelet/huh"
	"github.com/shopspring/decimal"
)

// ExpenseValues holds the raw strings behind the add-expense form.
type ExpenseValues struct {
	Name   string
	Type   string
	Amount string
}

// Expense validates the values and builds a new record.
func (v ExpenseValues) Expense() (model.Expense, error) {
	amount, err := model.ParseAmount(v.Amount)
	if err != nil {
		return model.Expense{}, fmt.Errorf("amount %q: %w", v.Amount, err)
	}
	return model.NewExpense(v.Name, v.Type, amount)
}

// NewExpenseForm builds the add-expense form. The type select offers the
// configured categories plus the current value if it is not among them.
func NewExpenseForm(categories []string, vals *ExpenseValues) *huh.Form {
	opts := categoryOptions(categories, vals.Type)
	if vals.Type == "" && len(opts) > 0 {
		vals.Type = opts[0]
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Placeholder("Coffee").
				Value(&vals.Name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return model.ErrEmptyName
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("Type").
				Options(huh.NewOptions(opts...)...).
				Value(&vals.Type),
			huh.NewInput().
				Title("Amount").
				Placeholder("4.50").
				Value(&vals.Amount).
				Validate(validateAmount),
		).Title("Add new expense"),
	).WithTheme(huh.ThemeCharm())
}

// BudgetValues holds the raw string behind the budget form.
type BudgetValues struct {
	Amount string
}

// NewBudgetForm builds the single-field budget form.
func NewBudgetForm(vals *BudgetValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Total budget").
				Description("Expenses are compared against this amount.").
				Placeholder("500").
				Value(&vals.Amount).
				Validate(validateAmount),
		),
	).WithTheme(huh.ThemeCharm())
}

// Budget parses the entered amount.
func (v BudgetValues) Budget() (decimal.Decimal, error) {
	return model.ParseAmount(v.Amount)
}

// SetupValues holds the answers of the first-run wizard.
type SetupValues struct {
	Currency   string
	Categories string // comma-separated
	Theme      string
	Budget     string
}

// SetupValuesFrom pre-fills the wizard from the current config and budget.
func SetupValuesFrom(cfg config.Config, budget decimal.Decimal) SetupValues {
	vals := SetupValues{
		Currency:   cfg.Display.CurrencySymbol,
		Categories: strings.Join(cfg.General.Categories, ", "),
		Theme:      cfg.Appearance.Theme,
	}
	if !budget.IsZero() {
		vals.Budget = budget.String()
	}
	return vals
}

// NewSetupForm builds the first-run wizard.
func NewSetupForm(vals *SetupValues) *huh.Form {
	themeOpts := make([]huh.Option[string], 0, len(theme.All))
	for _, t := range theme.All {
		themeOpts = append(themeOpts, huh.NewOption(t.Name, t.Name))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to iexpense").
				Description("Track what you spend against a budget.\nA few questions and you're set."),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Currency symbol").
				Placeholder("$").
				Value(&vals.Currency),
			huh.NewInput().
				Title("Expense types").
				Description("Comma-separated, offered when adding expenses.").
				Placeholder("Personal, Business").
				Value(&vals.Categories),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themeOpts...).
				Value(&vals.Theme),
			huh.NewInput().
				Title("Total budget").
				Description("Leave blank to keep the current budget.").
				Placeholder("500").
				Value(&vals.Budget).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return nil
					}
					return validateAmount(s)
				}),
		),
	).WithTheme(huh.ThemeCharm())
}

// Apply writes the answers into cfg and returns the budget to store.
// ok is false when the budget answer was left blank.
func (v SetupValues) Apply(cfg *config.Config) (budget decimal.Decimal, ok bool, err error) {
	if c := strings.TrimSpace(v.Currency); c != "" {
		cfg.Display.CurrencySymbol = c
	}
	if cats := splitCategories(v.Categories); len(cats) > 0 {
		cfg.General.Categories = cats
		if !slices.Contains(cats, cfg.General.DefaultType) {
			cfg.General.DefaultType = cats[0]
		}
	}
	if v.Theme != "" {
		cfg.Appearance.Theme = v.Theme
		theme.SetActive(v.Theme)
	}

	if strings.TrimSpace(v.Budget) == "" {
		return decimal.Zero, false, nil
	}
	budget, err = model.ParseAmount(v.Budget)
	if err != nil {
		return decimal.Zero, false, fmt.Errorf("budget %q: %w", v.Budget, err)
	}
	return budget, true, nil
}

func splitCategories(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" && !slices.Contains(out, part) {
			out = append(out, part)
		}
	}
	return out
}

func categoryOptions(categories []string, current string) []string {
	opts := slices.Clone(categories)
	if len(opts) == 0 {
		opts = []string{model.TypePersonal, model.TypeBusiness}
	}
	if current != "" && !slices.Contains(opts, current) {
		opts = append(opts, current)
	}
	return opts
}

func validateAmount(s string) error {
	if _, err := model.ParseAmount(s); err != nil {
		if errors.Is(err, model.ErrNegativeAmount) {
			return err
		}
		return errors.New("enter a number, e.g. 4.50")
	}
	return nil
}
