package export

import (
	"fmt"

	"github.com/theirongolddev/iexpense/internal/model"
	"github.com/theirongolddev/iexpense/internal/pipeline"

	"github.com/xuri/excelize/v2"
)

const (
	expensesSheet = "Expenses"
	summarySheet  = "Summary"
)

// WriteXLSX writes a workbook with an Expenses sheet listing every record
// and a Summary sheet with per-type totals and the budget figures.
func WriteXLSX(path string, state model.BudgetState, opts Options) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", expensesSheet); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}
	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("creating summary sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#24837B"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}
	moneyStyle, err := f.NewStyle(&excelize.Style{NumFmt: 2})
	if err != nil {
		return fmt.Errorf("creating money style: %w", err)
	}

	if err := writeExpensesSheet(f, state.Records, headerStyle, moneyStyle); err != nil {
		return err
	}
	if err := writeSummarySheet(f, state, opts, headerStyle, moneyStyle); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving xlsx: %w", err)
	}
	return nil
}

func writeExpensesSheet(f *excelize.File, records []model.Expense, headerStyle, moneyStyle int) error {
	for i, h := range []string{"Name", "Type", "Amount"} {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(expensesSheet, cell, h); err != nil {
			return err
		}
	}
	if err := f.SetCellStyle(expensesSheet, "A1", "C1", headerStyle); err != nil {
		return err
	}

	for i, r := range records {
		row := i + 2
		values := []any{r.Name, r.Type, r.Amount.InexactFloat64()}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := f.SetCellValue(expensesSheet, cell, v); err != nil {
				return err
			}
		}
	}
	if len(records) > 0 {
		last := fmt.Sprintf("C%d", len(records)+1)
		if err := f.SetCellStyle(expensesSheet, "C2", last, moneyStyle); err != nil {
			return err
		}
	}

	if err := f.SetColWidth(expensesSheet, "A", "A", 32); err != nil {
		return err
	}
	return f.SetColWidth(expensesSheet, "B", "C", 14)
}

func writeSummarySheet(f *excelize.File, state model.BudgetState, opts Options, headerStyle, moneyStyle int) error {
	set := func(cell string, v any) error {
		return f.SetCellValue(summarySheet, cell, v)
	}

	for i, h := range []string{"Type", "Count", "Total", "Share"} {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := set(cell, h); err != nil {
			return err
		}
	}
	if err := f.SetCellStyle(summarySheet, "A1", "D1", headerStyle); err != nil {
		return err
	}

	grand := pipeline.GrandTotal(state.Records)
	row := 2
	for _, ct := range pipeline.ByCategory(state.Records) {
		share := ""
		if pct, ok := pipeline.ShareOfSpend(ct.Total, grand); ok {
			share = fmt.Sprintf("%.0f%%", pct)
		}
		if err := set(fmt.Sprintf("A%d", row), ct.Type); err != nil {
			return err
		}
		if err := set(fmt.Sprintf("B%d", row), ct.Count); err != nil {
			return err
		}
		if err := set(fmt.Sprintf("C%d", row), ct.Total.InexactFloat64()); err != nil {
			return err
		}
		if err := set(fmt.Sprintf("D%d", row), share); err != nil {
			return err
		}
		row++
	}

	row++
	stats := pipeline.Budget(state)
	totals := []struct {
		label string
		value float64
	}{
		{"Budget", stats.TotalBudget.InexactFloat64()},
		{"Spent", stats.Spent.InexactFloat64()},
		{"Remaining", stats.Remaining.InexactFloat64()},
	}
	for _, tv := range totals {
		if err := set(fmt.Sprintf("A%d", row), tv.label); err != nil {
			return err
		}
		if err := set(fmt.Sprintf("C%d", row), tv.value); err != nil {
			return err
		}
		row++
	}

	if err := f.SetCellStyle(summarySheet, "C2", fmt.Sprintf("C%d", row-1), moneyStyle); err != nil {
		return err
	}
	if opts.CurrencySymbol != "" {
		if err := set(fmt.Sprintf("A%d", row), "Currency"); err != nil {
			return err
		}
		if err := set(fmt.Sprintf("C%d", row), opts.CurrencySymbol); err != nil {
			return err
		}
	}
	return f.SetColWidth(summarySheet, "A", "A", 20)
}
