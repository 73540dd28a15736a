package export

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/theirongolddev/iexpense/internal/model"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

func sampleState(t *testing.T) model.BudgetState {
	t.Helper()
	coffee, err := model.NewExpense("Coffee", model.TypePersonal, decimal.RequireFromString("4.5"))
	if err != nil {
		t.Fatal(err)
	}
	rent, err := model.NewExpense("Rent", model.TypeBusiness, decimal.NewFromInt(120))
	if err != nil {
		t.Fatal(err)
	}
	return model.BudgetState{
		TotalBudget: decimal.NewFromInt(100),
		Records:     []model.Expense{coffee, rent},
	}
}

func TestToCSV_Example(t *testing.T) {
	got := ToCSV(sampleState(t).Records)
	want := "Name, Type, Amount\nCoffee, Personal, 4.5\nRent, Business, 120\n"
	if got != want {
		t.Fatalf("ToCSV =\n%q\nwant\n%q", got, want)
	}
}

func TestToCSV_EmptyHasHeaderOnly(t *testing.T) {
	if got := ToCSV(nil); got != "Name, Type, Amount\n" {
		t.Fatalf("ToCSV(nil) = %q", got)
	}
}

func TestToCSV_DoesNotEscapeCommas(t *testing.T) {
	e, _ := model.NewExpense("Eggs, bacon", model.TypePersonal, decimal.NewFromInt(7))
	got := ToCSV([]model.Expense{e})
	want := "Name, Type, Amount\nEggs, bacon, Personal, 7\n"
	if got != want {
		t.Fatalf("ToCSV = %q, want %q", got, want)
	}
}

func TestWriteCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Expenses.csv")
	if err := WriteCSV(path, sampleState(t).Records); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "Name, Type, Amount\nCoffee, Personal, 4.5\nRent, Business, 120\n" {
		t.Fatalf("file contents = %q", data)
	}
}

func TestWriteCSV_BadPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing-dir", "Expenses.csv")
	if err := WriteCSV(path, nil); err == nil {
		t.Fatal("WriteCSV into missing dir succeeded, want error")
	}
}

func TestParseFormat(t *testing.T) {
	for _, in := range []string{"csv", "XLSX", " pdf "} {
		if _, err := ParseFormat(in); err != nil {
			t.Errorf("ParseFormat(%q): %v", in, err)
		}
	}
	if _, err := ParseFormat("ods"); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("ParseFormat(ods) err = %v, want ErrUnknownFormat", err)
	}
	if got := FormatForPath("out/report.PDF", FormatCSV); got != FormatPDF {
		t.Errorf("FormatForPath(.PDF) = %s, want pdf", got)
	}
	if got := FormatForPath("report", FormatXLSX); got != FormatXLSX {
		t.Errorf("FormatForPath(no ext) = %s, want xlsx", got)
	}
}

func TestWriteXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Expenses.xlsx")
	if err := Write(FormatXLSX, path, sampleState(t), Options{CurrencySymbol: "$"}); err != nil {
		t.Fatalf("Write xlsx: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(expensesSheet)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expense rows = %d, want 3", len(rows))
	}
	if rows[1][0] != "Coffee" || rows[2][1] != model.TypeBusiness {
		t.Fatalf("unexpected rows: %v", rows)
	}

	summary, err := f.GetRows(summarySheet)
	if err != nil {
		t.Fatalf("GetRows summary: %v", err)
	}
	if len(summary) < 3 || summary[1][0] != model.TypeBusiness {
		t.Fatalf("summary first group = %v, want Business first", summary)
	}
}

func TestWritePDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Expenses.pdf")
	if err := Write(FormatPDF, path, sampleState(t), Options{}); err != nil {
		t.Fatalf("Write pdf: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(data) < 4 || string(data[:4]) != "%PDF" {
		t.Fatalf("output does not start with %%PDF")
	}
}

func TestWrite_UnknownFormat(t *testing.T) {
	err := Write(Format("ods"), filepath.Join(t.TempDir(), "x"), sampleState(t), Options{})
	if !errors.Is(err, ErrUnknownFormat) {
		t.Fatalf("err = %v, want ErrUnknownFormat", err)
	}
}
