package source

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseCSV_ExportFormat(t *testing.T) {
	in := "Name, Type, Amount\nCoffee, Personal, 4.5\nRent, Business, 120\n"

	result := ParseCSV(strings.NewReader(in))
	if result.Err != nil {
		t.Fatalf("unexpected error: %v", result.Err)
	}
	if len(result.Records) != 2 {
		t.Fatalf("Records = %d, want 2", len(result.Records))
	}
	if result.Lines != 2 || result.Skipped != 0 {
		t.Fatalf("Lines = %d, Skipped = %d; want 2, 0", result.Lines, result.Skipped)
	}

	coffee := result.Records[0]
	if coffee.Name != "Coffee" || coffee.Type != "Personal" || !coffee.Amount.Equal(decimal.RequireFromString("4.5")) {
		t.Errorf("record 0 = %+v", coffee)
	}
	if result.Records[0].ID == result.Records[1].ID {
		t.Error("imported records share an ID")
	}
}

func TestParseCSV_SkipsBadLines(t *testing.T) {
	in := strings.Join([]string{
		"Name, Type, Amount",
		"Eggs, bacon, Personal, 7", // name contained a comma
		"Taxi, Business, twelve",
		"Refund, Personal, -3",
		"",
		"Lunch, Personal, 12.25",
	}, "\n")

	result := ParseCSV(strings.NewReader(in))
	if result.Err != nil {
		t.Fatalf("unexpected error: %v", result.Err)
	}
	if len(result.Records) != 1 || result.Records[0].Name != "Lunch" {
		t.Fatalf("Records = %+v, want only Lunch", result.Records)
	}
	if result.Skipped != 3 {
		t.Errorf("Skipped = %d, want 3", result.Skipped)
	}
	if result.Lines != 4 {
		t.Errorf("Lines = %d, want 4", result.Lines)
	}
}

func TestParseCSV_NoHeaderAndCRLF(t *testing.T) {
	result := ParseCSV(strings.NewReader("Coffee, Personal, 4.5\r\n"))
	if len(result.Records) != 1 {
		t.Fatalf("Records = %d, want 1", len(result.Records))
	}
	if !result.Records[0].Amount.Equal(decimal.RequireFromString("4.5")) {
		t.Errorf("Amount = %s, want 4.5", result.Records[0].Amount)
	}
}

func TestParseFile_Missing(t *testing.T) {
	result := ParseFile(filepath.Join(t.TempDir(), "nope.csv"))
	if result.Err == nil || !os.IsNotExist(result.Err) {
		t.Fatalf("Err = %v, want not-exist", result.Err)
	}
}
