package export

import (
	"fmt"
	"os"
	"strings"

	"github.com/theirongolddev/iexpense/internal/model"
)

// CSVHeader is the first line of every CSV export.
const CSVHeader = "Name, Type, Amount"

// ToCSV renders records one per line in insertion order. Fields are joined
// with ", " and are not quoted, so a comma inside a name shifts the columns
// for that row.
func ToCSV(records []model.Expense) string {
	var b strings.Builder
	b.WriteString(CSVHeader)
	b.WriteByte('\n')
	for _, r := range records {
		b.WriteString(r.Name)
		b.WriteString(", ")
		b.WriteString(r.Type)
		b.WriteString(", ")
		b.WriteString(r.Amount.String())
		b.WriteByte('\n')
	}
	return b.String()
}

// WriteCSV writes ToCSV(records) to path as UTF-8.
func WriteCSV(path string, records []model.Expense) error {
	if err := os.WriteFile(path, []byte(ToCSV(records)), 0o600); err != nil {
		return fmt.Errorf("writing csv: %w", err)
	}
	return nil
}
