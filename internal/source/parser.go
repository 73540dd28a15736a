// Package source reads expense records back from exported CSV files.
package source

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/theirongolddev/iexpense/internal/export"
	"github.com/theirongolddev/iexpense/internal/model"
)

// fieldSep matches the separator the CSV export writes.
const fieldSep = ", "

// ParseResult holds the records read from a CSV export.
type ParseResult struct {
	Records []model.Expense
	Lines   int // data lines seen, excluding the header and blank lines
	Skipped int // lines with the wrong field count or a bad amount
	Err     error
}

// ParseFile opens path and parses it with ParseCSV.
func ParseFile(path string) ParseResult {
	f, err := os.Open(path)
	if err != nil {
		return ParseResult{Err: err}
	}
	defer func() { _ = f.Close() }()
	return ParseCSV(f)
}

// ParseCSV reads the "Name, Type, Amount" export format. Each record gets a
// fresh ID. A line whose name contained a comma has more than three fields
// and is skipped, as is any line whose amount does not parse.
func ParseCSV(r io.Reader) ParseResult {
	var result ParseResult

	scanner := bufio.NewScanner(r)
	first := true
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if first {
			first = false
			line = strings.TrimPrefix(line, "\ufeff")
			if isHeader(line) {
				continue
			}
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		result.Lines++

		fields := strings.Split(line, fieldSep)
		if len(fields) != 3 {
			result.Skipped++
			continue
		}
		amount, err := model.ParseAmount(fields[2])
		if err != nil {
			result.Skipped++
			continue
		}
		e, err := model.NewExpense(fields[0], fields[1], amount)
		if err != nil {
			result.Skipped++
			continue
		}
		result.Records = append(result.Records, e)
	}
	result.Err = scanner.Err()
	return result
}

func isHeader(line string) bool {
	return strings.EqualFold(strings.TrimSpace(line), export.CSVHeader)
}
