// Package export renders expense records to CSV, XLSX, and PDF files.
package export

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/theirongolddev/iexpense/internal/model"
)

// Format is an export file format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
	FormatPDF  Format = "pdf"
)

// ErrUnknownFormat is returned for formats other than csv, xlsx, and pdf.
var ErrUnknownFormat = errors.New("unknown export format")

// Formats lists the supported formats.
var Formats = []Format{FormatCSV, FormatXLSX, FormatPDF}

// ParseFormat parses a format name, case-insensitively.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// FormatForPath infers the format from a file extension, falling back to def.
func FormatForPath(path string, def Format) Format {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if f, err := ParseFormat(ext); err == nil {
		return f
	}
	return def
}

// DefaultFilename returns the file name used when no output path is given.
func DefaultFilename(f Format) string {
	return "Expenses." + string(f)
}

// Options controls report rendering for the formats that carry a summary.
type Options struct {
	CurrencySymbol string
}

// Write renders state in format f to path.
func Write(f Format, path string, state model.BudgetState, opts Options) error {
	switch f {
	case FormatCSV:
		return WriteCSV(path, state.Records)
	case FormatXLSX:
		return WriteXLSX(path, state, opts)
	case FormatPDF:
		return WritePDF(path, state, opts)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
}
