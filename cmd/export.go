package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/theirongolddev/iexpense/internal/export"
	"github.com/theirongolddev/iexpense/internal/pipeline"

	"github.com/spf13/cobra"
)

var (
	flagExportOut    string
	flagExportFormat string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export expenses to CSV, XLSX, or PDF",
	Example: `  iexpense export
  iexpense export -o ~/Documents/expenses.xlsx
  iexpense export --format pdf -t Business`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&flagExportOut, "output", "o", "", "Output file (default Expenses.<ext> in the export dir)")
	exportCmd.Flags().StringVarP(&flagExportFormat, "format", "f", "", "Format: csv, xlsx, pdf (default from extension or config)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(_ *cobra.Command, _ []string) error {
	def, err := export.ParseFormat(cfg.Export.DefaultFormat)
	if err != nil {
		logger.Warn("config export format ignored", "format", cfg.Export.DefaultFormat, "error", err)
		def = export.FormatCSV
	}

	format := def
	if flagExportFormat != "" {
		if format, err = export.ParseFormat(flagExportFormat); err != nil {
			return err
		}
	}

	path := flagExportOut
	switch {
	case path == "":
		path = filepath.Join(cfg.Export.Dir, export.DefaultFilename(format))
	case flagExportFormat == "":
		format = export.FormatForPath(path, def)
	}

	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	state := s.store.State()
	state.Records = pipeline.FilterByType(state.Records, flagType)

	if err := export.Write(format, path, state, export.Options{CurrencySymbol: s.currency}); err != nil {
		return fmt.Errorf("exporting to %s: %w", path, err)
	}

	info("  Exported %d expenses to %s\n", len(state.Records), path)
	return nil
}
