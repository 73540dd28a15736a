package cmd

import (
	"fmt"

	"github.com/theirongolddev/iexpense/internal/source"

	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <file.csv>",
	Short: "Import expenses from a previously exported CSV",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func runImport(_ *cobra.Command, args []string) error {
	result := source.ParseFile(args[0])
	if result.Err != nil {
		return fmt.Errorf("reading %s: %w", args[0], result.Err)
	}

	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	for _, e := range result.Records {
		s.store.Add(e)
	}
	s.warnIfUnsaved()

	info("  Imported %d expenses from %s\n", len(result.Records), args[0])
	if result.Skipped > 0 {
		info("  Skipped %d malformed lines\n", result.Skipped)
	}
	return nil
}
