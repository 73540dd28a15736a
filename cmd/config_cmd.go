package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/theirongolddev/iexpense/internal/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	fmt.Printf("  Config file: %s\n", config.Path())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Database:      %s%s\n", config.GetDBPath(cfg), envNote("IEXPENSE_DB"))
	fmt.Printf("    Default type:  %s\n", cfg.General.DefaultType)
	fmt.Printf("    Categories:    %s\n", strings.Join(cfg.General.Categories, ", "))
	fmt.Println()

	fmt.Println("  [Display]")
	fmt.Printf("    Currency:      %s%s\n", config.GetCurrencySymbol(cfg), envNote("IEXPENSE_CURRENCY"))
	fmt.Println()

	fmt.Println("  [Export]")
	dir := cfg.Export.Dir
	if dir == "" {
		dir = "(current directory)"
	}
	fmt.Printf("    Directory:     %s\n", dir)
	fmt.Printf("    Format:        %s\n", cfg.Export.DefaultFormat)
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Println("  [Log]")
	fmt.Printf("    Level: %s%s\n", config.GetLogLevel(cfg), envNote("LOG_LEVEL"))
	fmt.Printf("    JSON:  %v\n", cfg.Log.JSON)
	fmt.Println()

	printStorage()

	fmt.Println("  Run `iexpense setup` to reconfigure.")
	return nil
}

// printStorage lists the keys in the database and when each was last written.
func printStorage() {
	s, err := openSession()
	if err != nil {
		fmt.Printf("  [Storage]\n    unavailable: %v\n\n", err)
		return
	}
	defer s.Close()

	fmt.Println("  [Storage]")
	keys, err := s.kv.Keys()
	if err != nil {
		fmt.Printf("    unreadable: %v\n\n", err)
		return
	}
	if len(keys) == 0 {
		fmt.Println("    empty")
	}
	for _, k := range keys {
		at, ok, err := s.kv.UpdatedAt(k)
		switch {
		case err != nil:
			fmt.Printf("    %-12s %v\n", k, err)
		case ok:
			fmt.Printf("    %-12s updated %s\n", k, at.Local().Format(time.DateTime))
		}
	}
	fmt.Printf("    Expenses:    %d\n", s.store.Len())
	fmt.Println()
}

func envNote(key string) string {
	if os.Getenv(key) != "" {
		return "  (from $" + key + ")"
	}
	return ""
}
