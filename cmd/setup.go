package cmd

import (
	"errors"
	"fmt"

	"github.com/theirongolddev/iexpense/internal/config"
	"github.com/theirongolddev/iexpense/internal/tui"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	vals := tui.SetupValuesFrom(cfg, s.store.Budget())

	fmt.Println()
	fmt.Println("  Welcome to iexpense!")
	if n := s.store.Len(); n > 0 {
		fmt.Printf("  Found %d expenses in %s\n", n, config.GetDBPath(cfg))
	}
	fmt.Println()

	if err := tui.NewSetupForm(&vals).Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			fmt.Println("  Setup cancelled, nothing saved.")
			return nil
		}
		return fmt.Errorf("setup form: %w", err)
	}

	budget, setBudget, err := vals.Apply(&cfg)
	if err != nil {
		return err
	}
	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}
	if setBudget {
		s.store.SetBudget(budget)
		s.warnIfUnsaved()
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", config.Path())
	fmt.Println("  Run `iexpense setup` anytime to reconfigure.")
	fmt.Println()
	return nil
}
