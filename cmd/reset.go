package cmd

import (
	"errors"
	"fmt"

	"github.com/theirongolddev/iexpense/internal/expenses"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var flagResetYes bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all expenses and the budget",
	RunE:  runReset,
}

func init() {
	resetCmd.Flags().BoolVarP(&flagResetYes, "yes", "y", false, "Skip the confirmation prompt")
	rootCmd.AddCommand(resetCmd)
}

func runReset(_ *cobra.Command, _ []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	if !flagResetYes {
		confirm := false
		err := huh.NewConfirm().
			Title(fmt.Sprintf("Delete %d expenses and the budget?", s.store.Len())).
			Affirmative("Delete").
			Negative("Cancel").
			Value(&confirm).
			Run()
		if err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return fmt.Errorf("confirm: %w", err)
		}
		if !confirm {
			return nil
		}
	}

	for _, key := range []string{expenses.ItemsKey, expenses.BudgetKey} {
		if err := s.kv.Delete(key); err != nil {
			return fmt.Errorf("deleting %s: %w", key, err)
		}
	}
	info("  All expenses and the budget were deleted.\n")
	return nil
}
