package cmd

import (
	"errors"
	"fmt"

	"github.com/theirongolddev/iexpense/internal/cli"
	"github.com/theirongolddev/iexpense/internal/tui"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add [name amount]",
	Short: "Add an expense (opens a form when called without arguments)",
	Example: `  iexpense add "Coffee" 4.50 --type Personal
  iexpense add Rent 120 -t Business
  iexpense add`,
	Args: func(_ *cobra.Command, args []string) error {
		if len(args) != 0 && len(args) != 2 {
			return errors.New("expected a name and an amount, or no arguments for the form")
		}
		return nil
	},
	RunE: runAdd,
}

func init() {
	rootCmd.AddCommand(addCmd)
}

func runAdd(_ *cobra.Command, args []string) error {
	vals := tui.ExpenseValues{Type: flagType}
	if vals.Type == "" {
		vals.Type = cfg.General.DefaultType
	}

	if len(args) == 2 {
		vals.Name, vals.Amount = args[0], args[1]
	} else {
		form := tui.NewExpenseForm(cfg.General.Categories, &vals)
		if err := form.Run(); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return fmt.Errorf("add form: %w", err)
		}
	}

	e, err := vals.Expense()
	if err != nil {
		return err
	}

	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	s.store.Add(e)
	s.warnIfUnsaved()

	remaining := s.store.State().Remaining()
	info("  Added %s (%s, %s)  id %s\n", e.Name, e.Type,
		cli.FormatMoney(e.Amount, s.currency), cli.ShortID(e.ID.String()))
	info("  Remaining budget: %s\n", cli.RenderStatus(cli.FormatRemaining(remaining, s.currency), remaining.IsNegative()))
	return nil
}
