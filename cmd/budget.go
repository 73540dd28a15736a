package cmd

import (
	"errors"
	"fmt"

	"github.com/theirongolddev/iexpense/internal/cli"
	"github.com/theirongolddev/iexpense/internal/pipeline"
	"github.com/theirongolddev/iexpense/internal/tui"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var budgetCmd = &cobra.Command{
	Use:   "budget",
	Short: "Show the budget and what remains",
	RunE:  runBudget,
}

var budgetSetCmd = &cobra.Command{
	Use:   "set [amount]",
	Short: "Set the total budget (opens a form when called without an amount)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runBudgetSet,
}

func init() {
	budgetCmd.AddCommand(budgetSetCmd)
	rootCmd.AddCommand(budgetCmd)
}

func runBudget(_ *cobra.Command, _ []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	stats := pipeline.Budget(s.store.State())

	fmt.Println()
	fmt.Println(cli.RenderTitle("BUDGET"))
	fmt.Println()

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Budget", cli.FormatMoney(stats.TotalBudget, s.currency)},
			{"Spent", cli.FormatMoney(stats.Spent, s.currency)},
			{"---"},
			{"Remaining", cli.FormatRemaining(stats.Remaining, s.currency)},
			{"Used", cli.FormatPercent(stats.BudgetUsedPercent, stats.HasBudget)},
		},
	}))

	if stats.HasBudget {
		fmt.Printf("\n  %s\n", cli.RenderBudgetBar(stats.BudgetUsedPercent, 40))
	} else {
		fmt.Println(cli.Muted("\n  No budget set. Use: iexpense budget set 500"))
	}
	return nil
}

func runBudgetSet(_ *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	vals := tui.BudgetValues{}
	if len(args) == 1 {
		vals.Amount = args[0]
	} else {
		if b := s.store.Budget(); !b.IsZero() {
			vals.Amount = b.String()
		}
		if err := tui.NewBudgetForm(&vals).Run(); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return fmt.Errorf("budget form: %w", err)
		}
	}

	d, err := vals.Budget()
	if err != nil {
		return fmt.Errorf("invalid budget %q: %w", vals.Amount, err)
	}

	s.store.SetBudget(d)
	s.warnIfUnsaved()

	remaining := s.store.State().Remaining()
	info("  Budget set to %s. Remaining: %s\n",
		cli.FormatMoney(d, s.currency),
		cli.RenderStatus(cli.FormatRemaining(remaining, s.currency), remaining.IsNegative()))
	return nil
}
