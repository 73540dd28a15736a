package cmd

import (
	"fmt"
	"strconv"

	"github.com/theirongolddev/iexpense/internal/cli"
	"github.com/theirongolddev/iexpense/internal/pipeline"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List expenses in insertion order",
	RunE:    runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(_ *cobra.Command, _ []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	view := s.store.Filtered(flagType)
	if s.store.Len() == 0 {
		fmt.Println("\n  No expenses yet.")
		fmt.Println("  Add one with: iexpense add \"Coffee\" 4.50 --type Personal")
		return nil
	}

	title := "EXPENSES"
	if flagType != "" {
		title = fmt.Sprintf("EXPENSES  %s", flagType)
	}
	fmt.Println()
	fmt.Println(cli.RenderTitle(title))
	fmt.Println()

	if len(view) == 0 {
		fmt.Printf("  No expenses of type %q.\n", flagType)
		return nil
	}

	rows := make([][]string, 0, len(view)+2)
	for i, e := range view {
		rows = append(rows, []string{
			strconv.Itoa(i),
			cli.ShortID(e.ID.String()),
			e.Name,
			e.Type,
			cli.FormatMoney(e.Amount, s.currency),
		})
	}
	rows = append(rows, []string{"---"})
	rows = append(rows, []string{"", "", "TOTAL", "", cli.FormatMoney(pipeline.GrandTotal(view), s.currency)})

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"#", "ID", "Name", "Type", "Amount"},
		Rows:    rows,
	}))

	stats := pipeline.Budget(s.store.State())
	fmt.Printf("\n  Budget %s  Remaining %s\n",
		cli.FormatMoney(stats.TotalBudget, s.currency),
		cli.RenderStatus(cli.FormatRemaining(stats.Remaining, s.currency), stats.OverBudget),
	)
	return nil
}
