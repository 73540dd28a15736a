package cmd

import (
	"fmt"

	"github.com/theirongolddev/iexpense/internal/cli"
	"github.com/theirongolddev/iexpense/internal/pipeline"

	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:     "summary",
	Aliases: []string{"chart"},
	Short:   "Expense breakdown by type",
	RunE:    runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(_ *cobra.Command, _ []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	state := s.store.State()
	groups := pipeline.ByCategory(state.Records)

	fmt.Println()
	fmt.Println(cli.RenderTitle("EXPENSE BREAKDOWN"))
	fmt.Println()

	if len(groups) == 0 {
		fmt.Println("  No expenses to display")
		return nil
	}

	grand := pipeline.GrandTotal(state.Records)
	rows := make([][]string, 0, len(groups)+2)
	for _, g := range groups {
		share, shareOK := pipeline.ShareOfSpend(g.Total, grand)
		ofBudget, budgetOK := pipeline.PercentOfTotal(g.Total, state.TotalBudget)
		rows = append(rows, []string{
			g.Type,
			cli.FormatNumber(int64(g.Count)),
			cli.FormatMoney(g.Total, s.currency),
			cli.FormatShare(share, shareOK),
			cli.FormatPercent(ofBudget, budgetOK),
		})
	}
	totalOfBudget, ok := pipeline.PercentOfTotal(grand, state.TotalBudget)
	rows = append(rows, []string{"---"})
	rows = append(rows, []string{
		"TOTAL",
		cli.FormatNumber(int64(len(state.Records))),
		cli.FormatMoney(grand, s.currency),
		"100%",
		cli.FormatPercent(totalOfBudget, ok),
	})

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Type", "Count", "Total", "Share", "Of Budget"},
		Rows:    rows,
	}))
	fmt.Println()

	maxTotal := groups[0].Total.InexactFloat64()
	for i, g := range groups {
		share, shareOK := pipeline.ShareOfSpend(g.Total, grand)
		color := cli.SegmentColors[i%len(cli.SegmentColors)]
		fmt.Printf("  %-12s %-30s %s %s\n",
			g.Type,
			cli.RenderHorizontalBar(g.Total.InexactFloat64(), maxTotal, 30, color),
			cli.FormatAmount(g.Total, s.currency),
			cli.FormatShare(share, shareOK),
		)
	}
	return nil
}
