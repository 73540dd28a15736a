package export

import (
	"fmt"

	"github.com/theirongolddev/iexpense/internal/cli"
	"github.com/theirongolddev/iexpense/internal/model"
	"github.com/theirongolddev/iexpense/internal/pipeline"

	"github.com/jung-kurt/gofpdf"
)

// segmentRGB colors the category bars, cycling when there are more types.
var segmentRGB = [][3]int{
	{67, 133, 190},
	{58, 169, 159},
	{139, 126, 200},
	{208, 162, 21},
	{135, 154, 57},
	{218, 112, 44},
}

// WritePDF writes a one-page report: budget figures, the expense table, and
// a bar per expense type sized by its share of spending.
func WritePDF(path string, state model.BudgetState, opts Options) error {
	symbol := opts.CurrencySymbol
	if symbol == "" {
		symbol = cli.DefaultCurrency
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFillColor(40, 40, 40)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 12, "  Expense Report", "", 1, "L", true, 0, "")
	pdf.Ln(6)

	stats := pipeline.Budget(state)
	pdf.SetTextColor(50, 50, 50)
	pdf.SetFont("Arial", "", 11)
	for _, line := range [][2]string{
		{"Budget", cli.FormatMoney(stats.TotalBudget, symbol)},
		{"Spent", cli.FormatMoney(stats.Spent, symbol)},
		{"Remaining", cli.FormatRemaining(stats.Remaining, symbol)},
	} {
		pdf.CellFormat(40, 7, line[0], "", 0, "L", false, 0, "")
		pdf.CellFormat(60, 7, tr(line[1]), "", 1, "R", false, 0, "")
	}
	pdf.Ln(6)

	sectionTitle(pdf, "Expenses")
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(100, 7, "Name", "B", 0, "L", false, 0, "")
	pdf.CellFormat(45, 7, "Type", "B", 0, "L", false, 0, "")
	pdf.CellFormat(45, 7, "Amount", "B", 1, "R", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	if len(state.Records) == 0 {
		pdf.CellFormat(0, 7, "No expenses recorded", "", 1, "L", false, 0, "")
	}
	for _, r := range state.Records {
		pdf.CellFormat(100, 6, tr(r.Name), "", 0, "L", false, 0, "")
		pdf.CellFormat(45, 6, tr(r.Type), "", 0, "L", false, 0, "")
		pdf.CellFormat(45, 6, tr(cli.FormatMoney(r.Amount, symbol)), "", 1, "R", false, 0, "")
	}
	pdf.Ln(8)

	sectionTitle(pdf, "Expense Breakdown")
	grand := pipeline.GrandTotal(state.Records)
	const barMax = 90.0
	for i, ct := range pipeline.ByCategory(state.Records) {
		pct, _ := pipeline.ShareOfSpend(ct.Total, grand)
		rgb := segmentRGB[i%len(segmentRGB)]

		pdf.SetFont("Arial", "", 10)
		pdf.CellFormat(40, 7, tr(ct.Type), "", 0, "L", false, 0, "")
		x, y := pdf.GetX(), pdf.GetY()
		pdf.SetFillColor(rgb[0], rgb[1], rgb[2])
		if w := barMax * pct / 100; w > 0 {
			pdf.Rect(x, y+1.5, w, 4, "F")
		}
		pdf.SetX(x + barMax + 4)
		pdf.CellFormat(35, 7, tr(cli.FormatAmount(ct.Total, symbol)), "", 0, "R", false, 0, "")
		pdf.CellFormat(20, 7, fmt.Sprintf("%.0f%%", pct), "", 1, "R", false, 0, "")
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("writing pdf: %w", err)
	}
	return nil
}

func sectionTitle(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Arial", "B", 12)
	pdf.SetTextColor(0, 0, 0)
	pdf.Cell(0, 8, title)
	pdf.Ln(7)
	pdf.SetDrawColor(200, 200, 200)
	pdf.Line(pdf.GetX(), pdf.GetY(), pdf.GetX()+190, pdf.GetY())
	pdf.Ln(4)
	pdf.SetTextColor(50, 50, 50)
}
