// internal/report/pdf.go
package report

import (
	"fmt"
	"io"
	"strings"

	"my-money/internal/domain"

	"github.com/phpdave11/gofpdf"
)

const maxStatementRows = 500

var txColumns = []struct {
	title string
	width float64
	align string
}{
	{"DATE", 26, "C"},
	{"TITLE", 70, "L"},
	{"CATEGORY", 32, "L"},
	{"WALLET", 18, "C"},
	{"AMOUNT", 36, "R"},
}

// RenderPDF writes st as an A4 PDF document to w.
func RenderPDF(w io.Writer, st *Statement) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetMargins(14, 14, 14)
	pdf.SetTitle(tr("Statement "+st.Month), false)
	pdf.AddPage()

	pdf.SetTextColor(20, 20, 20)
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, tr("Monthly Statement"))
	pdf.Ln(9)

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(80, 80, 80)
	pdf.Cell(0, 6, tr("Period: "+st.Month))
	pdf.Ln(5)
	pdf.Cell(0, 6, tr("Owner: "+st.Owner))
	pdf.Ln(10)

	pdf.SetDrawColor(200, 200, 200)
	pdf.SetFillColor(248, 248, 248)
	pdf.SetTextColor(20, 20, 20)
	pdf.SetFont("Helvetica", "B", 11)
	sumW := 60.6
	pdf.CellFormat(sumW, 10, "Income", "1", 0, "C", true, 0, "")
	pdf.CellFormat(sumW, 10, "Expense", "1", 0, "C", true, 0, "")
	pdf.CellFormat(sumW, 10, "Net", "1", 1, "C", true, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(sumW, 10, tr(FormatAmount(st.Income, st.Currency)), "1", 0, "C", false, 0, "")
	pdf.CellFormat(sumW, 10, tr(FormatAmount(st.Expense, st.Currency)), "1", 0, "C", false, 0, "")
	pdf.CellFormat(sumW, 10, tr(FormatAmount(st.Net, st.Currency)), "1", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, tr(fmt.Sprintf("Wallets: active %s, savings %s, total %s",
		FormatAmount(st.Wallets.Active, st.Currency),
		FormatAmount(st.Wallets.Savings, st.Currency),
		FormatAmount(st.Wallets.Total, st.Currency))))
	pdf.Ln(10)

	if len(st.Categories) > 0 {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.SetFillColor(245, 245, 245)
		pdf.CellFormat(80, 8, "CATEGORY", "1", 0, "L", true, 0, "")
		pdf.CellFormat(51, 8, "INCOME", "1", 0, "R", true, 0, "")
		pdf.CellFormat(51, 8, "EXPENSE", "1", 1, "R", true, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		for _, ct := range st.Categories {
			pdf.CellFormat(80, 7, tr(ct.Category), "1", 0, "L", false, 0, "")
			pdf.CellFormat(51, 7, tr(FormatAmount(ct.Income, st.Currency)), "1", 0, "R", false, 0, "")
			pdf.CellFormat(51, 7, tr(FormatAmount(ct.Expense, st.Currency)), "1", 1, "R", false, 0, "")
		}
		pdf.Ln(6)
	}

	header := func() {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.SetFillColor(245, 245, 245)
		for i, col := range txColumns {
			ln := 0
			if i == len(txColumns)-1 {
				ln = 1
			}
			pdf.CellFormat(col.width, 8, col.title, "1", ln, col.align, true, 0, "")
		}
		pdf.SetFont("Helvetica", "", 9)
	}
	header()

	for i, tx := range st.Transactions {
		if i >= maxStatementRows {
			pdf.SetFont("Helvetica", "I", 9)
			pdf.CellFormat(0, 8, "truncated (too many rows)", "1", 1, "C", false, 0, "")
			break
		}
		if pdf.GetY() > 270 {
			pdf.AddPage()
			header()
		}
		signed := tx.BalanceEffect()
		cells := []string{
			tx.Date.Format(domain.DateLayout),
			trimTo(tx.Title, 40),
			trimTo(tx.Category, 18),
			fmt.Sprintf("%d", tx.WalletID),
			FormatAmount(signed, st.Currency),
		}
		for j, col := range txColumns {
			ln := 0
			if j == len(txColumns)-1 {
				ln = 1
			}
			pdf.CellFormat(col.width, 7, tr(cells[j]), "1", ln, col.align, false, 0, "")
		}
	}

	pdf.SetY(-18)
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(120, 120, 120)
	pdf.CellFormat(0, 10, "Generated "+st.GeneratedAt.Format("2006-01-02 15:04 MST"), "", 0, "C", false, 0, "")

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render statement pdf: %w", err)
	}
	return nil
}

func trimTo(s string, max int) string {
	s = strings.TrimSpace(s)
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "..."
}
