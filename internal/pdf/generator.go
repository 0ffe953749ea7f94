package pdf

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/nurpe/timber-market/internal/analytics"
	"github.com/nurpe/timber-market/internal/model"
)

type Generator struct {
	fontName string
}

func NewGenerator() *Generator {
	return &Generator{fontName: "Helvetica"}
}

// Generate renders the market report summary as a one-page document. The
// per-row listing detail stays in the Excel export.
func (g *Generator) Generate(report model.MarketReport) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	// Core fonts are cp1252; company names go through the translator.
	translate := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont(g.fontName, "B", 14)
	pdf.CellFormat(0, 10, "Timber market report", "", 1, "C", false, 0, "")

	pdf.SetFont(g.fontName, "", 11)
	pdf.CellFormat(0, 6, fmt.Sprintf("Period: %s - %s", formatDate(report.PeriodStart), formatDate(report.PeriodEnd)), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Generated at %s", report.GeneratedAt.Format("2006-01-02 15:04")), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont(g.fontName, "B", 12)
	pdf.CellFormat(0, 8, "Totals", "", 1, "L", false, 0, "")
	pdf.SetFont(g.fontName, "", 11)
	pdf.CellFormat(0, 6, fmt.Sprintf("Demand: %d requests, %s m3", report.DemandTotal, report.TotalDemandM3.StringFixed(3)), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Stock: %d listings, %s m3", report.StockTotal, report.TotalStockM3.StringFixed(3)), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	g.addStatusSection(pdf, "Demand by status", report.DemandByStatus)
	g.addStatusSection(pdf, "Stock by status", report.StockByStatus)
	g.addRankingSection(pdf, translate, "Top customers by requested volume", report.TopCustomers)
	g.addRankingSection(pdf, translate, "Top manufacturers by listed volume", report.TopManufacturers)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g *Generator) addStatusSection(pdf *gofpdf.Fpdf, title string, rows []analytics.StatusRow) {
	pdf.SetFont(g.fontName, "B", 12)
	pdf.CellFormat(0, 8, title, "", 1, "L", false, 0, "")

	widths := []float64{70, 40, 40}
	drawTableRow(pdf, g.fontName, []string{"Status", "Count", "Share, %"}, widths, true)
	for _, row := range rows {
		drawTableRow(pdf, g.fontName, []string{
			row.Status,
			fmt.Sprintf("%d", row.Count),
			fmt.Sprintf("%.1f", row.Percentage),
		}, widths, false)
	}
	pdf.Ln(4)
}

func (g *Generator) addRankingSection(pdf *gofpdf.Fpdf, translate func(string) string, title string, ranked []analytics.RankedCompany) {
	pdf.SetFont(g.fontName, "B", 12)
	pdf.CellFormat(0, 8, title, "", 1, "L", false, 0, "")

	if len(ranked) == 0 {
		pdf.SetFont(g.fontName, "", 10)
		pdf.CellFormat(0, 6, "no data", "", 1, "L", false, 0, "")
		pdf.Ln(4)
		return
	}

	widths := []float64{20, 90, 40}
	drawTableRow(pdf, g.fontName, []string{"#", "Company", "Volume, m3"}, widths, true)
	for i, entry := range ranked {
		drawTableRow(pdf, g.fontName, []string{
			fmt.Sprintf("%d", i+1),
			translate(entry.Label),
			entry.Value.String(),
		}, widths, false)
	}
	pdf.Ln(4)
}

func drawTableRow(pdf *gofpdf.Fpdf, fontName string, cols []string, widths []float64, header bool) {
	style := ""
	if header {
		style = "B"
	}
	pdf.SetFont(fontName, style, 10)
	for i, col := range cols {
		align := "L"
		if i > 0 {
			align = "R"
		}
		pdf.CellFormat(widths[i], 8, col, "1", 0, align, false, 0, "")
	}
	pdf.Ln(-1)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "open"
	}
	return t.Format("2006-01-02")
}
