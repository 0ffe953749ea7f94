package excel

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/nurpe/timber-market/internal/analytics"
	"github.com/nurpe/timber-market/internal/model"
)

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// Generate renders the market report as a workbook: one summary sheet plus
// one detail sheet per ranked company.
func (g *Generator) Generate(report model.MarketReport) ([]byte, error) {
	file := excelize.NewFile()

	summarySheet := "Summary"
	file.SetSheetName("Sheet1", summarySheet)
	if err := g.writeSummary(file, summarySheet, report); err != nil {
		return nil, err
	}

	usedNames := map[string]struct{}{summarySheet: {}}
	for _, ranked := range report.TopCustomers {
		sheetName := buildSheetName("Customer", ranked.Label, ranked.CompanyID, usedNames)
		usedNames[sheetName] = struct{}{}

		file.NewSheet(sheetName)
		if err := g.writeDemandDetail(file, sheetName, report, ranked); err != nil {
			return nil, err
		}
	}
	for _, ranked := range report.TopManufacturers {
		sheetName := buildSheetName("Manufacturer", ranked.Label, ranked.CompanyID, usedNames)
		usedNames[sheetName] = struct{}{}

		file.NewSheet(sheetName)
		if err := g.writeStockDetail(file, sheetName, report, ranked); err != nil {
			return nil, err
		}
	}

	file.SetActiveSheet(0)
	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g *Generator) writeSummary(file *excelize.File, sheet string, report model.MarketReport) error {
	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	set("A1", "Market report")
	set("A2", "Period start")
	set("B2", formatDate(report.PeriodStart))
	set("A3", "Period end")
	set("B3", formatDate(report.PeriodEnd))
	set("A4", "Generated at")
	set("B4", formatDateTime(report.GeneratedAt))
	set("A5", "Demand requests")
	set("B5", report.DemandTotal)
	set("A6", "Demand volume, m3")
	set("B6", formatVolume(report.TotalDemandM3))
	set("A7", "Stock listings")
	set("B7", report.StockTotal)
	set("A8", "Stock volume, m3")
	set("B8", formatVolume(report.TotalStockM3))

	row := 10
	row = g.writeStatusTable(file, sheet, row, "Demand by status", report.DemandByStatus)
	row = g.writeStatusTable(file, sheet, row, "Stock by status", report.StockByStatus)
	row = g.writeRankingTable(file, sheet, row, "Top customers by requested volume", report.TopCustomers)
	g.writeRankingTable(file, sheet, row, "Top manufacturers by listed volume", report.TopManufacturers)

	_ = file.SetColWidth(sheet, "A", "A", 38)
	_ = file.SetColWidth(sheet, "B", "C", 16)
	return nil
}

func (g *Generator) writeStatusTable(file *excelize.File, sheet string, row int, title string, rows []analytics.StatusRow) int {
	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	set(fmt.Sprintf("A%d", row), title)
	row++
	set(fmt.Sprintf("A%d", row), "Status")
	set(fmt.Sprintf("B%d", row), "Count")
	set(fmt.Sprintf("C%d", row), "Share, %")
	for _, statusRow := range rows {
		row++
		set(fmt.Sprintf("A%d", row), statusRow.Status)
		set(fmt.Sprintf("B%d", row), statusRow.Count)
		set(fmt.Sprintf("C%d", row), statusRow.Percentage)
	}
	return row + 2
}

func (g *Generator) writeRankingTable(file *excelize.File, sheet string, row int, title string, ranked []analytics.RankedCompany) int {
	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	set(fmt.Sprintf("A%d", row), title)
	row++
	set(fmt.Sprintf("A%d", row), "Company")
	set(fmt.Sprintf("B%d", row), "Volume, m3")
	if len(ranked) == 0 {
		row++
		set(fmt.Sprintf("A%d", row), "no data")
		return row + 2
	}
	for _, entry := range ranked {
		row++
		set(fmt.Sprintf("A%d", row), entry.Label)
		set(fmt.Sprintf("B%d", row), entry.Value.String())
	}
	return row + 2
}

func (g *Generator) writeDemandDetail(file *excelize.File, sheet string, report model.MarketReport, ranked analytics.RankedCompany) error {
	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	rows := demandRowsFor(report, ranked.CompanyID)

	set("A1", "Customer")
	set("B1", companyTitle(rows, ranked))
	set("A2", "Period start")
	set("B2", formatDate(report.PeriodStart))
	set("A3", "Period end")
	set("B3", formatDate(report.PeriodEnd))
	set("A4", "Requests")
	set("B4", len(rows))
	set("A5", "Requested volume, m3")
	set("B5", ranked.Value.String())

	tableRow := 7
	headers := []string{
		"Date",
		"Diameter type",
		"Diameter, cm",
		"Length, m",
		"Quantity",
		"Volume, m3",
		"Status",
		"Notes",
	}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, tableRow)
		set(cell, header)
	}

	for i, item := range rows {
		row := tableRow + 1 + i
		set(fmt.Sprintf("A%d", row), formatDateTime(item.SubmissionDate))
		set(fmt.Sprintf("B%d", row), string(item.DiameterType))
		set(fmt.Sprintf("C%d", row), formatDiameterRange(item.DiameterFrom, item.DiameterTo))
		set(fmt.Sprintf("D%d", row), item.Length.String())
		set(fmt.Sprintf("E%d", row), item.Quantity)
		set(fmt.Sprintf("F%d", row), formatVolume(item.CubicMeters))
		set(fmt.Sprintf("G%d", row), string(item.Status))
		set(fmt.Sprintf("H%d", row), formatString(item.Notes))
	}

	_ = file.SetColWidth(sheet, "A", "A", 20)
	_ = file.SetColWidth(sheet, "B", "G", 14)
	_ = file.SetColWidth(sheet, "H", "H", 40)
	return nil
}

func (g *Generator) writeStockDetail(file *excelize.File, sheet string, report model.MarketReport, ranked analytics.RankedCompany) error {
	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	rows := stockRowsFor(report, ranked.CompanyID)

	set("A1", "Manufacturer")
	set("B1", stockCompanyTitle(rows, ranked))
	set("A2", "Period start")
	set("B2", formatDate(report.PeriodStart))
	set("A3", "Period end")
	set("B3", formatDate(report.PeriodEnd))
	set("A4", "Listings")
	set("B4", len(rows))
	set("A5", "Listed volume, m3")
	set("B5", ranked.Value.String())

	tableRow := 7
	headers := []string{
		"Date",
		"Diameter type",
		"Diameter, cm",
		"Length, m",
		"Quantity",
		"Volume, m3",
		"Price",
		"Sustainability",
		"Status",
		"Notes",
	}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, tableRow)
		set(cell, header)
	}

	for i, item := range rows {
		row := tableRow + 1 + i
		set(fmt.Sprintf("A%d", row), formatDateTime(item.UploadDate))
		set(fmt.Sprintf("B%d", row), string(item.DiameterType))
		set(fmt.Sprintf("C%d", row), formatDiameterRange(item.DiameterFrom, item.DiameterTo))
		set(fmt.Sprintf("D%d", row), item.Length.String())
		set(fmt.Sprintf("E%d", row), item.Quantity)
		set(fmt.Sprintf("F%d", row), formatVolume(item.CubicMeters))
		set(fmt.Sprintf("G%d", row), item.Price)
		set(fmt.Sprintf("H%d", row), item.SustainabilityInfo)
		set(fmt.Sprintf("I%d", row), string(item.Status))
		set(fmt.Sprintf("J%d", row), formatString(item.Notes))
	}

	_ = file.SetColWidth(sheet, "A", "A", 20)
	_ = file.SetColWidth(sheet, "B", "F", 14)
	_ = file.SetColWidth(sheet, "G", "H", 28)
	_ = file.SetColWidth(sheet, "I", "I", 12)
	_ = file.SetColWidth(sheet, "J", "J", 40)
	return nil
}

func demandRowsFor(report model.MarketReport, companyID uuid.UUID) []model.ReportDemandRow {
	var rows []model.ReportDemandRow
	for _, row := range report.Demand {
		if row.CompanyID != nil && *row.CompanyID == companyID {
			rows = append(rows, row)
		}
	}
	return rows
}

func stockRowsFor(report model.MarketReport, companyID uuid.UUID) []model.ReportStockRow {
	var rows []model.ReportStockRow
	for _, row := range report.Stock {
		if row.CompanyID != nil && *row.CompanyID == companyID {
			rows = append(rows, row)
		}
	}
	return rows
}

// companyTitle prefers the untruncated directory name from the detail rows
// over the ranking label.
func companyTitle(rows []model.ReportDemandRow, ranked analytics.RankedCompany) string {
	for _, row := range rows {
		if row.CompanyName != "" {
			return row.CompanyName
		}
	}
	return ranked.Label
}

func stockCompanyTitle(rows []model.ReportStockRow, ranked analytics.RankedCompany) string {
	for _, row := range rows {
		if row.CompanyName != "" {
			return row.CompanyName
		}
	}
	return ranked.Label
}

func buildSheetName(prefix, name string, id uuid.UUID, used map[string]struct{}) string {
	base := fmt.Sprintf("%s - %s", prefix, strings.TrimSpace(name))
	if strings.TrimSpace(name) == "" {
		base = fmt.Sprintf("%s - %s", prefix, id.String())
	}
	base = sanitizeSheetName(base)

	if len(base) > 31 {
		base = base[:31]
	}

	nameCandidate := base
	counter := 2
	for {
		if _, exists := used[nameCandidate]; !exists {
			return nameCandidate
		}
		suffix := fmt.Sprintf("-%d", counter)
		trimmed := base
		if len(trimmed)+len(suffix) > 31 {
			trimmed = trimmed[:31-len(suffix)]
		}
		nameCandidate = trimmed + suffix
		counter++
	}
}

func sanitizeSheetName(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return "Sheet"
	}

	replacer := strings.NewReplacer(
		"[", "-",
		"]", "-",
		":", "-",
		"*", "-",
		"?", "-",
		"/", "-",
		"\\", "-",
	)
	value = replacer.Replace(value)
	value = strings.TrimSpace(value)
	if value == "" {
		return "Sheet"
	}
	return value
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

func formatDateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02 15:04:05")
}

func formatString(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

func formatVolume(value decimal.Decimal) string {
	return value.StringFixed(3)
}

func formatDiameterRange(from, to decimal.Decimal) string {
	if from.Equal(to) {
		return from.String()
	}
	return fmt.Sprintf("%s-%s", from, to)
}
