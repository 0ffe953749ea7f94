package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nurpe/timber-market/internal/analytics"
	"github.com/nurpe/timber-market/internal/model"
	"github.com/nurpe/timber-market/internal/repository"
)

type ExcelGenerator interface {
	Generate(report model.MarketReport) ([]byte, error)
}

type PDFGenerator interface {
	Generate(report model.MarketReport) ([]byte, error)
}

type ReportService struct {
	demand    DemandStore
	stock     StockStore
	companies CompanyStore
	excel     ExcelGenerator
	pdf       PDFGenerator
	topN      int
}

type MarketReportInput struct {
	Principal model.Principal
	// Zero period bounds mean the whole market history. PeriodEnd is
	// inclusive to the day.
	PeriodStart time.Time
	PeriodEnd   time.Time
}

type ExportResult struct {
	FileName string
	Content  []byte
}

func NewReportService(demand DemandStore, stock StockStore, companies CompanyStore, excel ExcelGenerator, pdf PDFGenerator, topN int) *ReportService {
	if topN <= 0 {
		topN = analytics.DefaultTopN
	}
	return &ReportService{
		demand:    demand,
		stock:     stock,
		companies: companies,
		excel:     excel,
		pdf:       pdf,
		topN:      topN,
	}
}

// BuildMarketReport aggregates the marketplace for one period. The report
// is readable by every authenticated caller; only the exports are
// restricted.
func (s *ReportService) BuildMarketReport(ctx context.Context, input MarketReportInput) (*model.MarketReport, error) {
	periodStart := dateOnly(input.PeriodStart)
	periodEnd := dateOnly(input.PeriodEnd)
	if !periodStart.IsZero() && !periodEnd.IsZero() && periodStart.After(periodEnd) {
		return nil, fmt.Errorf("%w: period_start must be before or equal to period_end", ErrInvalidInput)
	}
	var endExclusive time.Time
	if !periodEnd.IsZero() {
		endExclusive = periodEnd.Add(24 * time.Hour)
	}

	demand, err := s.demand.List(ctx, repository.DemandFilter{From: periodStart, To: endExclusive})
	if err != nil {
		return nil, err
	}
	stock, err := s.stock.List(ctx, repository.StockFilter{From: periodStart, To: endExclusive})
	if err != nil {
		return nil, err
	}
	companies, err := s.companies.List(ctx, nil)
	if err != nil {
		return nil, err
	}

	names := make(map[uuid.UUID]string, len(companies))
	var customers, manufacturers []analytics.CompanyRef
	for _, company := range companies {
		names[company.ID] = company.Name
		ref := analytics.CompanyRef{ID: company.ID, Name: company.Name}
		switch company.Role {
		case model.CompanyRoleCustomer:
			customers = append(customers, ref)
		case model.CompanyRoleManufacturer:
			manufacturers = append(manufacturers, ref)
		}
	}

	demandStatuses := make([]string, len(demand))
	demandVolumes := make([]analytics.VolumeRecord, len(demand))
	totalDemand := decimal.Zero
	for i, item := range demand {
		demandStatuses[i] = string(item.Status)
		demandVolumes[i] = analytics.VolumeRecord{CompanyID: companyIDOrNil(item.CompanyID), CubicMeters: item.CubicMeters}
		totalDemand = totalDemand.Add(item.CubicMeters)
	}

	stockStatuses := make([]string, len(stock))
	stockVolumes := make([]analytics.VolumeRecord, len(stock))
	totalStock := decimal.Zero
	for i, item := range stock {
		stockStatuses[i] = string(item.Status)
		stockVolumes[i] = analytics.VolumeRecord{CompanyID: companyIDOrNil(item.CompanyID), CubicMeters: item.CubicMeters}
		totalStock = totalStock.Add(item.CubicMeters)
	}

	demandRows, demandTotal := analytics.StatusBreakdown(demandStatusNames(), demandStatuses)
	stockRows, stockTotal := analytics.StatusBreakdown(stockStatusNames(), stockStatuses)

	report := &model.MarketReport{
		PeriodStart:      periodStart,
		PeriodEnd:        periodEnd,
		GeneratedAt:      time.Now().UTC(),
		DemandTotal:      demandTotal,
		StockTotal:       stockTotal,
		TotalDemandM3:    totalDemand.Round(3),
		TotalStockM3:     totalStock.Round(3),
		DemandByStatus:   demandRows,
		StockByStatus:    stockRows,
		TopCustomers:     analytics.TopCompaniesByVolume(customers, demandVolumes, s.topN),
		TopManufacturers: analytics.TopCompaniesByVolume(manufacturers, stockVolumes, s.topN),
		Demand:           make([]model.ReportDemandRow, 0, len(demand)),
		Stock:            make([]model.ReportStockRow, 0, len(stock)),
	}

	for _, item := range demand {
		report.Demand = append(report.Demand, model.ReportDemandRow{
			DemandItem:  item,
			CompanyName: companyDisplayName(names, item.CompanyID),
		})
	}
	for _, item := range stock {
		report.Stock = append(report.Stock, model.ReportStockRow{
			StockItem:   item,
			CompanyName: companyDisplayName(names, item.CompanyID),
		})
	}

	return report, nil
}

func (s *ReportService) ExportExcel(ctx context.Context, input MarketReportInput) (*ExportResult, error) {
	if !input.Principal.IsAdmin() {
		return nil, ErrPermissionDenied
	}
	report, err := s.BuildMarketReport(ctx, input)
	if err != nil {
		return nil, err
	}
	content, err := s.excel.Generate(*report)
	if err != nil {
		return nil, err
	}
	return &ExportResult{FileName: buildReportFileName(*report, "xlsx"), Content: content}, nil
}

func (s *ReportService) ExportPDF(ctx context.Context, input MarketReportInput) (*ExportResult, error) {
	if !input.Principal.IsAdmin() {
		return nil, ErrPermissionDenied
	}
	report, err := s.BuildMarketReport(ctx, input)
	if err != nil {
		return nil, err
	}
	content, err := s.pdf.Generate(*report)
	if err != nil {
		return nil, err
	}
	return &ExportResult{FileName: buildReportFileName(*report, "pdf"), Content: content}, nil
}

func buildReportFileName(report model.MarketReport, extension string) string {
	period := "all"
	if !report.PeriodStart.IsZero() || !report.PeriodEnd.IsZero() {
		start := "open"
		if !report.PeriodStart.IsZero() {
			start = report.PeriodStart.Format("20060102")
		}
		end := "open"
		if !report.PeriodEnd.IsZero() {
			end = report.PeriodEnd.Format("20060102")
		}
		period = fmt.Sprintf("%s-%s", start, end)
	}
	return fmt.Sprintf("market-report-%s.%s", period, extension)
}

func companyIDOrNil(id *uuid.UUID) uuid.UUID {
	if id == nil {
		return uuid.Nil
	}
	return *id
}

// companyDisplayName resolves a weak company reference for rendering.
// Unowned rows stay blank; a dangling id renders as the unknown marker.
func companyDisplayName(names map[uuid.UUID]string, id *uuid.UUID) string {
	if id == nil {
		return ""
	}
	if name, ok := names[*id]; ok {
		return name
	}
	return model.UnknownCompanyName
}

func demandStatusNames() []string {
	names := make([]string, len(model.DemandStatuses))
	for i, status := range model.DemandStatuses {
		names[i] = string(status)
	}
	return names
}

func stockStatusNames() []string {
	names := make([]string, len(model.StockStatuses))
	for i, status := range model.StockStatuses {
		names[i] = string(status)
	}
	return names
}

func dateOnly(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
