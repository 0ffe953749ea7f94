package model

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/nurpe/timber-market/internal/analytics"
)

// MarketReport is the aggregate view of the marketplace for one period:
// status breakdowns over demand and stock, the most active companies by
// listed volume, and the detail rows the exports render.
type MarketReport struct {
	PeriodStart time.Time `json:"periodStart"`
	PeriodEnd   time.Time `json:"periodEnd"`
	GeneratedAt time.Time `json:"generatedAt"`

	DemandTotal   int             `json:"demandTotal"`
	StockTotal    int             `json:"stockTotal"`
	TotalDemandM3 decimal.Decimal `json:"totalDemandM3"`
	TotalStockM3  decimal.Decimal `json:"totalStockM3"`

	DemandByStatus   []analytics.StatusRow     `json:"demandByStatus"`
	StockByStatus    []analytics.StatusRow     `json:"stockByStatus"`
	TopCustomers     []analytics.RankedCompany `json:"topCustomers"`
	TopManufacturers []analytics.RankedCompany `json:"topManufacturers"`

	Demand []ReportDemandRow `json:"demand"`
	Stock  []ReportStockRow  `json:"stock"`
}

type ReportDemandRow struct {
	DemandItem
	CompanyName string `json:"companyName"`
}

type ReportStockRow struct {
	StockItem
	CompanyName string `json:"companyName"`
}
