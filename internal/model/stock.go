package model

import (
	"time"

	"github.com/google/uuid"
)

type StockStatus string

const (
	StockStatusAvailable StockStatus = "AVAILABLE"
	StockStatusReserved  StockStatus = "RESERVED"
	StockStatusSold      StockStatus = "SOLD"
)

// StockStatuses lists every stock status in canonical declaration order.
var StockStatuses = []StockStatus{
	StockStatusAvailable,
	StockStatusReserved,
	StockStatusSold,
}

type StockItem struct {
	ID              uuid.UUID  `json:"id"`
	CompanyID       *uuid.UUID `json:"companyId,omitempty"`
	ProductFeatures `gorm:"embedded"`
	// Price is free text in the source data ("120 EUR/m3 ex works"), not a number.
	Price              string      `json:"price"`
	SustainabilityInfo string      `json:"sustainabilityInfo"`
	UploadDate         time.Time   `json:"uploadDate"`
	Status             StockStatus `json:"status"`
}
