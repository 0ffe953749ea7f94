package model

import (
	"time"

	"github.com/google/uuid"
)

type DemandStatus string

const (
	DemandStatusReceived   DemandStatus = "RECEIVED"
	DemandStatusProcessing DemandStatus = "PROCESSING"
	DemandStatusCompleted  DemandStatus = "COMPLETED"
	DemandStatusCancelled  DemandStatus = "CANCELLED"
)

// DemandStatuses lists every demand status in canonical declaration order.
// Status breakdowns render rows in this order.
var DemandStatuses = []DemandStatus{
	DemandStatusReceived,
	DemandStatusProcessing,
	DemandStatusCompleted,
	DemandStatusCancelled,
}

type DemandItem struct {
	ID              uuid.UUID       `json:"id"`
	CompanyID       *uuid.UUID      `json:"companyId,omitempty"`
	ProductFeatures `gorm:"embedded"`
	SubmissionDate  time.Time    `json:"submissionDate"`
	Status          DemandStatus `json:"status"`
}
