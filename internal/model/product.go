package model

import "github.com/shopspring/decimal"

type DiameterType string

const (
	DiameterTypeTop  DiameterType = "TOP"
	DiameterTypeMid  DiameterType = "MID"
	DiameterTypeButt DiameterType = "BUTT"
)

// ProductFeatures describes one listed timber lot. CubicMeters is derived
// from the other four numeric fields and is recomputed by the service layer
// on every write; client-supplied values are ignored.
type ProductFeatures struct {
	DiameterType DiameterType    `json:"diameterType"`
	DiameterFrom decimal.Decimal `json:"diameterFrom"`
	DiameterTo   decimal.Decimal `json:"diameterTo"`
	Length       decimal.Decimal `json:"length"`
	Quantity     int64           `json:"quantity"`
	CubicMeters  decimal.Decimal `json:"cubicMeters"`
	Notes        *string         `json:"notes,omitempty"`
}
