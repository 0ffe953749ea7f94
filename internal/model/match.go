package model

import "github.com/google/uuid"

// UnknownCompanyName renders wherever a weak company reference does not
// resolve. Lookup misses are displayable, never fatal.
const UnknownCompanyName = "Unknown company"

// MatchProposal is one AI-suggested demand/stock pairing.
type MatchProposal struct {
	DemandID        uuid.UUID `json:"demandId"`
	StockID         uuid.UUID `json:"stockId"`
	DemandCompany   string    `json:"demandCompany"`
	StockCompany    string    `json:"stockCompany"`
	Reason          string    `json:"reason"`
	MatchStrength   string    `json:"matchStrength"`
	SimilarityScore float64   `json:"similarityScore"`
}

// MatchResult carries either decoded proposals or, when the AI payload does
// not parse as the expected schema, the raw response text.
type MatchResult struct {
	Proposals []MatchProposal `json:"proposals,omitempty"`
	RawText   string          `json:"rawText,omitempty"`
}

// DeliveryPlan is the parsed shape of an AI delivery-planning response.
// Raw always holds the full response; the labeled fields are best-effort
// extractions and stay empty when the model skipped a section.
type DeliveryPlan struct {
	Route    string   `json:"route"`
	Stops    []string `json:"stops,omitempty"`
	Schedule string   `json:"schedule"`
	Notes    string   `json:"notes"`
	Raw      string   `json:"raw"`
}
