package ai

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrEmptyResponse     = errors.New("empty ai response")
	ErrMalformedResponse = errors.New("response is not the expected json payload")
)

// MatchProposalPayload mirrors the JSON array the matchmaking prompt asks
// the model for. Ids stay strings here; the service resolves them against
// real items.
type MatchProposalPayload struct {
	DemandID        string  `json:"demandId"`
	StockID         string  `json:"stockId"`
	Reason          string  `json:"reason"`
	MatchStrength   string  `json:"matchStrength"`
	SimilarityScore float64 `json:"similarityScore"`
}

// DecodeMatchProposals parses a matchmaking response: code fences are
// stripped, the first balanced JSON array is located even when wrapped in
// prose, and the payload is decoded strictly (unknown fields are an error).
// Failures come back sentinel-wrapped so callers can fall back to showing
// the raw text instead of crashing on a creative model.
func DecodeMatchProposals(raw string) ([]MatchProposalPayload, error) {
	cleaned := StripCodeFences(raw)
	if cleaned == "" {
		return nil, ErrEmptyResponse
	}

	payload, ok := findJSONArray(cleaned)
	if !ok {
		return nil, fmt.Errorf("%w: no json array found", ErrMalformedResponse)
	}

	decoder := json.NewDecoder(strings.NewReader(payload))
	decoder.DisallowUnknownFields()

	var proposals []MatchProposalPayload
	if err := decoder.Decode(&proposals); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	for i, proposal := range proposals {
		if strings.TrimSpace(proposal.DemandID) == "" || strings.TrimSpace(proposal.StockID) == "" {
			return nil, fmt.Errorf("%w: proposal %d is missing item ids", ErrMalformedResponse, i)
		}
	}
	return proposals, nil
}

// findJSONArray returns the first balanced top-level JSON array, ignoring
// brackets inside strings.
func findJSONArray(input string) (string, bool) {
	start := -1
	depth := 0
	inString := false
	escaped := false

	for i := 0; i < len(input); i++ {
		ch := input[i]
		if escaped {
			escaped = false
			continue
		}
		if ch == '\\' && inString {
			escaped = true
			continue
		}
		if ch == '"' {
			inString = !inString
			continue
		}
		if inString {
			continue
		}
		switch ch {
		case '[':
			if depth == 0 {
				start = i
			}
			depth++
		case ']':
			if depth == 0 {
				continue
			}
			depth--
			if depth == 0 && start != -1 {
				candidate := input[start : i+1]
				if json.Valid([]byte(candidate)) {
					return candidate, true
				}
				start = -1
			}
		}
	}
	return "", false
}
