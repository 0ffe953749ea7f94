package ai

import (
	"errors"
	"testing"
)

func TestDecodeMatchProposals(t *testing.T) {
	raw := "```json\n" +
		`[{"demandId":"d-1","stockId":"s-9","reason":"diameter overlap","matchStrength":"HIGH","similarityScore":0.92},` +
		`{"demandId":"d-2","stockId":"s-3","reason":"same length class","matchStrength":"LOW","similarityScore":0.41}]` +
		"\n```"

	proposals, err := DecodeMatchProposals(raw)
	if err != nil {
		t.Fatalf("DecodeMatchProposals: %v", err)
	}
	if len(proposals) != 2 {
		t.Fatalf("proposals = %d, want 2", len(proposals))
	}
	if proposals[0].DemandID != "d-1" || proposals[0].StockID != "s-9" {
		t.Fatalf("first proposal = %+v", proposals[0])
	}
	if proposals[0].SimilarityScore != 0.92 || proposals[0].MatchStrength != "HIGH" {
		t.Fatalf("first proposal = %+v", proposals[0])
	}
}

func TestDecodeMatchProposalsWrappedInProse(t *testing.T) {
	raw := "Sure! Based on the listings, here are my pairings:\n\n" +
		`[{"demandId":"d-1","stockId":"s-1","reason":"ok","matchStrength":"MEDIUM","similarityScore":0.5}]` +
		"\n\nLet me know if you need more detail."

	proposals, err := DecodeMatchProposals(raw)
	if err != nil {
		t.Fatalf("DecodeMatchProposals: %v", err)
	}
	if len(proposals) != 1 || proposals[0].DemandID != "d-1" {
		t.Fatalf("proposals = %+v", proposals)
	}
}

func TestDecodeMatchProposalsFailsClosed(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want error
	}{
		{name: "empty", raw: "   ", want: ErrEmptyResponse},
		{name: "prose only", raw: "I could not find any good matches today.", want: ErrMalformedResponse},
		{name: "object not array", raw: `{"demandId":"d","stockId":"s"}`, want: ErrMalformedResponse},
		{
			name: "unknown field",
			raw:  `[{"demandId":"d","stockId":"s","confidence":1}]`,
			want: ErrMalformedResponse,
		},
		{
			name: "missing stock id",
			raw:  `[{"demandId":"d","stockId":"","reason":"r","matchStrength":"HIGH","similarityScore":1}]`,
			want: ErrMalformedResponse,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodeMatchProposals(tc.raw)
			if !errors.Is(err, tc.want) {
				t.Fatalf("err = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestFindJSONArraySkipsBracketsInStrings(t *testing.T) {
	input := `prefix ["a [weird] string", 2] suffix`
	payload, ok := findJSONArray(input)
	if !ok {
		t.Fatal("no array found")
	}
	if payload != `["a [weird] string", 2]` {
		t.Fatalf("payload = %q", payload)
	}
}
