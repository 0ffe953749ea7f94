package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nurpe/timber-market/internal/model"
)

type matchFixture struct {
	demand    *memDemandStore
	stock     *memStockStore
	companies *memCompanyStore
	demandID  uuid.UUID
	stockID   uuid.UUID
}

func newMatchFixture() matchFixture {
	buyerID := uuid.New()
	sellerID := uuid.New()
	demandID := uuid.New()
	stockID := uuid.New()

	return matchFixture{
		demandID: demandID,
		stockID:  stockID,
		companies: &memCompanyStore{companies: []model.Company{
			{ID: buyerID, Name: "Alpha Logs", Role: model.CompanyRoleCustomer, Address: "Sawmill road 1, Tartu"},
			{ID: sellerID, Name: "Beta Sawmill", Role: model.CompanyRoleManufacturer, Address: "Mill street 9, Parnu"},
		}},
		demand: &memDemandStore{items: []model.DemandItem{
			{ID: demandID, CompanyID: ref(buyerID), Status: model.DemandStatusReceived, SubmissionDate: time.Now(),
				ProductFeatures: model.ProductFeatures{DiameterType: model.DiameterTypeMid, CubicMeters: volume("7.068")}},
		}},
		stock: &memStockStore{items: []model.StockItem{
			{ID: stockID, CompanyID: ref(sellerID), Status: model.StockStatusAvailable, UploadDate: time.Now(),
				ProductFeatures: model.ProductFeatures{DiameterType: model.DiameterTypeMid, CubicMeters: volume("7.5")},
				Price:           "95 EUR/m3"},
		}},
	}
}

func TestProposeMatches(t *testing.T) {
	fixture := newMatchFixture()
	generator := &stubGenerator{response: fmt.Sprintf("```json\n"+
		`[{"demandId": %q, "stockId": %q, "reason": "diameter and volume line up", "matchStrength": "HIGH", "similarityScore": 0.93},`+
		`{"demandId": %q, "stockId": %q, "reason": "hallucinated pair", "matchStrength": "LOW", "similarityScore": 0.1},`+
		`{"demandId": "not-a-uuid", "stockId": %q, "reason": "broken id", "matchStrength": "LOW", "similarityScore": 0.2}]`+
		"\n```", fixture.demandID, fixture.stockID, uuid.New(), uuid.New(), fixture.stockID)}
	svc := NewMatchService(fixture.demand, fixture.stock, fixture.companies, generator)

	result, err := svc.ProposeMatches(context.Background(), MatchmakingInput{Principal: adminPrincipal()})
	require.NoError(t, err)
	require.Len(t, result.Proposals, 1, "unknown and unparseable ids must be dropped")
	assert.Empty(t, result.RawText)

	proposal := result.Proposals[0]
	assert.Equal(t, fixture.demandID, proposal.DemandID)
	assert.Equal(t, fixture.stockID, proposal.StockID)
	assert.Equal(t, "Alpha Logs", proposal.DemandCompany)
	assert.Equal(t, "Beta Sawmill", proposal.StockCompany)
	assert.Equal(t, "HIGH", proposal.MatchStrength)
	assert.InDelta(t, 0.93, proposal.SimilarityScore, 1e-9)

	require.Len(t, generator.prompts, 1)
	prompt := generator.prompts[0]
	assert.Contains(t, prompt, fixture.demandID.String())
	assert.Contains(t, prompt, fixture.stockID.String())
	assert.Contains(t, prompt, "JSON array")
	assert.Contains(t, prompt, "Most active manufacturers by listed volume")
	assert.Contains(t, prompt, "95 EUR/m3")
}

func TestProposeMatchesFallsBackToRawText(t *testing.T) {
	fixture := newMatchFixture()
	generator := &stubGenerator{response: "I could not find any sensible pairings this week."}
	svc := NewMatchService(fixture.demand, fixture.stock, fixture.companies, generator)

	result, err := svc.ProposeMatches(context.Background(), MatchmakingInput{Principal: adminPrincipal()})
	require.NoError(t, err)
	assert.Empty(t, result.Proposals)
	assert.Equal(t, "I could not find any sensible pairings this week.", result.RawText)
}

func TestProposeMatchesGatewayDown(t *testing.T) {
	fixture := newMatchFixture()
	generator := &stubGenerator{err: errors.New("connection refused")}
	svc := NewMatchService(fixture.demand, fixture.stock, fixture.companies, generator)

	_, err := svc.ProposeMatches(context.Background(), MatchmakingInput{Principal: adminPrincipal()})
	assert.ErrorIs(t, err, ErrAIUnavailable)
}

func TestProposeMatchesNeedsBothSides(t *testing.T) {
	fixture := newMatchFixture()
	fixture.stock.items = nil
	svc := NewMatchService(fixture.demand, fixture.stock, fixture.companies, &stubGenerator{response: "[]"})

	_, err := svc.ProposeMatches(context.Background(), MatchmakingInput{Principal: adminPrincipal()})
	assert.ErrorIs(t, err, ErrNoListings)
}

func TestProposeMatchesAdminOnly(t *testing.T) {
	fixture := newMatchFixture()
	svc := NewMatchService(fixture.demand, fixture.stock, fixture.companies, &stubGenerator{response: "[]"})

	_, err := svc.ProposeMatches(context.Background(), MatchmakingInput{Principal: customerPrincipal(uuid.New())})
	assert.ErrorIs(t, err, ErrPermissionDenied)
}
