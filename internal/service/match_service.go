package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/nurpe/timber-market/internal/ai"
	"github.com/nurpe/timber-market/internal/analytics"
	"github.com/nurpe/timber-market/internal/model"
	"github.com/nurpe/timber-market/internal/repository"
)

type MatchService struct {
	demand    DemandStore
	stock     StockStore
	companies CompanyStore
	generator ai.Generator
}

type MatchmakingInput struct {
	Principal model.Principal
}

func NewMatchService(demand DemandStore, stock StockStore, companies CompanyStore, generator ai.Generator) *MatchService {
	return &MatchService{
		demand:    demand,
		stock:     stock,
		companies: companies,
		generator: generator,
	}
}

// ProposeMatches asks the text-generation gateway to pair open demand with
// available stock. Responses that do not decode as the expected JSON schema
// are returned as raw text instead of failing the request; proposals that
// reference ids not on the market are dropped.
func (s *MatchService) ProposeMatches(ctx context.Context, input MatchmakingInput) (*model.MatchResult, error) {
	if !input.Principal.IsAdmin() {
		return nil, ErrPermissionDenied
	}

	demand, err := s.demand.List(ctx, repository.DemandFilter{Statuses: openDemandStatuses})
	if err != nil {
		return nil, err
	}
	stock, err := s.stock.List(ctx, repository.StockFilter{Statuses: []model.StockStatus{model.StockStatusAvailable}})
	if err != nil {
		return nil, err
	}
	if len(demand) == 0 || len(stock) == 0 {
		return nil, ErrNoListings
	}

	companies, err := s.companies.List(ctx, nil)
	if err != nil {
		return nil, err
	}
	names := make(map[uuid.UUID]string, len(companies))
	manufacturers := make([]analytics.CompanyRef, 0, len(companies))
	for _, company := range companies {
		names[company.ID] = company.Name
		if company.Role == model.CompanyRoleManufacturer {
			manufacturers = append(manufacturers, analytics.CompanyRef{ID: company.ID, Name: company.Name})
		}
	}

	prompt := buildMatchPrompt(demand, stock, names, manufacturers)

	raw, err := s.generator.GenerateText(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAIUnavailable, err)
	}

	payloads, err := ai.DecodeMatchProposals(raw)
	if err != nil {
		return &model.MatchResult{RawText: strings.TrimSpace(ai.StripCodeFences(raw))}, nil
	}

	demandByID := make(map[uuid.UUID]model.DemandItem, len(demand))
	for _, item := range demand {
		demandByID[item.ID] = item
	}
	stockByID := make(map[uuid.UUID]model.StockItem, len(stock))
	for _, item := range stock {
		stockByID[item.ID] = item
	}

	proposals := make([]model.MatchProposal, 0, len(payloads))
	for _, payload := range payloads {
		demandID, err := uuid.Parse(payload.DemandID)
		if err != nil {
			continue
		}
		stockID, err := uuid.Parse(payload.StockID)
		if err != nil {
			continue
		}
		demandItem, ok := demandByID[demandID]
		if !ok {
			continue
		}
		stockItem, ok := stockByID[stockID]
		if !ok {
			continue
		}
		proposals = append(proposals, model.MatchProposal{
			DemandID:        demandID,
			StockID:         stockID,
			DemandCompany:   companyDisplayName(names, demandItem.CompanyID),
			StockCompany:    companyDisplayName(names, stockItem.CompanyID),
			Reason:          payload.Reason,
			MatchStrength:   payload.MatchStrength,
			SimilarityScore: payload.SimilarityScore,
		})
	}

	return &model.MatchResult{Proposals: proposals}, nil
}

func buildMatchPrompt(demand []model.DemandItem, stock []model.StockItem, names map[uuid.UUID]string, manufacturers []analytics.CompanyRef) string {
	var b strings.Builder
	b.WriteString("You are the matchmaking assistant of a timber trading marketplace.\n")
	b.WriteString("Pair open demand requests with available stock listings.\n\n")

	b.WriteString(fmt.Sprintf("Open demand (%d requests):\n", len(demand)))
	for _, item := range demand {
		b.WriteString(fmt.Sprintf("- id=%s company=%q %s\n",
			item.ID, companyDisplayName(names, item.CompanyID), describeFeatures(item.ProductFeatures)))
	}

	b.WriteString(fmt.Sprintf("\nAvailable stock (%d listings):\n", len(stock)))
	for _, item := range stock {
		line := fmt.Sprintf("- id=%s company=%q %s", item.ID, companyDisplayName(names, item.CompanyID), describeFeatures(item.ProductFeatures))
		if item.Price != "" {
			line += fmt.Sprintf(" price=%q", item.Price)
		}
		if item.SustainabilityInfo != "" {
			line += fmt.Sprintf(" sustainability=%q", item.SustainabilityInfo)
		}
		b.WriteString(line + "\n")
	}

	stockVolumes := make([]analytics.VolumeRecord, len(stock))
	for i, item := range stock {
		stockVolumes[i] = analytics.VolumeRecord{CompanyID: companyIDOrNil(item.CompanyID), CubicMeters: item.CubicMeters}
	}
	if ranked := analytics.TopCompaniesByVolume(manufacturers, stockVolumes, analytics.DefaultTopN); len(ranked) > 0 {
		b.WriteString("\nMost active manufacturers by listed volume:\n")
		for _, entry := range ranked {
			b.WriteString(fmt.Sprintf("- %s (%s m3)\n", entry.Label, entry.Value))
		}
	}

	b.WriteString("\nReply with only a JSON array. Each element must be an object with the fields ")
	b.WriteString(`"demandId" (string), "stockId" (string), "reason" (string), `)
	b.WriteString(`"matchStrength" ("HIGH", "MEDIUM" or "LOW") and "similarityScore" (number between 0 and 1).`)
	b.WriteString(" Propose at most one stock listing per demand request and skip pairs that make no commercial sense.\n")
	return b.String()
}

func describeFeatures(features model.ProductFeatures) string {
	description := fmt.Sprintf("diameter %s-%s cm (%s) length %s m quantity %d volume %s m3",
		features.DiameterFrom, features.DiameterTo, features.DiameterType,
		features.Length, features.Quantity, features.CubicMeters)
	if features.Notes != nil && *features.Notes != "" {
		description += fmt.Sprintf(" notes=%q", *features.Notes)
	}
	return description
}
