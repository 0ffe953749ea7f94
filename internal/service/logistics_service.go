package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nurpe/timber-market/internal/ai"
	"github.com/nurpe/timber-market/internal/model"
)

type LogisticsService struct {
	demand    DemandStore
	stock     StockStore
	companies CompanyStore
	generator ai.Generator
}

type DeliveryPlanInput struct {
	Principal model.Principal
	DemandID  uuid.UUID
	StockID   uuid.UUID
	// Extra instructions forwarded to the planner verbatim.
	Notes string
}

func NewLogisticsService(demand DemandStore, stock StockStore, companies CompanyStore, generator ai.Generator) *LogisticsService {
	return &LogisticsService{
		demand:    demand,
		stock:     stock,
		companies: companies,
		generator: generator,
	}
}

// PlanDelivery asks the text-generation gateway for a delivery plan moving
// one stock listing to one demand request. The response is parsed
// best-effort into labeled sections; the raw text is always preserved.
func (s *LogisticsService) PlanDelivery(ctx context.Context, input DeliveryPlanInput) (*model.DeliveryPlan, error) {
	if !input.Principal.IsAdmin() {
		return nil, ErrPermissionDenied
	}
	if input.DemandID == uuid.Nil || input.StockID == uuid.Nil {
		return nil, fmt.Errorf("%w: demandId and stockId are required", ErrInvalidInput)
	}

	demandItem, err := s.demand.GetByID(ctx, input.DemandID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	stockItem, err := s.stock.GetByID(ctx, input.StockID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}

	pickup := s.describeStop(ctx, stockItem.CompanyID)
	delivery := s.describeStop(ctx, demandItem.CompanyID)

	prompt := buildDeliveryPrompt(*demandItem, *stockItem, pickup, delivery, input.Notes)

	raw, err := s.generator.GenerateText(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAIUnavailable, err)
	}

	text := strings.TrimSpace(ai.StripCodeFences(raw))
	plan := &model.DeliveryPlan{
		Route:    ai.ExtractSection(text, "ROUTE"),
		Schedule: ai.ExtractSection(text, "SCHEDULE"),
		Notes:    ai.ExtractSection(text, "NOTES"),
		Raw:      text,
	}
	plan.Stops = ai.SplitBullets(plan.Route)
	return plan, nil
}

// describeStop renders one end of the route from a weak company reference.
func (s *LogisticsService) describeStop(ctx context.Context, companyID *uuid.UUID) string {
	if companyID == nil {
		return "address not on file"
	}
	company, err := s.companies.GetByID(ctx, *companyID)
	if err != nil {
		return model.UnknownCompanyName
	}
	if company.Address == "" {
		return fmt.Sprintf("%s (address not on file)", company.Name)
	}
	return fmt.Sprintf("%s, %s", company.Name, company.Address)
}

func buildDeliveryPrompt(demand model.DemandItem, stock model.StockItem, pickup, delivery, notes string) string {
	var b strings.Builder
	b.WriteString("You are the logistics planner of a timber trading marketplace.\n")
	b.WriteString("Plan the delivery of one timber lot from the seller to the buyer.\n\n")
	b.WriteString(fmt.Sprintf("Cargo: %s\n", describeFeatures(stock.ProductFeatures)))
	b.WriteString(fmt.Sprintf("Requested as: %s\n", describeFeatures(demand.ProductFeatures)))
	b.WriteString(fmt.Sprintf("Pickup: %s\n", pickup))
	b.WriteString(fmt.Sprintf("Delivery: %s\n", delivery))
	if trimmed := strings.TrimSpace(notes); trimmed != "" {
		b.WriteString(fmt.Sprintf("Additional instructions: %s\n", trimmed))
	}
	b.WriteString("\nStructure the answer with ROUTE:, SCHEDULE: and NOTES: sections.\n")
	b.WriteString("Inside ROUTE list every stop as a bullet point in driving order.\n")
	return b.String()
}
