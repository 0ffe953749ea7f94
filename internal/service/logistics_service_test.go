package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nurpe/timber-market/internal/model"
)

const deliveryResponse = `ROUTE:
- Load at Beta Sawmill, Mill street 9, Parnu
- Weigh station on highway 4
- Unload at Alpha Logs, Sawmill road 1, Tartu

SCHEDULE: pickup Monday 08:00, delivery Monday 14:30

NOTES: single flatbed truck is enough for 7.5 m3.`

func TestPlanDelivery(t *testing.T) {
	fixture := newMatchFixture()
	generator := &stubGenerator{response: "```\n" + deliveryResponse + "\n```"}
	svc := NewLogisticsService(fixture.demand, fixture.stock, fixture.companies, generator)

	plan, err := svc.PlanDelivery(context.Background(), DeliveryPlanInput{
		Principal: adminPrincipal(),
		DemandID:  fixture.demandID,
		StockID:   fixture.stockID,
		Notes:     "avoid gravel roads",
	})
	require.NoError(t, err)

	require.Len(t, plan.Stops, 3)
	assert.Equal(t, "Load at Beta Sawmill, Mill street 9, Parnu", plan.Stops[0])
	assert.Equal(t, "Unload at Alpha Logs, Sawmill road 1, Tartu", plan.Stops[2])
	assert.Equal(t, "pickup Monday 08:00, delivery Monday 14:30", plan.Schedule)
	assert.Equal(t, "single flatbed truck is enough for 7.5 m3.", plan.Notes)
	assert.Contains(t, plan.Raw, "ROUTE:")

	require.Len(t, generator.prompts, 1)
	prompt := generator.prompts[0]
	assert.Contains(t, prompt, "Beta Sawmill, Mill street 9, Parnu")
	assert.Contains(t, prompt, "Alpha Logs, Sawmill road 1, Tartu")
	assert.Contains(t, prompt, "avoid gravel roads")
}

func TestPlanDeliveryHandlesDanglingCompany(t *testing.T) {
	fixture := newMatchFixture()
	fixture.companies.companies = nil
	generator := &stubGenerator{response: deliveryResponse}
	svc := NewLogisticsService(fixture.demand, fixture.stock, fixture.companies, generator)

	_, err := svc.PlanDelivery(context.Background(), DeliveryPlanInput{
		Principal: adminPrincipal(),
		DemandID:  fixture.demandID,
		StockID:   fixture.stockID,
	})
	require.NoError(t, err)

	require.Len(t, generator.prompts, 1)
	assert.Contains(t, generator.prompts[0], model.UnknownCompanyName)
}

func TestPlanDeliveryValidation(t *testing.T) {
	fixture := newMatchFixture()
	svc := NewLogisticsService(fixture.demand, fixture.stock, fixture.companies, &stubGenerator{response: deliveryResponse})

	_, err := svc.PlanDelivery(context.Background(), DeliveryPlanInput{
		Principal: adminPrincipal(),
		StockID:   fixture.stockID,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.PlanDelivery(context.Background(), DeliveryPlanInput{
		Principal: adminPrincipal(),
		DemandID:  uuid.New(),
		StockID:   fixture.stockID,
	})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.PlanDelivery(context.Background(), DeliveryPlanInput{
		Principal: manufacturerPrincipal(uuid.New()),
		DemandID:  fixture.demandID,
		StockID:   fixture.stockID,
	})
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestPlanDeliveryGatewayDown(t *testing.T) {
	fixture := newMatchFixture()
	svc := NewLogisticsService(fixture.demand, fixture.stock, fixture.companies, &stubGenerator{err: errors.New("timeout")})

	_, err := svc.PlanDelivery(context.Background(), DeliveryPlanInput{
		Principal: adminPrincipal(),
		DemandID:  fixture.demandID,
		StockID:   fixture.stockID,
	})
	assert.ErrorIs(t, err, ErrAIUnavailable)
}

func TestPlanDeliveryKeepsRawOnUnstructuredAnswer(t *testing.T) {
	fixture := newMatchFixture()
	svc := NewLogisticsService(fixture.demand, fixture.stock, fixture.companies,
		&stubGenerator{response: "Drive straight from Parnu to Tartu, about two hours."})

	plan, err := svc.PlanDelivery(context.Background(), DeliveryPlanInput{
		Principal: adminPrincipal(),
		DemandID:  fixture.demandID,
		StockID:   fixture.stockID,
	})
	require.NoError(t, err)
	assert.Empty(t, plan.Route)
	assert.Empty(t, plan.Stops)
	assert.Equal(t, "Drive straight from Parnu to Tartu, about two hours.", plan.Raw)
}
