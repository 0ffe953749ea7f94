package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nurpe/timber-market/internal/model"
)

func TestCreateStock(t *testing.T) {
	store := &memStockStore{}
	svc := NewStockService(store)
	companyID := uuid.New()

	item, err := svc.Create(context.Background(), CreateStockInput{
		Principal:          manufacturerPrincipal(companyID),
		DiameterType:       "BUTT",
		DiameterFrom:       "30",
		DiameterTo:         "30",
		Length:             "5",
		Quantity:           "10",
		Price:              " 95 EUR/m3 ex works ",
		SustainabilityInfo: "FSC 100%",
	})
	require.NoError(t, err)

	assert.Equal(t, "3.534", item.CubicMeters.String())
	assert.Equal(t, model.StockStatusAvailable, item.Status)
	assert.Equal(t, "95 EUR/m3 ex works", item.Price)
	assert.Equal(t, "FSC 100%", item.SustainabilityInfo)
	require.NotNil(t, item.CompanyID)
	assert.Equal(t, companyID, *item.CompanyID)

	_, err = svc.Create(context.Background(), CreateStockInput{
		Principal: customerPrincipal(companyID),
	})
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestListStockScopesByRole(t *testing.T) {
	companyA := uuid.New()
	companyB := uuid.New()
	store := &memStockStore{items: []model.StockItem{
		{ID: uuid.New(), CompanyID: ref(companyA), Status: model.StockStatusAvailable, UploadDate: time.Now()},
		{ID: uuid.New(), CompanyID: ref(companyA), Status: model.StockStatusSold, UploadDate: time.Now()},
		{ID: uuid.New(), CompanyID: ref(companyB), Status: model.StockStatusReserved, UploadDate: time.Now()},
	}}
	svc := NewStockService(store)

	t.Run("admin sees everything", func(t *testing.T) {
		items, err := svc.List(context.Background(), ListStockInput{Principal: adminPrincipal()})
		require.NoError(t, err)
		assert.Len(t, items, 3)
	})

	t.Run("manufacturer sees own listings in any status", func(t *testing.T) {
		items, err := svc.List(context.Background(), ListStockInput{Principal: manufacturerPrincipal(companyA)})
		require.NoError(t, err)
		assert.Len(t, items, 2)
	})

	t.Run("customer browses available stock only", func(t *testing.T) {
		items, err := svc.List(context.Background(), ListStockInput{Principal: customerPrincipal(uuid.New())})
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, model.StockStatusAvailable, items[0].Status)
	})

	t.Run("customer asking for sold stock gets nothing", func(t *testing.T) {
		status := model.StockStatusSold
		items, err := svc.List(context.Background(), ListStockInput{
			Principal: customerPrincipal(uuid.New()),
			Status:    &status,
		})
		require.NoError(t, err)
		assert.Empty(t, items)
	})
}

func TestUpdateStockStatusRoundTrips(t *testing.T) {
	itemID := uuid.New()
	store := &memStockStore{items: []model.StockItem{
		{ID: itemID, Status: model.StockStatusAvailable, UploadDate: time.Now()},
	}}
	svc := NewStockService(store)

	item, err := svc.UpdateStatus(context.Background(), adminPrincipal(), itemID, model.StockStatusSold)
	require.NoError(t, err)
	assert.Equal(t, model.StockStatusSold, item.Status)

	// sold stock may come back on the market
	item, err = svc.UpdateStatus(context.Background(), adminPrincipal(), itemID, model.StockStatusAvailable)
	require.NoError(t, err)
	assert.Equal(t, model.StockStatusAvailable, item.Status)

	_, err = svc.UpdateStatus(context.Background(), manufacturerPrincipal(uuid.New()), itemID, model.StockStatusSold)
	assert.ErrorIs(t, err, ErrPermissionDenied)
}
