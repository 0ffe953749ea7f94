package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nurpe/timber-market/internal/model"
	"github.com/nurpe/timber-market/internal/repository"
)

type StockService struct {
	repo StockStore
}

type CreateStockInput struct {
	Principal model.Principal
	// CompanyID is honored for admins only; manufacturers always list for
	// their own company.
	CompanyID          *uuid.UUID
	DiameterType       string
	DiameterFrom       string
	DiameterTo         string
	Length             string
	Quantity           string
	Price              string
	SustainabilityInfo string
	Notes              string
}

type ListStockInput struct {
	Principal model.Principal
	Status    *model.StockStatus
}

func NewStockService(repo StockStore) *StockService {
	return &StockService{repo: repo}
}

func (s *StockService) Create(ctx context.Context, input CreateStockInput) (*model.StockItem, error) {
	if input.Principal.IsCustomer() {
		return nil, ErrPermissionDenied
	}

	companyID := input.CompanyID
	if !input.Principal.IsAdmin() {
		companyID = nil
		if input.Principal.HasCompany() {
			id := input.Principal.CompanyID
			companyID = &id
		}
	}

	features, err := parseFeatures(input.DiameterType, input.DiameterFrom, input.DiameterTo, input.Length, input.Quantity, input.Notes)
	if err != nil {
		return nil, err
	}

	item := model.StockItem{
		CompanyID:          companyID,
		ProductFeatures:    features,
		Price:              strings.TrimSpace(input.Price),
		SustainabilityInfo: strings.TrimSpace(input.SustainabilityInfo),
		UploadDate:         time.Now().UTC(),
		Status:             model.StockStatusAvailable,
	}
	return s.repo.Create(ctx, item)
}

func (s *StockService) List(ctx context.Context, input ListStockInput) ([]model.StockItem, error) {
	filter := repository.StockFilter{}
	if input.Status != nil {
		if !validStockStatus(*input.Status) {
			return nil, fmt.Errorf("%w: unknown stock status %q", ErrInvalidInput, *input.Status)
		}
		filter.Statuses = []model.StockStatus{*input.Status}
	}

	switch {
	case input.Principal.IsAdmin():
	case input.Principal.IsManufacturer():
		if !input.Principal.HasCompany() {
			return []model.StockItem{}, nil
		}
		companyID := input.Principal.CompanyID
		filter.CompanyID = &companyID
	case input.Principal.IsCustomer():
		// customers browse what is still on the market
		if input.Status != nil && *input.Status != model.StockStatusAvailable {
			return []model.StockItem{}, nil
		}
		filter.Statuses = []model.StockStatus{model.StockStatusAvailable}
	default:
		return nil, ErrPermissionDenied
	}

	return s.repo.List(ctx, filter)
}

func (s *StockService) Get(ctx context.Context, principal model.Principal, id uuid.UUID) (*model.StockItem, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}

	switch {
	case principal.IsAdmin():
	case principal.IsManufacturer():
		if item.CompanyID == nil || !principal.HasCompany() || *item.CompanyID != principal.CompanyID {
			return nil, ErrPermissionDenied
		}
	case principal.IsCustomer():
		if item.Status != model.StockStatusAvailable {
			return nil, ErrPermissionDenied
		}
	default:
		return nil, ErrPermissionDenied
	}
	return item, nil
}

// UpdateStatus moves a stock listing to any known status. Transitions are
// not ordered; sold stock may return to the market.
func (s *StockService) UpdateStatus(ctx context.Context, principal model.Principal, id uuid.UUID, status model.StockStatus) (*model.StockItem, error) {
	if !principal.IsAdmin() {
		return nil, ErrPermissionDenied
	}
	if !validStockStatus(status) {
		return nil, fmt.Errorf("%w: unknown stock status %q", ErrInvalidInput, status)
	}

	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	item.Status = status
	return item, nil
}

func validStockStatus(status model.StockStatus) bool {
	for _, known := range model.StockStatuses {
		if status == known {
			return true
		}
	}
	return false
}
