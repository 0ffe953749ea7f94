package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nurpe/timber-market/internal/measure"
	"github.com/nurpe/timber-market/internal/model"
	"github.com/nurpe/timber-market/internal/repository"
)

// Demand in RECEIVED or PROCESSING is visible to manufacturers browsing
// the marketplace; completed and cancelled requests are not.
var openDemandStatuses = []model.DemandStatus{
	model.DemandStatusReceived,
	model.DemandStatusProcessing,
}

type DemandService struct {
	repo DemandStore
}

type CreateDemandInput struct {
	Principal model.Principal
	// CompanyID is honored for admins only; customers always submit for
	// their own company.
	CompanyID    *uuid.UUID
	DiameterType string
	DiameterFrom string
	DiameterTo   string
	Length       string
	Quantity     string
	Notes        string
}

type ListDemandInput struct {
	Principal model.Principal
	Status    *model.DemandStatus
}

func NewDemandService(repo DemandStore) *DemandService {
	return &DemandService{repo: repo}
}

func (s *DemandService) Create(ctx context.Context, input CreateDemandInput) (*model.DemandItem, error) {
	if input.Principal.IsManufacturer() {
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

	item := model.DemandItem{
		CompanyID:       companyID,
		ProductFeatures: features,
		SubmissionDate:  time.Now().UTC(),
		Status:          model.DemandStatusReceived,
	}
	return s.repo.Create(ctx, item)
}

func (s *DemandService) List(ctx context.Context, input ListDemandInput) ([]model.DemandItem, error) {
	filter := repository.DemandFilter{}
	if input.Status != nil {
		if !validDemandStatus(*input.Status) {
			return nil, fmt.Errorf("%w: unknown demand status %q", ErrInvalidInput, *input.Status)
		}
		filter.Statuses = []model.DemandStatus{*input.Status}
	}

	switch {
	case input.Principal.IsAdmin():
	case input.Principal.IsCustomer():
		if !input.Principal.HasCompany() {
			return []model.DemandItem{}, nil
		}
		companyID := input.Principal.CompanyID
		filter.CompanyID = &companyID
	case input.Principal.IsManufacturer():
		filter.Statuses = intersectDemandStatuses(filter.Statuses, openDemandStatuses)
		if len(filter.Statuses) == 0 {
			return []model.DemandItem{}, nil
		}
	default:
		return nil, ErrPermissionDenied
	}

	return s.repo.List(ctx, filter)
}

func (s *DemandService) Get(ctx context.Context, principal model.Principal, id uuid.UUID) (*model.DemandItem, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}

	switch {
	case principal.IsAdmin():
	case principal.IsCustomer():
		if item.CompanyID == nil || !principal.HasCompany() || *item.CompanyID != principal.CompanyID {
			return nil, ErrPermissionDenied
		}
	case principal.IsManufacturer():
		if !demandStatusIn(item.Status, openDemandStatuses) {
			return nil, ErrPermissionDenied
		}
	default:
		return nil, ErrPermissionDenied
	}
	return item, nil
}

// UpdateStatus moves a demand request to any known status. Transitions are
// not ordered; an admin may reopen a cancelled request.
func (s *DemandService) UpdateStatus(ctx context.Context, principal model.Principal, id uuid.UUID, status model.DemandStatus) (*model.DemandItem, error) {
	if !principal.IsAdmin() {
		return nil, ErrPermissionDenied
	}
	if !validDemandStatus(status) {
		return nil, fmt.Errorf("%w: unknown demand status %q", ErrInvalidInput, status)
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

// parseFeatures builds ProductFeatures from raw form values. Numeric fields
// are forgiving: anything unparseable counts as zero and zeroes the volume.
func parseFeatures(diameterType, diameterFrom, diameterTo, length, quantity, notes string) (model.ProductFeatures, error) {
	features := model.ProductFeatures{
		DiameterFrom: measure.ParseDecimal(diameterFrom),
		DiameterTo:   measure.ParseDecimal(diameterTo),
		Length:       measure.ParseDecimal(length),
		Quantity:     measure.ParseQuantity(quantity),
	}

	switch normalized := model.DiameterType(strings.ToUpper(strings.TrimSpace(diameterType))); normalized {
	case "":
		features.DiameterType = model.DiameterTypeMid
	case model.DiameterTypeTop, model.DiameterTypeMid, model.DiameterTypeButt:
		features.DiameterType = normalized
	default:
		return model.ProductFeatures{}, fmt.Errorf("%w: unknown diameter type %q", ErrInvalidInput, diameterType)
	}

	features.CubicMeters = measure.LogVolume(features.DiameterFrom, features.DiameterTo, features.Length, features.Quantity)

	if trimmed := strings.TrimSpace(notes); trimmed != "" {
		features.Notes = &trimmed
	}
	return features, nil
}

func validDemandStatus(status model.DemandStatus) bool {
	return demandStatusIn(status, model.DemandStatuses)
}

func demandStatusIn(status model.DemandStatus, set []model.DemandStatus) bool {
	for _, known := range set {
		if status == known {
			return true
		}
	}
	return false
}

func intersectDemandStatuses(requested, allowed []model.DemandStatus) []model.DemandStatus {
	if len(requested) == 0 {
		return allowed
	}
	var result []model.DemandStatus
	for _, status := range requested {
		if demandStatusIn(status, allowed) {
			result = append(result, status)
		}
	}
	return result
}
