package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nurpe/timber-market/internal/model"
)

type CompanyService struct {
	repo CompanyStore
}

type CreateCompanyInput struct {
	Principal model.Principal
	Name      string
	Role      model.CompanyRole
	Address   string
}

func NewCompanyService(repo CompanyStore) *CompanyService {
	return &CompanyService{repo: repo}
}

func (s *CompanyService) Create(ctx context.Context, input CreateCompanyInput) (*model.Company, error) {
	if !input.Principal.IsAdmin() {
		return nil, ErrPermissionDenied
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: company name is required", ErrInvalidInput)
	}
	switch input.Role {
	case model.CompanyRoleCustomer, model.CompanyRoleManufacturer:
	default:
		return nil, fmt.Errorf("%w: unknown company role %q", ErrInvalidInput, input.Role)
	}

	company := model.Company{
		Name:    name,
		Role:    input.Role,
		Address: strings.TrimSpace(input.Address),
	}
	return s.repo.Create(ctx, company)
}

// List is open to every authenticated caller; the directory is how
// counterparties find each other.
func (s *CompanyService) List(ctx context.Context, principal model.Principal, role *model.CompanyRole) ([]model.Company, error) {
	if role != nil {
		switch *role {
		case model.CompanyRoleCustomer, model.CompanyRoleManufacturer:
		default:
			return nil, fmt.Errorf("%w: unknown company role %q", ErrInvalidInput, *role)
		}
	}
	return s.repo.List(ctx, role)
}

func (s *CompanyService) Get(ctx context.Context, principal model.Principal, id uuid.UUID) (*model.Company, error) {
	company, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return company, nil
}
