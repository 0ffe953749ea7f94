package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nurpe/timber-market/internal/model"
)

type UserService struct {
	repo      UserStore
	companies CompanyStore
}

type CreateUserInput struct {
	Principal model.Principal
	Email     string
	FullName  string
	Role      model.UserRole
	CompanyID *uuid.UUID
}

func NewUserService(repo UserStore, companies CompanyStore) *UserService {
	return &UserService{repo: repo, companies: companies}
}

func (s *UserService) Create(ctx context.Context, input CreateUserInput) (*model.User, error) {
	if !input.Principal.IsAdmin() {
		return nil, ErrPermissionDenied
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: a valid email is required", ErrInvalidInput)
	}
	if !validUserRole(input.Role) {
		return nil, fmt.Errorf("%w: unknown user role %q", ErrInvalidInput, input.Role)
	}

	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("%w: email %s is already registered", ErrInvalidInput, email)
	} else if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	if input.CompanyID != nil {
		if _, err := s.companies.GetByID(ctx, *input.CompanyID); err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil, fmt.Errorf("%w: unknown company %s", ErrInvalidInput, *input.CompanyID)
			}
			return nil, err
		}
	}

	user := model.User{
		Email:     email,
		FullName:  strings.TrimSpace(input.FullName),
		Role:      input.Role,
		CompanyID: input.CompanyID,
	}
	return s.repo.Create(ctx, user)
}

func (s *UserService) List(ctx context.Context, principal model.Principal) ([]model.User, error) {
	if !principal.IsAdmin() {
		return nil, ErrPermissionDenied
	}
	return s.repo.List(ctx)
}

func (s *UserService) Get(ctx context.Context, principal model.Principal, id uuid.UUID) (*model.User, error) {
	// non-admins may look up their own record only
	if !principal.IsAdmin() && principal.UserID != id {
		return nil, ErrPermissionDenied
	}
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) UpdateRole(ctx context.Context, principal model.Principal, id uuid.UUID, role model.UserRole) (*model.User, error) {
	if !principal.IsAdmin() {
		return nil, ErrPermissionDenied
	}
	if !validUserRole(role) {
		return nil, fmt.Errorf("%w: unknown user role %q", ErrInvalidInput, role)
	}

	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if err := s.repo.UpdateRole(ctx, id, role); err != nil {
		return nil, err
	}
	user.Role = role
	return user, nil
}

func validUserRole(role model.UserRole) bool {
	switch role {
	case model.UserRoleAdmin, model.UserRoleCustomer, model.UserRoleManufacturer:
		return true
	}
	return false
}
