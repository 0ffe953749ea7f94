package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/nurpe/timber-market/internal/model"
	"github.com/nurpe/timber-market/internal/repository"
)

// Store interfaces cover exactly what the services need from the
// repositories.

type DemandStore interface {
	Create(ctx context.Context, item model.DemandItem) (*model.DemandItem, error)
	List(ctx context.Context, filter repository.DemandFilter) ([]model.DemandItem, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.DemandItem, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.DemandStatus) error
}

type StockStore interface {
	Create(ctx context.Context, item model.StockItem) (*model.StockItem, error)
	List(ctx context.Context, filter repository.StockFilter) ([]model.StockItem, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.StockItem, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.StockStatus) error
}

type CompanyStore interface {
	Create(ctx context.Context, company model.Company) (*model.Company, error)
	List(ctx context.Context, role *model.CompanyRole) ([]model.Company, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Company, error)
}

type UserStore interface {
	Create(ctx context.Context, user model.User) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	UpdateRole(ctx context.Context, id uuid.UUID, role model.UserRole) error
}
