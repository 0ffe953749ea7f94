package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/nurpe/timber-market/internal/model"
	"github.com/nurpe/timber-market/internal/repository"
)

type memDemandStore struct {
	items []model.DemandItem
}

func (s *memDemandStore) Create(_ context.Context, item model.DemandItem) (*model.DemandItem, error) {
	item.ID = uuid.New()
	s.items = append(s.items, item)
	saved := item
	return &saved, nil
}

func (s *memDemandStore) List(_ context.Context, filter repository.DemandFilter) ([]model.DemandItem, error) {
	out := []model.DemandItem{}
	for _, item := range s.items {
		if filter.CompanyID != nil && (item.CompanyID == nil || *item.CompanyID != *filter.CompanyID) {
			continue
		}
		if len(filter.Statuses) > 0 && !demandStatusIn(item.Status, filter.Statuses) {
			continue
		}
		if !filter.From.IsZero() && item.SubmissionDate.Before(filter.From) {
			continue
		}
		if !filter.To.IsZero() && !item.SubmissionDate.Before(filter.To) {
			continue
		}
		out = append(out, item)
	}
	return out, nil
}

func (s *memDemandStore) GetByID(_ context.Context, id uuid.UUID) (*model.DemandItem, error) {
	for _, item := range s.items {
		if item.ID == id {
			found := item
			return &found, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *memDemandStore) UpdateStatus(_ context.Context, id uuid.UUID, status model.DemandStatus) error {
	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].Status = status
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

type memStockStore struct {
	items []model.StockItem
}

func (s *memStockStore) Create(_ context.Context, item model.StockItem) (*model.StockItem, error) {
	item.ID = uuid.New()
	s.items = append(s.items, item)
	saved := item
	return &saved, nil
}

func (s *memStockStore) List(_ context.Context, filter repository.StockFilter) ([]model.StockItem, error) {
	out := []model.StockItem{}
	for _, item := range s.items {
		if filter.CompanyID != nil && (item.CompanyID == nil || *item.CompanyID != *filter.CompanyID) {
			continue
		}
		if len(filter.Statuses) > 0 && !stockStatusIn(item.Status, filter.Statuses) {
			continue
		}
		if !filter.From.IsZero() && item.UploadDate.Before(filter.From) {
			continue
		}
		if !filter.To.IsZero() && !item.UploadDate.Before(filter.To) {
			continue
		}
		out = append(out, item)
	}
	return out, nil
}

func (s *memStockStore) GetByID(_ context.Context, id uuid.UUID) (*model.StockItem, error) {
	for _, item := range s.items {
		if item.ID == id {
			found := item
			return &found, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *memStockStore) UpdateStatus(_ context.Context, id uuid.UUID, status model.StockStatus) error {
	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].Status = status
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

type memCompanyStore struct {
	companies []model.Company
}

func (s *memCompanyStore) Create(_ context.Context, company model.Company) (*model.Company, error) {
	company.ID = uuid.New()
	s.companies = append(s.companies, company)
	saved := company
	return &saved, nil
}

func (s *memCompanyStore) List(_ context.Context, role *model.CompanyRole) ([]model.Company, error) {
	out := []model.Company{}
	for _, company := range s.companies {
		if role != nil && company.Role != *role {
			continue
		}
		out = append(out, company)
	}
	return out, nil
}

func (s *memCompanyStore) GetByID(_ context.Context, id uuid.UUID) (*model.Company, error) {
	for _, company := range s.companies {
		if company.ID == id {
			found := company
			return &found, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

type memUserStore struct {
	users []model.User
}

func (s *memUserStore) Create(_ context.Context, user model.User) (*model.User, error) {
	user.ID = uuid.New()
	s.users = append(s.users, user)
	saved := user
	return &saved, nil
}

func (s *memUserStore) List(_ context.Context) ([]model.User, error) {
	return append([]model.User{}, s.users...), nil
}

func (s *memUserStore) GetByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	for _, user := range s.users {
		if user.ID == id {
			found := user
			return &found, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *memUserStore) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, user := range s.users {
		if strings.EqualFold(user.Email, email) {
			found := user
			return &found, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *memUserStore) UpdateRole(_ context.Context, id uuid.UUID, role model.UserRole) error {
	for i := range s.users {
		if s.users[i].ID == id {
			s.users[i].Role = role
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

type stubGenerator struct {
	response string
	err      error
	prompts  []string
}

func (g *stubGenerator) GenerateText(_ context.Context, prompt string) (string, error) {
	g.prompts = append(g.prompts, prompt)
	if g.err != nil {
		return "", g.err
	}
	return g.response, nil
}

type stubExcelGenerator struct {
	reports []model.MarketReport
}

func (g *stubExcelGenerator) Generate(report model.MarketReport) ([]byte, error) {
	g.reports = append(g.reports, report)
	return []byte("xlsx"), nil
}

type stubPDFGenerator struct {
	reports []model.MarketReport
}

func (g *stubPDFGenerator) Generate(report model.MarketReport) ([]byte, error) {
	g.reports = append(g.reports, report)
	return []byte("pdf"), nil
}

func stockStatusIn(status model.StockStatus, set []model.StockStatus) bool {
	for _, known := range set {
		if status == known {
			return true
		}
	}
	return false
}

func adminPrincipal() model.Principal {
	return model.Principal{UserID: uuid.New(), Role: model.UserRoleAdmin}
}

func customerPrincipal(companyID uuid.UUID) model.Principal {
	return model.Principal{UserID: uuid.New(), CompanyID: companyID, Role: model.UserRoleCustomer}
}

func manufacturerPrincipal(companyID uuid.UUID) model.Principal {
	return model.Principal{UserID: uuid.New(), CompanyID: companyID, Role: model.UserRoleManufacturer}
}

func ref(id uuid.UUID) *uuid.UUID {
	return &id
}

func volume(raw string) decimal.Decimal {
	return decimal.RequireFromString(raw)
}
