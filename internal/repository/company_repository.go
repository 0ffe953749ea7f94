package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nurpe/timber-market/internal/model"
)

type CompanyRepository struct {
	db *gorm.DB
}

func NewCompanyRepository(db *gorm.DB) *CompanyRepository {
	return &CompanyRepository{db: db}
}

func (r *CompanyRepository) Create(ctx context.Context, company model.Company) (*model.Company, error) {
	var saved model.Company
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO companies (name, role, address)
		VALUES (?, ?, ?)
		RETURNING id, name, role, address, created_at
	`, company.Name, company.Role, company.Address).Scan(&saved).Error
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

func (r *CompanyRepository) List(ctx context.Context, role *model.CompanyRole) ([]model.Company, error) {
	query := r.db.WithContext(ctx).Raw(`
		SELECT id, name, role, address, created_at
		FROM companies
		ORDER BY name ASC
	`)
	if role != nil {
		query = r.db.WithContext(ctx).Raw(`
			SELECT id, name, role, address, created_at
			FROM companies
			WHERE role = ?
			ORDER BY name ASC
		`, *role)
	}

	var companies []model.Company
	if err := query.Scan(&companies).Error; err != nil {
		return nil, err
	}
	return companies, nil
}

func (r *CompanyRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Company, error) {
	var company model.Company
	err := r.db.WithContext(ctx).Raw(`
		SELECT id, name, role, address, created_at
		FROM companies
		WHERE id = ?
		LIMIT 1
	`, id).Scan(&company).Error
	if err != nil {
		return nil, err
	}
	if company.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}
	return &company, nil
}
