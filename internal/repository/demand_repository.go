package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nurpe/timber-market/internal/model"
)

const demandColumns = `
	id,
	company_id,
	diameter_type,
	diameter_from,
	diameter_to,
	length,
	quantity,
	cubic_meters,
	notes,
	submission_date,
	status`

// DemandFilter narrows List results. Zero values mean "no constraint";
// To is exclusive.
type DemandFilter struct {
	CompanyID *uuid.UUID
	Statuses  []model.DemandStatus
	From      time.Time
	To        time.Time
}

type DemandRepository struct {
	db *gorm.DB
}

func NewDemandRepository(db *gorm.DB) *DemandRepository {
	return &DemandRepository{db: db}
}

func (r *DemandRepository) Create(ctx context.Context, item model.DemandItem) (*model.DemandItem, error) {
	var saved model.DemandItem
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO demand_items (
			company_id,
			diameter_type,
			diameter_from,
			diameter_to,
			length,
			quantity,
			cubic_meters,
			notes,
			submission_date,
			status
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING `+demandColumns+`
	`,
		item.CompanyID,
		item.DiameterType,
		item.DiameterFrom,
		item.DiameterTo,
		item.Length,
		item.Quantity,
		item.CubicMeters,
		item.Notes,
		item.SubmissionDate,
		item.Status,
	).Scan(&saved).Error
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

func (r *DemandRepository) List(ctx context.Context, filter DemandFilter) ([]model.DemandItem, error) {
	query := `SELECT ` + demandColumns + ` FROM demand_items`
	var conditions []string
	var args []interface{}

	if filter.CompanyID != nil {
		conditions = append(conditions, "company_id = ?")
		args = append(args, *filter.CompanyID)
	}
	if len(filter.Statuses) > 0 {
		placeholders := make([]string, len(filter.Statuses))
		for i := range filter.Statuses {
			placeholders[i] = "?"
		}
		conditions = append(conditions, fmt.Sprintf("status IN (%s)", strings.Join(placeholders, ",")))
		for _, status := range filter.Statuses {
			args = append(args, status)
		}
	}
	if !filter.From.IsZero() {
		conditions = append(conditions, "submission_date >= ?")
		args = append(args, filter.From)
	}
	if !filter.To.IsZero() {
		conditions = append(conditions, "submission_date < ?")
		args = append(args, filter.To)
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY submission_date DESC"

	var items []model.DemandItem
	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *DemandRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.DemandItem, error) {
	var item model.DemandItem
	err := r.db.WithContext(ctx).Raw(`
		SELECT `+demandColumns+`
		FROM demand_items
		WHERE id = ?
		LIMIT 1
	`, id).Scan(&item).Error
	if err != nil {
		return nil, err
	}
	if item.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}
	return &item, nil
}

func (r *DemandRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.DemandStatus) error {
	return r.db.WithContext(ctx).Exec(`
		UPDATE demand_items
		SET status = ?
		WHERE id = ?
	`, status, id).Error
}
