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

const stockColumns = `
	id,
	company_id,
	diameter_type,
	diameter_from,
	diameter_to,
	length,
	quantity,
	cubic_meters,
	notes,
	price,
	sustainability_info,
	upload_date,
	status`

// StockFilter narrows List results. Zero values mean "no constraint";
// To is exclusive.
type StockFilter struct {
	CompanyID *uuid.UUID
	Statuses  []model.StockStatus
	From      time.Time
	To        time.Time
}

type StockRepository struct {
	db *gorm.DB
}

func NewStockRepository(db *gorm.DB) *StockRepository {
	return &StockRepository{db: db}
}

func (r *StockRepository) Create(ctx context.Context, item model.StockItem) (*model.StockItem, error) {
	var saved model.StockItem
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO stock_items (
			company_id,
			diameter_type,
			diameter_from,
			diameter_to,
			length,
			quantity,
			cubic_meters,
			notes,
			price,
			sustainability_info,
			upload_date,
			status
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING `+stockColumns+`
	`,
		item.CompanyID,
		item.DiameterType,
		item.DiameterFrom,
		item.DiameterTo,
		item.Length,
		item.Quantity,
		item.CubicMeters,
		item.Notes,
		item.Price,
		item.SustainabilityInfo,
		item.UploadDate,
		item.Status,
	).Scan(&saved).Error
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

func (r *StockRepository) List(ctx context.Context, filter StockFilter) ([]model.StockItem, error) {
	query := `SELECT ` + stockColumns + ` FROM stock_items`
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
		conditions = append(conditions, "upload_date >= ?")
		args = append(args, filter.From)
	}
	if !filter.To.IsZero() {
		conditions = append(conditions, "upload_date < ?")
		args = append(args, filter.To)
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY upload_date DESC"

	var items []model.StockItem
	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *StockRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.StockItem, error) {
	var item model.StockItem
	err := r.db.WithContext(ctx).Raw(`
		SELECT `+stockColumns+`
		FROM stock_items
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

func (r *StockRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.StockStatus) error {
	return r.db.WithContext(ctx).Exec(`
		UPDATE stock_items
		SET status = ?
		WHERE id = ?
	`, status, id).Error
}
