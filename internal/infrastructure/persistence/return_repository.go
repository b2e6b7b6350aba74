package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/retailcore/backoffice/internal/domain/shared"
	"github.com/retailcore/backoffice/internal/domain/trade"
	"github.com/retailcore/backoffice/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormReturnRepository implements trade.ReturnRepository using GORM
type GormReturnRepository struct {
	db *gorm.DB
}

// NewGormReturnRepository creates a new GormReturnRepository
func NewGormReturnRepository(db *gorm.DB) *GormReturnRepository {
	return &GormReturnRepository{db: db}
}

// FindByID finds a return with its lines by ID
func (r *GormReturnRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.Return, error) {
	var model models.ReturnModel
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByOrder finds all returns against an order, newest first
func (r *GormReturnRepository) FindByOrder(ctx context.Context, orderID uuid.UUID) ([]trade.Return, error) {
	var rows []models.ReturnModel
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		Where("order_id = ?", orderID).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainReturns(rows), nil
}

// FindAll finds returns matching the filter with pagination
func (r *GormReturnRepository) FindAll(ctx context.Context, filter shared.Filter) ([]trade.Return, error) {
	var rows []models.ReturnModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.ReturnModel{}), filter)

	if err := query.
		Preload("Lines").
		Offset(filter.Offset()).
		Limit(filter.PageSize).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainReturns(rows), nil
}

// Count counts returns matching the filter
func (r *GormReturnRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.ReturnModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormReturnRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if orderID, ok := filter.Filters["order_id"]; ok {
		query = query.Where("order_id = ?", orderID)
	}
	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}
	if filter.OrderBy != "" {
		dir := "ASC"
		if strings.EqualFold(filter.OrderDir, "desc") {
			dir = "DESC"
		}
		query = query.Order(fmt.Sprintf("%s %s", filter.OrderBy, dir))
	}
	return query
}

// Save creates or updates a return and its lines with an optimistic version
// check. The line set is fixed at draft creation, so lines are only ever
// inserted or updated, never removed.
func (r *GormReturnRepository) Save(ctx context.Context, ret *trade.Return) error {
	model := models.ReturnModelFromDomain(ret)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current models.ReturnModel
		err := tx.Select("version").First(&current, "id = ?", model.ID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := tx.Omit("Lines").Create(model).Error; err != nil {
				return err
			}
			return saveReturnLines(tx, model)
		}
		if err != nil {
			return err
		}

		if current.Version != ret.Version {
			return shared.ErrConcurrencyConflict
		}

		model.Version = ret.Version + 1
		model.UpdatedAt = time.Now()

		result := tx.Model(&models.ReturnModel{}).
			Where("id = ? AND version = ?", model.ID, ret.Version).
			Updates(map[string]interface{}{
				"status":       model.Status,
				"total_amount": model.TotalAmount,
				"remark":       model.Remark,
				"finalized_at": model.FinalizedAt,
				"finalized_by": model.FinalizedBy,
				"cancelled_at": model.CancelledAt,
				"cancelled_by": model.CancelledBy,
				"version":      model.Version,
				"updated_at":   model.UpdatedAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrConcurrencyConflict
		}

		if err := saveReturnLines(tx, model); err != nil {
			return err
		}

		ret.Version = model.Version
		return nil
	})
}

func saveReturnLines(tx *gorm.DB, model *models.ReturnModel) error {
	for i := range model.Lines {
		model.Lines[i].ReturnID = model.ID
		if err := tx.Save(&model.Lines[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

// GenerateReturnNumber generates a unique sequential return number.
// Format: RET-YYYYMMDD-NNNN (e.g., RET-20260830-0001)
func (r *GormReturnRepository) GenerateReturnNumber(ctx context.Context) (string, error) {
	prefix := fmt.Sprintf("RET-%s-", time.Now().Format("20060102"))

	var last models.ReturnModel
	err := r.db.WithContext(ctx).
		Model(&models.ReturnModel{}).
		Where("return_number LIKE ?", prefix+"%").
		Order("return_number DESC").
		First(&last).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	var nextNum int64 = 1
	if err == nil && last.ReturnNumber != "" {
		parts := strings.Split(last.ReturnNumber, "-")
		if len(parts) == 3 {
			var num int64
			if _, parseErr := fmt.Sscanf(parts[2], "%d", &num); parseErr == nil {
				nextNum = num + 1
			}
		}
	}

	return fmt.Sprintf("%s%04d", prefix, nextNum), nil
}

func toDomainReturns(rows []models.ReturnModel) []trade.Return {
	returns := make([]trade.Return, len(rows))
	for i := range rows {
		returns[i] = *rows[i].ToDomain()
	}
	return returns
}
