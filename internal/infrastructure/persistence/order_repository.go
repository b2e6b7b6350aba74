package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/retailcore/backoffice/internal/domain/shared"
	"github.com/retailcore/backoffice/internal/domain/trade"
	"github.com/retailcore/backoffice/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormOrderRepository implements trade.OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// FindByID finds an order with its lines by ID
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.Order, error) {
	var model models.OrderModel
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

// Save creates or updates an order and its lines with an optimistic version
// check. Lines are upserted by ID; lines never disappear from an order, they
// are only voided, so there is no delete pass.
func (r *GormOrderRepository) Save(ctx context.Context, order *trade.Order) error {
	model := models.OrderModelFromDomain(order)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current models.OrderModel
		err := tx.Select("version").First(&current, "id = ?", model.ID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := tx.Omit("Lines").Create(model).Error; err != nil {
				return err
			}
			return saveOrderLines(tx, model)
		}
		if err != nil {
			return err
		}

		if current.Version != order.Version {
			return shared.ErrConcurrencyConflict
		}

		model.Version = order.Version + 1
		model.UpdatedAt = time.Now()

		result := tx.Model(&models.OrderModel{}).
			Where("id = ? AND version = ?", model.ID, order.Version).
			Updates(map[string]interface{}{
				"total_amount":  model.TotalAmount,
				"net_paid":      model.NetPaid,
				"balance_due":   model.BalanceDue,
				"status":        model.Status,
				"cancelled_at":  model.CancelledAt,
				"cancel_reason": model.CancelReason,
				"version":       model.Version,
				"updated_at":    model.UpdatedAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrConcurrencyConflict
		}

		if err := saveOrderLines(tx, model); err != nil {
			return err
		}

		order.Version = model.Version
		return nil
	})
}

func saveOrderLines(tx *gorm.DB, model *models.OrderModel) error {
	for i := range model.Lines {
		model.Lines[i].OrderID = model.ID
		if err := tx.Save(&model.Lines[i]).Error; err != nil {
			return err
		}
	}
	return nil
}
