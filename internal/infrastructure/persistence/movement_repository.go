package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/retailcore/backoffice/internal/domain/inventory"
	"github.com/retailcore/backoffice/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormMovementRepository implements inventory.MovementRepository using GORM.
// The journal is append-only: there is no update or delete path.
type GormMovementRepository struct {
	db *gorm.DB
}

// NewGormMovementRepository creates a new GormMovementRepository
func NewGormMovementRepository(db *gorm.DB) *GormMovementRepository {
	return &GormMovementRepository{db: db}
}

// Append inserts a new movement record
func (r *GormMovementRepository) Append(ctx context.Context, movement *inventory.Movement) error {
	model := models.InventoryMovementModelFromDomain(movement)
	return r.db.WithContext(ctx).Create(model).Error
}

// FindByStockItem finds all movements for a stock item, newest first
func (r *GormMovementRepository) FindByStockItem(ctx context.Context, itemID uuid.UUID) ([]inventory.Movement, error) {
	var rows []models.InventoryMovementModel
	if err := r.db.WithContext(ctx).
		Where("stock_item_id = ?", itemID).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	movements := make([]inventory.Movement, len(rows))
	for i := range rows {
		movements[i] = *rows[i].ToDomain()
	}
	return movements, nil
}
