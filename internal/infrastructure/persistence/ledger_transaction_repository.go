package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/retailcore/backoffice/internal/domain/finance"
	"github.com/retailcore/backoffice/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormLedgerTransactionRepository implements finance.LedgerTransactionRepository using GORM
type GormLedgerTransactionRepository struct {
	db *gorm.DB
}

// NewGormLedgerTransactionRepository creates a new GormLedgerTransactionRepository
func NewGormLedgerTransactionRepository(db *gorm.DB) *GormLedgerTransactionRepository {
	return &GormLedgerTransactionRepository{db: db}
}

// FindByOrder finds all transactions against an order, oldest first.
// Voided transactions are included; callers skip them when summing.
func (r *GormLedgerTransactionRepository) FindByOrder(ctx context.Context, orderID uuid.UUID) ([]finance.LedgerTransaction, error) {
	var rows []models.LedgerTransactionModel
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	transactions := make([]finance.LedgerTransaction, len(rows))
	for i := range rows {
		transactions[i] = *rows[i].ToDomain()
	}
	return transactions, nil
}

// Save creates or updates a transaction. Updates only ever touch the void
// marker; amounts and kinds are immutable after creation.
func (r *GormLedgerTransactionRepository) Save(ctx context.Context, transaction *finance.LedgerTransaction) error {
	model := models.LedgerTransactionModelFromDomain(transaction)
	return r.db.WithContext(ctx).Save(model).Error
}
