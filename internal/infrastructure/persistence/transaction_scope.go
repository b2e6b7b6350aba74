package persistence

import (
	"context"

	"github.com/retailcore/backoffice/internal/application/txn"
	"github.com/retailcore/backoffice/internal/domain/finance"
	"github.com/retailcore/backoffice/internal/domain/inventory"
	"github.com/retailcore/backoffice/internal/domain/shared"
	"github.com/retailcore/backoffice/internal/domain/trade"
	"gorm.io/gorm"
)

// GormScope implements txn.Scope using GORM transactions. Every repository
// handed to the callback is bound to the same transaction, so row locks
// taken through one are visible to the others until commit or rollback.
type GormScope struct {
	db *gorm.DB
}

// NewGormScope creates a new GormScope
func NewGormScope(db *gorm.DB) *GormScope {
	return &GormScope{db: db}
}

// Execute runs the function within a database transaction
func (s *GormScope) Execute(ctx context.Context, fn func(repos txn.Repositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(newGormRepositories(tx))
	})
}

var _ txn.Scope = (*GormScope)(nil)

// gormRepositories provides repositories bound to a single transaction
type gormRepositories struct {
	tx *gorm.DB
}

func newGormRepositories(tx *gorm.DB) *gormRepositories {
	return &gormRepositories{tx: tx}
}

func (r *gormRepositories) Orders() trade.OrderRepository {
	return NewGormOrderRepository(r.tx)
}

func (r *gormRepositories) Returns() trade.ReturnRepository {
	return NewGormReturnRepository(r.tx)
}

func (r *gormRepositories) StockItems() inventory.StockItemRepository {
	return NewGormStockItemRepository(r.tx)
}

func (r *gormRepositories) Reservations() inventory.ReservationReader {
	return NewGormReservationReader(r.tx)
}

func (r *gormRepositories) Movements() inventory.MovementRepository {
	return NewGormMovementRepository(r.tx)
}

func (r *gormRepositories) Transactions() finance.LedgerTransactionRepository {
	return NewGormLedgerTransactionRepository(r.tx)
}

func (r *gormRepositories) Credits() finance.CustomerCreditRepository {
	return NewGormCustomerCreditRepository(r.tx)
}

func (r *gormRepositories) CreditApplications() finance.CreditApplicationRepository {
	return NewGormCreditApplicationRepository(r.tx)
}

func (r *gormRepositories) AuditLogs() shared.AuditLogRepository {
	return NewGormAuditLogRepository(r.tx)
}

var _ txn.Repositories = (*gormRepositories)(nil)
