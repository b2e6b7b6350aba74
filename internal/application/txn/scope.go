// Package txn defines the unit-of-work boundary shared by the application
// services. Every mutating sequence in the returns and credit flows runs
// inside a single Scope.Execute call and is committed or rolled back
// atomically; partial writes are never visible to other transactions.
package txn

import (
	"context"

	"github.com/retailcore/backoffice/internal/domain/finance"
	"github.com/retailcore/backoffice/internal/domain/inventory"
	"github.com/retailcore/backoffice/internal/domain/shared"
	"github.com/retailcore/backoffice/internal/domain/trade"
)

// Scope executes a function within a database transaction.
// If the function returns an error, the transaction is rolled back.
// If the function succeeds, the transaction is committed.
type Scope interface {
	Execute(ctx context.Context, fn func(repos Repositories) error) error
}

// Repositories provides access to all core repositories within a
// transaction. All repositories returned share the same underlying database
// transaction, so a row locked through StockItems stays locked until the
// scope commits or rolls back.
type Repositories interface {
	Orders() trade.OrderRepository
	Returns() trade.ReturnRepository
	StockItems() inventory.StockItemRepository
	Reservations() inventory.ReservationReader
	Movements() inventory.MovementRepository
	Transactions() finance.LedgerTransactionRepository
	Credits() finance.CustomerCreditRepository
	CreditApplications() finance.CreditApplicationRepository
	AuditLogs() shared.AuditLogRepository
}

// FixedScope is a Scope that executes the function against a fixed set of
// repositories without a real transaction. Useful for tests.
type FixedScope struct {
	Repos Repositories
}

// NewFixedScope creates a FixedScope over the given repositories
func NewFixedScope(repos Repositories) *FixedScope {
	return &FixedScope{Repos: repos}
}

// Execute runs the function without a real transaction
func (s *FixedScope) Execute(_ context.Context, fn func(repos Repositories) error) error {
	return fn(s.Repos)
}

var _ Scope = (*FixedScope)(nil)
