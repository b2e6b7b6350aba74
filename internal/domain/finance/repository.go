package finance

import (
	"context"

	"github.com/google/uuid"
)

// LedgerTransactionRepository persists the append-only transaction history
type LedgerTransactionRepository interface {
	FindByOrder(ctx context.Context, orderID uuid.UUID) ([]LedgerTransaction, error)
	Save(ctx context.Context, transaction *LedgerTransaction) error
}

// CustomerCreditRepository persists CustomerCredit aggregates
type CustomerCreditRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*CustomerCredit, error)
	FindByCustomer(ctx context.Context, customerID uuid.UUID) ([]CustomerCredit, error)
	Save(ctx context.Context, credit *CustomerCredit) error
	// GenerateCreditNumber produces the next sequential credit number
	GenerateCreditNumber(ctx context.Context) (string, error)
}

// CreditApplicationRepository persists credit applications
type CreditApplicationRepository interface {
	FindByOrder(ctx context.Context, orderID uuid.UUID) ([]CreditApplication, error)
	FindActiveByOrder(ctx context.Context, orderID uuid.UUID) ([]CreditApplication, error)
	Save(ctx context.Context, application *CreditApplication) error
}
