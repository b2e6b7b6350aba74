package finance

import (
	"time"

	"github.com/google/uuid"
	"github.com/retailcore/backoffice/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// CreditApplication records a specific amount of a specific customer credit
// applied to a specific order. Applications are immutable once created
// except for voiding.
type CreditApplication struct {
	shared.BaseEntity
	CreditID   uuid.UUID
	OrderID    uuid.UUID
	Amount     decimal.Decimal
	VoidedAt   *time.Time
	VoidReason string
}

// NewCreditApplication creates a new credit application
func NewCreditApplication(creditID, orderID uuid.UUID, amount decimal.Decimal) (*CreditApplication, error) {
	if creditID == uuid.Nil {
		return nil, shared.NewValidationError("INVALID_CREDIT", "Credit ID cannot be empty")
	}
	if orderID == uuid.Nil {
		return nil, shared.NewValidationError("INVALID_ORDER", "Order ID cannot be empty")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewValidationError("INVALID_AMOUNT", "Applied amount must be positive")
	}

	return &CreditApplication{
		BaseEntity: shared.NewBaseEntity(),
		CreditID:   creditID,
		OrderID:    orderID,
		Amount:     amount,
	}, nil
}

// IsVoided returns true if the application has been voided
func (a *CreditApplication) IsVoided() bool {
	return a.VoidedAt != nil
}

// Void marks the application as voided. Voiding is set-once.
func (a *CreditApplication) Void(reason string) error {
	if a.IsVoided() {
		return shared.NewStateError("VOIDED", "APPLICATION_ALREADY_VOIDED", "Credit application is already voided")
	}
	if reason == "" {
		return shared.NewValidationError("INVALID_REASON", "Void reason is required")
	}
	now := time.Now()
	a.VoidedAt = &now
	a.VoidReason = reason
	a.Touch()
	return nil
}
