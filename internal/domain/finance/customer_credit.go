package finance

import (
	"github.com/google/uuid"
	"github.com/retailcore/backoffice/internal/domain/shared"
	"github.com/retailcore/backoffice/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// CreditStatus represents the status of a customer credit.
// CONSUMED is not terminal: a reversal can restore balance and flip the
// credit back to ACTIVE.
type CreditStatus string

const (
	CreditStatusActive   CreditStatus = "ACTIVE"
	CreditStatusConsumed CreditStatus = "CONSUMED"
)

// IsValid checks if the status is a valid CreditStatus
func (s CreditStatus) IsValid() bool {
	return s == CreditStatusActive || s == CreditStatusConsumed
}

// String returns the string representation of CreditStatus
func (s CreditStatus) String() string {
	return string(s)
}

// CustomerCredit is a redeemable balance issued to a customer, created only
// as the outcome of an exchange-type return. The remaining balance decreases
// through applications and increases only through the return-driven reversal
// path; there is no general-purpose add-back operation.
type CustomerCredit struct {
	shared.BaseAggregateRoot
	CreditNumber    string
	CustomerID      uuid.UUID
	Currency        valueobject.Currency
	OriginalAmount  decimal.Decimal
	RemainingAmount decimal.Decimal
	Status          CreditStatus
	ReturnID        *uuid.UUID
}

// NewCustomerCredit issues a new active credit for the full amount
func NewCustomerCredit(creditNumber string, customerID uuid.UUID, currency valueobject.Currency, amount decimal.Decimal, returnID *uuid.UUID) (*CustomerCredit, error) {
	if creditNumber == "" {
		return nil, shared.NewFieldValidationError("credit_number", "INVALID_CREDIT_NUMBER", "Credit number cannot be empty")
	}
	if customerID == uuid.Nil {
		return nil, shared.NewFieldValidationError("customer_id", "INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	if !currency.IsValid() {
		return nil, shared.NewFieldValidationError("currency", "INVALID_CURRENCY", "Unsupported currency")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewValidationError("INVALID_AMOUNT", "Credit amount must be positive")
	}

	return &CustomerCredit{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		CreditNumber:      creditNumber,
		CustomerID:        customerID,
		Currency:          currency,
		OriginalAmount:    amount,
		RemainingAmount:   amount,
		Status:            CreditStatusActive,
		ReturnID:          returnID,
	}, nil
}

// IsUsable reports whether the credit can be applied to an order
func (c *CustomerCredit) IsUsable() bool {
	return c.Status == CreditStatusActive && c.RemainingAmount.IsPositive()
}

// Redeem decrements the remaining balance. The credit flips to CONSUMED at
// exactly zero.
func (c *CustomerCredit) Redeem(amount decimal.Decimal) error {
	if !c.IsUsable() {
		return shared.NewStateError(c.Status.String(), "CREDIT_NOT_USABLE", "Credit has no redeemable balance")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return shared.NewValidationError("INVALID_AMOUNT", "Redeemed amount must be positive")
	}
	if amount.GreaterThan(c.RemainingAmount) {
		return shared.NewConsistencyError("EXCEEDS_REMAINING", "Redeemed amount exceeds remaining credit balance")
	}

	c.RemainingAmount = c.RemainingAmount.Sub(amount)
	if c.RemainingAmount.IsZero() {
		c.Status = CreditStatusConsumed
	}
	c.Touch()

	return nil
}

// Restore adds a voided application's amount back onto the remaining
// balance. A consumed credit becomes active again. This is only invoked by
// the return-finalize reversal path.
func (c *CustomerCredit) Restore(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return shared.NewValidationError("INVALID_AMOUNT", "Restored amount must be positive")
	}

	c.RemainingAmount = c.RemainingAmount.Add(amount)
	c.Status = CreditStatusActive
	c.Touch()

	return nil
}

// RemainingMoney returns the remaining balance as Money
func (c *CustomerCredit) RemainingMoney() valueobject.Money {
	m, _ := valueobject.NewMoney(c.RemainingAmount, c.Currency)
	return m
}
