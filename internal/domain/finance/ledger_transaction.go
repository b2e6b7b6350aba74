package finance

import (
	"time"

	"github.com/google/uuid"
	"github.com/retailcore/backoffice/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// TransactionKind classifies a ledger transaction
type TransactionKind string

const (
	// TransactionKindPayment increases the order's net paid amount
	TransactionKindPayment TransactionKind = "PAYMENT"
	// TransactionKindRefund decreases the order's net paid amount
	TransactionKindRefund TransactionKind = "REFUND"
)

// IsValid checks if the kind is a valid TransactionKind
func (k TransactionKind) IsValid() bool {
	return k == TransactionKindPayment || k == TransactionKindRefund
}

// PaymentMethod is the closed enumeration of accepted payment methods
type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "CASH"
	PaymentMethodCard         PaymentMethod = "CARD"
	PaymentMethodBankTransfer PaymentMethod = "BANK_TRANSFER"
	PaymentMethodOther        PaymentMethod = "OTHER"
)

// IsValid checks if the method is a valid PaymentMethod
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodBankTransfer, PaymentMethodOther:
		return true
	}
	return false
}

// String returns the string representation of PaymentMethod
func (m PaymentMethod) String() string {
	return string(m)
}

// LedgerTransaction is a signed monetary event against an order. Transactions
// are append-only: voiding sets a marker, nothing is ever deleted.
type LedgerTransaction struct {
	shared.BaseEntity
	OrderID         uuid.UUID
	Kind            TransactionKind
	Amount          decimal.Decimal
	Method          PaymentMethod
	Comment         string
	OtherMethodNote string
	ReturnID        *uuid.UUID
	VoidedAt        *time.Time
	VoidReason      string
}

// NewPayment creates a payment transaction against an order
func NewPayment(orderID uuid.UUID, amount decimal.Decimal, method PaymentMethod, comment string) (*LedgerTransaction, error) {
	if orderID == uuid.Nil {
		return nil, shared.NewValidationError("INVALID_ORDER", "Order ID cannot be empty")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewValidationError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	if !method.IsValid() {
		return nil, shared.NewFieldValidationError("method", "INVALID_PAYMENT_METHOD", "Unknown payment method")
	}

	return &LedgerTransaction{
		BaseEntity: shared.NewBaseEntity(),
		OrderID:    orderID,
		Kind:       TransactionKindPayment,
		Amount:     amount,
		Method:     method,
		Comment:    comment,
	}, nil
}

// NewRefund creates a refund transaction produced by a finalized return.
// A method and a comment are required; when the method is OTHER, a free-text
// note describing it is required as well.
func NewRefund(orderID uuid.UUID, amount decimal.Decimal, method PaymentMethod, comment, otherMethodNote string, returnID uuid.UUID) (*LedgerTransaction, error) {
	if orderID == uuid.Nil {
		return nil, shared.NewValidationError("INVALID_ORDER", "Order ID cannot be empty")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewValidationError("INVALID_AMOUNT", "Refund amount must be positive")
	}
	if !method.IsValid() {
		return nil, shared.NewFieldValidationError("method", "INVALID_PAYMENT_METHOD", "Unknown payment method")
	}
	if comment == "" {
		return nil, shared.NewFieldValidationError("comment", "COMMENT_REQUIRED", "Refund comment is required")
	}
	if method == PaymentMethodOther && otherMethodNote == "" {
		return nil, shared.NewFieldValidationError("other_method_note", "OTHER_NOTE_REQUIRED", "A note is required when the payment method is OTHER")
	}
	if returnID == uuid.Nil {
		return nil, shared.NewValidationError("INVALID_RETURN", "Return ID cannot be empty")
	}

	return &LedgerTransaction{
		BaseEntity:      shared.NewBaseEntity(),
		OrderID:         orderID,
		Kind:            TransactionKindRefund,
		Amount:          amount,
		Method:          method,
		Comment:         comment,
		OtherMethodNote: otherMethodNote,
		ReturnID:        &returnID,
	}, nil
}

// IsVoided returns true if the transaction has been voided
func (t *LedgerTransaction) IsVoided() bool {
	return t.VoidedAt != nil
}

// Void marks the transaction as voided. Voiding is set-once.
func (t *LedgerTransaction) Void(reason string) error {
	if t.IsVoided() {
		return shared.NewStateError("VOIDED", "TRANSACTION_ALREADY_VOIDED", "Transaction is already voided")
	}
	if reason == "" {
		return shared.NewValidationError("INVALID_REASON", "Void reason is required")
	}
	now := time.Now()
	t.VoidedAt = &now
	t.VoidReason = reason
	t.Touch()
	return nil
}

// Signed returns the transaction amount with its sign: positive for
// payments, negative for refunds.
func (t *LedgerTransaction) Signed() decimal.Decimal {
	if t.Kind == TransactionKindRefund {
		return t.Amount.Neg()
	}
	return t.Amount
}
