package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/retailcore/backoffice/internal/domain/shared"
	"github.com/retailcore/backoffice/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// ReturnStatus represents the lifecycle status of a return.
// DRAFT is the only mutable state; FINALIZED and CANCELLED are terminal.
type ReturnStatus string

const (
	ReturnStatusDraft     ReturnStatus = "DRAFT"
	ReturnStatusFinalized ReturnStatus = "FINALIZED"
	ReturnStatusCancelled ReturnStatus = "CANCELLED"
)

// IsValid checks if the status is a valid ReturnStatus
func (s ReturnStatus) IsValid() bool {
	switch s {
	case ReturnStatusDraft, ReturnStatusFinalized, ReturnStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of ReturnStatus
func (s ReturnStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s ReturnStatus) CanTransitionTo(target ReturnStatus) bool {
	if s != ReturnStatusDraft {
		return false
	}
	return target == ReturnStatusFinalized || target == ReturnStatusCancelled
}

// ReturnType determines what a finalized return produces:
// a refund transaction or a redeemable store credit.
type ReturnType string

const (
	ReturnTypeRefund   ReturnType = "REFUND"
	ReturnTypeExchange ReturnType = "EXCHANGE"
)

// IsValid checks if the type is a valid ReturnType
func (t ReturnType) IsValid() bool {
	return t == ReturnTypeRefund || t == ReturnTypeExchange
}

// ReturnReason is the closed enumeration of accepted return reason codes
type ReturnReason string

const (
	ReturnReasonDamaged   ReturnReason = "DAMAGED"
	ReturnReasonDefective ReturnReason = "DEFECTIVE"
	ReturnReasonWrongItem ReturnReason = "WRONG_ITEM"
	ReturnReasonUnwanted  ReturnReason = "UNWANTED"
	ReturnReasonOther     ReturnReason = "OTHER"
)

// IsValid checks if the reason is a valid ReturnReason
func (r ReturnReason) IsValid() bool {
	switch r {
	case ReturnReasonDamaged, ReturnReasonDefective, ReturnReasonWrongItem,
		ReturnReasonUnwanted, ReturnReasonOther:
		return true
	}
	return false
}

// ReturnLine is a line of a return, tied 1:1 to an order line. UnitPrice is
// captured from the order line at sale time, never the current price.
type ReturnLine struct {
	ID          uuid.UUID
	ReturnID    uuid.UUID
	OrderLineID uuid.UUID
	StockItemID *uuid.UUID
	Quantity    int64
	UnitPrice   decimal.Decimal
	Amount      decimal.Decimal
	CreatedAt   time.Time
}

// NewReturnLine creates a return line against an order line, validating the
// requested quantity against what is still returnable.
func NewReturnLine(returnID uuid.UUID, orderLine *OrderLine, quantity int64, currency valueobject.Currency) (*ReturnLine, error) {
	if orderLine == nil {
		return nil, shared.NewValidationError("INVALID_ORDER_LINE", "Order line cannot be nil")
	}
	if quantity <= 0 {
		return nil, shared.NewValidationError("INVALID_QUANTITY", "Return quantity must be positive")
	}
	if quantity > orderLine.Returnable() {
		return nil, shared.NewValidationError("EXCEEDS_RETURNABLE", "Return quantity exceeds returnable quantity on the order line")
	}

	amount := orderLine.UnitPriceMoney(currency).MulInt(quantity)
	return &ReturnLine{
		ID:          uuid.New(),
		ReturnID:    returnID,
		OrderLineID: orderLine.ID,
		StockItemID: orderLine.StockItemID,
		Quantity:    quantity,
		UnitPrice:   orderLine.UnitPrice,
		Amount:      amount.Amount(),
		CreatedAt:   time.Now(),
	}, nil
}

// Return represents a customer return aggregate root. It is created as a
// DRAFT with its full line set and becomes immutable once FINALIZED or
// CANCELLED.
type Return struct {
	shared.BaseAggregateRoot
	ReturnNumber string
	OrderID      uuid.UUID
	CustomerID   uuid.UUID
	Currency     valueobject.Currency
	Type         ReturnType
	Reason       ReturnReason
	Status       ReturnStatus
	TotalAmount  decimal.Decimal
	Lines        []ReturnLine
	Remark       string
	FinalizedAt  *time.Time
	FinalizedBy  *uuid.UUID
	CancelledAt  *time.Time
	CancelledBy  *uuid.UUID
}

// NewReturn creates a new draft return against an order
func NewReturn(returnNumber string, order *Order, returnType ReturnType, reason ReturnReason) (*Return, error) {
	if returnNumber == "" {
		return nil, shared.NewFieldValidationError("return_number", "INVALID_RETURN_NUMBER", "Return number cannot be empty")
	}
	if order == nil {
		return nil, shared.NewValidationError("INVALID_ORDER", "Order cannot be nil")
	}
	if order.IsCancelled() {
		return nil, shared.NewStateError(order.Status.String(), "ORDER_CANCELLED", "Cannot create a return against a cancelled order")
	}
	if !returnType.IsValid() {
		return nil, shared.NewFieldValidationError("type", "INVALID_RETURN_TYPE", "Return type must be REFUND or EXCHANGE")
	}
	if !reason.IsValid() {
		return nil, shared.NewFieldValidationError("reason", "INVALID_REASON_CODE", "Unknown return reason code")
	}

	return &Return{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ReturnNumber:      returnNumber,
		OrderID:           order.ID,
		CustomerID:        order.CustomerID,
		Currency:          order.Currency,
		Type:              returnType,
		Reason:            reason,
		Status:            ReturnStatusDraft,
		TotalAmount:       decimal.Zero,
		Lines:             make([]ReturnLine, 0),
	}, nil
}

// AddLine adds a line to the draft and recalculates the total
func (r *Return) AddLine(orderLine *OrderLine, quantity int64) (*ReturnLine, error) {
	if r.Status != ReturnStatusDraft {
		return nil, shared.NewStateError(r.Status.String(), "RETURN_NOT_DRAFT", "Lines can only be added to a draft return")
	}
	for idx := range r.Lines {
		if orderLine != nil && r.Lines[idx].OrderLineID == orderLine.ID {
			return nil, shared.NewValidationError("DUPLICATE_LINE", "Order line already present in return")
		}
	}

	line, err := NewReturnLine(r.ID, orderLine, quantity, r.Currency)
	if err != nil {
		return nil, err
	}

	r.Lines = append(r.Lines, *line)
	r.recalculateTotal()
	r.Touch()

	return line, nil
}

// recalculateTotal recalculates the total return amount
func (r *Return) recalculateTotal() {
	total := decimal.Zero
	for idx := range r.Lines {
		total = total.Add(r.Lines[idx].Amount)
	}
	r.TotalAmount = total
}

// Finalize marks the return finalized. The surrounding service performs the
// inventory, ledger and credit side effects; this only guards and records
// the transition.
func (r *Return) Finalize(actor uuid.UUID) error {
	if !r.Status.CanTransitionTo(ReturnStatusFinalized) {
		return shared.NewStateError(r.Status.String(), "INVALID_RETURN_STATUS", "Only a draft return can be finalized")
	}
	if len(r.Lines) == 0 {
		return shared.NewValidationError("NO_LINES", "Cannot finalize a return without lines")
	}

	now := time.Now()
	r.Status = ReturnStatusFinalized
	r.FinalizedAt = &now
	r.FinalizedBy = &actor
	r.Touch()

	return nil
}

// Cancel abandons a draft return. Nothing was committed against inventory or
// payments while in DRAFT, so cancelling has no side effects.
func (r *Return) Cancel(actor uuid.UUID) error {
	if !r.Status.CanTransitionTo(ReturnStatusCancelled) {
		return shared.NewStateError(r.Status.String(), "INVALID_RETURN_STATUS", "Only a draft return can be cancelled")
	}

	now := time.Now()
	r.Status = ReturnStatusCancelled
	r.CancelledAt = &now
	r.CancelledBy = &actor
	r.Touch()

	return nil
}

// IsDraft returns true if the return is in draft status
func (r *Return) IsDraft() bool {
	return r.Status == ReturnStatusDraft
}

// IsFinalized returns true if the return is finalized
func (r *Return) IsFinalized() bool {
	return r.Status == ReturnStatusFinalized
}

// IsTerminal returns true if the return is in a terminal state
func (r *Return) IsTerminal() bool {
	return r.Status == ReturnStatusFinalized || r.Status == ReturnStatusCancelled
}

// TotalAmountMoney returns the total return amount as Money
func (r *Return) TotalAmountMoney() valueobject.Money {
	m, _ := valueobject.NewMoney(r.TotalAmount, r.Currency)
	return m
}

// QuantitiesByStockItem aggregates returned quantities per linked stock item.
// Lines without a stock item link are skipped.
func (r *Return) QuantitiesByStockItem() map[uuid.UUID]int64 {
	quantities := make(map[uuid.UUID]int64)
	for idx := range r.Lines {
		if r.Lines[idx].StockItemID == nil {
			continue
		}
		quantities[*r.Lines[idx].StockItemID] += r.Lines[idx].Quantity
	}
	return quantities
}
