package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/retailcore/backoffice/internal/domain/shared"
	"github.com/retailcore/backoffice/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// OrderStatus represents the settlement status of an order (invoice).
// UNPAID, PARTIALLY_SETTLED and SETTLED are derived from payment history and
// may move between each other as transactions accrue or are refunded.
// CANCELLED is terminal and sticky: once cancelled, no derivation overwrites it.
type OrderStatus string

const (
	OrderStatusUnpaid           OrderStatus = "UNPAID"
	OrderStatusPartiallySettled OrderStatus = "PARTIALLY_SETTLED"
	OrderStatusSettled          OrderStatus = "SETTLED"
	OrderStatusCancelled        OrderStatus = "CANCELLED"
)

// IsValid checks if the status is a valid OrderStatus
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusUnpaid, OrderStatusPartiallySettled, OrderStatusSettled, OrderStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of OrderStatus
func (s OrderStatus) String() string {
	return string(s)
}

// IsTerminal returns true for statuses no derivation may overwrite
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusCancelled
}

// OrderLine represents a single line of an order. UnitPrice is the price at
// time of sale and never changes afterwards. QuantityReturned is a running
// total maintained by finalized returns.
type OrderLine struct {
	ID               uuid.UUID
	OrderID          uuid.UUID
	StockItemID      *uuid.UUID
	Description      string
	Quantity         int64
	UnitPrice        decimal.Decimal
	QuantityReturned int64
	VoidedAt         *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// IsVoided returns true if the line has been voided
func (l *OrderLine) IsVoided() bool {
	return l.VoidedAt != nil
}

// Void marks the line as voided. Voiding is set-once and terminal.
func (l *OrderLine) Void() error {
	if l.IsVoided() {
		return shared.NewStateError("VOIDED", "LINE_ALREADY_VOIDED", "Order line is already voided")
	}
	now := time.Now()
	l.VoidedAt = &now
	l.UpdatedAt = now
	return nil
}

// Returnable returns the quantity still eligible for return.
// Voided lines have nothing left to return.
func (l *OrderLine) Returnable() int64 {
	if l.IsVoided() {
		return 0
	}
	return l.Quantity - l.QuantityReturned
}

// RecordReturn adds to the running returned total. The caller validates the
// quantity against Returnable at draft time; this re-checks defensively.
func (l *OrderLine) RecordReturn(quantity int64) error {
	if quantity <= 0 {
		return shared.NewValidationError("INVALID_QUANTITY", "Returned quantity must be positive")
	}
	if quantity > l.Returnable() {
		return shared.NewConsistencyError("EXCEEDS_RETURNABLE", "Returned quantity exceeds returnable quantity")
	}
	l.QuantityReturned += quantity
	l.UpdatedAt = time.Now()
	return nil
}

// IsFullyReturned returns true when nothing on the line remains outstanding.
// Voided lines carry no obligation and count as satisfied.
func (l *OrderLine) IsFullyReturned() bool {
	return l.IsVoided() || l.QuantityReturned >= l.Quantity
}

// UnitPriceMoney returns the sale-time unit price as Money
func (l *OrderLine) UnitPriceMoney(currency valueobject.Currency) valueobject.Money {
	m, _ := valueobject.NewMoney(l.UnitPrice, currency)
	return m
}

// LineAmount returns quantity times sale-time unit price
func (l *OrderLine) LineAmount() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(l.Quantity))
}

// Order represents an order (invoice) aggregate root. NetPaid, BalanceDue and
// Status are derived caches owned by the ledger recomputation: ApplyNetPaid
// and Cancel are the only writers of those fields anywhere in the codebase.
type Order struct {
	shared.BaseAggregateRoot
	OrderNumber  string
	CustomerID   uuid.UUID
	Currency     valueobject.Currency
	TotalAmount  decimal.Decimal
	NetPaid      decimal.Decimal
	BalanceDue   decimal.Decimal
	Status       OrderStatus
	CancelledAt  *time.Time
	CancelReason string
	Lines        []OrderLine
}

// NewOrder creates a new unpaid order
func NewOrder(orderNumber string, customerID uuid.UUID, currency valueobject.Currency) (*Order, error) {
	if orderNumber == "" {
		return nil, shared.NewFieldValidationError("order_number", "INVALID_ORDER_NUMBER", "Order number cannot be empty")
	}
	if customerID == uuid.Nil {
		return nil, shared.NewFieldValidationError("customer_id", "INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	if !currency.IsValid() {
		return nil, shared.NewFieldValidationError("currency", "INVALID_CURRENCY", "Unsupported currency")
	}

	return &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrderNumber:       orderNumber,
		CustomerID:        customerID,
		Currency:          currency,
		TotalAmount:       decimal.Zero,
		NetPaid:           decimal.Zero,
		BalanceDue:        decimal.Zero,
		Status:            OrderStatusUnpaid,
		Lines:             make([]OrderLine, 0),
	}, nil
}

// AddLine adds a line and recalculates the order total
func (o *Order) AddLine(stockItemID *uuid.UUID, description string, quantity int64, unitPrice decimal.Decimal) (*OrderLine, error) {
	if quantity <= 0 {
		return nil, shared.NewValidationError("INVALID_QUANTITY", "Line quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewValidationError("INVALID_AMOUNT", "Unit price cannot be negative")
	}

	now := time.Now()
	line := OrderLine{
		ID:          uuid.New(),
		OrderID:     o.ID,
		StockItemID: stockItemID,
		Description: description,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	o.Lines = append(o.Lines, line)
	o.recalculateTotal()
	o.Touch()

	return &o.Lines[len(o.Lines)-1], nil
}

// recalculateTotal sums non-voided line amounts into TotalAmount and refreshes
// the balance against the unchanged net paid.
func (o *Order) recalculateTotal() {
	total := decimal.Zero
	for idx := range o.Lines {
		if o.Lines[idx].IsVoided() {
			continue
		}
		total = total.Add(o.Lines[idx].LineAmount())
	}
	o.TotalAmount = total
	o.BalanceDue = o.deriveBalance(o.NetPaid)
}

// ApplyNetPaid installs a freshly derived net-paid amount and re-derives
// balance due and status from it. This is the sole status derivation in the
// codebase; a cancelled order keeps its status and a zero balance.
func (o *Order) ApplyNetPaid(netPaid decimal.Decimal) {
	if netPaid.IsNegative() {
		netPaid = decimal.Zero
	}
	o.NetPaid = netPaid
	o.BalanceDue = o.deriveBalance(netPaid)

	if !o.Status.IsTerminal() {
		switch {
		case netPaid.LessThanOrEqual(decimal.Zero):
			o.Status = OrderStatusUnpaid
		case netPaid.GreaterThanOrEqual(o.TotalAmount):
			o.Status = OrderStatusSettled
		default:
			o.Status = OrderStatusPartiallySettled
		}
	}
	o.Touch()
}

func (o *Order) deriveBalance(netPaid decimal.Decimal) decimal.Decimal {
	if o.Status.IsTerminal() {
		return decimal.Zero
	}
	balance := o.TotalAmount.Sub(netPaid)
	if balance.IsNegative() {
		return decimal.Zero
	}
	return balance
}

// Cancel transitions the order to its terminal cancelled status. The balance
// is forced to zero; nothing further is owed on a cancelled order.
func (o *Order) Cancel(reason string) error {
	if o.IsCancelled() {
		return shared.NewStateError(o.Status.String(), "ORDER_ALREADY_CANCELLED", "Order is already cancelled")
	}
	if reason == "" {
		return shared.NewValidationError("INVALID_REASON", "Cancel reason is required")
	}

	now := time.Now()
	o.Status = OrderStatusCancelled
	o.CancelledAt = &now
	o.CancelReason = reason
	o.BalanceDue = decimal.Zero
	o.Touch()

	return nil
}

// GetLine returns a line by its ID, or nil when absent
func (o *Order) GetLine(lineID uuid.UUID) *OrderLine {
	for idx := range o.Lines {
		if o.Lines[idx].ID == lineID {
			return &o.Lines[idx]
		}
	}
	return nil
}

// IsFullyReturned reports whether every line has been returned in full
func (o *Order) IsFullyReturned() bool {
	for idx := range o.Lines {
		if !o.Lines[idx].IsFullyReturned() {
			return false
		}
	}
	return true
}

// IsCancelled returns true if the order is cancelled
func (o *Order) IsCancelled() bool {
	return o.Status == OrderStatusCancelled
}

// IsSettled returns true if the order is fully settled
func (o *Order) IsSettled() bool {
	return o.Status == OrderStatusSettled
}

// ReservesStock reports whether the order's lines still count against
// availability: settled and cancelled orders hold no reservation.
func (o *Order) ReservesStock() bool {
	return !o.IsSettled() && !o.IsCancelled()
}

// CanAcceptCredit reports whether store credit may still be applied
func (o *Order) CanAcceptCredit() bool {
	return !o.IsCancelled() && !o.IsSettled()
}

// TotalAmountMoney returns the order total as Money
func (o *Order) TotalAmountMoney() valueobject.Money {
	m, _ := valueobject.NewMoney(o.TotalAmount, o.Currency)
	return m
}
