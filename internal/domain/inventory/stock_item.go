package inventory

import (
	"github.com/retailcore/backoffice/internal/domain/shared"
	"github.com/retailcore/backoffice/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// StockStatus is the display status of a stock item. IN_STOCK and
// OUT_OF_STOCK are derived from on-hand and reserved quantities;
// DISCONTINUED is set by warehouse operations and is never derived.
type StockStatus string

const (
	StockStatusInStock      StockStatus = "IN_STOCK"
	StockStatusOutOfStock   StockStatus = "OUT_OF_STOCK"
	StockStatusDiscontinued StockStatus = "DISCONTINUED"
)

// IsValid checks if the status is a valid StockStatus
func (s StockStatus) IsValid() bool {
	switch s {
	case StockStatusInStock, StockStatusOutOfStock, StockStatusDiscontinued:
		return true
	}
	return false
}

// String returns the string representation of StockStatus
func (s StockStatus) String() string {
	return string(s)
}

// StockItem represents a stocked article. OnHand is the physical quantity
// owned by warehouse operations; the reserved quantity is never stored on the
// item, it is always derived from live order lines (see Availability).
type StockItem struct {
	shared.BaseAggregateRoot
	SKU       string
	Name      string
	Category  string
	SubType   string
	OnHand    int64
	UnitCost  decimal.Decimal
	ListPrice decimal.Decimal
	Currency  valueobject.Currency
	Status    StockStatus
}

// NewStockItem creates a new stock item
func NewStockItem(sku, name, category, subType string, unitCost, listPrice decimal.Decimal, currency valueobject.Currency) (*StockItem, error) {
	if sku == "" {
		return nil, shared.NewFieldValidationError("sku", "INVALID_SKU", "SKU cannot be empty")
	}
	if name == "" {
		return nil, shared.NewFieldValidationError("name", "INVALID_NAME", "Name cannot be empty")
	}
	if unitCost.IsNegative() {
		return nil, shared.NewFieldValidationError("unit_cost", "INVALID_AMOUNT", "Unit cost cannot be negative")
	}
	if listPrice.IsNegative() {
		return nil, shared.NewFieldValidationError("list_price", "INVALID_AMOUNT", "List price cannot be negative")
	}
	if !currency.IsValid() {
		return nil, shared.NewFieldValidationError("currency", "INVALID_CURRENCY", "Unsupported currency")
	}

	return &StockItem{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		SKU:               sku,
		Name:              name,
		Category:          category,
		SubType:           subType,
		OnHand:            0,
		UnitCost:          unitCost,
		ListPrice:         listPrice,
		Currency:          currency,
		Status:            StockStatusOutOfStock,
	}, nil
}

// Receive increases the on-hand quantity, e.g. when returned goods are
// restocked or a purchase is received.
func (s *StockItem) Receive(quantity int64) error {
	if quantity <= 0 {
		return shared.NewValidationError("INVALID_QUANTITY", "Received quantity must be positive")
	}
	s.OnHand += quantity
	s.Touch()
	return nil
}

// Deduct decreases the on-hand quantity when an order becomes fully settled
func (s *StockItem) Deduct(quantity int64) error {
	if quantity <= 0 {
		return shared.NewValidationError("INVALID_QUANTITY", "Deducted quantity must be positive")
	}
	if quantity > s.OnHand {
		return shared.NewConsistencyError("INSUFFICIENT_STOCK", "Cannot deduct more than on-hand quantity")
	}
	s.OnHand -= quantity
	s.Touch()
	return nil
}

// Discontinue marks the item as no longer sellable. The status is no longer
// derived once discontinued.
func (s *StockItem) Discontinue() {
	s.Status = StockStatusDiscontinued
	s.Touch()
}

// RefreshStatus re-derives the display status from the current on-hand and
// reserved quantities. Discontinued items keep their status.
func (s *StockItem) RefreshStatus(reserved int64) {
	if s.Status == StockStatusDiscontinued {
		return
	}
	if AvailableQuantity(s.OnHand, reserved) > 0 {
		s.Status = StockStatusInStock
	} else {
		s.Status = StockStatusOutOfStock
	}
	s.Touch()
}

// UnitCostMoney returns the unit cost as Money value object
func (s *StockItem) UnitCostMoney() valueobject.Money {
	m, _ := valueobject.NewMoney(s.UnitCost, s.Currency)
	return m
}

// ListPriceMoney returns the list price as Money value object
func (s *StockItem) ListPriceMoney() valueobject.Money {
	m, _ := valueobject.NewMoney(s.ListPrice, s.Currency)
	return m
}
