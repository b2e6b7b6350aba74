package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/retailcore/backoffice/internal/domain/shared/valueobject"
	"github.com/retailcore/backoffice/internal/domain/trade"
	"github.com/shopspring/decimal"
)

// OrderModel is the persistence model for the Order aggregate root.
// NetPaid, BalanceDue and Status are derived caches; the source of truth is
// the ledger_transactions and credit_applications history.
type OrderModel struct {
	AggregateModel
	OrderNumber  string            `gorm:"type:varchar(50);not null;uniqueIndex"`
	CustomerID   uuid.UUID         `gorm:"type:uuid;not null;index"`
	Currency     string            `gorm:"type:varchar(3);not null;default:'USD'"`
	TotalAmount  decimal.Decimal   `gorm:"type:decimal(18,4);not null;default:0"`
	NetPaid      decimal.Decimal   `gorm:"type:decimal(18,4);not null;default:0"`
	BalanceDue   decimal.Decimal   `gorm:"type:decimal(18,4);not null;default:0"`
	Status       trade.OrderStatus `gorm:"type:varchar(20);not null;default:'UNPAID';index"`
	CancelledAt  *time.Time
	CancelReason string           `gorm:"type:varchar(500)"`
	Lines        []OrderLineModel `gorm:"foreignKey:OrderID;references:ID"`
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return "orders"
}

// ToDomain converts the persistence model to a domain Order
func (m *OrderModel) ToDomain() *trade.Order {
	order := &trade.Order{
		OrderNumber:  m.OrderNumber,
		CustomerID:   m.CustomerID,
		Currency:     valueobject.Currency(m.Currency),
		TotalAmount:  m.TotalAmount,
		NetPaid:      m.NetPaid,
		BalanceDue:   m.BalanceDue,
		Status:       m.Status,
		CancelledAt:  m.CancelledAt,
		CancelReason: m.CancelReason,
		Lines:        make([]trade.OrderLine, len(m.Lines)),
	}
	m.PopulateAggregateRoot(&order.BaseAggregateRoot)
	for i := range m.Lines {
		order.Lines[i] = *m.Lines[i].ToDomain()
	}
	return order
}

// FromDomain populates the persistence model from a domain Order
func (m *OrderModel) FromDomain(o *trade.Order) {
	m.FromDomainAggregateRoot(o.BaseAggregateRoot)
	m.OrderNumber = o.OrderNumber
	m.CustomerID = o.CustomerID
	m.Currency = o.Currency.String()
	m.TotalAmount = o.TotalAmount
	m.NetPaid = o.NetPaid
	m.BalanceDue = o.BalanceDue
	m.Status = o.Status
	m.CancelledAt = o.CancelledAt
	m.CancelReason = o.CancelReason
	m.Lines = make([]OrderLineModel, len(o.Lines))
	for i := range o.Lines {
		m.Lines[i] = *OrderLineModelFromDomain(&o.Lines[i])
	}
}

// OrderModelFromDomain creates a new persistence model from a domain Order
func OrderModelFromDomain(o *trade.Order) *OrderModel {
	m := &OrderModel{}
	m.FromDomain(o)
	return m
}

// OrderLineModel is the persistence model for the OrderLine entity
type OrderLineModel struct {
	ID               uuid.UUID       `gorm:"type:uuid;primary_key"`
	OrderID          uuid.UUID       `gorm:"type:uuid;not null;index"`
	StockItemID      *uuid.UUID      `gorm:"type:uuid;index"`
	Description      string          `gorm:"type:varchar(500);not null"`
	Quantity         int64           `gorm:"not null"`
	UnitPrice        decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	QuantityReturned int64           `gorm:"not null;default:0"`
	VoidedAt         *time.Time
	CreatedAt        time.Time `gorm:"not null"`
	UpdatedAt        time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (OrderLineModel) TableName() string {
	return "order_lines"
}

// ToDomain converts the persistence model to a domain OrderLine
func (m *OrderLineModel) ToDomain() *trade.OrderLine {
	return &trade.OrderLine{
		ID:               m.ID,
		OrderID:          m.OrderID,
		StockItemID:      m.StockItemID,
		Description:      m.Description,
		Quantity:         m.Quantity,
		UnitPrice:        m.UnitPrice,
		QuantityReturned: m.QuantityReturned,
		VoidedAt:         m.VoidedAt,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

// OrderLineModelFromDomain creates a new persistence model from a domain OrderLine
func OrderLineModelFromDomain(l *trade.OrderLine) *OrderLineModel {
	return &OrderLineModel{
		ID:               l.ID,
		OrderID:          l.OrderID,
		StockItemID:      l.StockItemID,
		Description:      l.Description,
		Quantity:         l.Quantity,
		UnitPrice:        l.UnitPrice,
		QuantityReturned: l.QuantityReturned,
		VoidedAt:         l.VoidedAt,
		CreatedAt:        l.CreatedAt,
		UpdatedAt:        l.UpdatedAt,
	}
}

// ReturnModel is the persistence model for the Return aggregate root
type ReturnModel struct {
	AggregateModel
	ReturnNumber string             `gorm:"type:varchar(50);not null;uniqueIndex"`
	OrderID      uuid.UUID          `gorm:"type:uuid;not null;index"`
	CustomerID   uuid.UUID          `gorm:"type:uuid;not null;index"`
	Currency     string             `gorm:"type:varchar(3);not null;default:'USD'"`
	Type         trade.ReturnType   `gorm:"type:varchar(20);not null"`
	Reason       trade.ReturnReason `gorm:"type:varchar(20);not null"`
	Status       trade.ReturnStatus `gorm:"type:varchar(20);not null;default:'DRAFT';index"`
	TotalAmount  decimal.Decimal    `gorm:"type:decimal(18,4);not null;default:0"`
	Remark       string             `gorm:"type:varchar(500)"`
	FinalizedAt  *time.Time
	FinalizedBy  *uuid.UUID `gorm:"type:uuid"`
	CancelledAt  *time.Time
	CancelledBy  *uuid.UUID        `gorm:"type:uuid"`
	Lines        []ReturnLineModel `gorm:"foreignKey:ReturnID;references:ID"`
}

// TableName returns the table name for GORM
func (ReturnModel) TableName() string {
	return "returns"
}

// ToDomain converts the persistence model to a domain Return
func (m *ReturnModel) ToDomain() *trade.Return {
	ret := &trade.Return{
		ReturnNumber: m.ReturnNumber,
		OrderID:      m.OrderID,
		CustomerID:   m.CustomerID,
		Currency:     valueobject.Currency(m.Currency),
		Type:         m.Type,
		Reason:       m.Reason,
		Status:       m.Status,
		TotalAmount:  m.TotalAmount,
		Remark:       m.Remark,
		FinalizedAt:  m.FinalizedAt,
		FinalizedBy:  m.FinalizedBy,
		CancelledAt:  m.CancelledAt,
		CancelledBy:  m.CancelledBy,
		Lines:        make([]trade.ReturnLine, len(m.Lines)),
	}
	m.PopulateAggregateRoot(&ret.BaseAggregateRoot)
	for i := range m.Lines {
		ret.Lines[i] = *m.Lines[i].ToDomain()
	}
	return ret
}

// FromDomain populates the persistence model from a domain Return
func (m *ReturnModel) FromDomain(r *trade.Return) {
	m.FromDomainAggregateRoot(r.BaseAggregateRoot)
	m.ReturnNumber = r.ReturnNumber
	m.OrderID = r.OrderID
	m.CustomerID = r.CustomerID
	m.Currency = r.Currency.String()
	m.Type = r.Type
	m.Reason = r.Reason
	m.Status = r.Status
	m.TotalAmount = r.TotalAmount
	m.Remark = r.Remark
	m.FinalizedAt = r.FinalizedAt
	m.FinalizedBy = r.FinalizedBy
	m.CancelledAt = r.CancelledAt
	m.CancelledBy = r.CancelledBy
	m.Lines = make([]ReturnLineModel, len(r.Lines))
	for i := range r.Lines {
		m.Lines[i] = *ReturnLineModelFromDomain(&r.Lines[i])
	}
}

// ReturnModelFromDomain creates a new persistence model from a domain Return
func ReturnModelFromDomain(r *trade.Return) *ReturnModel {
	m := &ReturnModel{}
	m.FromDomain(r)
	return m
}

// ReturnLineModel is the persistence model for the ReturnLine entity
type ReturnLineModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key"`
	ReturnID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	OrderLineID uuid.UUID       `gorm:"type:uuid;not null;index"`
	StockItemID *uuid.UUID      `gorm:"type:uuid;index"`
	Quantity    int64           `gorm:"not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	CreatedAt   time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ReturnLineModel) TableName() string {
	return "return_lines"
}

// ToDomain converts the persistence model to a domain ReturnLine
func (m *ReturnLineModel) ToDomain() *trade.ReturnLine {
	return &trade.ReturnLine{
		ID:          m.ID,
		ReturnID:    m.ReturnID,
		OrderLineID: m.OrderLineID,
		StockItemID: m.StockItemID,
		Quantity:    m.Quantity,
		UnitPrice:   m.UnitPrice,
		Amount:      m.Amount,
		CreatedAt:   m.CreatedAt,
	}
}

// ReturnLineModelFromDomain creates a new persistence model from a domain ReturnLine
func ReturnLineModelFromDomain(l *trade.ReturnLine) *ReturnLineModel {
	return &ReturnLineModel{
		ID:          l.ID,
		ReturnID:    l.ReturnID,
		OrderLineID: l.OrderLineID,
		StockItemID: l.StockItemID,
		Quantity:    l.Quantity,
		UnitPrice:   l.UnitPrice,
		Amount:      l.Amount,
		CreatedAt:   l.CreatedAt,
	}
}
