package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/retailcore/backoffice/internal/domain/finance"
	"github.com/retailcore/backoffice/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// LedgerTransactionModel is the persistence model for the append-only
// payment and refund history. Rows are never updated except to set the void
// marker, and never deleted.
type LedgerTransactionModel struct {
	BaseModel
	OrderID         uuid.UUID               `gorm:"type:uuid;not null;index"`
	Kind            finance.TransactionKind `gorm:"type:varchar(20);not null"`
	Amount          decimal.Decimal         `gorm:"type:decimal(18,4);not null"`
	Method          finance.PaymentMethod   `gorm:"type:varchar(20);not null"`
	Comment         string                  `gorm:"type:varchar(500)"`
	OtherMethodNote string                  `gorm:"type:varchar(500)"`
	ReturnID        *uuid.UUID              `gorm:"type:uuid;index"`
	VoidedAt        *time.Time
	VoidReason      string `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (LedgerTransactionModel) TableName() string {
	return "ledger_transactions"
}

// ToDomain converts the persistence model to a domain LedgerTransaction
func (m *LedgerTransactionModel) ToDomain() *finance.LedgerTransaction {
	return &finance.LedgerTransaction{
		BaseEntity:      m.BaseModel.ToDomain(),
		OrderID:         m.OrderID,
		Kind:            m.Kind,
		Amount:          m.Amount,
		Method:          m.Method,
		Comment:         m.Comment,
		OtherMethodNote: m.OtherMethodNote,
		ReturnID:        m.ReturnID,
		VoidedAt:        m.VoidedAt,
		VoidReason:      m.VoidReason,
	}
}

// FromDomain populates the persistence model from a domain LedgerTransaction
func (m *LedgerTransactionModel) FromDomain(t *finance.LedgerTransaction) {
	m.FromDomainBaseEntity(t.BaseEntity)
	m.OrderID = t.OrderID
	m.Kind = t.Kind
	m.Amount = t.Amount
	m.Method = t.Method
	m.Comment = t.Comment
	m.OtherMethodNote = t.OtherMethodNote
	m.ReturnID = t.ReturnID
	m.VoidedAt = t.VoidedAt
	m.VoidReason = t.VoidReason
}

// LedgerTransactionModelFromDomain creates a new persistence model from a domain LedgerTransaction
func LedgerTransactionModelFromDomain(t *finance.LedgerTransaction) *LedgerTransactionModel {
	m := &LedgerTransactionModel{}
	m.FromDomain(t)
	return m
}

// CustomerCreditModel is the persistence model for the CustomerCredit aggregate root
type CustomerCreditModel struct {
	AggregateModel
	CreditNumber    string               `gorm:"type:varchar(50);not null;uniqueIndex"`
	CustomerID      uuid.UUID            `gorm:"type:uuid;not null;index"`
	Currency        string               `gorm:"type:varchar(3);not null;default:'USD'"`
	OriginalAmount  decimal.Decimal      `gorm:"type:decimal(18,4);not null"`
	RemainingAmount decimal.Decimal      `gorm:"type:decimal(18,4);not null"`
	Status          finance.CreditStatus `gorm:"type:varchar(20);not null;default:'ACTIVE';index"`
	ReturnID        *uuid.UUID           `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (CustomerCreditModel) TableName() string {
	return "customer_credits"
}

// ToDomain converts the persistence model to a domain CustomerCredit
func (m *CustomerCreditModel) ToDomain() *finance.CustomerCredit {
	credit := &finance.CustomerCredit{
		CreditNumber:    m.CreditNumber,
		CustomerID:      m.CustomerID,
		Currency:        valueobject.Currency(m.Currency),
		OriginalAmount:  m.OriginalAmount,
		RemainingAmount: m.RemainingAmount,
		Status:          m.Status,
		ReturnID:        m.ReturnID,
	}
	m.PopulateAggregateRoot(&credit.BaseAggregateRoot)
	return credit
}

// FromDomain populates the persistence model from a domain CustomerCredit
func (m *CustomerCreditModel) FromDomain(c *finance.CustomerCredit) {
	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	m.CreditNumber = c.CreditNumber
	m.CustomerID = c.CustomerID
	m.Currency = c.Currency.String()
	m.OriginalAmount = c.OriginalAmount
	m.RemainingAmount = c.RemainingAmount
	m.Status = c.Status
	m.ReturnID = c.ReturnID
}

// CustomerCreditModelFromDomain creates a new persistence model from a domain CustomerCredit
func CustomerCreditModelFromDomain(c *finance.CustomerCredit) *CustomerCreditModel {
	m := &CustomerCreditModel{}
	m.FromDomain(c)
	return m
}

// CreditApplicationModel is the persistence model for credit applications
type CreditApplicationModel struct {
	BaseModel
	CreditID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	OrderID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount     decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	VoidedAt   *time.Time
	VoidReason string `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (CreditApplicationModel) TableName() string {
	return "credit_applications"
}

// ToDomain converts the persistence model to a domain CreditApplication
func (m *CreditApplicationModel) ToDomain() *finance.CreditApplication {
	return &finance.CreditApplication{
		BaseEntity: m.BaseModel.ToDomain(),
		CreditID:   m.CreditID,
		OrderID:    m.OrderID,
		Amount:     m.Amount,
		VoidedAt:   m.VoidedAt,
		VoidReason: m.VoidReason,
	}
}

// FromDomain populates the persistence model from a domain CreditApplication
func (m *CreditApplicationModel) FromDomain(a *finance.CreditApplication) {
	m.FromDomainBaseEntity(a.BaseEntity)
	m.CreditID = a.CreditID
	m.OrderID = a.OrderID
	m.Amount = a.Amount
	m.VoidedAt = a.VoidedAt
	m.VoidReason = a.VoidReason
}

// CreditApplicationModelFromDomain creates a new persistence model from a domain CreditApplication
func CreditApplicationModelFromDomain(a *finance.CreditApplication) *CreditApplicationModel {
	m := &CreditApplicationModel{}
	m.FromDomain(a)
	return m
}
