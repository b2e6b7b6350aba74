package models

import (
	"github.com/google/uuid"
	"github.com/retailcore/backoffice/internal/domain/inventory"
	"github.com/retailcore/backoffice/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// StockItemModel is the persistence model for the StockItem aggregate root.
// OnHand holds physical stock only; reserved quantity is always derived from
// live order lines and never stored here.
type StockItemModel struct {
	AggregateModel
	SKU       string                `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name      string                `gorm:"type:varchar(200);not null"`
	Category  string                `gorm:"type:varchar(100);not null;index:idx_stock_items_category"`
	SubType   string                `gorm:"type:varchar(100);not null;index:idx_stock_items_category,priority:2"`
	OnHand    int64                 `gorm:"not null;default:0"`
	UnitCost  decimal.Decimal       `gorm:"type:decimal(18,4);not null;default:0"`
	ListPrice decimal.Decimal       `gorm:"type:decimal(18,4);not null;default:0"`
	Currency  string                `gorm:"type:varchar(3);not null;default:'USD'"`
	Status    inventory.StockStatus `gorm:"type:varchar(20);not null;default:'IN_STOCK'"`
}

// TableName returns the table name for GORM
func (StockItemModel) TableName() string {
	return "stock_items"
}

// ToDomain converts the persistence model to a domain StockItem
func (m *StockItemModel) ToDomain() *inventory.StockItem {
	item := &inventory.StockItem{
		SKU:       m.SKU,
		Name:      m.Name,
		Category:  m.Category,
		SubType:   m.SubType,
		OnHand:    m.OnHand,
		UnitCost:  m.UnitCost,
		ListPrice: m.ListPrice,
		Currency:  valueobject.Currency(m.Currency),
		Status:    m.Status,
	}
	m.PopulateAggregateRoot(&item.BaseAggregateRoot)
	return item
}

// FromDomain populates the persistence model from a domain StockItem
func (m *StockItemModel) FromDomain(item *inventory.StockItem) {
	m.FromDomainAggregateRoot(item.BaseAggregateRoot)
	m.SKU = item.SKU
	m.Name = item.Name
	m.Category = item.Category
	m.SubType = item.SubType
	m.OnHand = item.OnHand
	m.UnitCost = item.UnitCost
	m.ListPrice = item.ListPrice
	m.Currency = item.Currency.String()
	m.Status = item.Status
}

// StockItemModelFromDomain creates a new persistence model from a domain StockItem
func StockItemModelFromDomain(item *inventory.StockItem) *StockItemModel {
	m := &StockItemModel{}
	m.FromDomain(item)
	return m
}

// InventoryMovementModel is the persistence model for the append-only
// inventory movement journal.
type InventoryMovementModel struct {
	BaseModel
	StockItemID uuid.UUID              `gorm:"type:uuid;not null;index"`
	Kind        inventory.MovementKind `gorm:"type:varchar(30);not null"`
	Quantity    int64                  `gorm:"not null"`
	ReturnID    *uuid.UUID             `gorm:"type:uuid;index"`
	Note        string                 `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (InventoryMovementModel) TableName() string {
	return "inventory_movements"
}

// ToDomain converts the persistence model to a domain Movement
func (m *InventoryMovementModel) ToDomain() *inventory.Movement {
	return &inventory.Movement{
		BaseEntity:  m.BaseModel.ToDomain(),
		StockItemID: m.StockItemID,
		Kind:        m.Kind,
		Quantity:    m.Quantity,
		ReturnID:    m.ReturnID,
		Note:        m.Note,
	}
}

// FromDomain populates the persistence model from a domain Movement
func (m *InventoryMovementModel) FromDomain(movement *inventory.Movement) {
	m.FromDomainBaseEntity(movement.BaseEntity)
	m.StockItemID = movement.StockItemID
	m.Kind = movement.Kind
	m.Quantity = movement.Quantity
	m.ReturnID = movement.ReturnID
	m.Note = movement.Note
}

// InventoryMovementModelFromDomain creates a new persistence model from a domain Movement
func InventoryMovementModelFromDomain(movement *inventory.Movement) *InventoryMovementModel {
	m := &InventoryMovementModel{}
	m.FromDomain(movement)
	return m
}
