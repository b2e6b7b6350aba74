package inventory

import (
	"github.com/google/uuid"
	"github.com/retailcore/backoffice/internal/domain/shared"
)

// MovementKind classifies an inventory movement record
type MovementKind string

const (
	// MovementKindReturnDrafted is informational: a draft return references
	// the item but no stock has changed yet.
	MovementKindReturnDrafted MovementKind = "RETURN_DRAFTED"
	// MovementKindReturnRestock records stock restored by a finalized return
	MovementKindReturnRestock MovementKind = "RETURN_RESTOCK"
)

// IsValid checks if the kind is a valid MovementKind
func (k MovementKind) IsValid() bool {
	return k == MovementKindReturnDrafted || k == MovementKindReturnRestock
}

// Movement is an append-only journal entry for a stock item. Movements are
// never updated or deleted; RETURN_DRAFTED entries record intent only and do
// not change stock.
type Movement struct {
	shared.BaseEntity
	StockItemID uuid.UUID
	Kind        MovementKind
	Quantity    int64
	ReturnID    *uuid.UUID
	Note        string
}

// NewMovement creates a new inventory movement record
func NewMovement(stockItemID uuid.UUID, kind MovementKind, quantity int64, returnID *uuid.UUID, note string) (*Movement, error) {
	if stockItemID == uuid.Nil {
		return nil, shared.NewValidationError("INVALID_ITEM", "Stock item ID cannot be empty")
	}
	if !kind.IsValid() {
		return nil, shared.NewValidationError("INVALID_KIND", "Unknown movement kind")
	}
	if quantity <= 0 {
		return nil, shared.NewValidationError("INVALID_QUANTITY", "Movement quantity must be positive")
	}
	return &Movement{
		BaseEntity:  shared.NewBaseEntity(),
		StockItemID: stockItemID,
		Kind:        kind,
		Quantity:    quantity,
		ReturnID:    returnID,
		Note:        note,
	}, nil
}
