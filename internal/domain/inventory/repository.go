package inventory

import (
	"context"

	"github.com/google/uuid"
)

// ValuationFilter narrows the item set fed into the valuation aggregator
type ValuationFilter struct {
	Category string
	SubType  string
}

// StockItemRepository persists StockItem aggregates
type StockItemRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*StockItem, error)
	FindBySKU(ctx context.Context, sku string) (*StockItem, error)
	// FindByIDForUpdate loads the item under an exclusive row lock. It must be
	// called inside a transaction; the lock is held until commit or rollback.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*StockItem, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]StockItem, error)
	FindForValuation(ctx context.Context, filter ValuationFilter) ([]StockItem, error)
	Save(ctx context.Context, item *StockItem) error
	// SaveWithLock persists the item with an optimistic version check and
	// returns shared.ErrConcurrencyConflict when the row changed underneath.
	SaveWithLock(ctx context.Context, item *StockItem) error
}

// ReservationReader derives reserved quantities from live order lines.
// Reserved quantity is never stored, so there is nothing to desynchronize.
type ReservationReader interface {
	// ReservedQuantity sums requested quantities on non-voided lines of
	// orders that are neither settled nor cancelled.
	ReservedQuantity(ctx context.Context, itemID uuid.UUID) (int64, error)
	// ReservedQuantities computes the same for many items in one grouped
	// aggregate query. Items without live lines are absent from the map.
	ReservedQuantities(ctx context.Context, itemIDs []uuid.UUID) (map[uuid.UUID]int64, error)
}

// MovementRepository persists the append-only movement journal
type MovementRepository interface {
	Append(ctx context.Context, movement *Movement) error
	FindByStockItem(ctx context.Context, itemID uuid.UUID) ([]Movement, error)
}
