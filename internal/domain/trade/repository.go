package trade

import (
	"context"

	"github.com/google/uuid"
	"github.com/retailcore/backoffice/internal/domain/shared"
)

// OrderRepository persists Order aggregates including their lines
type OrderRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	// Save persists the order and its lines with an optimistic version check;
	// it returns shared.ErrConcurrencyConflict when the row changed underneath.
	Save(ctx context.Context, order *Order) error
}

// ReturnRepository persists Return aggregates including their lines
type ReturnRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Return, error)
	FindByOrder(ctx context.Context, orderID uuid.UUID) ([]Return, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Return, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Save(ctx context.Context, ret *Return) error
	// GenerateReturnNumber produces the next sequential return number
	GenerateReturnNumber(ctx context.Context) (string, error)
}
