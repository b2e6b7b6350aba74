package inventory

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/retailcore/backoffice/internal/application/txn"
	"github.com/retailcore/backoffice/internal/domain/inventory"
	"github.com/retailcore/backoffice/internal/domain/shared"
	"go.uber.org/zap"
)

// MaxBulkItems caps the number of items in one bulk availability call to
// bound worst-case work per request.
const MaxBulkItems = 100

// AvailabilityService computes reserved and available quantities for stock
// items. Reserved quantity is always derived from live order lines and never
// stored, so there is no counter to drift.
type AvailabilityService struct {
	scope        txn.Scope
	items        inventory.StockItemRepository
	reservations inventory.ReservationReader
	logger       *zap.Logger
}

// NewAvailabilityService creates a new AvailabilityService
func NewAvailabilityService(
	scope txn.Scope,
	items inventory.StockItemRepository,
	reservations inventory.ReservationReader,
	logger *zap.Logger,
) *AvailabilityService {
	return &AvailabilityService{
		scope:        scope,
		items:        items,
		reservations: reservations,
		logger:       logger,
	}
}

// ComputeAvailability returns the reservation view of a single item. An
// unknown item yields zero availability and a nil item rather than an error;
// the caller decides whether that is fatal.
//
// With withLock set, the computation runs inside a transaction holding an
// exclusive row lock on the stock item, so two concurrent reservation checks
// against the same item serialize instead of both observing stale headroom.
// The lock is released when the surrounding transaction ends.
func (s *AvailabilityService) ComputeAvailability(ctx context.Context, itemID uuid.UUID, withLock bool) (*AvailabilityResponse, error) {
	if !withLock {
		availability, err := s.compute(ctx, itemID, s.items, s.reservations)
		if err != nil {
			return nil, err
		}
		resp := ToAvailabilityResponse(availability)
		return &resp, nil
	}

	var resp AvailabilityResponse
	err := s.scope.Execute(ctx, func(repos txn.Repositories) error {
		availability, err := s.computeLocked(ctx, itemID, repos)
		if err != nil {
			return err
		}
		resp = ToAvailabilityResponse(availability)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *AvailabilityService) compute(ctx context.Context, itemID uuid.UUID, items inventory.StockItemRepository, reservations inventory.ReservationReader) (inventory.Availability, error) {
	item, err := items.FindByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return inventory.NewAvailability(nil, 0), nil
		}
		return inventory.Availability{}, err
	}

	reserved, err := reservations.ReservedQuantity(ctx, itemID)
	if err != nil {
		return inventory.Availability{}, err
	}

	return inventory.NewAvailability(item, reserved), nil
}

// computeLocked acquires the row lock before the reserved aggregate so the
// read-then-decide sequence cannot race a concurrent reservation.
func (s *AvailabilityService) computeLocked(ctx context.Context, itemID uuid.UUID, repos txn.Repositories) (inventory.Availability, error) {
	item, err := repos.StockItems().FindByIDForUpdate(ctx, itemID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return inventory.NewAvailability(nil, 0), nil
		}
		return inventory.Availability{}, err
	}

	reserved, err := repos.Reservations().ReservedQuantity(ctx, itemID)
	if err != nil {
		return inventory.Availability{}, err
	}

	return inventory.NewAvailability(item, reserved), nil
}

// ComputeBulkAvailability computes the reservation view for many items in
// two batched queries: one grouped aggregate over live order lines and one
// over the stock rows. The input is capped at MaxBulkItems per call.
// Unknown IDs are absent from the result map.
func (s *AvailabilityService) ComputeBulkAvailability(ctx context.Context, itemIDs []uuid.UUID) (map[uuid.UUID]BulkAvailabilityEntry, error) {
	if len(itemIDs) == 0 {
		return map[uuid.UUID]BulkAvailabilityEntry{}, nil
	}
	if len(itemIDs) > MaxBulkItems {
		return nil, shared.NewValidationError("TOO_MANY_ITEMS", "Bulk availability is limited to 100 items per call")
	}

	reserved, err := s.reservations.ReservedQuantities(ctx, itemIDs)
	if err != nil {
		return nil, err
	}

	items, err := s.items.FindByIDs(ctx, itemIDs)
	if err != nil {
		return nil, err
	}

	result := make(map[uuid.UUID]BulkAvailabilityEntry, len(items))
	for idx := range items {
		item := &items[idx]
		r := reserved[item.ID]
		result[item.ID] = BulkAvailabilityEntry{
			OnHand:    item.OnHand,
			Reserved:  r,
			Available: inventory.AvailableQuantity(item.OnHand, r),
		}
	}

	s.logger.Debug("computed bulk availability",
		zap.Int("requested", len(itemIDs)),
		zap.Int("found", len(result)))

	return result, nil
}
