package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/retailcore/backoffice/internal/domain/trade"
	"gorm.io/gorm"
)

// reservingStatuses are the order statuses whose lines hold stock.
// Settled and cancelled orders release their claim.
var reservingStatuses = []trade.OrderStatus{
	trade.OrderStatusUnpaid,
	trade.OrderStatusPartiallySettled,
}

// GormReservationReader implements inventory.ReservationReader by
// aggregating over live order lines. Reserved quantity is never stored, so
// the numbers here cannot drift from the orders they derive from.
type GormReservationReader struct {
	db *gorm.DB
}

// NewGormReservationReader creates a new GormReservationReader
func NewGormReservationReader(db *gorm.DB) *GormReservationReader {
	return &GormReservationReader{db: db}
}

// ReservedQuantity sums requested quantities on non-voided lines of orders
// that still reserve stock
func (r *GormReservationReader) ReservedQuantity(ctx context.Context, itemID uuid.UUID) (int64, error) {
	var reserved int64
	err := r.db.WithContext(ctx).
		Table("order_lines").
		Joins("JOIN orders ON orders.id = order_lines.order_id").
		Where("order_lines.stock_item_id = ?", itemID).
		Where("order_lines.voided_at IS NULL").
		Where("orders.status IN ?", reservingStatuses).
		Select("COALESCE(SUM(order_lines.quantity), 0)").
		Scan(&reserved).Error
	if err != nil {
		return 0, err
	}
	return reserved, nil
}

// ReservedQuantities computes reserved quantities for many items in one
// grouped query. Items without live lines are absent from the map.
func (r *GormReservationReader) ReservedQuantities(ctx context.Context, itemIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	reserved := make(map[uuid.UUID]int64, len(itemIDs))
	if len(itemIDs) == 0 {
		return reserved, nil
	}

	type row struct {
		StockItemID uuid.UUID
		Reserved    int64
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Table("order_lines").
		Joins("JOIN orders ON orders.id = order_lines.order_id").
		Where("order_lines.stock_item_id IN ?", itemIDs).
		Where("order_lines.voided_at IS NULL").
		Where("orders.status IN ?", reservingStatuses).
		Select("order_lines.stock_item_id AS stock_item_id, COALESCE(SUM(order_lines.quantity), 0) AS reserved").
		Group("order_lines.stock_item_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for i := range rows {
		reserved[rows[i].StockItemID] = rows[i].Reserved
	}
	return reserved, nil
}
