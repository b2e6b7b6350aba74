package inventory

import (
	"github.com/google/uuid"
	"github.com/retailcore/backoffice/internal/domain/inventory"
)

// StockItemResponse is the API view of a stock item
type StockItemResponse struct {
	ID       uuid.UUID `json:"id"`
	SKU      string    `json:"sku"`
	Name     string    `json:"name"`
	Category string    `json:"category"`
	SubType  string    `json:"sub_type"`
	OnHand   int64     `json:"on_hand"`
	Currency string    `json:"currency"`
	Status   string    `json:"status"`
}

// AvailabilityResponse is the derived reservation view of a single item.
// Item is null when the item does not exist.
type AvailabilityResponse struct {
	Item      *StockItemResponse `json:"item"`
	OnHand    int64              `json:"on_hand"`
	Reserved  int64              `json:"reserved"`
	Available int64              `json:"available"`
}

// BulkAvailabilityEntry is one row of a bulk availability result
type BulkAvailabilityEntry struct {
	OnHand    int64 `json:"on_hand"`
	Reserved  int64 `json:"reserved"`
	Available int64 `json:"available"`
}

// ToStockItemResponse converts a domain stock item to its API view
func ToStockItemResponse(item *inventory.StockItem) *StockItemResponse {
	if item == nil {
		return nil
	}
	return &StockItemResponse{
		ID:       item.ID,
		SKU:      item.SKU,
		Name:     item.Name,
		Category: item.Category,
		SubType:  item.SubType,
		OnHand:   item.OnHand,
		Currency: item.Currency.String(),
		Status:   item.Status.String(),
	}
}

// ToAvailabilityResponse converts a domain availability view to its API view
func ToAvailabilityResponse(a inventory.Availability) AvailabilityResponse {
	return AvailabilityResponse{
		Item:      ToStockItemResponse(a.Item),
		OnHand:    a.OnHand,
		Reserved:  a.Reserved,
		Available: a.Available,
	}
}
