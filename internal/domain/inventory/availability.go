package inventory

// AvailableQuantity computes the sellable headroom for an item. It is never
// negative: an oversold item reports zero, not a deficit.
func AvailableQuantity(onHand, reserved int64) int64 {
	available := onHand - reserved
	if available < 0 {
		return 0
	}
	return available
}

// Availability is the derived reservation view of a single stock item.
// Item is nil when the item does not exist; the caller decides whether that
// is fatal.
type Availability struct {
	Item      *StockItem
	OnHand    int64
	Reserved  int64
	Available int64
}

// NewAvailability builds the availability view for an item. A nil item yields
// zero availability.
func NewAvailability(item *StockItem, reserved int64) Availability {
	if item == nil {
		return Availability{}
	}
	return Availability{
		Item:      item,
		OnHand:    item.OnHand,
		Reserved:  reserved,
		Available: AvailableQuantity(item.OnHand, reserved),
	}
}
