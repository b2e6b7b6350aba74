package trade

import (
	"testing"

	"github.com/google/uuid"
	"github.com/retailcore/backoffice/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Helper function to create a test order with two lines
func createTestOrder(t *testing.T) *Order {
	order, err := NewOrder("ORD-20260830-0001", uuid.New(), valueobject.USD)
	require.NoError(t, err)

	itemA := uuid.New()
	_, err = order.AddLine(&itemA, "Widget A", 10, decimal.NewFromInt(100))
	require.NoError(t, err)

	itemB := uuid.New()
	_, err = order.AddLine(&itemB, "Widget B", 5, decimal.NewFromInt(200))
	require.NoError(t, err)

	return order
}

func TestNewOrder(t *testing.T) {
	t.Run("creates unpaid order", func(t *testing.T) {
		customerID := uuid.New()
		order, err := NewOrder("ORD-001", customerID, valueobject.USD)
		require.NoError(t, err)
		assert.Equal(t, "ORD-001", order.OrderNumber)
		assert.Equal(t, customerID, order.CustomerID)
		assert.Equal(t, OrderStatusUnpaid, order.Status)
		assert.True(t, order.TotalAmount.IsZero())
		assert.True(t, order.NetPaid.IsZero())
		assert.True(t, order.BalanceDue.IsZero())
		assert.Empty(t, order.Lines)
	})

	t.Run("fails with empty order number", func(t *testing.T) {
		order, err := NewOrder("", uuid.New(), valueobject.USD)
		assert.Nil(t, order)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Order number cannot be empty")
	})

	t.Run("fails with nil customer", func(t *testing.T) {
		order, err := NewOrder("ORD-001", uuid.Nil, valueobject.USD)
		assert.Nil(t, order)
		assert.Error(t, err)
	})

	t.Run("fails with unsupported currency", func(t *testing.T) {
		order, err := NewOrder("ORD-001", uuid.New(), valueobject.Currency("XXX"))
		assert.Nil(t, order)
		assert.Error(t, err)
	})
}

func TestOrderAddLine(t *testing.T) {
	t.Run("recalculates total", func(t *testing.T) {
		order := createTestOrder(t)
		// 10*100 + 5*200
		assert.True(t, order.TotalAmount.Equal(decimal.NewFromInt(2000)))
		assert.True(t, order.BalanceDue.Equal(decimal.NewFromInt(2000)))
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		order := createTestOrder(t)
		_, err := order.AddLine(nil, "Bad", 0, decimal.NewFromInt(10))
		assert.Error(t, err)
	})

	t.Run("rejects negative unit price", func(t *testing.T) {
		order := createTestOrder(t)
		_, err := order.AddLine(nil, "Bad", 1, decimal.NewFromInt(-10))
		assert.Error(t, err)
	})

	t.Run("voided lines drop out of the total", func(t *testing.T) {
		order := createTestOrder(t)
		require.NoError(t, order.Lines[1].Void())
		order.recalculateTotal()
		assert.True(t, order.TotalAmount.Equal(decimal.NewFromInt(1000)))
	})
}

func TestOrderApplyNetPaid(t *testing.T) {
	t.Run("zero keeps order unpaid", func(t *testing.T) {
		order := createTestOrder(t)
		order.ApplyNetPaid(decimal.Zero)
		assert.Equal(t, OrderStatusUnpaid, order.Status)
		assert.True(t, order.BalanceDue.Equal(decimal.NewFromInt(2000)))
	})

	t.Run("partial payment moves to partially settled", func(t *testing.T) {
		order := createTestOrder(t)
		order.ApplyNetPaid(decimal.NewFromInt(500))
		assert.Equal(t, OrderStatusPartiallySettled, order.Status)
		assert.True(t, order.BalanceDue.Equal(decimal.NewFromInt(1500)))
	})

	t.Run("full payment settles the order", func(t *testing.T) {
		order := createTestOrder(t)
		order.ApplyNetPaid(decimal.NewFromInt(2000))
		assert.Equal(t, OrderStatusSettled, order.Status)
		assert.True(t, order.BalanceDue.IsZero())
	})

	t.Run("overpayment settles with zero balance", func(t *testing.T) {
		order := createTestOrder(t)
		order.ApplyNetPaid(decimal.NewFromInt(2500))
		assert.Equal(t, OrderStatusSettled, order.Status)
		assert.True(t, order.BalanceDue.IsZero())
	})

	t.Run("negative net paid is floored at zero", func(t *testing.T) {
		order := createTestOrder(t)
		order.ApplyNetPaid(decimal.NewFromInt(-100))
		assert.True(t, order.NetPaid.IsZero())
		assert.Equal(t, OrderStatusUnpaid, order.Status)
	})

	t.Run("settled order moves back when refunded", func(t *testing.T) {
		order := createTestOrder(t)
		order.ApplyNetPaid(decimal.NewFromInt(2000))
		require.Equal(t, OrderStatusSettled, order.Status)

		order.ApplyNetPaid(decimal.NewFromInt(800))
		assert.Equal(t, OrderStatusPartiallySettled, order.Status)
	})

	t.Run("cancelled status is sticky", func(t *testing.T) {
		order := createTestOrder(t)
		require.NoError(t, order.Cancel("customer walked away"))

		order.ApplyNetPaid(decimal.NewFromInt(2000))
		assert.Equal(t, OrderStatusCancelled, order.Status)
		assert.True(t, order.BalanceDue.IsZero())
	})
}

func TestOrderCancel(t *testing.T) {
	t.Run("cancels with zero balance", func(t *testing.T) {
		order := createTestOrder(t)
		require.NoError(t, order.Cancel("duplicate order"))
		assert.Equal(t, OrderStatusCancelled, order.Status)
		assert.True(t, order.BalanceDue.IsZero())
		assert.NotNil(t, order.CancelledAt)
		assert.Equal(t, "duplicate order", order.CancelReason)
	})

	t.Run("fails when already cancelled", func(t *testing.T) {
		order := createTestOrder(t)
		require.NoError(t, order.Cancel("first"))
		err := order.Cancel("second")
		assert.Error(t, err)
	})

	t.Run("requires a reason", func(t *testing.T) {
		order := createTestOrder(t)
		err := order.Cancel("")
		assert.Error(t, err)
	})
}

func TestOrderLineReturns(t *testing.T) {
	t.Run("record return accumulates", func(t *testing.T) {
		order := createTestOrder(t)
		line := &order.Lines[0]

		require.NoError(t, line.RecordReturn(3))
		assert.Equal(t, int64(3), line.QuantityReturned)
		assert.Equal(t, int64(7), line.Returnable())
		assert.False(t, line.IsFullyReturned())

		require.NoError(t, line.RecordReturn(7))
		assert.True(t, line.IsFullyReturned())
		assert.Equal(t, int64(0), line.Returnable())
	})

	t.Run("rejects return beyond returnable", func(t *testing.T) {
		order := createTestOrder(t)
		line := &order.Lines[0]
		err := line.RecordReturn(11)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "exceeds returnable")
	})

	t.Run("voided line has nothing to return", func(t *testing.T) {
		order := createTestOrder(t)
		line := &order.Lines[0]
		require.NoError(t, line.Void())
		assert.Equal(t, int64(0), line.Returnable())
		assert.True(t, line.IsFullyReturned())
		assert.Error(t, line.RecordReturn(1))
	})

	t.Run("void is set-once", func(t *testing.T) {
		order := createTestOrder(t)
		line := &order.Lines[0]
		require.NoError(t, line.Void())
		assert.Error(t, line.Void())
	})
}

func TestOrderIsFullyReturned(t *testing.T) {
	t.Run("false while anything is outstanding", func(t *testing.T) {
		order := createTestOrder(t)
		require.NoError(t, order.Lines[0].RecordReturn(10))
		assert.False(t, order.IsFullyReturned())
	})

	t.Run("true when every line is returned", func(t *testing.T) {
		order := createTestOrder(t)
		require.NoError(t, order.Lines[0].RecordReturn(10))
		require.NoError(t, order.Lines[1].RecordReturn(5))
		assert.True(t, order.IsFullyReturned())
	})

	t.Run("voided lines count as satisfied", func(t *testing.T) {
		order := createTestOrder(t)
		require.NoError(t, order.Lines[0].RecordReturn(10))
		require.NoError(t, order.Lines[1].Void())
		assert.True(t, order.IsFullyReturned())
	})
}

func TestOrderReservesStock(t *testing.T) {
	order := createTestOrder(t)
	assert.True(t, order.ReservesStock())

	order.ApplyNetPaid(decimal.NewFromInt(500))
	assert.True(t, order.ReservesStock())

	order.ApplyNetPaid(decimal.NewFromInt(2000))
	assert.False(t, order.ReservesStock())

	order = createTestOrder(t)
	require.NoError(t, order.Cancel("cancelled"))
	assert.False(t, order.ReservesStock())
}
