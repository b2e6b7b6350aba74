package finance

import (
	"testing"

	"github.com/google/uuid"
	"github.com/retailcore/backoffice/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestCredit(t *testing.T, amount int64) *CustomerCredit {
	returnID := uuid.New()
	credit, err := NewCustomerCredit("CR-20260830-0001", uuid.New(), valueobject.USD,
		decimal.NewFromInt(amount), &returnID)
	require.NoError(t, err)
	return credit
}

func TestNewCustomerCredit(t *testing.T) {
	t.Run("issues active credit for full amount", func(t *testing.T) {
		credit := createTestCredit(t, 500)
		assert.Equal(t, CreditStatusActive, credit.Status)
		assert.True(t, credit.OriginalAmount.Equal(decimal.NewFromInt(500)))
		assert.True(t, credit.RemainingAmount.Equal(decimal.NewFromInt(500)))
		assert.True(t, credit.IsUsable())
		assert.NotNil(t, credit.ReturnID)
	})

	t.Run("fails with empty credit number", func(t *testing.T) {
		credit, err := NewCustomerCredit("", uuid.New(), valueobject.USD, decimal.NewFromInt(100), nil)
		assert.Nil(t, credit)
		assert.Error(t, err)
	})

	t.Run("fails with non-positive amount", func(t *testing.T) {
		credit, err := NewCustomerCredit("CR-001", uuid.New(), valueobject.USD, decimal.Zero, nil)
		assert.Nil(t, credit)
		assert.Error(t, err)
	})

	t.Run("fails with unsupported currency", func(t *testing.T) {
		credit, err := NewCustomerCredit("CR-001", uuid.New(), valueobject.Currency("XXX"), decimal.NewFromInt(100), nil)
		assert.Nil(t, credit)
		assert.Error(t, err)
	})
}

func TestCustomerCreditRedeem(t *testing.T) {
	t.Run("partial redemption stays active", func(t *testing.T) {
		credit := createTestCredit(t, 500)
		require.NoError(t, credit.Redeem(decimal.NewFromInt(200)))
		assert.Equal(t, CreditStatusActive, credit.Status)
		assert.True(t, credit.RemainingAmount.Equal(decimal.NewFromInt(300)))
	})

	t.Run("redeeming to zero consumes the credit", func(t *testing.T) {
		credit := createTestCredit(t, 500)
		require.NoError(t, credit.Redeem(decimal.NewFromInt(500)))
		assert.Equal(t, CreditStatusConsumed, credit.Status)
		assert.True(t, credit.RemainingAmount.IsZero())
		assert.False(t, credit.IsUsable())
	})

	t.Run("rejects amount beyond remaining", func(t *testing.T) {
		credit := createTestCredit(t, 500)
		err := credit.Redeem(decimal.NewFromInt(501))
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "exceeds remaining")
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		credit := createTestCredit(t, 500)
		assert.Error(t, credit.Redeem(decimal.Zero))
	})

	t.Run("rejects redemption on consumed credit", func(t *testing.T) {
		credit := createTestCredit(t, 100)
		require.NoError(t, credit.Redeem(decimal.NewFromInt(100)))
		assert.Error(t, credit.Redeem(decimal.NewFromInt(1)))
	})
}

func TestCustomerCreditRestore(t *testing.T) {
	t.Run("reactivates a consumed credit", func(t *testing.T) {
		credit := createTestCredit(t, 300)
		require.NoError(t, credit.Redeem(decimal.NewFromInt(300)))
		require.Equal(t, CreditStatusConsumed, credit.Status)

		require.NoError(t, credit.Restore(decimal.NewFromInt(300)))
		assert.Equal(t, CreditStatusActive, credit.Status)
		assert.True(t, credit.RemainingAmount.Equal(decimal.NewFromInt(300)))
		assert.True(t, credit.IsUsable())
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		credit := createTestCredit(t, 300)
		assert.Error(t, credit.Restore(decimal.Zero))
	})
}
