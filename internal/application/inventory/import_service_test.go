package inventory

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/retailcore/backoffice/internal/application/txn"
	"github.com/retailcore/backoffice/internal/domain/inventory"
	csvimport "github.com/retailcore/backoffice/internal/infrastructure/import"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newImportService(f *availFixture) *ImportService {
	return NewImportService(txn.NewFixedScope(f), zap.NewNop())
}

func (f *availFixture) itemBySKU(sku string) *inventory.StockItem {
	for _, item := range f.items {
		if item.SKU == sku {
			return item
		}
	}
	return nil
}

func TestImportServiceImportStockItems(t *testing.T) {
	ctx := context.Background()
	actor := uuid.New()

	t.Run("creates one item per valid row", func(t *testing.T) {
		f := newAvailFixture()
		svc := newImportService(f)

		csv := "sku,name,category,sub_type,unit_cost,list_price,currency,on_hand\n" +
			"SKU-001,Hex bolts M8,Hardware,Fasteners,0.14,0.35,USD,500\n" +
			"SKU-002,Claw hammer,Hardware,Tools,7.80,19.99,USD,\n"

		resp, err := svc.ImportStockItems(ctx, strings.NewReader(csv), &actor)
		require.NoError(t, err)

		assert.Equal(t, 2, resp.Created)
		assert.Equal(t, 0, resp.Skipped)
		assert.Empty(t, resp.Errors)

		bolts := f.itemBySKU("SKU-001")
		require.NotNil(t, bolts)
		assert.Equal(t, int64(500), bolts.OnHand)
		assert.True(t, bolts.UnitCost.Equal(decimal.NewFromFloat(0.14)))
		assert.Equal(t, inventory.StockStatusInStock, bolts.Status)

		// no on_hand means out of stock until goods arrive
		hammer := f.itemBySKU("SKU-002")
		require.NotNil(t, hammer)
		assert.Equal(t, int64(0), hammer.OnHand)
		assert.Equal(t, inventory.StockStatusOutOfStock, hammer.Status)

		require.Len(t, f.audits, 2)
		assert.Equal(t, "stock_item.imported", f.audits[0].Action)
		require.NotNil(t, f.audits[0].Actor)
		assert.Equal(t, actor, *f.audits[0].Actor)
	})

	t.Run("skips rows whose SKU already exists", func(t *testing.T) {
		f := newAvailFixture()
		seedItem(t, f, "SKU-001", 10, 0)
		svc := newImportService(f)

		csv := "sku,name,category,sub_type,unit_cost,list_price,currency\n" +
			"SKU-001,Bolts,Hardware,Fasteners,0.14,0.35,USD\n" +
			"SKU-002,Nuts,Hardware,Fasteners,0.10,0.25,USD\n"

		resp, err := svc.ImportStockItems(ctx, strings.NewReader(csv), &actor)
		require.NoError(t, err)

		assert.Equal(t, 1, resp.Created)
		assert.Equal(t, 1, resp.Skipped)
		require.Len(t, resp.Errors, 1)
		assert.Equal(t, csvimport.ErrCodeDuplicateSKU, resp.Errors[0].Code)
		assert.Equal(t, "SKU-001", resp.Errors[0].Value)

		// the existing item is left untouched
		assert.Equal(t, int64(10), f.itemBySKU("SKU-001").OnHand)
	})

	t.Run("reports row errors alongside created rows", func(t *testing.T) {
		f := newAvailFixture()
		svc := newImportService(f)

		csv := "sku,name,category,sub_type,unit_cost,list_price,currency\n" +
			"SKU-001,Bolts,Hardware,Fasteners,0.14,0.35,USD\n" +
			"SKU-002,Nuts,Hardware,Fasteners,bad,0.25,USD\n"

		resp, err := svc.ImportStockItems(ctx, strings.NewReader(csv), &actor)
		require.NoError(t, err)

		assert.Equal(t, 1, resp.Created)
		assert.Equal(t, 1, resp.Skipped)
		require.Len(t, resp.Errors, 1)
		assert.Equal(t, csvimport.ErrCodeInvalidNumber, resp.Errors[0].Code)
		assert.Nil(t, f.itemBySKU("SKU-002"))
	})

	t.Run("rejects a structurally broken file", func(t *testing.T) {
		f := newAvailFixture()
		svc := newImportService(f)

		_, err := svc.ImportStockItems(ctx, strings.NewReader("sku,name\nSKU-001,Bolts\n"), &actor)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "missing required columns")
		assert.Empty(t, f.items)
	})
}
