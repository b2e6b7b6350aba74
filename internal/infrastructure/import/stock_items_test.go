package csvimport

import (
	"strings"
	"testing"

	"github.com/retailcore/backoffice/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validCSV = `sku,name,category,sub_type,unit_cost,list_price,currency,on_hand
SKU-001,Hex bolts M8,Hardware,Fasteners,0.14,0.35,USD,500
SKU-002,Claw hammer,Hardware,Tools,7.80,19.99,usd,25
SKU-003,Interior paint 1L,Paint,Interior,4.20,12.50,EUR,
`

func TestParseStockItems(t *testing.T) {
	t.Run("parses valid rows", func(t *testing.T) {
		result, err := ParseStockItems(strings.NewReader(validCSV))
		require.NoError(t, err)

		assert.Empty(t, result.Errors)
		require.Len(t, result.Records, 3)

		first := result.Records[0]
		assert.Equal(t, 2, first.Line)
		assert.Equal(t, "SKU-001", first.SKU)
		assert.Equal(t, "Hex bolts M8", first.Name)
		assert.Equal(t, "Hardware", first.Category)
		assert.Equal(t, "Fasteners", first.SubType)
		assert.Equal(t, int64(500), first.OnHand)
		assert.True(t, first.UnitCost.Equal(decimal.NewFromFloat(0.14)))
		assert.True(t, first.ListPrice.Equal(decimal.NewFromFloat(0.35)))
		assert.Equal(t, valueobject.USD, first.Currency)

		// currency is case-insensitive, missing on_hand defaults to zero
		assert.Equal(t, valueobject.USD, result.Records[1].Currency)
		assert.Equal(t, int64(0), result.Records[2].OnHand)
	})

	t.Run("strips a UTF-8 BOM", func(t *testing.T) {
		result, err := ParseStockItems(strings.NewReader("\xEF\xBB\xBF" + validCSV))
		require.NoError(t, err)
		assert.Len(t, result.Records, 3)
	})

	t.Run("skips blank rows", func(t *testing.T) {
		csv := "sku,name,category,sub_type,unit_cost,list_price,currency\n" +
			"SKU-001,Bolts,Hardware,Fasteners,0.14,0.35,USD\n" +
			",,,,,,\n" +
			"SKU-002,Nuts,Hardware,Fasteners,0.10,0.25,USD\n"
		result, err := ParseStockItems(strings.NewReader(csv))
		require.NoError(t, err)
		assert.Empty(t, result.Errors)
		assert.Len(t, result.Records, 2)
	})

	t.Run("rejects an empty file", func(t *testing.T) {
		_, err := ParseStockItems(strings.NewReader(""))
		assert.ErrorIs(t, err, ErrEmptyFile)

		_, err = ParseStockItems(strings.NewReader("\xEF\xBB\xBF"))
		assert.ErrorIs(t, err, ErrEmptyFile)
	})

	t.Run("rejects non-UTF-8 content", func(t *testing.T) {
		_, err := ParseStockItems(strings.NewReader("sku\xff\xfe,name\n"))
		assert.ErrorIs(t, err, ErrInvalidEncoding)
	})

	t.Run("rejects missing required columns", func(t *testing.T) {
		_, err := ParseStockItems(strings.NewReader("sku,name\nSKU-001,Bolts\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "missing required columns")
		assert.Contains(t, err.Error(), "unit_cost")
	})

	t.Run("collects row errors without stopping", func(t *testing.T) {
		csv := "sku,name,category,sub_type,unit_cost,list_price,currency\n" +
			"SKU-001,Bolts,Hardware,Fasteners,0.14,0.35,USD\n" +
			",Nuts,Hardware,Fasteners,0.10,0.25,USD\n" +
			"SKU-003,Paint,Paint,Interior,not-a-number,12.50,USD\n" +
			"SKU-004,Rope,Hardware,Cordage,1.00,2.50,XXX\n" +
			"SKU-005,Tape,Hardware,Adhesives,0.50,1.20,USD\n"
		result, err := ParseStockItems(strings.NewReader(csv))
		require.NoError(t, err)

		assert.Len(t, result.Records, 2)
		require.Len(t, result.Errors, 3)

		codes := make(map[string]bool)
		for _, rowErr := range result.Errors {
			codes[rowErr.Code] = true
		}
		assert.True(t, codes[ErrCodeRequiredField])
		assert.True(t, codes[ErrCodeInvalidNumber])
		assert.True(t, codes[ErrCodeInvalidCurrency])
	})

	t.Run("deduplicates SKUs within the file", func(t *testing.T) {
		csv := "sku,name,category,sub_type,unit_cost,list_price,currency\n" +
			"SKU-001,Bolts,Hardware,Fasteners,0.14,0.35,USD\n" +
			"SKU-001,Bolts again,Hardware,Fasteners,0.15,0.40,USD\n"
		result, err := ParseStockItems(strings.NewReader(csv))
		require.NoError(t, err)

		require.Len(t, result.Records, 1)
		assert.Equal(t, "Bolts", result.Records[0].Name)
		require.Len(t, result.Errors, 1)
		assert.Equal(t, ErrCodeDuplicateInFile, result.Errors[0].Code)
		assert.Contains(t, result.Errors[0].Message, "row 2")
	})

	t.Run("negative amounts are rejected", func(t *testing.T) {
		csv := "sku,name,category,sub_type,unit_cost,list_price,currency\n" +
			"SKU-001,Bolts,Hardware,Fasteners,-0.14,0.35,USD\n"
		result, err := ParseStockItems(strings.NewReader(csv))
		require.NoError(t, err)

		assert.Empty(t, result.Records)
		require.Len(t, result.Errors, 1)
		assert.Equal(t, "unit_cost", result.Errors[0].Column)
	})
}
