package csvimport

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/retailcore/backoffice/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// stockItemHeaders are the columns a stock item CSV must carry. on_hand is
// optional and defaults to zero.
var stockItemHeaders = []string{"sku", "name", "category", "sub_type", "unit_cost", "list_price", "currency"}

// StockItemRecord is one validated row of a stock item import
type StockItemRecord struct {
	Line      int
	SKU       string
	Name      string
	Category  string
	SubType   string
	OnHand    int64
	UnitCost  decimal.Decimal
	ListPrice decimal.Decimal
	Currency  valueobject.Currency
}

// StockItemParseResult carries the valid records and the row errors of one
// parsed file. Records and Errors are disjoint by row.
type StockItemParseResult struct {
	Records []StockItemRecord
	Errors  []RowError
}

// ParseStockItems reads a stock item CSV. File-level problems (empty file,
// bad encoding, missing required headers) return an error; row-level
// problems land in the result's Errors and do not stop the parse. SKUs are
// deduplicated within the file, first occurrence wins.
func ParseStockItems(r io.Reader) (*StockItemParseResult, error) {
	rd, err := newReader(r)
	if err != nil {
		return nil, err
	}
	if missing := rd.missingHeaders(stockItemHeaders); len(missing) > 0 {
		return nil, fmt.Errorf("CSV file missing required columns: %s", strings.Join(missing, ", "))
	}

	result := &StockItemParseResult{}
	seen := make(map[string]int)

	for {
		w, err := rd.next()
		if err == io.EOF {
			break
		}
		if err != nil {
			var rowErr RowError
			if re, ok := err.(RowError); ok {
				rowErr = re
			} else {
				rowErr = NewRowError(rd.line, "", ErrCodeMalformedRow, err.Error())
			}
			result.Errors = append(result.Errors, rowErr)
			continue
		}

		record, rowErrs := parseStockItemRow(w)
		if len(rowErrs) > 0 {
			result.Errors = append(result.Errors, rowErrs...)
			continue
		}

		if firstLine, dup := seen[record.SKU]; dup {
			result.Errors = append(result.Errors, RowError{
				Row:     w.line,
				Column:  "sku",
				Code:    ErrCodeDuplicateInFile,
				Message: fmt.Sprintf("SKU already appears on row %d", firstLine),
				Value:   record.SKU,
			})
			continue
		}
		seen[record.SKU] = w.line

		result.Records = append(result.Records, record)
	}

	return result, nil
}

func parseStockItemRow(w row) (StockItemRecord, []RowError) {
	var errs []RowError

	record := StockItemRecord{
		Line:     w.line,
		SKU:      w.get("sku"),
		Name:     w.get("name"),
		Category: w.get("category"),
		SubType:  w.get("sub_type"),
	}

	for column, value := range map[string]string{
		"sku": record.SKU, "name": record.Name,
		"category": record.Category, "sub_type": record.SubType,
	} {
		if value == "" {
			errs = append(errs, NewRowError(w.line, column, ErrCodeRequiredField, "value is required"))
		}
	}

	record.UnitCost = parseAmount(w, "unit_cost", &errs)
	record.ListPrice = parseAmount(w, "list_price", &errs)

	currency := valueobject.Currency(strings.ToUpper(w.get("currency")))
	if !currency.IsValid() {
		errs = append(errs, RowError{
			Row: w.line, Column: "currency", Code: ErrCodeInvalidCurrency,
			Message: "unsupported currency", Value: w.get("currency"),
		})
	}
	record.Currency = currency

	if raw := w.get("on_hand"); raw != "" {
		onHand, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || onHand < 0 {
			errs = append(errs, RowError{
				Row: w.line, Column: "on_hand", Code: ErrCodeInvalidNumber,
				Message: "must be a non-negative integer", Value: raw,
			})
		} else {
			record.OnHand = onHand
		}
	}

	return record, errs
}

func parseAmount(w row, column string, errs *[]RowError) decimal.Decimal {
	raw := w.get(column)
	if raw == "" {
		*errs = append(*errs, NewRowError(w.line, column, ErrCodeRequiredField, "value is required"))
		return decimal.Zero
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil || amount.IsNegative() {
		*errs = append(*errs, RowError{
			Row: w.line, Column: column, Code: ErrCodeInvalidNumber,
			Message: "must be a non-negative decimal", Value: raw,
		})
		return decimal.Zero
	}
	return amount
}
