package report

import (
	"sort"

	"github.com/google/uuid"
	"github.com/retailcore/backoffice/internal/domain/inventory"
	"github.com/retailcore/backoffice/internal/domain/shared"
	"github.com/retailcore/backoffice/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// amountPrecision is the scale used for converted monetary totals
const amountPrecision = 4

// RateTable converts amounts into a base currency. The markup is applied
// only on conversions into the base currency, never on amounts already
// denominated in it.
type RateTable struct {
	Base          valueobject.Currency
	Rates         map[valueobject.Currency]decimal.Decimal
	MarkupPercent decimal.Decimal
}

// NewRateTable creates a rate table for the given base currency
func NewRateTable(base valueobject.Currency, rates map[valueobject.Currency]decimal.Decimal, markupPercent decimal.Decimal) (RateTable, error) {
	if !base.IsValid() {
		return RateTable{}, shared.NewFieldValidationError("base_currency", "INVALID_CURRENCY", "Unsupported base currency")
	}
	if markupPercent.IsNegative() {
		return RateTable{}, shared.NewFieldValidationError("markup_percent", "INVALID_MARKUP", "Conversion markup cannot be negative")
	}
	for currency, rate := range rates {
		if !currency.IsValid() {
			return RateTable{}, shared.NewFieldValidationError("rates", "INVALID_CURRENCY", "Unsupported currency in rate table: "+currency.String())
		}
		if rate.LessThanOrEqual(decimal.Zero) {
			return RateTable{}, shared.NewFieldValidationError("rates", "INVALID_RATE", "Conversion rate must be positive: "+currency.String())
		}
	}
	return RateTable{Base: base, Rates: rates, MarkupPercent: markupPercent}, nil
}

// ToBase converts an amount into the base currency, applying the markup on
// the conversion. Amounts already in the base currency pass through intact.
func (t RateTable) ToBase(m valueobject.Money) (decimal.Decimal, error) {
	if m.Currency() == t.Base {
		return m.Amount(), nil
	}
	rate, ok := t.Rates[m.Currency()]
	if !ok {
		return decimal.Zero, shared.NewConsistencyError("MISSING_RATE", "No conversion rate for currency "+m.Currency().String())
	}
	markup := decimal.NewFromInt(1).Add(t.MarkupPercent.Div(decimal.NewFromInt(100)))
	return m.Amount().Mul(rate).Mul(markup).Round(amountPrecision), nil
}

// ItemValuation is the cost/price/margin view of a single stock item,
// denominated in the base currency. MarkupPercent is nil when the cost value
// is zero.
type ItemValuation struct {
	StockItemID   uuid.UUID
	SKU           string
	Name          string
	Category      string
	SubType       string
	OnHand        int64
	CostValue     decimal.Decimal
	SellingValue  decimal.Decimal
	Profit        decimal.Decimal
	MarkupPercent *decimal.Decimal
}

// SubTypeValuation is the rollup for a sub-type within a category
type SubTypeValuation struct {
	SubType       string
	ItemCount     int
	CostValue     decimal.Decimal
	SellingValue  decimal.Decimal
	Profit        decimal.Decimal
	MarkupPercent *decimal.Decimal
}

// CategoryValuation is the rollup for a category, with per-sub-type drill-down
type CategoryValuation struct {
	Category      string
	ItemCount     int
	CostValue     decimal.Decimal
	SellingValue  decimal.Decimal
	Profit        decimal.Decimal
	MarkupPercent *decimal.Decimal
	SubTypes      []SubTypeValuation
}

// Valuation is the full rollup over a filtered item set
type Valuation struct {
	BaseCurrency  valueobject.Currency
	ItemCount     int
	CostValue     decimal.Decimal
	SellingValue  decimal.Decimal
	Profit        decimal.Decimal
	MarkupPercent *decimal.Decimal
	Items         []ItemValuation
	Categories    []CategoryValuation
}

// markupPercent derives profit over cost as a percentage, nil when cost is
// zero to avoid division by zero.
func markupPercent(profit, cost decimal.Decimal) *decimal.Decimal {
	if cost.IsZero() {
		return nil
	}
	pct := profit.Div(cost).Mul(decimal.NewFromInt(100)).Round(amountPrecision)
	return &pct
}

// Valuate computes cost, selling value, profit and markup for every item and
// nests the same computation per category and per sub-type. It is a pure
// read: nothing is mutated and there are no invariants to protect, but the
// arithmetic is exact (decimal throughout, markup nil on zero cost).
func Valuate(items []inventory.StockItem, rates RateTable) (*Valuation, error) {
	v := &Valuation{
		BaseCurrency: rates.Base,
		ItemCount:    len(items),
		CostValue:    decimal.Zero,
		SellingValue: decimal.Zero,
		Profit:       decimal.Zero,
		Items:        make([]ItemValuation, 0, len(items)),
	}

	type bucket struct {
		count    int
		cost     decimal.Decimal
		selling  decimal.Decimal
		subTypes map[string]*SubTypeValuation
	}
	categories := make(map[string]*bucket)

	for idx := range items {
		item := &items[idx]

		cost, err := rates.ToBase(item.UnitCostMoney().MulInt(item.OnHand))
		if err != nil {
			return nil, err
		}
		selling, err := rates.ToBase(item.ListPriceMoney().MulInt(item.OnHand))
		if err != nil {
			return nil, err
		}
		profit := selling.Sub(cost)

		v.Items = append(v.Items, ItemValuation{
			StockItemID:   item.ID,
			SKU:           item.SKU,
			Name:          item.Name,
			Category:      item.Category,
			SubType:       item.SubType,
			OnHand:        item.OnHand,
			CostValue:     cost,
			SellingValue:  selling,
			Profit:        profit,
			MarkupPercent: markupPercent(profit, cost),
		})

		v.CostValue = v.CostValue.Add(cost)
		v.SellingValue = v.SellingValue.Add(selling)

		cat, ok := categories[item.Category]
		if !ok {
			cat = &bucket{
				cost:     decimal.Zero,
				selling:  decimal.Zero,
				subTypes: make(map[string]*SubTypeValuation),
			}
			categories[item.Category] = cat
		}
		cat.count++
		cat.cost = cat.cost.Add(cost)
		cat.selling = cat.selling.Add(selling)

		st, ok := cat.subTypes[item.SubType]
		if !ok {
			st = &SubTypeValuation{
				SubType:      item.SubType,
				CostValue:    decimal.Zero,
				SellingValue: decimal.Zero,
			}
			cat.subTypes[item.SubType] = st
		}
		st.ItemCount++
		st.CostValue = st.CostValue.Add(cost)
		st.SellingValue = st.SellingValue.Add(selling)
	}

	v.Profit = v.SellingValue.Sub(v.CostValue)
	v.MarkupPercent = markupPercent(v.Profit, v.CostValue)

	v.Categories = make([]CategoryValuation, 0, len(categories))
	for name, cat := range categories {
		cv := CategoryValuation{
			Category:     name,
			ItemCount:    cat.count,
			CostValue:    cat.cost,
			SellingValue: cat.selling,
			SubTypes:     make([]SubTypeValuation, 0, len(cat.subTypes)),
		}
		cv.Profit = cv.SellingValue.Sub(cv.CostValue)
		cv.MarkupPercent = markupPercent(cv.Profit, cv.CostValue)

		for _, st := range cat.subTypes {
			st.Profit = st.SellingValue.Sub(st.CostValue)
			st.MarkupPercent = markupPercent(st.Profit, st.CostValue)
			cv.SubTypes = append(cv.SubTypes, *st)
		}
		sort.Slice(cv.SubTypes, func(i, j int) bool {
			return cv.SubTypes[i].SubType < cv.SubTypes[j].SubType
		})

		v.Categories = append(v.Categories, cv)
	}
	sort.Slice(v.Categories, func(i, j int) bool {
		return v.Categories[i].Category < v.Categories[j].Category
	})

	return v, nil
}
