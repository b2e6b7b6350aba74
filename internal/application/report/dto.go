package report

import (
	"time"

	"github.com/google/uuid"
	"github.com/retailcore/backoffice/internal/domain/report"
	"github.com/shopspring/decimal"
)

// ValuationRequest filters the item set fed into the valuation
type ValuationRequest struct {
	Category string `form:"category"`
	SubType  string `form:"sub_type"`
}

// ItemValuationResponse is a per-item valuation row
type ItemValuationResponse struct {
	StockItemID   uuid.UUID        `json:"stock_item_id"`
	SKU           string           `json:"sku"`
	Name          string           `json:"name"`
	Category      string           `json:"category"`
	SubType       string           `json:"sub_type"`
	OnHand        int64            `json:"on_hand"`
	CostValue     decimal.Decimal  `json:"cost_value"`
	SellingValue  decimal.Decimal  `json:"selling_value"`
	Profit        decimal.Decimal  `json:"profit"`
	MarkupPercent *decimal.Decimal `json:"markup_percent"`
}

// SubTypeValuationResponse is a per-sub-type rollup
type SubTypeValuationResponse struct {
	SubType       string           `json:"sub_type"`
	ItemCount     int              `json:"item_count"`
	CostValue     decimal.Decimal  `json:"cost_value"`
	SellingValue  decimal.Decimal  `json:"selling_value"`
	Profit        decimal.Decimal  `json:"profit"`
	MarkupPercent *decimal.Decimal `json:"markup_percent"`
}

// CategoryValuationResponse is a per-category rollup with nested sub-types
type CategoryValuationResponse struct {
	Category      string                     `json:"category"`
	ItemCount     int                        `json:"item_count"`
	CostValue     decimal.Decimal            `json:"cost_value"`
	SellingValue  decimal.Decimal            `json:"selling_value"`
	Profit        decimal.Decimal            `json:"profit"`
	MarkupPercent *decimal.Decimal           `json:"markup_percent"`
	SubTypes      []SubTypeValuationResponse `json:"sub_types"`
}

// ValuationResponse is the full valuation report
type ValuationResponse struct {
	BaseCurrency  string                      `json:"base_currency"`
	GeneratedAt   time.Time                   `json:"generated_at"`
	ItemCount     int                         `json:"item_count"`
	CostValue     decimal.Decimal             `json:"cost_value"`
	SellingValue  decimal.Decimal             `json:"selling_value"`
	Profit        decimal.Decimal             `json:"profit"`
	MarkupPercent *decimal.Decimal            `json:"markup_percent"`
	Items         []ItemValuationResponse     `json:"items"`
	Categories    []CategoryValuationResponse `json:"categories"`
}

// ToValuationResponse converts a domain valuation to its API view
func ToValuationResponse(v *report.Valuation) ValuationResponse {
	items := make([]ItemValuationResponse, len(v.Items))
	for i := range v.Items {
		items[i] = ItemValuationResponse{
			StockItemID:   v.Items[i].StockItemID,
			SKU:           v.Items[i].SKU,
			Name:          v.Items[i].Name,
			Category:      v.Items[i].Category,
			SubType:       v.Items[i].SubType,
			OnHand:        v.Items[i].OnHand,
			CostValue:     v.Items[i].CostValue,
			SellingValue:  v.Items[i].SellingValue,
			Profit:        v.Items[i].Profit,
			MarkupPercent: v.Items[i].MarkupPercent,
		}
	}

	categories := make([]CategoryValuationResponse, len(v.Categories))
	for i := range v.Categories {
		subTypes := make([]SubTypeValuationResponse, len(v.Categories[i].SubTypes))
		for j := range v.Categories[i].SubTypes {
			st := &v.Categories[i].SubTypes[j]
			subTypes[j] = SubTypeValuationResponse{
				SubType:       st.SubType,
				ItemCount:     st.ItemCount,
				CostValue:     st.CostValue,
				SellingValue:  st.SellingValue,
				Profit:        st.Profit,
				MarkupPercent: st.MarkupPercent,
			}
		}
		categories[i] = CategoryValuationResponse{
			Category:      v.Categories[i].Category,
			ItemCount:     v.Categories[i].ItemCount,
			CostValue:     v.Categories[i].CostValue,
			SellingValue:  v.Categories[i].SellingValue,
			Profit:        v.Categories[i].Profit,
			MarkupPercent: v.Categories[i].MarkupPercent,
			SubTypes:      subTypes,
		}
	}

	return ValuationResponse{
		BaseCurrency:  v.BaseCurrency.String(),
		GeneratedAt:   time.Now(),
		ItemCount:     v.ItemCount,
		CostValue:     v.CostValue,
		SellingValue:  v.SellingValue,
		Profit:        v.Profit,
		MarkupPercent: v.MarkupPercent,
		Items:         items,
		Categories:    categories,
	}
}
