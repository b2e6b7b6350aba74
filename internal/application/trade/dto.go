package trade

import (
	"time"

	"github.com/google/uuid"
	appfinance "github.com/retailcore/backoffice/internal/application/finance"
	"github.com/retailcore/backoffice/internal/domain/finance"
	"github.com/retailcore/backoffice/internal/domain/trade"
	"github.com/shopspring/decimal"
)

// ReturnLineRequest is one requested line in a return draft
type ReturnLineRequest struct {
	OrderLineID uuid.UUID `json:"order_line_id" binding:"required"`
	Quantity    int64     `json:"quantity" binding:"required,gt=0"`
}

// CreateReturnDraftRequest creates a draft return against an order
type CreateReturnDraftRequest struct {
	OrderID uuid.UUID           `json:"order_id" binding:"required"`
	Type    trade.ReturnType    `json:"type" binding:"required"`
	Reason  trade.ReturnReason  `json:"reason" binding:"required"`
	Lines   []ReturnLineRequest `json:"lines" binding:"required"`
	Remark  string              `json:"remark"`
	Actor   *uuid.UUID          `json:"-"`
}

// RefundDetails carries how a refund-type return pays the customer back
type RefundDetails struct {
	Method          finance.PaymentMethod `json:"method" binding:"required"`
	Comment         string                `json:"comment" binding:"required"`
	OtherMethodNote string                `json:"other_method_note"`
}

// FinalizeReturnRequest finalizes a draft return
type FinalizeReturnRequest struct {
	Actor  uuid.UUID      `json:"-"`
	Refund *RefundDetails `json:"refund"`
}

// ReturnLineResponse is the API view of a return line
type ReturnLineResponse struct {
	ID          uuid.UUID       `json:"id"`
	OrderLineID uuid.UUID       `json:"order_line_id"`
	StockItemID *uuid.UUID      `json:"stock_item_id,omitempty"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Amount      decimal.Decimal `json:"amount"`
}

// ReturnResponse is the API view of a return
type ReturnResponse struct {
	ID           uuid.UUID            `json:"id"`
	ReturnNumber string               `json:"return_number"`
	OrderID      uuid.UUID            `json:"order_id"`
	CustomerID   uuid.UUID            `json:"customer_id"`
	Currency     string               `json:"currency"`
	Type         string               `json:"type"`
	Reason       string               `json:"reason"`
	Status       string               `json:"status"`
	TotalAmount  decimal.Decimal      `json:"total_amount"`
	Lines        []ReturnLineResponse `json:"lines"`
	Remark       string               `json:"remark,omitempty"`
	FinalizedAt  *time.Time           `json:"finalized_at,omitempty"`
	CancelledAt  *time.Time           `json:"cancelled_at,omitempty"`
	CreatedAt    time.Time            `json:"created_at"`
}

// FinalizeReturnResponse carries the finalized return and the recomputed order
type FinalizeReturnResponse struct {
	Return ReturnResponse             `json:"return"`
	Order  appfinance.OrderResponse   `json:"order"`
	Credit *appfinance.CreditResponse `json:"credit,omitempty"`
}

// ReturnListFilter filters the return listing
type ReturnListFilter struct {
	Page     int
	PageSize int
	OrderID  *uuid.UUID
	Status   *trade.ReturnStatus
}

// ToReturnResponse converts a domain return to its API view
func ToReturnResponse(ret *trade.Return) ReturnResponse {
	lines := make([]ReturnLineResponse, len(ret.Lines))
	for i := range ret.Lines {
		lines[i] = ReturnLineResponse{
			ID:          ret.Lines[i].ID,
			OrderLineID: ret.Lines[i].OrderLineID,
			StockItemID: ret.Lines[i].StockItemID,
			Quantity:    ret.Lines[i].Quantity,
			UnitPrice:   ret.Lines[i].UnitPrice,
			Amount:      ret.Lines[i].Amount,
		}
	}
	return ReturnResponse{
		ID:           ret.ID,
		ReturnNumber: ret.ReturnNumber,
		OrderID:      ret.OrderID,
		CustomerID:   ret.CustomerID,
		Currency:     ret.Currency.String(),
		Type:         string(ret.Type),
		Reason:       string(ret.Reason),
		Status:       ret.Status.String(),
		TotalAmount:  ret.TotalAmount,
		Lines:        lines,
		Remark:       ret.Remark,
		FinalizedAt:  ret.FinalizedAt,
		CancelledAt:  ret.CancelledAt,
		CreatedAt:    ret.CreatedAt,
	}
}

// ToReturnResponses converts a slice of domain returns
func ToReturnResponses(returns []trade.Return) []ReturnResponse {
	out := make([]ReturnResponse, len(returns))
	for i := range returns {
		out[i] = ToReturnResponse(&returns[i])
	}
	return out
}
