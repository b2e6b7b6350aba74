package finance

import (
	"time"

	"github.com/google/uuid"
	"github.com/retailcore/backoffice/internal/domain/finance"
	"github.com/retailcore/backoffice/internal/domain/trade"
	"github.com/shopspring/decimal"
)

// OrderResponse is the API view of an order's ledger-owned totals
type OrderResponse struct {
	ID          uuid.UUID       `json:"id"`
	OrderNumber string          `json:"order_number"`
	CustomerID  uuid.UUID       `json:"customer_id"`
	Currency    string          `json:"currency"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	NetPaid     decimal.Decimal `json:"net_paid"`
	BalanceDue  decimal.Decimal `json:"balance_due"`
	Status      string          `json:"status"`
	CancelledAt *time.Time      `json:"cancelled_at,omitempty"`
}

// CreditResponse is the API view of a customer credit
type CreditResponse struct {
	ID              uuid.UUID       `json:"id"`
	CreditNumber    string          `json:"credit_number"`
	CustomerID      uuid.UUID       `json:"customer_id"`
	Currency        string          `json:"currency"`
	OriginalAmount  decimal.Decimal `json:"original_amount"`
	RemainingAmount decimal.Decimal `json:"remaining_amount"`
	Status          string          `json:"status"`
}

// ApplyCreditRequest applies an amount of a credit to an order
type ApplyCreditRequest struct {
	CustomerID uuid.UUID       `json:"customer_id" binding:"required"`
	CreditID   uuid.UUID       `json:"credit_id" binding:"required"`
	OrderID    uuid.UUID       `json:"order_id" binding:"required"`
	Amount     decimal.Decimal `json:"amount" binding:"required"`
	Actor      *uuid.UUID      `json:"-"`
}

// ApplyCreditResponse carries both updated sides of a credit application
type ApplyCreditResponse struct {
	Order  OrderResponse  `json:"order"`
	Credit CreditResponse `json:"credit"`
}

// ToOrderResponse converts a domain order to its API view
func ToOrderResponse(order *trade.Order) OrderResponse {
	return OrderResponse{
		ID:          order.ID,
		OrderNumber: order.OrderNumber,
		CustomerID:  order.CustomerID,
		Currency:    order.Currency.String(),
		TotalAmount: order.TotalAmount,
		NetPaid:     order.NetPaid,
		BalanceDue:  order.BalanceDue,
		Status:      order.Status.String(),
		CancelledAt: order.CancelledAt,
	}
}

// ToCreditResponse converts a domain credit to its API view
func ToCreditResponse(credit *finance.CustomerCredit) CreditResponse {
	return CreditResponse{
		ID:              credit.ID,
		CreditNumber:    credit.CreditNumber,
		CustomerID:      credit.CustomerID,
		Currency:        credit.Currency.String(),
		OriginalAmount:  credit.OriginalAmount,
		RemainingAmount: credit.RemainingAmount,
		Status:          credit.Status.String(),
	}
}
