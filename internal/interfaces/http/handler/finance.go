package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	appfinance "github.com/retailcore/backoffice/internal/application/finance"
)

// FinanceHandler exposes the credit and ledger operations
type FinanceHandler struct {
	BaseHandler
	credits *appfinance.CreditService
	ledger  *appfinance.LedgerService
}

// NewFinanceHandler creates a new FinanceHandler
func NewFinanceHandler(credits *appfinance.CreditService, ledger *appfinance.LedgerService) *FinanceHandler {
	return &FinanceHandler{credits: credits, ledger: ledger}
}

// ApplyCredit handles POST /api/v1/credits/apply
func (h *FinanceHandler) ApplyCredit(c *gin.Context) {
	var req appfinance.ApplyCreditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	req.Actor = getActor(c)

	resp, err := h.credits.ApplyCredit(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// RecomputeInvoiceTotals handles POST /api/v1/orders/:id/recompute
func (h *FinanceHandler) RecomputeInvoiceTotals(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	resp, err := h.ledger.RecomputeInvoiceTotals(c.Request.Context(), orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}
