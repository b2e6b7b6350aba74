package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	apptrade "github.com/retailcore/backoffice/internal/application/trade"
	"github.com/retailcore/backoffice/internal/domain/trade"
)

// ReturnsHandler exposes the return lifecycle
type ReturnsHandler struct {
	BaseHandler
	returns *apptrade.ReturnService
}

// NewReturnsHandler creates a new ReturnsHandler
func NewReturnsHandler(returns *apptrade.ReturnService) *ReturnsHandler {
	return &ReturnsHandler{returns: returns}
}

// CreateDraft handles POST /api/v1/returns
func (h *ReturnsHandler) CreateDraft(c *gin.Context) {
	var req apptrade.CreateReturnDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	req.Actor = getActor(c)

	resp, err := h.returns.CreateDraft(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// Finalize handles POST /api/v1/returns/:id/finalize
func (h *ReturnsHandler) Finalize(c *gin.Context) {
	returnID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid return ID")
		return
	}

	var req apptrade.FinalizeReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	if actor := getActor(c); actor != nil {
		req.Actor = *actor
	}

	resp, err := h.returns.Finalize(c.Request.Context(), returnID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Cancel handles POST /api/v1/returns/:id/cancel
func (h *ReturnsHandler) Cancel(c *gin.Context) {
	returnID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid return ID")
		return
	}

	var actor uuid.UUID
	if a := getActor(c); a != nil {
		actor = *a
	}

	resp, err := h.returns.Cancel(c.Request.Context(), returnID, actor)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Get handles GET /api/v1/returns/:id
func (h *ReturnsHandler) Get(c *gin.Context) {
	returnID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid return ID")
		return
	}

	resp, err := h.returns.GetReturn(c.Request.Context(), returnID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// List handles GET /api/v1/returns
func (h *ReturnsHandler) List(c *gin.Context) {
	filter := apptrade.ReturnListFilter{}

	var listReq struct {
		Page     int    `form:"page" binding:"omitempty,min=1"`
		PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
		OrderID  string `form:"order_id" binding:"omitempty,uuid"`
		Status   string `form:"status"`
	}
	if err := c.ShouldBindQuery(&listReq); err != nil {
		h.BindError(c, err)
		return
	}

	filter.Page = listReq.Page
	filter.PageSize = listReq.PageSize
	if listReq.OrderID != "" {
		orderID, _ := uuid.Parse(listReq.OrderID)
		filter.OrderID = &orderID
	}
	if listReq.Status != "" {
		status := trade.ReturnStatus(listReq.Status)
		if !status.IsValid() {
			h.BadRequest(c, "Unknown return status")
			return
		}
		filter.Status = &status
	}

	page, err := h.returns.ListReturns(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}
