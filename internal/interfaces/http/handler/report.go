package handler

import (
	"github.com/gin-gonic/gin"
	appreport "github.com/retailcore/backoffice/internal/application/report"
)

// ReportHandler exposes the valuation report
type ReportHandler struct {
	BaseHandler
	valuation *appreport.ValuationService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(valuation *appreport.ValuationService) *ReportHandler {
	return &ReportHandler{valuation: valuation}
}

// Valuation handles GET /api/v1/reports/valuation
func (h *ReportHandler) Valuation(c *gin.Context) {
	var req appreport.ValuationRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindError(c, err)
		return
	}

	resp, err := h.valuation.Valuate(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}
