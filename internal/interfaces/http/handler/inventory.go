package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	appinventory "github.com/retailcore/backoffice/internal/application/inventory"
)

// maxImportBytes caps the size of an uploaded stock item CSV
const maxImportBytes = 10 << 20

// InventoryHandler exposes availability queries and the stock item import
type InventoryHandler struct {
	BaseHandler
	availability *appinventory.AvailabilityService
	importer     *appinventory.ImportService
}

// NewInventoryHandler creates a new InventoryHandler
func NewInventoryHandler(availability *appinventory.AvailabilityService, importer *appinventory.ImportService) *InventoryHandler {
	return &InventoryHandler{availability: availability, importer: importer}
}

// GetAvailability handles GET /api/v1/stock-items/:id/availability
func (h *InventoryHandler) GetAvailability(c *gin.Context) {
	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid stock item ID")
		return
	}

	withLock := c.Query("with_lock") == "true"
	resp, err := h.availability.ComputeAvailability(c.Request.Context(), itemID, withLock)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// bulkAvailabilityRequest carries the item IDs for a bulk availability query
type bulkAvailabilityRequest struct {
	ItemIDs []uuid.UUID `json:"item_ids" binding:"required"`
}

// BulkAvailability handles POST /api/v1/stock-items/availability
func (h *InventoryHandler) BulkAvailability(c *gin.Context) {
	var req bulkAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	resp, err := h.availability.ComputeBulkAvailability(c.Request.Context(), req.ItemIDs)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// ImportStockItems handles POST /api/v1/stock-items/import
func (h *InventoryHandler) ImportStockItems(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		h.BadRequest(c, "A CSV upload is required in the 'file' form field")
		return
	}
	if header.Size > maxImportBytes {
		h.BadRequest(c, "CSV file exceeds the 10 MiB import limit")
		return
	}

	file, err := header.Open()
	if err != nil {
		h.BadRequest(c, "Could not read the uploaded file")
		return
	}
	defer file.Close()

	resp, err := h.importer.ImportStockItems(c.Request.Context(), file, getActor(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}
