package handler

import (
	"github.com/gin-gonic/gin"
	apprealestate "github.com/inmobiliaria/backend/internal/application/realestate"
)

// SaleHandler handles sale-related API endpoints
type SaleHandler struct {
	BaseHandler
	coordinator *apprealestate.SalesTransactionCoordinator
	queries     *apprealestate.QueryService
}

// NewSaleHandler creates a new SaleHandler
func NewSaleHandler(coordinator *apprealestate.SalesTransactionCoordinator, queries *apprealestate.QueryService) *SaleHandler {
	return &SaleHandler{coordinator: coordinator, queries: queries}
}

// List returns every sale, newest first
func (h *SaleHandler) List(c *gin.Context) {
	sales, err := h.queries.ListSales(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	sendList(c, sales)
}

// Register sells an AVAILABLE lot. Any other status answers 422, losing a
// concurrent race answers 409; neither leaves a sale behind.
func (h *SaleHandler) Register(c *gin.Context) {
	var req apprealestate.RegisterSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	sale, err := h.coordinator.RegisterSale(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, sale)
}

// GetByID returns one sale
func (h *SaleHandler) GetByID(c *gin.Context) {
	id, ok := h.parseID(c, "sale")
	if !ok {
		return
	}

	sale, err := h.queries.GetSale(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, sale)
}

// Cancel removes a sale and makes its lot AVAILABLE again
func (h *SaleHandler) Cancel(c *gin.Context) {
	id, ok := h.parseID(c, "sale")
	if !ok {
		return
	}

	if err := h.coordinator.CancelSale(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// UpdateNotes replaces the notes of a sale
func (h *SaleHandler) UpdateNotes(c *gin.Context) {
	id, ok := h.parseID(c, "sale")
	if !ok {
		return
	}

	var req apprealestate.UpdateSaleNotesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	sale, err := h.coordinator.UpdateNotes(c.Request.Context(), id, req.Notes)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, sale)
}
