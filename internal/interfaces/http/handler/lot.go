package handler

import (
	"github.com/gin-gonic/gin"
	apprealestate "github.com/inmobiliaria/backend/internal/application/realestate"
	"github.com/shopspring/decimal"
)

// LotHandler handles lot-related API endpoints
type LotHandler struct {
	BaseHandler
	lots    *apprealestate.LotService
	queries *apprealestate.QueryService
}

// NewLotHandler creates a new LotHandler
func NewLotHandler(lots *apprealestate.LotService, queries *apprealestate.QueryService) *LotHandler {
	return &LotHandler{lots: lots, queries: queries}
}

// List returns every lot, narrowed by the optional status and municipality
// query parameters
func (h *LotHandler) List(c *gin.Context) {
	var filter apprealestate.LotFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}

	lots, err := h.queries.ListLots(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	sendList(c, lots)
}

// ListByStatus returns the lots in a status, cheapest first. The status
// text is matched ignoring case.
func (h *LotHandler) ListByStatus(c *gin.Context) {
	lots, err := h.queries.FindLotsByStatus(c.Request.Context(), c.Param("status"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	sendList(c, lots)
}

// ListByPriceRange returns the AVAILABLE lots priced within [min, max]
func (h *LotHandler) ListByPriceRange(c *gin.Context) {
	minPrice, err := decimal.NewFromString(c.Query("min"))
	if err != nil {
		h.BadRequest(c, "Query parameter min must be a number")
		return
	}
	maxPrice, err := decimal.NewFromString(c.Query("max"))
	if err != nil {
		h.BadRequest(c, "Query parameter max must be a number")
		return
	}

	lots, err := h.queries.FindLotsByPriceRange(c.Request.Context(), minPrice, maxPrice)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	sendList(c, lots)
}

// Create registers a lot. A missing status means AVAILABLE.
func (h *LotHandler) Create(c *gin.Context) {
	var req apprealestate.CreateLotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	lot, err := h.lots.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, lot)
}

// GetByID returns one lot
func (h *LotHandler) GetByID(c *gin.Context) {
	id, ok := h.parseID(c, "lot")
	if !ok {
		return
	}

	lot, err := h.queries.GetLot(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, lot)
}

// Update replaces a lot's details, and its status when one is sent
func (h *LotHandler) Update(c *gin.Context) {
	id, ok := h.parseID(c, "lot")
	if !ok {
		return
	}

	var req apprealestate.UpdateLotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	lot, err := h.lots.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, lot)
}

// SetStatus overwrites a lot's status
func (h *LotHandler) SetStatus(c *gin.Context) {
	id, ok := h.parseID(c, "lot")
	if !ok {
		return
	}

	var req apprealestate.UpdateLotStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	lot, err := h.lots.SetStatus(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, lot)
}

// Delete removes an AVAILABLE lot
func (h *LotHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c, "lot")
	if !ok {
		return
	}

	if err := h.lots.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// SaleExistsResponse reports whether a lot has a recorded sale
type SaleExistsResponse struct {
	LotID   string `json:"lot_id"`
	HasSale bool   `json:"has_sale"`
}

// SaleExists reports whether a sale references the lot
func (h *LotHandler) SaleExists(c *gin.Context) {
	id, ok := h.parseID(c, "lot")
	if !ok {
		return
	}

	exists, err := h.queries.SaleExistsForLot(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, SaleExistsResponse{LotID: id.String(), HasSale: exists})
}
