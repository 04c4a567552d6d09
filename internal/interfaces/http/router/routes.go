package router

import (
	"github.com/gin-gonic/gin"
	"github.com/inmobiliaria/backend/internal/interfaces/http/handler"
)

// Handlers bundles the resource handlers mounted under the API prefix
type Handlers struct {
	Agents  *handler.AgentHandler
	Clients *handler.ClientHandler
	Lots    *handler.LotHandler
	Sales   *handler.SaleHandler
	Reports *handler.ReportHandler
}

// AgentRoutes maps /agents
func AgentRoutes(h *handler.AgentHandler) *DomainGroup {
	return NewDomainGroup("agents", "/agents").
		GET("", h.List).
		POST("", h.Create).
		GET("/:id", h.GetByID).
		PUT("/:id", h.Update).
		DELETE("/:id", h.Deactivate).
		GET("/:id/sales", h.ListSales)
}

// ClientRoutes maps /clients
func ClientRoutes(h *handler.ClientHandler) *DomainGroup {
	return NewDomainGroup("clients", "/clients").
		GET("", h.List).
		POST("", h.Create).
		GET("/search", h.Search).
		GET("/:id", h.GetByID).
		PUT("/:id", h.Update).
		DELETE("/:id", h.Deactivate).
		GET("/:id/sales", h.ListSales)
}

// LotRoutes maps /lots
func LotRoutes(h *handler.LotHandler) *DomainGroup {
	return NewDomainGroup("lots", "/lots").
		GET("", h.List).
		POST("", h.Create).
		GET("/status/:status", h.ListByStatus).
		GET("/price-range", h.ListByPriceRange).
		GET("/:id", h.GetByID).
		PUT("/:id", h.Update).
		DELETE("/:id", h.Delete).
		PATCH("/:id/status", h.SetStatus).
		GET("/:id/sale", h.SaleExists)
}

// SaleRoutes maps /sales. Registration accepts an Idempotency-Key through
// the given guard.
func SaleRoutes(h *handler.SaleHandler, idempotency gin.HandlerFunc) *DomainGroup {
	register := []gin.HandlerFunc{h.Register}
	if idempotency != nil {
		register = append([]gin.HandlerFunc{idempotency}, register...)
	}
	return NewDomainGroup("sales", "/sales").
		GET("", h.List).
		POST("", register...).
		GET("/:id", h.GetByID).
		DELETE("/:id", h.Cancel).
		PATCH("/:id/notes", h.UpdateNotes)
}

// ReportRoutes maps /reports
func ReportRoutes(h *handler.ReportHandler) *DomainGroup {
	return NewDomainGroup("reports", "/reports").
		GET("/sales-by-agent", h.SalesByAgent).
		POST("/sales-by-agent/export", h.ExportSalesByAgent)
}
