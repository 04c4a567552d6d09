package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	apprealestate "github.com/inmobiliaria/backend/internal/application/realestate"
	"github.com/inmobiliaria/backend/internal/interfaces/http/dto"
)

// ReportHandler serves the sales reports
type ReportHandler struct {
	BaseHandler
	queries *apprealestate.QueryService
	reports *apprealestate.ReportService
}

// NewReportHandler creates a new ReportHandler. reports may be nil, in which
// case exports answer 503.
func NewReportHandler(queries *apprealestate.QueryService, reports *apprealestate.ReportService) *ReportHandler {
	return &ReportHandler{queries: queries, reports: reports}
}

// SalesByAgent returns sales count and amount per agent, highest amount first
func (h *ReportHandler) SalesByAgent(c *gin.Context) {
	rows, err := h.queries.SalesByAgent(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	sendList(c, rows)
}

// ExportSalesByAgent writes the sales-by-agent summary as CSV to report
// storage and returns a download link
func (h *ReportHandler) ExportSalesByAgent(c *gin.Context) {
	if h.reports == nil {
		h.Error(c, http.StatusServiceUnavailable, dto.ErrCodeUnavailable, "Report storage is not configured")
		return
	}

	export, err := h.reports.ExportSalesByAgent(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, export)
}
