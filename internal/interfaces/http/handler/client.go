package handler

import (
	"strings"

	"github.com/gin-gonic/gin"
	apprealestate "github.com/inmobiliaria/backend/internal/application/realestate"
)

// ClientHandler handles client-related API endpoints
type ClientHandler struct {
	BaseHandler
	clients *apprealestate.ClientService
	queries *apprealestate.QueryService
}

// NewClientHandler creates a new ClientHandler
func NewClientHandler(clients *apprealestate.ClientService, queries *apprealestate.QueryService) *ClientHandler {
	return &ClientHandler{clients: clients, queries: queries}
}

// List returns the active clients sorted by last name, then first name
func (h *ClientHandler) List(c *gin.Context) {
	clients, err := h.queries.ListActiveClients(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	sendList(c, clients)
}

// Search matches active clients whose first or last name contains q
func (h *ClientHandler) Search(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		h.BadRequest(c, "Query parameter q is required")
		return
	}

	clients, err := h.queries.SearchClients(c.Request.Context(), q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	sendList(c, clients)
}

// Create registers a client
func (h *ClientHandler) Create(c *gin.Context) {
	var req apprealestate.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	client, err := h.clients.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, client)
}

// GetByID returns one client, active or not
func (h *ClientHandler) GetByID(c *gin.Context) {
	id, ok := h.parseID(c, "client")
	if !ok {
		return
	}

	client, err := h.queries.GetClient(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, client)
}

// Update replaces a client's name and contact fields
func (h *ClientHandler) Update(c *gin.Context) {
	id, ok := h.parseID(c, "client")
	if !ok {
		return
	}

	var req apprealestate.UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	client, err := h.clients.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, client)
}

// Deactivate soft-deletes a client
func (h *ClientHandler) Deactivate(c *gin.Context) {
	id, ok := h.parseID(c, "client")
	if !ok {
		return
	}

	if err := h.clients.Deactivate(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// ListSales returns the purchases of a client, newest first
func (h *ClientHandler) ListSales(c *gin.Context) {
	id, ok := h.parseID(c, "client")
	if !ok {
		return
	}

	sales, err := h.queries.ListSalesByClient(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	sendList(c, sales)
}
