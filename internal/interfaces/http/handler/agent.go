package handler

import (
	"github.com/gin-gonic/gin"
	apprealestate "github.com/inmobiliaria/backend/internal/application/realestate"
)

// AgentHandler handles agent-related API endpoints
type AgentHandler struct {
	BaseHandler
	agents  *apprealestate.AgentService
	queries *apprealestate.QueryService
}

// NewAgentHandler creates a new AgentHandler
func NewAgentHandler(agents *apprealestate.AgentService, queries *apprealestate.QueryService) *AgentHandler {
	return &AgentHandler{agents: agents, queries: queries}
}

// List returns the active agents sorted by last name
func (h *AgentHandler) List(c *gin.Context) {
	agents, err := h.queries.ListActiveAgents(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	sendList(c, agents)
}

// Create registers an agent
func (h *AgentHandler) Create(c *gin.Context) {
	var req apprealestate.CreateAgentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	agent, err := h.agents.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, agent)
}

// GetByID returns one agent, active or not
func (h *AgentHandler) GetByID(c *gin.Context) {
	id, ok := h.parseID(c, "agent")
	if !ok {
		return
	}

	agent, err := h.queries.GetAgent(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, agent)
}

// Update replaces an agent's name and contact fields
func (h *AgentHandler) Update(c *gin.Context) {
	id, ok := h.parseID(c, "agent")
	if !ok {
		return
	}

	var req apprealestate.UpdateAgentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	agent, err := h.agents.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, agent)
}

// Deactivate soft-deletes an agent
func (h *AgentHandler) Deactivate(c *gin.Context) {
	id, ok := h.parseID(c, "agent")
	if !ok {
		return
	}

	if err := h.agents.Deactivate(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// ListSales returns the sales closed by an agent, newest first
func (h *AgentHandler) ListSales(c *gin.Context) {
	id, ok := h.parseID(c, "agent")
	if !ok {
		return
	}

	sales, err := h.queries.ListSalesByAgent(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	sendList(c, sales)
}
