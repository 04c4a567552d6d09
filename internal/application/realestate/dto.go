package realestate

import (
	"time"

	"github.com/google/uuid"
	"github.com/inmobiliaria/backend/internal/domain/realestate"
	"github.com/shopspring/decimal"
)

// CreateAgentRequest represents a request to register an agent
type CreateAgentRequest struct {
	IdentityNumber string `json:"identity_number" binding:"required,max=20"`
	FirstName      string `json:"first_name" binding:"required,max=100"`
	LastName       string `json:"last_name" binding:"required,max=100"`
	Email          string `json:"email" binding:"required,email,max=150"`
	Phone          string `json:"phone" binding:"max=20"`
}

// UpdateAgentRequest represents a request to update an agent's name and contact fields
type UpdateAgentRequest struct {
	FirstName string `json:"first_name" binding:"required,max=100"`
	LastName  string `json:"last_name" binding:"required,max=100"`
	Email     string `json:"email" binding:"required,email,max=150"`
	Phone     string `json:"phone" binding:"max=20"`
}

// AgentResponse represents an agent in API responses
type AgentResponse struct {
	ID             uuid.UUID `json:"id"`
	IdentityNumber string    `json:"identity_number"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone,omitempty"`
	Active         bool      `json:"active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// CreateClientRequest represents a request to register a client
type CreateClientRequest struct {
	IdentityNumber string `json:"identity_number" binding:"required,max=20"`
	FirstName      string `json:"first_name" binding:"required,max=100"`
	LastName       string `json:"last_name" binding:"required,max=100"`
	Email          string `json:"email" binding:"required,email,max=150"`
	Phone          string `json:"phone" binding:"max=20"`
	Address        string `json:"address" binding:"max=200"`
}

// UpdateClientRequest represents a request to update a client
type UpdateClientRequest struct {
	FirstName string `json:"first_name" binding:"required,max=100"`
	LastName  string `json:"last_name" binding:"required,max=100"`
	Email     string `json:"email" binding:"required,email,max=150"`
	Phone     string `json:"phone" binding:"max=20"`
	Address   string `json:"address" binding:"max=200"`
}

// ClientResponse represents a client in API responses
type ClientResponse struct {
	ID               uuid.UUID `json:"id"`
	IdentityNumber   string    `json:"identity_number"`
	FirstName        string    `json:"first_name"`
	LastName         string    `json:"last_name"`
	Email            string    `json:"email"`
	Phone            string    `json:"phone,omitempty"`
	Address          string    `json:"address,omitempty"`
	RegistrationDate time.Time `json:"registration_date"`
	Active           bool      `json:"active"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// CreateLotRequest represents a request to register a lot.
// Status is optional and defaults to AVAILABLE.
type CreateLotRequest struct {
	Reference    string          `json:"reference" binding:"required,max=50"`
	Address      string          `json:"address" binding:"required,max=200"`
	Municipality string          `json:"municipality" binding:"required,max=100"`
	Department   string          `json:"department" binding:"required,max=100"`
	Area         decimal.Decimal `json:"area"`
	Price        decimal.Decimal `json:"price"`
	Description  string          `json:"description"`
	Status       string          `json:"status"`
}

// UpdateLotRequest represents a full update of a lot.
// When Status is set it overwrites the stored status like a status patch.
type UpdateLotRequest struct {
	Address      string          `json:"address" binding:"required,max=200"`
	Municipality string          `json:"municipality" binding:"required,max=100"`
	Department   string          `json:"department" binding:"required,max=100"`
	Area         decimal.Decimal `json:"area"`
	Price        decimal.Decimal `json:"price"`
	Description  string          `json:"description"`
	Status       *string         `json:"status"`
}

// UpdateLotStatusRequest represents a manual status patch
type UpdateLotStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// LotResponse represents a lot in API responses
type LotResponse struct {
	ID               uuid.UUID       `json:"id"`
	Reference        string          `json:"reference"`
	Address          string          `json:"address"`
	Municipality     string          `json:"municipality"`
	Department       string          `json:"department"`
	Area             decimal.Decimal `json:"area"`
	Price            decimal.Decimal `json:"price"`
	Description      string          `json:"description,omitempty"`
	Status           string          `json:"status"`
	RegistrationDate time.Time       `json:"registration_date"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// LotFilter narrows the lot listing
type LotFilter struct {
	Status       string `form:"status"`
	Municipality string `form:"municipality"`
}

// RegisterSaleRequest represents a request to sell a lot
type RegisterSaleRequest struct {
	ClientID      uuid.UUID       `json:"client_id" binding:"required"`
	LotID         uuid.UUID       `json:"lot_id" binding:"required"`
	AgentID       uuid.UUID       `json:"agent_id" binding:"required"`
	FinalPrice    decimal.Decimal `json:"final_price"`
	PaymentMethod string          `json:"payment_method" binding:"required"`
	Notes         string          `json:"notes"`
}

// UpdateSaleNotesRequest replaces the notes of a sale
type UpdateSaleNotesRequest struct {
	Notes string `json:"notes"`
}

// SaleResponse represents a sale in API responses
type SaleResponse struct {
	ID            uuid.UUID       `json:"id"`
	ClientID      uuid.UUID       `json:"client_id"`
	LotID         uuid.UUID       `json:"lot_id"`
	AgentID       uuid.UUID       `json:"agent_id"`
	SaleDate      time.Time       `json:"sale_date"`
	FinalPrice    decimal.Decimal `json:"final_price"`
	PaymentMethod string          `json:"payment_method"`
	Notes         string          `json:"notes,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// AgentSalesSummaryResponse is one row of the sales-by-agent report
type AgentSalesSummaryResponse struct {
	AgentID     uuid.UUID       `json:"agent_id"`
	AgentName   string          `json:"agent_name"`
	SalesCount  int64           `json:"sales_count"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// ReportExportResponse describes an exported report object
type ReportExportResponse struct {
	Key         string    `json:"key"`
	Rows        int       `json:"rows"`
	DownloadURL string    `json:"download_url,omitempty"`
	ExpiresAt   time.Time `json:"expires_at,omitempty"`
}

// ToAgentResponse converts a domain Agent to AgentResponse
func ToAgentResponse(a *realestate.Agent) AgentResponse {
	return AgentResponse{
		ID:             a.ID,
		IdentityNumber: a.IdentityNumber,
		FirstName:      a.FirstName,
		LastName:       a.LastName,
		Email:          a.Email,
		Phone:          a.Phone,
		Active:         a.Active,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}

// ToClientResponse converts a domain Client to ClientResponse
func ToClientResponse(c *realestate.Client) ClientResponse {
	return ClientResponse{
		ID:               c.ID,
		IdentityNumber:   c.IdentityNumber,
		FirstName:        c.FirstName,
		LastName:         c.LastName,
		Email:            c.Email,
		Phone:            c.Phone,
		Address:          c.Address,
		RegistrationDate: c.RegistrationDate,
		Active:           c.Active,
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        c.UpdatedAt,
	}
}

// ToLotResponse converts a domain Lot to LotResponse
func ToLotResponse(l *realestate.Lot) LotResponse {
	return LotResponse{
		ID:               l.ID,
		Reference:        l.Reference,
		Address:          l.Address,
		Municipality:     l.Municipality,
		Department:       l.Department,
		Area:             l.Area,
		Price:            l.Price,
		Description:      l.Description,
		Status:           l.Status.String(),
		RegistrationDate: l.RegistrationDate,
		CreatedAt:        l.CreatedAt,
		UpdatedAt:        l.UpdatedAt,
	}
}

// ToSaleResponse converts a domain Sale to SaleResponse
func ToSaleResponse(s *realestate.Sale) SaleResponse {
	return SaleResponse{
		ID:            s.ID,
		ClientID:      s.ClientID,
		LotID:         s.LotID,
		AgentID:       s.AgentID,
		SaleDate:      s.SaleDate,
		FinalPrice:    s.FinalPrice,
		PaymentMethod: s.PaymentMethod.String(),
		Notes:         s.Notes,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}

// ToAgentSalesSummaryResponse converts an aggregation row
func ToAgentSalesSummaryResponse(s realestate.AgentSalesSummary) AgentSalesSummaryResponse {
	return AgentSalesSummaryResponse{
		AgentID:     s.AgentID,
		AgentName:   s.FirstName + " " + s.LastName,
		SalesCount:  s.SalesCount,
		TotalAmount: s.TotalAmount,
	}
}

func toAgentResponses(agents []realestate.Agent) []AgentResponse {
	out := make([]AgentResponse, len(agents))
	for i := range agents {
		out[i] = ToAgentResponse(&agents[i])
	}
	return out
}

func toClientResponses(clients []realestate.Client) []ClientResponse {
	out := make([]ClientResponse, len(clients))
	for i := range clients {
		out[i] = ToClientResponse(&clients[i])
	}
	return out
}

func toLotResponses(lots []realestate.Lot) []LotResponse {
	out := make([]LotResponse, len(lots))
	for i := range lots {
		out[i] = ToLotResponse(&lots[i])
	}
	return out
}

func toSaleResponses(sales []realestate.Sale) []SaleResponse {
	out := make([]SaleResponse, len(sales))
	for i := range sales {
		out[i] = ToSaleResponse(&sales[i])
	}
	return out
}
