package realestate

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/inmobiliaria/backend/internal/domain/realestate"
	"github.com/inmobiliaria/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// QueryService serves the read side: filtered listings, lookups by id and the
// sales-by-agent aggregation. It reads outside any unit of work.
type QueryService struct {
	agents  realestate.AgentRepository
	clients realestate.ClientRepository
	lots    realestate.LotRepository
	sales   realestate.SaleRepository
}

// NewQueryService creates a new QueryService
func NewQueryService(
	agents realestate.AgentRepository,
	clients realestate.ClientRepository,
	lots realestate.LotRepository,
	sales realestate.SaleRepository,
) *QueryService {
	return &QueryService{agents: agents, clients: clients, lots: lots, sales: sales}
}

// ListActiveAgents returns active agents sorted by last name
func (s *QueryService) ListActiveAgents(ctx context.Context) ([]AgentResponse, error) {
	agents, err := s.agents.FindActive(ctx)
	if err != nil {
		return nil, err
	}
	return toAgentResponses(agents), nil
}

// ListActiveClients returns active clients sorted by last name, then first name
func (s *QueryService) ListActiveClients(ctx context.Context) ([]ClientResponse, error) {
	clients, err := s.clients.FindActive(ctx)
	if err != nil {
		return nil, err
	}
	return toClientResponses(clients), nil
}

// GetAgent returns an agent by id
func (s *QueryService) GetAgent(ctx context.Context, id uuid.UUID) (*AgentResponse, error) {
	agent, err := s.agents.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToAgentResponse(agent)
	return &resp, nil
}

// GetClient returns a client by id
func (s *QueryService) GetClient(ctx context.Context, id uuid.UUID) (*ClientResponse, error) {
	client, err := s.clients.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToClientResponse(client)
	return &resp, nil
}

// SearchClients matches text against first or last name of active clients,
// ignoring case. An empty search returns every active client.
func (s *QueryService) SearchClients(ctx context.Context, text string) ([]ClientResponse, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return s.ListActiveClients(ctx)
	}
	clients, err := s.clients.SearchActiveByName(ctx, text)
	if err != nil {
		return nil, err
	}
	return toClientResponses(clients), nil
}

// GetLot returns a lot by id
func (s *QueryService) GetLot(ctx context.Context, id uuid.UUID) (*LotResponse, error) {
	lot, err := s.lots.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToLotResponse(lot)
	return &resp, nil
}

// ListLots returns every lot, or the lots matching the filter
func (s *QueryService) ListLots(ctx context.Context, filter LotFilter) ([]LotResponse, error) {
	var status *realestate.LotStatus
	if filter.Status != "" {
		parsed, err := realestate.ParseLotStatus(filter.Status)
		if err != nil {
			return nil, err
		}
		status = &parsed
	}

	switch {
	case strings.TrimSpace(filter.Municipality) != "":
		return s.FindLotsByMunicipality(ctx, filter.Municipality, status)
	case status != nil:
		return s.findLotsByStatus(ctx, *status)
	}

	lots, err := s.lots.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return toLotResponses(lots), nil
}

// FindLotsByStatus returns lots whose status matches text ignoring case, sorted by price ascending
func (s *QueryService) FindLotsByStatus(ctx context.Context, text string) ([]LotResponse, error) {
	status, err := realestate.ParseLotStatus(text)
	if err != nil {
		return nil, err
	}
	return s.findLotsByStatus(ctx, status)
}

func (s *QueryService) findLotsByStatus(ctx context.Context, status realestate.LotStatus) ([]LotResponse, error) {
	lots, err := s.lots.FindByStatus(ctx, status)
	if err != nil {
		return nil, err
	}
	return toLotResponses(lots), nil
}

// FindLotsByPriceRange returns AVAILABLE lots priced within [min, max], sorted by price ascending
func (s *QueryService) FindLotsByPriceRange(ctx context.Context, min, max decimal.Decimal) ([]LotResponse, error) {
	if min.IsNegative() || max.IsNegative() {
		return nil, shared.NewValidationError("price bounds cannot be negative")
	}
	if min.GreaterThan(max) {
		return nil, shared.NewValidationError("minimum price %s is greater than maximum price %s", min, max)
	}
	lots, err := s.lots.FindAvailableByPriceRange(ctx, min, max)
	if err != nil {
		return nil, err
	}
	return toLotResponses(lots), nil
}

// FindLotsByMunicipality returns the lots of a municipality, optionally in one status
func (s *QueryService) FindLotsByMunicipality(ctx context.Context, municipality string, status *realestate.LotStatus) ([]LotResponse, error) {
	lots, err := s.lots.FindByMunicipality(ctx, strings.TrimSpace(municipality), status)
	if err != nil {
		return nil, err
	}
	return toLotResponses(lots), nil
}

// GetSale returns a sale by id
func (s *QueryService) GetSale(ctx context.Context, id uuid.UUID) (*SaleResponse, error) {
	sale, err := s.sales.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToSaleResponse(sale)
	return &resp, nil
}

// ListSales returns every sale, newest first
func (s *QueryService) ListSales(ctx context.Context) ([]SaleResponse, error) {
	sales, err := s.sales.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return toSaleResponses(sales), nil
}

// ListSalesByClient returns a client's sales, newest first. An unknown client
// has no sales, so the result is empty rather than an error.
func (s *QueryService) ListSalesByClient(ctx context.Context, clientID uuid.UUID) ([]SaleResponse, error) {
	sales, err := s.sales.FindByClient(ctx, clientID)
	if err != nil {
		return nil, err
	}
	return toSaleResponses(sales), nil
}

// ListSalesByAgent returns an agent's sales, newest first. An unknown agent
// yields an empty list.
func (s *QueryService) ListSalesByAgent(ctx context.Context, agentID uuid.UUID) ([]SaleResponse, error) {
	sales, err := s.sales.FindByAgent(ctx, agentID)
	if err != nil {
		return nil, err
	}
	return toSaleResponses(sales), nil
}

// SaleExistsForLot reports whether a sale references the lot
func (s *QueryService) SaleExistsForLot(ctx context.Context, lotID uuid.UUID) (bool, error) {
	return s.sales.ExistsByLot(ctx, lotID)
}

// SalesByAgent groups all sales by agent with count and total, largest total first
func (s *QueryService) SalesByAgent(ctx context.Context) ([]AgentSalesSummaryResponse, error) {
	rows, err := s.sales.SummarizeByAgent(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]AgentSalesSummaryResponse, len(rows))
	for i, r := range rows {
		out[i] = ToAgentSalesSummaryResponse(r)
	}
	return out, nil
}
