package realestate

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EntityKind names an entity type for natural-key checks
type EntityKind string

const (
	EntityAgent  EntityKind = "agent"
	EntityClient EntityKind = "client"
	EntityLot    EntityKind = "lot"
)

// NaturalKey names a business-unique column
type NaturalKey string

const (
	KeyIdentityNumber NaturalKey = "identity_number"
	KeyEmail          NaturalKey = "email"
	KeyReference      NaturalKey = "reference"
)

// NaturalKeyLookup answers existence queries on natural keys.
// Inactive records count: soft delete never frees a key.
type NaturalKeyLookup interface {
	ExistsByNaturalKey(ctx context.Context, key NaturalKey, value string) (bool, error)
}

// AgentRepository defines the interface for agent persistence
type AgentRepository interface {
	NaturalKeyLookup

	// FindByID finds an agent by its ID, active or not
	FindByID(ctx context.Context, id uuid.UUID) (*Agent, error)

	// FindActive returns active agents ordered by last name
	FindActive(ctx context.Context) ([]Agent, error)

	// Create inserts a new agent
	Create(ctx context.Context, agent *Agent) error

	// Update writes the mutable fields of an existing agent
	Update(ctx context.Context, agent *Agent) error
}

// ClientRepository defines the interface for client persistence
type ClientRepository interface {
	NaturalKeyLookup

	// FindByID finds a client by its ID, active or not
	FindByID(ctx context.Context, id uuid.UUID) (*Client, error)

	// FindActive returns active clients ordered by last name, then first name
	FindActive(ctx context.Context) ([]Client, error)

	// SearchActiveByName returns active clients whose first or last name
	// contains text, ignoring case, ordered by last name
	SearchActiveByName(ctx context.Context, text string) ([]Client, error)

	// Create inserts a new client
	Create(ctx context.Context, client *Client) error

	// Update writes the mutable fields of an existing client
	Update(ctx context.Context, client *Client) error
}

// LotRepository defines the interface for lot persistence
type LotRepository interface {
	NaturalKeyLookup
	LotStatusStore

	FindByID(ctx context.Context, id uuid.UUID) (*Lot, error)

	// FindByIDForUpdate loads a lot and holds a row lock on it until the
	// enclosing transaction ends
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Lot, error)

	// FindAll returns every lot ordered by registration date, newest first
	FindAll(ctx context.Context) ([]Lot, error)

	// FindByStatus returns lots in the given status ordered by price ascending
	FindByStatus(ctx context.Context, status LotStatus) ([]Lot, error)

	// FindAvailableByPriceRange returns AVAILABLE lots with min <= price <= max
	// ordered by price ascending
	FindAvailableByPriceRange(ctx context.Context, min, max decimal.Decimal) ([]Lot, error)

	// FindByMunicipality returns the lots of a municipality, optionally
	// restricted to one status, ordered by price ascending
	FindByMunicipality(ctx context.Context, municipality string, status *LotStatus) ([]Lot, error)

	Create(ctx context.Context, lot *Lot) error
	Update(ctx context.Context, lot *Lot) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// AgentSalesSummary is one row of the sales-by-agent aggregation
type AgentSalesSummary struct {
	AgentID     uuid.UUID
	FirstName   string
	LastName    string
	SalesCount  int64
	TotalAmount decimal.Decimal
}

// SaleRepository defines the interface for sale persistence
type SaleRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Sale, error)

	// FindAll returns every sale ordered by sale date, newest first
	FindAll(ctx context.Context) ([]Sale, error)

	// FindByClient returns a client's sales ordered by sale date, newest first
	FindByClient(ctx context.Context, clientID uuid.UUID) ([]Sale, error)

	// FindByAgent returns an agent's sales ordered by sale date, newest first
	FindByAgent(ctx context.Context, agentID uuid.UUID) ([]Sale, error)

	// ExistsByLot reports whether any sale references the lot
	ExistsByLot(ctx context.Context, lotID uuid.UUID) (bool, error)

	// SummarizeByAgent groups all sales by agent, ordered by total amount descending
	SummarizeByAgent(ctx context.Context) ([]AgentSalesSummary, error)

	Create(ctx context.Context, sale *Sale) error
	UpdateNotes(ctx context.Context, id uuid.UUID, notes string) error
	Delete(ctx context.Context, id uuid.UUID) error
}
