package realestate

import (
	"context"

	"github.com/inmobiliaria/backend/internal/domain/realestate"
)

// UnitOfWork runs a function inside one database transaction.
// If the function returns an error the transaction is rolled back and the error
// is returned unchanged; otherwise it is committed. It is the only path by which
// a Sale and its Lot change together.
type UnitOfWork interface {
	Execute(ctx context.Context, fn func(repos Repositories) error) error
}

// Repositories gives access to the entity stores of one unit of work.
// All repositories returned share the same underlying transaction.
type Repositories interface {
	Agents() realestate.AgentRepository
	Clients() realestate.ClientRepository
	Lots() realestate.LotRepository
	Sales() realestate.SaleRepository
}

// NoOpUnitOfWork runs the function against fixed repositories without a
// transaction. It is used by tests that mock the repositories.
type NoOpUnitOfWork struct {
	agents  realestate.AgentRepository
	clients realestate.ClientRepository
	lots    realestate.LotRepository
	sales   realestate.SaleRepository
}

// NewNoOpUnitOfWork creates a NoOpUnitOfWork with the given repositories.
func NewNoOpUnitOfWork(
	agents realestate.AgentRepository,
	clients realestate.ClientRepository,
	lots realestate.LotRepository,
	sales realestate.SaleRepository,
) *NoOpUnitOfWork {
	return &NoOpUnitOfWork{agents: agents, clients: clients, lots: lots, sales: sales}
}

// Execute runs fn directly
func (u *NoOpUnitOfWork) Execute(_ context.Context, fn func(repos Repositories) error) error {
	return fn(u)
}

func (u *NoOpUnitOfWork) Agents() realestate.AgentRepository   { return u.agents }
func (u *NoOpUnitOfWork) Clients() realestate.ClientRepository { return u.clients }
func (u *NoOpUnitOfWork) Lots() realestate.LotRepository       { return u.lots }
func (u *NoOpUnitOfWork) Sales() realestate.SaleRepository     { return u.sales }

var _ UnitOfWork = (*NoOpUnitOfWork)(nil)
var _ Repositories = (*NoOpUnitOfWork)(nil)
