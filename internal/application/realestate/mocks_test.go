package realestate

import (
	"context"

	"github.com/google/uuid"
	"github.com/inmobiliaria/backend/internal/domain/realestate"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type MockAgentRepository struct {
	mock.Mock
}

func (m *MockAgentRepository) ExistsByNaturalKey(ctx context.Context, key realestate.NaturalKey, value string) (bool, error) {
	args := m.Called(ctx, key, value)
	return args.Bool(0), args.Error(1)
}

func (m *MockAgentRepository) FindByID(ctx context.Context, id uuid.UUID) (*realestate.Agent, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*realestate.Agent), args.Error(1)
}

func (m *MockAgentRepository) FindActive(ctx context.Context) ([]realestate.Agent, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]realestate.Agent), args.Error(1)
}

func (m *MockAgentRepository) Create(ctx context.Context, agent *realestate.Agent) error {
	return m.Called(ctx, agent).Error(0)
}

func (m *MockAgentRepository) Update(ctx context.Context, agent *realestate.Agent) error {
	return m.Called(ctx, agent).Error(0)
}

type MockClientRepository struct {
	mock.Mock
}

func (m *MockClientRepository) ExistsByNaturalKey(ctx context.Context, key realestate.NaturalKey, value string) (bool, error) {
	args := m.Called(ctx, key, value)
	return args.Bool(0), args.Error(1)
}

func (m *MockClientRepository) FindByID(ctx context.Context, id uuid.UUID) (*realestate.Client, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*realestate.Client), args.Error(1)
}

func (m *MockClientRepository) FindActive(ctx context.Context) ([]realestate.Client, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]realestate.Client), args.Error(1)
}

func (m *MockClientRepository) SearchActiveByName(ctx context.Context, text string) ([]realestate.Client, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]realestate.Client), args.Error(1)
}

func (m *MockClientRepository) Create(ctx context.Context, client *realestate.Client) error {
	return m.Called(ctx, client).Error(0)
}

func (m *MockClientRepository) Update(ctx context.Context, client *realestate.Client) error {
	return m.Called(ctx, client).Error(0)
}

type MockLotRepository struct {
	mock.Mock
}

func (m *MockLotRepository) ExistsByNaturalKey(ctx context.Context, key realestate.NaturalKey, value string) (bool, error) {
	args := m.Called(ctx, key, value)
	return args.Bool(0), args.Error(1)
}

func (m *MockLotRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status realestate.LotStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *MockLotRepository) CompareAndSwapStatus(ctx context.Context, id uuid.UUID, expected, next realestate.LotStatus) (bool, error) {
	args := m.Called(ctx, id, expected, next)
	return args.Bool(0), args.Error(1)
}

func (m *MockLotRepository) FindByID(ctx context.Context, id uuid.UUID) (*realestate.Lot, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*realestate.Lot), args.Error(1)
}

func (m *MockLotRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*realestate.Lot, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*realestate.Lot), args.Error(1)
}

func (m *MockLotRepository) FindAll(ctx context.Context) ([]realestate.Lot, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]realestate.Lot), args.Error(1)
}

func (m *MockLotRepository) FindByStatus(ctx context.Context, status realestate.LotStatus) ([]realestate.Lot, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]realestate.Lot), args.Error(1)
}

func (m *MockLotRepository) FindAvailableByPriceRange(ctx context.Context, min, max decimal.Decimal) ([]realestate.Lot, error) {
	args := m.Called(ctx, min, max)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]realestate.Lot), args.Error(1)
}

func (m *MockLotRepository) FindByMunicipality(ctx context.Context, municipality string, status *realestate.LotStatus) ([]realestate.Lot, error) {
	args := m.Called(ctx, municipality, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]realestate.Lot), args.Error(1)
}

func (m *MockLotRepository) Create(ctx context.Context, lot *realestate.Lot) error {
	return m.Called(ctx, lot).Error(0)
}

func (m *MockLotRepository) Update(ctx context.Context, lot *realestate.Lot) error {
	return m.Called(ctx, lot).Error(0)
}

func (m *MockLotRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type MockSaleRepository struct {
	mock.Mock
}

func (m *MockSaleRepository) FindByID(ctx context.Context, id uuid.UUID) (*realestate.Sale, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*realestate.Sale), args.Error(1)
}

func (m *MockSaleRepository) FindAll(ctx context.Context) ([]realestate.Sale, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]realestate.Sale), args.Error(1)
}

func (m *MockSaleRepository) FindByClient(ctx context.Context, clientID uuid.UUID) ([]realestate.Sale, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]realestate.Sale), args.Error(1)
}

func (m *MockSaleRepository) FindByAgent(ctx context.Context, agentID uuid.UUID) ([]realestate.Sale, error) {
	args := m.Called(ctx, agentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]realestate.Sale), args.Error(1)
}

func (m *MockSaleRepository) ExistsByLot(ctx context.Context, lotID uuid.UUID) (bool, error) {
	args := m.Called(ctx, lotID)
	return args.Bool(0), args.Error(1)
}

func (m *MockSaleRepository) SummarizeByAgent(ctx context.Context) ([]realestate.AgentSalesSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]realestate.AgentSalesSummary), args.Error(1)
}

func (m *MockSaleRepository) Create(ctx context.Context, sale *realestate.Sale) error {
	return m.Called(ctx, sale).Error(0)
}

func (m *MockSaleRepository) UpdateNotes(ctx context.Context, id uuid.UUID, notes string) error {
	return m.Called(ctx, id, notes).Error(0)
}

func (m *MockSaleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type MockSalesMetrics struct {
	mock.Mock
}

func (m *MockSalesMetrics) SaleRegistered(paymentMethod string) { m.Called(paymentMethod) }
func (m *MockSalesMetrics) SaleCancelled()                      { m.Called() }
func (m *MockSalesMetrics) SaleRejected(reason string)          { m.Called(reason) }

type repoMocks struct {
	agents  *MockAgentRepository
	clients *MockClientRepository
	lots    *MockLotRepository
	sales   *MockSaleRepository
}

func newRepoMocks() *repoMocks {
	return &repoMocks{
		agents:  new(MockAgentRepository),
		clients: new(MockClientRepository),
		lots:    new(MockLotRepository),
		sales:   new(MockSaleRepository),
	}
}

func (r *repoMocks) uow() *NoOpUnitOfWork {
	return NewNoOpUnitOfWork(r.agents, r.clients, r.lots, r.sales)
}

func (r *repoMocks) assertExpectations(t mock.TestingT) {
	r.agents.AssertExpectations(t)
	r.clients.AssertExpectations(t)
	r.lots.AssertExpectations(t)
	r.sales.AssertExpectations(t)
}

var (
	_ realestate.AgentRepository  = (*MockAgentRepository)(nil)
	_ realestate.ClientRepository = (*MockClientRepository)(nil)
	_ realestate.LotRepository    = (*MockLotRepository)(nil)
	_ realestate.SaleRepository   = (*MockSaleRepository)(nil)
)
