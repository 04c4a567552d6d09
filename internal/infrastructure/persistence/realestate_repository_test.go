package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/inmobiliaria/backend/internal/domain/realestate"
	"github.com/inmobiliaria/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormAgentRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormAgentRepository(db)
	ctx := context.Background()

	zapata := seedAgent(t, db, "71000001", "Andrés", "Zapata")
	arango := seedAgent(t, db, "71000002", "Marta", "Arango")
	retired := seedAgent(t, db, "71000003", "Jorge", "Bedoya")
	retired.Deactivate()
	require.NoError(t, repo.Update(ctx, retired))

	t.Run("FindByID returns inactive agents", func(t *testing.T) {
		found, err := repo.FindByID(ctx, retired.ID)
		require.NoError(t, err)
		assert.False(t, found.Active)
		assert.Equal(t, "71000003", found.IdentityNumber)
	})

	t.Run("FindByID not found", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("FindActive is sorted by last name and skips inactive", func(t *testing.T) {
		agents, err := repo.FindActive(ctx)
		require.NoError(t, err)
		require.Len(t, agents, 2)
		assert.Equal(t, arango.ID, agents[0].ID)
		assert.Equal(t, zapata.ID, agents[1].ID)
	})

	t.Run("natural keys stay taken after deactivation", func(t *testing.T) {
		exists, err := repo.ExistsByNaturalKey(ctx, realestate.KeyIdentityNumber, "71000003")
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = repo.ExistsByNaturalKey(ctx, realestate.KeyEmail, "71000003@inmo.co")
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = repo.ExistsByNaturalKey(ctx, realestate.KeyEmail, "nobody@inmo.co")
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("natural key outside the whitelist is rejected", func(t *testing.T) {
		_, err := repo.ExistsByNaturalKey(ctx, realestate.KeyReference, "x")
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})

	t.Run("duplicate identity number hits the unique index", func(t *testing.T) {
		dup, err := realestate.NewAgent("71000001", "Otro", "Agente", "otro@inmo.co", "")
		require.NoError(t, err)
		err = repo.Create(ctx, dup)
		assert.ErrorIs(t, err, shared.ErrAlreadyExists)
	})

	t.Run("Update of a missing agent", func(t *testing.T) {
		ghost, err := realestate.NewAgent("99", "No", "Existe", "ghost@inmo.co", "")
		require.NoError(t, err)
		assert.ErrorIs(t, repo.Update(ctx, ghost), shared.ErrNotFound)
	})
}

func TestGormClientRepository_SearchActiveByName(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormClientRepository(db)
	ctx := context.Background()

	ana := seedClient(t, db, "1001", "Ana", "Restrepo")
	seedClient(t, db, "1002", "Juliana", "Mejia")
	seedClient(t, db, "1003", "Pedro", "Ospina")
	literal := seedClient(t, db, "1004", "Luz_Mar", "Ochoa")
	inactive := seedClient(t, db, "1005", "Mariana", "Vargas")
	inactive.Deactivate()
	require.NoError(t, repo.Update(ctx, inactive))

	tests := []struct {
		name string
		text string
		want int
	}{
		{"substring of first name, any case", "ANA", 2},
		{"substring of last name", "trep", 1},
		{"inactive clients are excluded", "mariana", 0},
		{"underscore is matched literally", "z_m", 1},
		{"percent is matched literally", "%", 0},
		{"no match", "zzz", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clients, err := repo.SearchActiveByName(ctx, tt.text)
			require.NoError(t, err)
			assert.Len(t, clients, tt.want)
		})
	}

	t.Run("results are sorted by last name", func(t *testing.T) {
		clients, err := repo.SearchActiveByName(ctx, "an")
		require.NoError(t, err)
		require.Len(t, clients, 2)
		assert.Equal(t, "Mejia", clients[0].LastName)
		assert.Equal(t, ana.ID, clients[1].ID)
	})

	t.Run("literal underscore finds the right client", func(t *testing.T) {
		clients, err := repo.SearchActiveByName(ctx, "z_m")
		require.NoError(t, err)
		require.Len(t, clients, 1)
		assert.Equal(t, literal.ID, clients[0].ID)
	})

	t.Run("non-ASCII letters match in any case", func(t *testing.T) {
		perez := seedClient(t, db, "1006", "CARLOS", "PÉREZ")

		clients, err := repo.SearchActiveByName(ctx, "pérez")
		require.NoError(t, err)
		require.Len(t, clients, 1)
		assert.Equal(t, perez.ID, clients[0].ID)
	})
}

func TestGormClientRepository_FindActiveAndUpdate(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormClientRepository(db)
	ctx := context.Background()

	client := seedClient(t, db, "2001", "Sofia", "Cardona")
	require.NoError(t, client.Update("Sofía", "Cardona Ruiz", "sofia@mail.co", "3100000000", "Cra 70 # 1-20"))
	require.NoError(t, repo.Update(ctx, client))

	found, err := repo.FindByID(ctx, client.ID)
	require.NoError(t, err)
	assert.Equal(t, "Sofía", found.FirstName)
	assert.Equal(t, "Cardona Ruiz", found.LastName)
	assert.Equal(t, "sofia@mail.co", found.Email)
	assert.Equal(t, "Cra 70 # 1-20", found.Address)

	exists, err := repo.ExistsByNaturalKey(ctx, realestate.KeyEmail, "sofia@mail.co")
	require.NoError(t, err)
	assert.True(t, exists)

	active, err := repo.FindActive(ctx)
	require.NoError(t, err)
	assert.Len(t, active, 1)
}

func TestGormLotRepository_Queries(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormLotRepository(db)
	ctx := context.Background()

	cheap := seedLot(t, db, "RN-001", "Rionegro", 50000000, realestate.LotStatusAvailable)
	mid := seedLot(t, db, "RN-002", "Rionegro", 90000000, realestate.LotStatusAvailable)
	reserved := seedLot(t, db, "RN-003", "Rionegro", 70000000, realestate.LotStatusReserved)
	pricey := seedLot(t, db, "GU-001", "Guarne", 150000000, realestate.LotStatusAvailable)
	sold := seedLot(t, db, "GU-002", "Guarne", 60000000, realestate.LotStatusSold)

	t.Run("FindByID round-trips decimals", func(t *testing.T) {
		found, err := repo.FindByID(ctx, cheap.ID)
		require.NoError(t, err)
		assert.Equal(t, "RN-001", found.Reference)
		assert.True(t, found.Price.Equal(decimal.NewFromInt(50000000)))
		assert.True(t, found.Area.Equal(decimal.NewFromInt(1200)))
		assert.Equal(t, realestate.LotStatusAvailable, found.Status)
	})

	t.Run("FindByIDForUpdate works on sqlite", func(t *testing.T) {
		found, err := repo.FindByIDForUpdate(ctx, reserved.ID)
		require.NoError(t, err)
		assert.Equal(t, realestate.LotStatusReserved, found.Status)

		_, err = repo.FindByIDForUpdate(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("FindAvailableByPriceRange is inclusive and sorted", func(t *testing.T) {
		lots, err := repo.FindAvailableByPriceRange(ctx, decimal.NewFromInt(50000000), decimal.NewFromInt(150000000))
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{cheap.ID, mid.ID, pricey.ID}, lotIDs(lots))
	})

	t.Run("FindAvailableByPriceRange with a single price", func(t *testing.T) {
		lots, err := repo.FindAvailableByPriceRange(ctx, decimal.NewFromInt(90000000), decimal.NewFromInt(90000000))
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{mid.ID}, lotIDs(lots))
	})

	t.Run("FindByStatus", func(t *testing.T) {
		lots, err := repo.FindByStatus(ctx, realestate.LotStatusSold)
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{sold.ID}, lotIDs(lots))
	})

	t.Run("FindByMunicipality with and without status", func(t *testing.T) {
		lots, err := repo.FindByMunicipality(ctx, "Rionegro", nil)
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{cheap.ID, reserved.ID, mid.ID}, lotIDs(lots))

		status := realestate.LotStatusAvailable
		lots, err = repo.FindByMunicipality(ctx, "Guarne", &status)
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{pricey.ID}, lotIDs(lots))
	})

	t.Run("reference is unique", func(t *testing.T) {
		exists, err := repo.ExistsByNaturalKey(ctx, realestate.KeyReference, "GU-001")
		require.NoError(t, err)
		assert.True(t, exists)

		dup, err := realestate.NewLot("GU-001", realestate.LotDetails{
			Address: "x", Municipality: "Guarne", Department: "Antioquia",
			Area: decimal.NewFromInt(1), Price: decimal.NewFromInt(1),
		}, "")
		require.NoError(t, err)
		assert.ErrorIs(t, repo.Create(ctx, dup), shared.ErrAlreadyExists)
	})
}

func TestGormLotRepository_FindAllNewestFirst(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormLotRepository(db)
	ctx := context.Background()

	base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	var ids []uuid.UUID
	for i, ref := range []string{"A-1", "A-2", "A-3"} {
		lot, err := realestate.NewLot(ref, realestate.LotDetails{
			Address: "Lote " + ref, Municipality: "Envigado", Department: "Antioquia",
			Area: decimal.NewFromInt(300), Price: decimal.NewFromInt(1000),
		}, "")
		require.NoError(t, err)
		lot.RegistrationDate = base.Add(time.Duration(i) * time.Hour)
		require.NoError(t, repo.Create(ctx, lot))
		ids = append([]uuid.UUID{lot.ID}, ids...)
	}

	lots, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, ids, lotIDs(lots))
}

func TestGormLotRepository_StatusWrites(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormLotRepository(db)
	ctx := context.Background()

	lot := seedLot(t, db, "CAS-1", "Marinilla", 40000000, realestate.LotStatusAvailable)

	t.Run("compare-and-swap succeeds from the expected status", func(t *testing.T) {
		swapped, err := repo.CompareAndSwapStatus(ctx, lot.ID, realestate.LotStatusAvailable, realestate.LotStatusSold)
		require.NoError(t, err)
		assert.True(t, swapped)
	})

	t.Run("compare-and-swap reports a stale expectation", func(t *testing.T) {
		swapped, err := repo.CompareAndSwapStatus(ctx, lot.ID, realestate.LotStatusAvailable, realestate.LotStatusSold)
		require.NoError(t, err)
		assert.False(t, swapped)

		found, err := repo.FindByID(ctx, lot.ID)
		require.NoError(t, err)
		assert.Equal(t, realestate.LotStatusSold, found.Status)
	})

	t.Run("UpdateStatus overwrites unconditionally", func(t *testing.T) {
		require.NoError(t, repo.UpdateStatus(ctx, lot.ID, realestate.LotStatusReserved))
		found, err := repo.FindByID(ctx, lot.ID)
		require.NoError(t, err)
		assert.Equal(t, realestate.LotStatusReserved, found.Status)
	})

	t.Run("UpdateStatus of a missing lot", func(t *testing.T) {
		assert.ErrorIs(t, repo.UpdateStatus(ctx, uuid.New(), realestate.LotStatusSold), shared.ErrNotFound)
	})

	t.Run("Update leaves the status alone", func(t *testing.T) {
		require.NoError(t, lot.Update(realestate.LotDetails{
			Address: "Vereda Gaviria", Municipality: "Marinilla", Department: "Antioquia",
			Area: decimal.RequireFromString("1500.5"), Price: decimal.NewFromInt(45000000),
		}))
		lot.Status = realestate.LotStatusAvailable
		require.NoError(t, repo.Update(ctx, lot))

		found, err := repo.FindByID(ctx, lot.ID)
		require.NoError(t, err)
		assert.Equal(t, "Vereda Gaviria", found.Address)
		assert.True(t, found.Area.Equal(decimal.RequireFromString("1500.5")))
		assert.Equal(t, realestate.LotStatusReserved, found.Status)
	})
}

func TestGormSaleRepository(t *testing.T) {
	db := setupTestDB(t)
	sales := NewGormSaleRepository(db)
	lots := NewGormLotRepository(db)
	ctx := context.Background()

	laura := seedAgent(t, db, "8001", "Laura", "Gómez")
	diego := seedAgent(t, db, "8002", "Diego", "Alzate")
	seedAgent(t, db, "8003", "Sin", "Ventas")
	buyer := seedClient(t, db, "9001", "Carlos", "Pérez")
	other := seedClient(t, db, "9002", "Elena", "Ríos")

	newSale := func(client *realestate.Client, agent *realestate.Agent, ref string, price string, day int) *realestate.Sale {
		t.Helper()
		lot := seedLot(t, db, ref, "La Ceja", 10, realestate.LotStatusSold)
		sale, err := realestate.NewSale(client.ID, lot.ID, agent.ID, decimal.RequireFromString(price), realestate.PaymentMethodCash, "")
		require.NoError(t, err)
		sale.SaleDate = time.Date(2025, 6, day, 12, 0, 0, 0, time.UTC)
		require.NoError(t, sales.Create(ctx, sale))
		return sale
	}

	first := newSale(buyer, laura, "LC-1", "100000000.25", 1)
	second := newSale(other, laura, "LC-2", "50000000.25", 2)
	third := newSale(buyer, diego, "LC-3", "120000000", 3)

	t.Run("FindAll newest first", func(t *testing.T) {
		all, err := sales.FindAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 3)
		assert.Equal(t, third.ID, all[0].ID)
		assert.Equal(t, first.ID, all[2].ID)
	})

	t.Run("FindByClient and FindByAgent", func(t *testing.T) {
		byClient, err := sales.FindByClient(ctx, buyer.ID)
		require.NoError(t, err)
		require.Len(t, byClient, 2)
		assert.Equal(t, third.ID, byClient[0].ID)

		byAgent, err := sales.FindByAgent(ctx, laura.ID)
		require.NoError(t, err)
		require.Len(t, byAgent, 2)
		assert.Equal(t, second.ID, byAgent[0].ID)
	})

	t.Run("SummarizeByAgent orders by total and skips agents without sales", func(t *testing.T) {
		summary, err := sales.SummarizeByAgent(ctx)
		require.NoError(t, err)
		require.Len(t, summary, 2)

		assert.Equal(t, laura.ID, summary[0].AgentID)
		assert.Equal(t, "Gómez", summary[0].LastName)
		assert.Equal(t, int64(2), summary[0].SalesCount)
		assert.Equal(t, "150000000.50", summary[0].TotalAmount.StringFixed(2))

		assert.Equal(t, diego.ID, summary[1].AgentID)
		assert.Equal(t, int64(1), summary[1].SalesCount)
	})

	t.Run("ExistsByLot", func(t *testing.T) {
		exists, err := sales.ExistsByLot(ctx, first.LotID)
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = sales.ExistsByLot(ctx, uuid.New())
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("a second sale of the same lot is a conflict", func(t *testing.T) {
		dup, err := realestate.NewSale(other.ID, first.LotID, diego.ID, decimal.NewFromInt(1), realestate.PaymentMethodCredit, "")
		require.NoError(t, err)
		err = sales.Create(ctx, dup)
		assert.ErrorIs(t, err, shared.ErrConflict)
		assert.Contains(t, err.Error(), first.LotID.String())
	})

	t.Run("a sale referencing a missing client is a conflict", func(t *testing.T) {
		lot := seedLot(t, db, "LC-9", "La Ceja", 10, realestate.LotStatusAvailable)
		orphan, err := realestate.NewSale(uuid.New(), lot.ID, laura.ID, decimal.NewFromInt(1), realestate.PaymentMethodCash, "")
		require.NoError(t, err)
		assert.ErrorIs(t, sales.Create(ctx, orphan), shared.ErrConflict)
	})

	t.Run("a sold lot cannot be deleted while its sale exists", func(t *testing.T) {
		assert.ErrorIs(t, lots.Delete(ctx, first.LotID), shared.ErrConflict)
	})

	t.Run("UpdateNotes", func(t *testing.T) {
		require.NoError(t, sales.UpdateNotes(ctx, first.ID, "escritura firmada"))
		found, err := sales.FindByID(ctx, first.ID)
		require.NoError(t, err)
		assert.Equal(t, "escritura firmada", found.Notes)

		assert.ErrorIs(t, sales.UpdateNotes(ctx, uuid.New(), "x"), shared.ErrNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, sales.Delete(ctx, third.ID))
		_, err := sales.FindByID(ctx, third.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.ErrorIs(t, sales.Delete(ctx, third.ID), shared.ErrNotFound)

		require.NoError(t, lots.Delete(ctx, third.LotID))
	})
}
