package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/inmobiliaria/backend/internal/domain/realestate"
	"github.com/inmobiliaria/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens a private in-memory sqlite database with foreign keys on
// and the schema migrated.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:?_foreign_keys=on"), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// Every connection to :memory: is a separate database.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(models.AllModels()...))
	return db
}

// newMockGormDB returns a postgres-dialect GORM handle backed by sqlmock
func newMockGormDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	require.NoError(t, err)

	return gormDB, mock, mockDB
}

func seedAgent(t *testing.T, db *gorm.DB, identity, firstName, lastName string) *realestate.Agent {
	t.Helper()
	agent, err := realestate.NewAgent(identity, firstName, lastName, identity+"@inmo.co", "3001234567")
	require.NoError(t, err)
	require.NoError(t, NewGormAgentRepository(db).Create(context.Background(), agent))
	return agent
}

func seedClient(t *testing.T, db *gorm.DB, identity, firstName, lastName string) *realestate.Client {
	t.Helper()
	client, err := realestate.NewClient(identity, firstName, lastName, identity+"@mail.co", "", "Calle 10 # 43-12")
	require.NoError(t, err)
	require.NoError(t, NewGormClientRepository(db).Create(context.Background(), client))
	return client
}

func seedLot(t *testing.T, db *gorm.DB, reference, municipality string, price int64, status realestate.LotStatus) *realestate.Lot {
	t.Helper()
	lot, err := realestate.NewLot(reference, realestate.LotDetails{
		Address:      "Km 4 via Llanogrande",
		Municipality: municipality,
		Department:   "Antioquia",
		Area:         decimal.NewFromInt(1200),
		Price:        decimal.NewFromInt(price),
	}, status)
	require.NoError(t, err)
	require.NoError(t, NewGormLotRepository(db).Create(context.Background(), lot))
	return lot
}

func lotIDs(lots []realestate.Lot) []uuid.UUID {
	ids := make([]uuid.UUID, len(lots))
	for i := range lots {
		ids[i] = lots[i].ID
	}
	return ids
}
