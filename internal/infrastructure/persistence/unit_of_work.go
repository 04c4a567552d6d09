package persistence

import (
	"context"

	apprealestate "github.com/inmobiliaria/backend/internal/application/realestate"
	"github.com/inmobiliaria/backend/internal/domain/realestate"
	"gorm.io/gorm"
)

// GormUnitOfWork implements UnitOfWork using GORM transactions.
// Every repository handed to fn shares the same transaction.
type GormUnitOfWork struct {
	db *gorm.DB
}

// NewGormUnitOfWork creates a new GormUnitOfWork
func NewGormUnitOfWork(db *gorm.DB) *GormUnitOfWork {
	return &GormUnitOfWork{db: db}
}

// Execute runs fn within a database transaction.
// If fn returns an error, the transaction is rolled back; otherwise it is committed.
func (u *GormUnitOfWork) Execute(ctx context.Context, fn func(repos apprealestate.Repositories) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormRepositories{tx: tx})
	})
}

// gormRepositories provides the repositories bound to one transaction
type gormRepositories struct {
	tx *gorm.DB
}

func (r *gormRepositories) Agents() realestate.AgentRepository {
	return NewGormAgentRepository(r.tx)
}

func (r *gormRepositories) Clients() realestate.ClientRepository {
	return NewGormClientRepository(r.tx)
}

func (r *gormRepositories) Lots() realestate.LotRepository {
	return NewGormLotRepository(r.tx)
}

func (r *gormRepositories) Sales() realestate.SaleRepository {
	return NewGormSaleRepository(r.tx)
}

var (
	_ apprealestate.UnitOfWork   = (*GormUnitOfWork)(nil)
	_ apprealestate.Repositories = (*gormRepositories)(nil)
)
