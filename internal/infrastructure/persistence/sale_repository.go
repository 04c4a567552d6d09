package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/inmobiliaria/backend/internal/domain/realestate"
	"github.com/inmobiliaria/backend/internal/domain/shared"
	"github.com/inmobiliaria/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormSaleRepository implements SaleRepository using GORM
type GormSaleRepository struct {
	db *gorm.DB
}

// NewGormSaleRepository creates a new GormSaleRepository
func NewGormSaleRepository(db *gorm.DB) *GormSaleRepository {
	return &GormSaleRepository{db: db}
}

// FindByID finds a sale by its ID
func (r *GormSaleRepository) FindByID(ctx context.Context, id uuid.UUID) (*realestate.Sale, error) {
	var model models.SaleModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err, "sale", id)
	}
	return model.ToDomain(), nil
}

// FindAll returns every sale, newest first
func (r *GormSaleRepository) FindAll(ctx context.Context) ([]realestate.Sale, error) {
	return r.find(r.db.WithContext(ctx))
}

// FindByClient returns a client's sales, newest first
func (r *GormSaleRepository) FindByClient(ctx context.Context, clientID uuid.UUID) ([]realestate.Sale, error) {
	return r.find(r.db.WithContext(ctx).Where("client_id = ?", clientID))
}

// FindByAgent returns an agent's sales, newest first
func (r *GormSaleRepository) FindByAgent(ctx context.Context, agentID uuid.UUID) ([]realestate.Sale, error) {
	return r.find(r.db.WithContext(ctx).Where("agent_id = ?", agentID))
}

func (r *GormSaleRepository) find(query *gorm.DB) ([]realestate.Sale, error) {
	var rows []models.SaleModel
	if err := query.Order("sale_date DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	sales := make([]realestate.Sale, len(rows))
	for i := range rows {
		sales[i] = *rows[i].ToDomain()
	}
	return sales, nil
}

// ExistsByLot reports whether a sale references the lot
func (r *GormSaleRepository) ExistsByLot(ctx context.Context, lotID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.SaleModel{}).
		Where("lot_id = ?", lotID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

type agentSalesRow struct {
	AgentID     uuid.UUID
	FirstName   string
	LastName    string
	SalesCount  int64
	TotalAmount decimal.Decimal
}

// SummarizeByAgent groups sales by agent with count and sum of final prices,
// largest total first. Agents without sales are not listed.
func (r *GormSaleRepository) SummarizeByAgent(ctx context.Context) ([]realestate.AgentSalesSummary, error) {
	var rows []agentSalesRow
	err := r.db.WithContext(ctx).
		Table("sales AS s").
		Select("s.agent_id AS agent_id, a.first_name AS first_name, a.last_name AS last_name, " +
			"COUNT(s.id) AS sales_count, COALESCE(SUM(s.final_price), 0) AS total_amount").
		Joins("JOIN agents AS a ON a.id = s.agent_id").
		Group("s.agent_id, a.first_name, a.last_name").
		Order("total_amount DESC, last_name ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]realestate.AgentSalesSummary, len(rows))
	for i, row := range rows {
		out[i] = realestate.AgentSalesSummary{
			AgentID:     row.AgentID,
			FirstName:   row.FirstName,
			LastName:    row.LastName,
			SalesCount:  row.SalesCount,
			TotalAmount: row.TotalAmount.Round(2),
		}
	}
	return out, nil
}

// Create inserts a new sale. A missing client, lot or agent violates a
// foreign key and is reported as a conflict.
func (r *GormSaleRepository) Create(ctx context.Context, sale *realestate.Sale) error {
	err := r.db.WithContext(ctx).
		Omit(clause.Associations).
		Create(models.SaleModelFromDomain(sale)).Error
	return translateError(err, "sale", sale.ID)
}

// UpdateNotes replaces the notes of a sale
func (r *GormSaleRepository) UpdateNotes(ctx context.Context, id uuid.UUID, notes string) error {
	result := r.db.WithContext(ctx).
		Model(&models.SaleModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"notes":      notes,
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewNotFoundError("sale", id)
	}
	return nil
}

// Delete removes a sale
func (r *GormSaleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.SaleModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewNotFoundError("sale", id)
	}
	return nil
}

var _ realestate.SaleRepository = (*GormSaleRepository)(nil)
