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

// GormLotRepository implements LotRepository using GORM
type GormLotRepository struct {
	db *gorm.DB
}

// NewGormLotRepository creates a new GormLotRepository
func NewGormLotRepository(db *gorm.DB) *GormLotRepository {
	return &GormLotRepository{db: db}
}

// ExistsByNaturalKey reports whether a lot holds value in key
func (r *GormLotRepository) ExistsByNaturalKey(ctx context.Context, key realestate.NaturalKey, value string) (bool, error) {
	return existsByNaturalKey(ctx, r.db, &models.LotModel{}, key, value, realestate.KeyReference)
}

// FindByID finds a lot by its ID
func (r *GormLotRepository) FindByID(ctx context.Context, id uuid.UUID) (*realestate.Lot, error) {
	var model models.LotModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err, "lot", id)
	}
	return model.ToDomain(), nil
}

// FindByIDForUpdate loads a lot with SELECT ... FOR UPDATE. Concurrent
// transactions asking for the same lot wait until this one ends.
func (r *GormLotRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*realestate.Lot, error) {
	var model models.LotModel
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err, "lot", id)
	}
	return model.ToDomain(), nil
}

// FindAll returns every lot, newest registration first
func (r *GormLotRepository) FindAll(ctx context.Context) ([]realestate.Lot, error) {
	return r.find(r.db.WithContext(ctx).Order("registration_date DESC"))
}

// FindByStatus returns lots in status, cheapest first
func (r *GormLotRepository) FindByStatus(ctx context.Context, status realestate.LotStatus) ([]realestate.Lot, error) {
	return r.find(r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("price ASC"))
}

// FindAvailableByPriceRange returns AVAILABLE lots with min <= price <= max, cheapest first
func (r *GormLotRepository) FindAvailableByPriceRange(ctx context.Context, min, max decimal.Decimal) ([]realestate.Lot, error) {
	return r.find(r.db.WithContext(ctx).
		Where("status = ? AND price >= ? AND price <= ?", realestate.LotStatusAvailable, min, max).
		Order("price ASC"))
}

// FindByMunicipality returns the lots of a municipality, cheapest first
func (r *GormLotRepository) FindByMunicipality(ctx context.Context, municipality string, status *realestate.LotStatus) ([]realestate.Lot, error) {
	query := r.db.WithContext(ctx).Where("municipality = ?", municipality)
	if status != nil {
		query = query.Where("status = ?", *status)
	}
	return r.find(query.Order("price ASC"))
}

func (r *GormLotRepository) find(query *gorm.DB) ([]realestate.Lot, error) {
	var rows []models.LotModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	lots := make([]realestate.Lot, len(rows))
	for i := range rows {
		lots[i] = *rows[i].ToDomain()
	}
	return lots, nil
}

// Create inserts a new lot
func (r *GormLotRepository) Create(ctx context.Context, lot *realestate.Lot) error {
	err := r.db.WithContext(ctx).Create(models.LotModelFromDomain(lot)).Error
	return translateError(err, "lot", lot.ID)
}

// Update writes the descriptive fields of a lot. Status and reference are
// left alone; status changes go through UpdateStatus or CompareAndSwapStatus.
func (r *GormLotRepository) Update(ctx context.Context, lot *realestate.Lot) error {
	result := r.db.WithContext(ctx).
		Model(&models.LotModel{}).
		Where("id = ?", lot.ID).
		Updates(map[string]any{
			"address":      lot.Address,
			"municipality": lot.Municipality,
			"department":   lot.Department,
			"area":         lot.Area,
			"price":        lot.Price,
			"description":  lot.Description,
			"updated_at":   time.Now().UTC(),
		})
	if result.Error != nil {
		return translateError(result.Error, "lot", lot.ID)
	}
	if result.RowsAffected == 0 {
		return shared.NewNotFoundError("lot", lot.ID)
	}
	return nil
}

// UpdateStatus overwrites the status of a lot unconditionally
func (r *GormLotRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status realestate.LotStatus) error {
	result := r.db.WithContext(ctx).
		Model(&models.LotModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":     status,
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewNotFoundError("lot", id)
	}
	return nil
}

// CompareAndSwapStatus sets the status to next only while it still equals
// expected. It reports false when another writer changed the status first.
func (r *GormLotRepository) CompareAndSwapStatus(ctx context.Context, id uuid.UUID, expected, next realestate.LotStatus) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.LotModel{}).
		Where("id = ? AND status = ?", id, expected).
		Updates(map[string]any{
			"status":     next,
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

// Delete removes a lot
func (r *GormLotRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.LotModel{}, "id = ?", id)
	if result.Error != nil {
		return translateError(result.Error, "lot", id)
	}
	if result.RowsAffected == 0 {
		return shared.NewNotFoundError("lot", id)
	}
	return nil
}

var _ realestate.LotRepository = (*GormLotRepository)(nil)
