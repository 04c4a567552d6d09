package persistence

import (
	"context"
	"slices"

	"github.com/inmobiliaria/backend/internal/domain/realestate"
	"github.com/inmobiliaria/backend/internal/domain/shared"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// existsByNaturalKey counts rows of model whose key column equals value.
// Only keys listed in allowed reach the query; the column name is never
// taken from input.
func existsByNaturalKey(ctx context.Context, db *gorm.DB, model any, key realestate.NaturalKey, value string, allowed ...realestate.NaturalKey) (bool, error) {
	if !slices.Contains(allowed, key) {
		return false, shared.NewValidationError("unsupported natural key %s", key)
	}
	var count int64
	err := db.WithContext(ctx).
		Model(model).
		Where(clause.Eq{Column: clause.Column{Name: string(key)}, Value: value}).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
