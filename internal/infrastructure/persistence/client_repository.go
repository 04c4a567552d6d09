package persistence

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/inmobiliaria/backend/internal/domain/realestate"
	"github.com/inmobiliaria/backend/internal/domain/shared"
	"github.com/inmobiliaria/backend/internal/infrastructure/persistence/models"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gorm.io/gorm"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// GormClientRepository implements ClientRepository using GORM
type GormClientRepository struct {
	db *gorm.DB
}

// NewGormClientRepository creates a new GormClientRepository
func NewGormClientRepository(db *gorm.DB) *GormClientRepository {
	return &GormClientRepository{db: db}
}

// ExistsByNaturalKey reports whether a client, active or not, holds value in key
func (r *GormClientRepository) ExistsByNaturalKey(ctx context.Context, key realestate.NaturalKey, value string) (bool, error) {
	return existsByNaturalKey(ctx, r.db, &models.ClientModel{}, key, value,
		realestate.KeyIdentityNumber, realestate.KeyEmail)
}

// FindByID finds a client by its ID
func (r *GormClientRepository) FindByID(ctx context.Context, id uuid.UUID) (*realestate.Client, error) {
	var model models.ClientModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err, "client", id)
	}
	return model.ToDomain(), nil
}

// FindActive returns active clients sorted by last name, then first name
func (r *GormClientRepository) FindActive(ctx context.Context) ([]realestate.Client, error) {
	return r.find(r.db.WithContext(ctx).Where("active = ?", true))
}

// SearchActiveByName matches text as a substring of first or last name, ignoring case.
// LIKE wildcards in text are matched literally.
//
// SQLite's LOWER only folds ASCII, so on sqlite the names are folded and
// matched here instead of in SQL.
func (r *GormClientRepository) SearchActiveByName(ctx context.Context, text string) ([]realestate.Client, error) {
	folded := cases.Lower(language.Und).String(text)
	if r.db.Dialector.Name() == "sqlite" {
		return r.searchFolded(ctx, folded)
	}

	pattern := "%" + likeEscaper.Replace(folded) + "%"
	return r.find(r.db.WithContext(ctx).
		Where("active = ?", true).
		Where(`(LOWER(first_name) LIKE ? ESCAPE '\' OR LOWER(last_name) LIKE ? ESCAPE '\')`, pattern, pattern))
}

func (r *GormClientRepository) searchFolded(ctx context.Context, folded string) ([]realestate.Client, error) {
	active, err := r.FindActive(ctx)
	if err != nil {
		return nil, err
	}
	lower := cases.Lower(language.Und)
	matches := make([]realestate.Client, 0, len(active))
	for _, client := range active {
		if strings.Contains(lower.String(client.FirstName), folded) ||
			strings.Contains(lower.String(client.LastName), folded) {
			matches = append(matches, client)
		}
	}
	return matches, nil
}

func (r *GormClientRepository) find(query *gorm.DB) ([]realestate.Client, error) {
	var rows []models.ClientModel
	if err := query.Order("last_name ASC, first_name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	clients := make([]realestate.Client, len(rows))
	for i := range rows {
		clients[i] = *rows[i].ToDomain()
	}
	return clients, nil
}

// Create inserts a new client
func (r *GormClientRepository) Create(ctx context.Context, client *realestate.Client) error {
	err := r.db.WithContext(ctx).Create(models.ClientModelFromDomain(client)).Error
	return translateError(err, "client", client.ID)
}

// Update writes the mutable fields of a client
func (r *GormClientRepository) Update(ctx context.Context, client *realestate.Client) error {
	result := r.db.WithContext(ctx).
		Model(&models.ClientModel{}).
		Where("id = ?", client.ID).
		Updates(map[string]any{
			"first_name": client.FirstName,
			"last_name":  client.LastName,
			"email":      client.Email,
			"phone":      client.Phone,
			"address":    client.Address,
			"active":     client.Active,
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return translateError(result.Error, "client", client.ID)
	}
	if result.RowsAffected == 0 {
		return shared.NewNotFoundError("client", client.ID)
	}
	return nil
}

var _ realestate.ClientRepository = (*GormClientRepository)(nil)
