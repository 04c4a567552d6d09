package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/inmobiliaria/backend/internal/domain/realestate"
	"github.com/inmobiliaria/backend/internal/domain/shared"
	"github.com/inmobiliaria/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormAgentRepository implements AgentRepository using GORM
type GormAgentRepository struct {
	db *gorm.DB
}

// NewGormAgentRepository creates a new GormAgentRepository
func NewGormAgentRepository(db *gorm.DB) *GormAgentRepository {
	return &GormAgentRepository{db: db}
}

// ExistsByNaturalKey reports whether an agent, active or not, holds value in key
func (r *GormAgentRepository) ExistsByNaturalKey(ctx context.Context, key realestate.NaturalKey, value string) (bool, error) {
	return existsByNaturalKey(ctx, r.db, &models.AgentModel{}, key, value,
		realestate.KeyIdentityNumber, realestate.KeyEmail)
}

// FindByID finds an agent by its ID
func (r *GormAgentRepository) FindByID(ctx context.Context, id uuid.UUID) (*realestate.Agent, error) {
	var model models.AgentModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err, "agent", id)
	}
	return model.ToDomain(), nil
}

// FindActive returns active agents sorted by last name
func (r *GormAgentRepository) FindActive(ctx context.Context) ([]realestate.Agent, error) {
	var rows []models.AgentModel
	if err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("last_name ASC, first_name ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	agents := make([]realestate.Agent, len(rows))
	for i := range rows {
		agents[i] = *rows[i].ToDomain()
	}
	return agents, nil
}

// Create inserts a new agent
func (r *GormAgentRepository) Create(ctx context.Context, agent *realestate.Agent) error {
	err := r.db.WithContext(ctx).Create(models.AgentModelFromDomain(agent)).Error
	return translateError(err, "agent", agent.ID)
}

// Update writes the mutable fields of an agent
func (r *GormAgentRepository) Update(ctx context.Context, agent *realestate.Agent) error {
	result := r.db.WithContext(ctx).
		Model(&models.AgentModel{}).
		Where("id = ?", agent.ID).
		Updates(map[string]any{
			"first_name": agent.FirstName,
			"last_name":  agent.LastName,
			"email":      agent.Email,
			"phone":      agent.Phone,
			"active":     agent.Active,
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return translateError(result.Error, "agent", agent.ID)
	}
	if result.RowsAffected == 0 {
		return shared.NewNotFoundError("agent", agent.ID)
	}
	return nil
}

var _ realestate.AgentRepository = (*GormAgentRepository)(nil)
