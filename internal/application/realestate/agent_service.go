package realestate

import (
	"context"

	"github.com/google/uuid"
	"github.com/inmobiliaria/backend/internal/domain/realestate"
	"go.uber.org/zap"
)

// AgentService handles agent registration and maintenance
type AgentService struct {
	uow    UnitOfWork
	logger *zap.Logger
}

// NewAgentService creates a new AgentService
func NewAgentService(uow UnitOfWork, logger *zap.Logger) *AgentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AgentService{uow: uow, logger: logger.Named("agents")}
}

// Create registers an agent after checking identity number and email are unused
func (s *AgentService) Create(ctx context.Context, req CreateAgentRequest) (*AgentResponse, error) {
	agent, err := realestate.NewAgent(req.IdentityNumber, req.FirstName, req.LastName, req.Email, req.Phone)
	if err != nil {
		return nil, err
	}

	err = s.uow.Execute(ctx, func(repos Repositories) error {
		guard := NewUniquenessGuard(repos)
		if err := guard.AssertUnique(ctx, realestate.EntityAgent, realestate.KeyIdentityNumber, agent.IdentityNumber); err != nil {
			return err
		}
		if err := guard.AssertUnique(ctx, realestate.EntityAgent, realestate.KeyEmail, agent.Email); err != nil {
			return err
		}
		return repos.Agents().Create(ctx, agent)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("agent registered", zap.String("agent_id", agent.ID.String()))
	resp := ToAgentResponse(agent)
	return &resp, nil
}

// Update replaces an agent's name and contact fields
func (s *AgentService) Update(ctx context.Context, id uuid.UUID, req UpdateAgentRequest) (*AgentResponse, error) {
	var agent *realestate.Agent
	err := s.uow.Execute(ctx, func(repos Repositories) error {
		var err error
		agent, err = repos.Agents().FindByID(ctx, id)
		if err != nil {
			return err
		}
		previousEmail := agent.Email
		if err := agent.Update(req.FirstName, req.LastName, req.Email, req.Phone); err != nil {
			return err
		}
		if agent.Email != previousEmail {
			guard := NewUniquenessGuard(repos)
			if err := guard.AssertUnique(ctx, realestate.EntityAgent, realestate.KeyEmail, agent.Email); err != nil {
				return err
			}
		}
		return repos.Agents().Update(ctx, agent)
	})
	if err != nil {
		return nil, err
	}
	resp := ToAgentResponse(agent)
	return &resp, nil
}

// Deactivate soft-deletes an agent
func (s *AgentService) Deactivate(ctx context.Context, id uuid.UUID) error {
	err := s.uow.Execute(ctx, func(repos Repositories) error {
		agent, err := repos.Agents().FindByID(ctx, id)
		if err != nil {
			return err
		}
		agent.Deactivate()
		return repos.Agents().Update(ctx, agent)
	})
	if err != nil {
		return err
	}
	s.logger.Info("agent deactivated", zap.String("agent_id", id.String()))
	return nil
}
