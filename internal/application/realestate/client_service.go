package realestate

import (
	"context"

	"github.com/google/uuid"
	"github.com/inmobiliaria/backend/internal/domain/realestate"
	"go.uber.org/zap"
)

// ClientService handles client registration and maintenance
type ClientService struct {
	uow    UnitOfWork
	logger *zap.Logger
}

// NewClientService creates a new ClientService
func NewClientService(uow UnitOfWork, logger *zap.Logger) *ClientService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ClientService{uow: uow, logger: logger.Named("clients")}
}

// Create registers a client after checking identity number and email are unused
func (s *ClientService) Create(ctx context.Context, req CreateClientRequest) (*ClientResponse, error) {
	client, err := realestate.NewClient(req.IdentityNumber, req.FirstName, req.LastName, req.Email, req.Phone, req.Address)
	if err != nil {
		return nil, err
	}

	err = s.uow.Execute(ctx, func(repos Repositories) error {
		guard := NewUniquenessGuard(repos)
		if err := guard.AssertUnique(ctx, realestate.EntityClient, realestate.KeyIdentityNumber, client.IdentityNumber); err != nil {
			return err
		}
		if err := guard.AssertUnique(ctx, realestate.EntityClient, realestate.KeyEmail, client.Email); err != nil {
			return err
		}
		return repos.Clients().Create(ctx, client)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("client registered", zap.String("client_id", client.ID.String()))
	resp := ToClientResponse(client)
	return &resp, nil
}

// Update replaces a client's name, contact and address fields
func (s *ClientService) Update(ctx context.Context, id uuid.UUID, req UpdateClientRequest) (*ClientResponse, error) {
	var client *realestate.Client
	err := s.uow.Execute(ctx, func(repos Repositories) error {
		var err error
		client, err = repos.Clients().FindByID(ctx, id)
		if err != nil {
			return err
		}
		previousEmail := client.Email
		if err := client.Update(req.FirstName, req.LastName, req.Email, req.Phone, req.Address); err != nil {
			return err
		}
		if client.Email != previousEmail {
			guard := NewUniquenessGuard(repos)
			if err := guard.AssertUnique(ctx, realestate.EntityClient, realestate.KeyEmail, client.Email); err != nil {
				return err
			}
		}
		return repos.Clients().Update(ctx, client)
	})
	if err != nil {
		return nil, err
	}
	resp := ToClientResponse(client)
	return &resp, nil
}

// Deactivate soft-deletes a client
func (s *ClientService) Deactivate(ctx context.Context, id uuid.UUID) error {
	err := s.uow.Execute(ctx, func(repos Repositories) error {
		client, err := repos.Clients().FindByID(ctx, id)
		if err != nil {
			return err
		}
		client.Deactivate()
		return repos.Clients().Update(ctx, client)
	})
	if err != nil {
		return err
	}
	s.logger.Info("client deactivated", zap.String("client_id", id.String()))
	return nil
}
