package realestate

import (
	"context"

	"github.com/google/uuid"
	"github.com/inmobiliaria/backend/internal/domain/realestate"
	"github.com/inmobiliaria/backend/internal/domain/shared"
	logctx "github.com/inmobiliaria/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// LotService handles lot registration, updates, status patches and deletion
type LotService struct {
	uow          UnitOfWork
	stateMachine realestate.LotStateMachine
	logger       *zap.Logger
}

// NewLotService creates a new LotService
func NewLotService(uow UnitOfWork, logger *zap.Logger) *LotService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LotService{
		uow:          uow,
		stateMachine: realestate.NewLotStateMachine(),
		logger:       logger.Named("lots"),
	}
}

// Create registers a lot after checking its reference is unused
func (s *LotService) Create(ctx context.Context, req CreateLotRequest) (*LotResponse, error) {
	var status realestate.LotStatus
	if req.Status != "" {
		parsed, err := realestate.ParseLotStatus(req.Status)
		if err != nil {
			return nil, err
		}
		status = parsed
	}

	lot, err := realestate.NewLot(req.Reference, realestate.LotDetails{
		Address:      req.Address,
		Municipality: req.Municipality,
		Department:   req.Department,
		Area:         req.Area,
		Price:        req.Price,
		Description:  req.Description,
	}, status)
	if err != nil {
		return nil, err
	}

	err = s.uow.Execute(ctx, func(repos Repositories) error {
		guard := NewUniquenessGuard(repos)
		if err := guard.AssertUnique(ctx, realestate.EntityLot, realestate.KeyReference, lot.Reference); err != nil {
			return err
		}
		return repos.Lots().Create(ctx, lot)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("lot registered", zap.String("lot_id", lot.ID.String()), zap.String("reference", lot.Reference))
	resp := ToLotResponse(lot)
	return &resp, nil
}

// Update replaces the descriptive fields of a lot and, when given, overwrites its status
func (s *LotService) Update(ctx context.Context, id uuid.UUID, req UpdateLotRequest) (*LotResponse, error) {
	ctx = logctx.WithEntityID(ctx, "lot_id", id.String())
	var target *realestate.LotStatus
	if req.Status != nil {
		parsed, err := realestate.ParseLotStatus(*req.Status)
		if err != nil {
			return nil, err
		}
		target = &parsed
	}

	var lot *realestate.Lot
	err := s.uow.Execute(ctx, func(repos Repositories) error {
		var err error
		lot, err = repos.Lots().FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		err = lot.Update(realestate.LotDetails{
			Address:      req.Address,
			Municipality: req.Municipality,
			Department:   req.Department,
			Area:         req.Area,
			Price:        req.Price,
			Description:  req.Description,
		})
		if err != nil {
			return err
		}
		if err := repos.Lots().Update(ctx, lot); err != nil {
			return err
		}
		if target == nil || *target == lot.Status {
			return nil
		}
		return s.overwriteStatus(ctx, repos, lot, *target)
	})
	if err != nil {
		return nil, err
	}
	resp := ToLotResponse(lot)
	return &resp, nil
}

// SetStatus overwrites the status of a lot without checking that the
// transition is legal
func (s *LotService) SetStatus(ctx context.Context, id uuid.UUID, req UpdateLotStatusRequest) (*LotResponse, error) {
	ctx = logctx.WithEntityID(ctx, "lot_id", id.String())
	target, err := realestate.ParseLotStatus(req.Status)
	if err != nil {
		return nil, err
	}

	var lot *realestate.Lot
	err = s.uow.Execute(ctx, func(repos Repositories) error {
		var err error
		lot, err = repos.Lots().FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		return s.overwriteStatus(ctx, repos, lot, target)
	})
	if err != nil {
		return nil, err
	}
	resp := ToLotResponse(lot)
	return &resp, nil
}

// overwriteStatus applies a manual status change. Moving a lot away from SOLD
// while a sale still references it leaves the two out of step; that is
// allowed but logged.
func (s *LotService) overwriteStatus(ctx context.Context, repos Repositories, lot *realestate.Lot, target realestate.LotStatus) error {
	previous := lot.Status
	if previous == realestate.LotStatusSold && target != realestate.LotStatusSold {
		sold, err := repos.Sales().ExistsByLot(ctx, lot.ID)
		if err != nil {
			return err
		}
		if sold {
			s.logger.Warn("lot status overwritten while a sale references it",
				zap.String("lot_id", lot.ID.String()),
				zap.String("target_status", target.String()),
			)
		}
	}
	if err := s.stateMachine.Apply(ctx, repos.Lots(), lot, target); err != nil {
		return err
	}
	s.logger.Info("lot status overwritten",
		zap.String("lot_id", lot.ID.String()),
		zap.String("from", previous.String()),
		zap.String("to", target.String()),
	)
	return nil
}

// Delete removes a lot. Only AVAILABLE lots can be deleted.
func (s *LotService) Delete(ctx context.Context, id uuid.UUID) error {
	ctx = logctx.WithEntityID(ctx, "lot_id", id.String())
	err := s.uow.Execute(ctx, func(repos Repositories) error {
		lot, err := repos.Lots().FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if !s.stateMachine.CanDelete(lot) {
			return shared.NewInvalidStateError("lot %s cannot be deleted: current status is %s", lot.Reference, lot.Status)
		}
		return repos.Lots().Delete(ctx, lot.ID)
	})
	if err != nil {
		return err
	}
	s.logger.Info("lot deleted", zap.String("lot_id", id.String()))
	return nil
}
