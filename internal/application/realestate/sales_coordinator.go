package realestate

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/inmobiliaria/backend/internal/domain/realestate"
	"github.com/inmobiliaria/backend/internal/domain/shared"
	logctx "github.com/inmobiliaria/backend/internal/infrastructure/logger"
	"github.com/inmobiliaria/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// SalesTransactionCoordinator creates and cancels sales. Each operation writes
// the Sale and moves its Lot inside a single unit of work, so either both
// changes become visible or neither does.
type SalesTransactionCoordinator struct {
	uow          UnitOfWork
	stateMachine realestate.LotStateMachine
	metrics      SalesMetrics
	logger       *zap.Logger
}

// NewSalesTransactionCoordinator creates a new SalesTransactionCoordinator
func NewSalesTransactionCoordinator(uow UnitOfWork, metrics SalesMetrics, logger *zap.Logger) *SalesTransactionCoordinator {
	if metrics == nil {
		metrics = NopSalesMetrics{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SalesTransactionCoordinator{
		uow:          uow,
		stateMachine: realestate.NewLotStateMachine(),
		metrics:      metrics,
		logger:       logger.Named("sales"),
	}
}

// RegisterSale sells an AVAILABLE lot.
//
// The lot is read with a row lock and then moved to SOLD with a conditional
// write, so of two concurrent registrations on one lot exactly one commits and
// the other fails with a conflict.
func (c *SalesTransactionCoordinator) RegisterSale(ctx context.Context, req RegisterSaleRequest) (*SaleResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "sale", "register")
	defer span.End()
	ctx = logctx.WithEntityID(ctx, "lot_id", req.LotID.String())
	telemetry.SetAttributes(span,
		telemetry.SpanAttrLotID, req.LotID.String(),
		telemetry.SpanAttrClientID, req.ClientID.String(),
		telemetry.SpanAttrAgentID, req.AgentID.String(),
		telemetry.SpanAttrAmount, req.FinalPrice.String(),
	)

	method, err := realestate.ParsePaymentMethod(req.PaymentMethod)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	telemetry.SetAttributes(span, telemetry.SpanAttrPaymentMethod, method.String())

	var sale *realestate.Sale
	err = c.uow.Execute(ctx, func(repos Repositories) error {
		lot, err := repos.Lots().FindByIDForUpdate(ctx, req.LotID)
		if err != nil {
			return err
		}
		if !c.stateMachine.CanSell(lot) {
			return shared.NewInvalidStateError("lot %s cannot be sold: current status is %s", lot.Reference, lot.Status)
		}

		if _, err := repos.Clients().FindByID(ctx, req.ClientID); err != nil {
			return err
		}
		if _, err := repos.Agents().FindByID(ctx, req.AgentID); err != nil {
			return err
		}

		sale, err = realestate.NewSale(req.ClientID, lot.ID, req.AgentID, req.FinalPrice, method, req.Notes)
		if err != nil {
			return err
		}
		if err := repos.Sales().Create(ctx, sale); err != nil {
			return err
		}
		return c.stateMachine.Sell(ctx, repos.Lots(), lot)
	})
	if err != nil {
		telemetry.RecordError(span, err)
		if shared.IsConflict(err) {
			c.metrics.SaleRejected(rejectReason(err))
			c.logger.Warn("sale rejected",
				zap.String("lot_id", req.LotID.String()),
				zap.Error(err),
			)
		}
		return nil, err
	}

	telemetry.SetAttributes(span, telemetry.SpanAttrSaleID, sale.ID.String())
	c.metrics.SaleRegistered(method.String())
	c.logger.Info("sale registered",
		zap.String("sale_id", sale.ID.String()),
		zap.String("lot_id", sale.LotID.String()),
		zap.String("final_price", sale.FinalPrice.String()),
	)

	resp := ToSaleResponse(sale)
	return &resp, nil
}

// CancelSale deletes a sale and returns its lot to AVAILABLE. The lot is
// released whatever its status was, including a status set by a manual patch
// after the sale.
func (c *SalesTransactionCoordinator) CancelSale(ctx context.Context, saleID uuid.UUID) error {
	ctx, span := telemetry.StartServiceSpan(ctx, "sale", "cancel")
	defer span.End()
	ctx = logctx.WithEntityID(ctx, "sale_id", saleID.String())
	telemetry.SetAttributes(span, telemetry.SpanAttrSaleID, saleID.String())

	var previous realestate.LotStatus
	var lotID uuid.UUID
	err := c.uow.Execute(ctx, func(repos Repositories) error {
		sale, err := repos.Sales().FindByID(ctx, saleID)
		if err != nil {
			return err
		}
		lot, err := repos.Lots().FindByIDForUpdate(ctx, sale.LotID)
		if err != nil {
			return err
		}
		if err := repos.Sales().Delete(ctx, sale.ID); err != nil {
			return err
		}
		previous, lotID = lot.Status, lot.ID
		return c.stateMachine.Release(ctx, repos.Lots(), lot)
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return err
	}

	c.metrics.SaleCancelled()
	if previous != realestate.LotStatusSold {
		c.logger.Warn("cancelled sale of a lot that was not SOLD",
			zap.String("sale_id", saleID.String()),
			zap.String("lot_id", lotID.String()),
			zap.String("previous_status", previous.String()),
		)
	}
	c.logger.Info("sale cancelled", zap.String("sale_id", saleID.String()), zap.String("lot_id", lotID.String()))
	return nil
}

// UpdateNotes replaces the notes of a sale
func (c *SalesTransactionCoordinator) UpdateNotes(ctx context.Context, saleID uuid.UUID, notes string) (*SaleResponse, error) {
	ctx = logctx.WithEntityID(ctx, "sale_id", saleID.String())
	var sale *realestate.Sale
	err := c.uow.Execute(ctx, func(repos Repositories) error {
		var err error
		sale, err = repos.Sales().FindByID(ctx, saleID)
		if err != nil {
			return err
		}
		sale.UpdateNotes(notes)
		return repos.Sales().UpdateNotes(ctx, sale.ID, sale.Notes)
	})
	if err != nil {
		return nil, err
	}
	resp := ToSaleResponse(sale)
	return &resp, nil
}

func rejectReason(err error) string {
	if errors.Is(err, shared.ErrInvalidState) {
		return "not_available"
	}
	return "concurrent_sale"
}
