package realestate

import (
	"context"

	"github.com/google/uuid"
	"github.com/inmobiliaria/backend/internal/domain/shared"
)

// LotStatusStore persists lot status changes
type LotStatusStore interface {
	// UpdateStatus overwrites the stored status
	UpdateStatus(ctx context.Context, id uuid.UUID, status LotStatus) error

	// CompareAndSwapStatus writes next only if the stored status still equals
	// expected. It returns false when another writer changed the lot first.
	CompareAndSwapStatus(ctx context.Context, id uuid.UUID, expected, next LotStatus) (bool, error)
}

// LotStateMachine validates and applies lot status transitions.
//
//	AVAILABLE -> SOLD       Sell, during sale registration
//	SOLD      -> AVAILABLE  Release, during sale cancellation
//	any       -> any        Apply, manual status patch
//
// Apply does not check legality: a manual patch simply overwrites the status.
type LotStateMachine struct{}

// NewLotStateMachine creates a LotStateMachine
func NewLotStateMachine() LotStateMachine {
	return LotStateMachine{}
}

// CanSell returns true iff the lot is AVAILABLE
func (LotStateMachine) CanSell(lot *Lot) bool {
	return lot.Status == LotStatusAvailable
}

// CanDelete returns true iff the lot is AVAILABLE
func (LotStateMachine) CanDelete(lot *Lot) bool {
	return lot.Status == LotStatusAvailable
}

// Apply persists target as the lot's status
func (LotStateMachine) Apply(ctx context.Context, store LotStatusStore, lot *Lot, target LotStatus) error {
	if !target.IsValid() {
		return shared.NewValidationError("invalid lot status '%s'", target)
	}
	if err := store.UpdateStatus(ctx, lot.ID, target); err != nil {
		return err
	}
	lot.Status = target
	lot.Touch()
	return nil
}

// Sell moves an AVAILABLE lot to SOLD. The write is conditional on the stored
// status still being AVAILABLE, so a concurrent sale that got there first
// makes this one fail with a conflict.
func (m LotStateMachine) Sell(ctx context.Context, store LotStatusStore, lot *Lot) error {
	if !m.CanSell(lot) {
		return shared.NewInvalidStateError("lot %s cannot be sold: current status is %s", lot.Reference, lot.Status)
	}
	swapped, err := store.CompareAndSwapStatus(ctx, lot.ID, LotStatusAvailable, LotStatusSold)
	if err != nil {
		return err
	}
	if !swapped {
		return shared.NewConflictError("lot %s was modified concurrently and is no longer AVAILABLE", lot.Reference)
	}
	lot.Status = LotStatusSold
	lot.Touch()
	return nil
}

// Release returns the lot to AVAILABLE whatever its current status
func (m LotStateMachine) Release(ctx context.Context, store LotStatusStore, lot *Lot) error {
	return m.Apply(ctx, store, lot, LotStatusAvailable)
}
