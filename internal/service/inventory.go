package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"equipme-backend/internal/domain"
	"equipme-backend/internal/logger"
	"equipme-backend/internal/repository"
)

type inventoryService struct {
	store repository.Store
	locks *LockTable
}

func NewInventoryService(store repository.Store, locks *LockTable) InventoryService {
	return &inventoryService{store: store, locks: locks}
}

// applyTransitionTx validates and applies one balanced delta against the
// tx-bound store: locks the snapshot row, writes the updated breakdown, and
// appends the matching log entry. Callers hold the equipment lock and own the
// surrounding transaction.
func applyTransitionTx(ctx context.Context, s repository.Store, equipmentID int32, delta domain.TransitionDelta, reason, idempotencyKey string) (*domain.StateTransition, error) {
	snap, err := s.Inventory().GetSnapshotForUpdate(ctx, equipmentID)
	if err != nil {
		return nil, err
	}

	next, err := snap.Apply(delta)
	if err != nil {
		return nil, err
	}
	if err := s.Inventory().UpdateSnapshot(ctx, &next); err != nil {
		return nil, err
	}

	previous, current := delta.Labels()
	entry := &domain.StateTransition{
		EquipmentID:    equipmentID,
		IdempotencyKey: idempotencyKey,
		Total:          next.Total,
		Available:      next.Available,
		Reserved:       next.Reserved,
		Rented:         next.Rented,
		Maintenance:    next.Maintenance,
		InTransit:      next.InTransit,
		Damaged:        next.Damaged,
		PreviousState:  previous,
		NewState:       current,
		Reason:         reason,
	}
	if err := s.Inventory().AppendTransition(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *inventoryService) OnboardEquipment(ctx context.Context, actor Actor, eq *domain.Equipment, initialStock int32) error {
	if actor.Role != domain.PartyRoleOwner {
		return fmt.Errorf("%w: only owners onboard equipment", domain.ErrUnauthorized)
	}
	if initialStock < 0 {
		return fmt.Errorf("%w: initial stock %d is negative", domain.ErrInvariantViolation, initialStock)
	}
	eq.OwnerID = actor.ID

	err := s.store.WithTx(ctx, func(tx repository.Store) error {
		if err := tx.Equipment().Create(ctx, eq); err != nil {
			return err
		}
		snap := &domain.QuantitySnapshot{
			EquipmentID: eq.ID,
			Total:       initialStock,
			Available:   initialStock,
		}
		if err := tx.Inventory().CreateSnapshot(ctx, snap); err != nil {
			return err
		}
		entry := &domain.StateTransition{
			EquipmentID:    eq.ID,
			IdempotencyKey: uuid.NewString(),
			Total:          initialStock,
			Available:      initialStock,
			PreviousState:  "onboarding",
			NewState:       string(domain.BucketAvailable),
			Reason:         fmt.Sprintf("onboarded %q with %d units", eq.Name, initialStock),
		}
		return tx.Inventory().AppendTransition(ctx, entry)
	})
	if err != nil {
		return err
	}

	logger.Info("Equipment onboarded", "equipment_id", eq.ID, "owner_id", eq.OwnerID, "initial_stock", initialStock)
	return nil
}

func (s *inventoryService) GetInventory(ctx context.Context, equipmentID int32) (*domain.QuantitySnapshot, error) {
	return s.store.Inventory().GetSnapshot(ctx, equipmentID)
}

func (s *inventoryService) ListEquipment(ctx context.Context, actor Actor) ([]domain.Equipment, error) {
	if actor.Role != domain.PartyRoleOwner {
		return nil, fmt.Errorf("%w: only owners list their fleet", domain.ErrUnauthorized)
	}
	return s.store.Equipment().ListByOwner(ctx, actor.ID)
}

func (s *inventoryService) UpdatePrice(ctx context.Context, actor Actor, equipmentID int32, priceCents int32) error {
	if priceCents <= 0 {
		return fmt.Errorf("%w: catalog price %d", domain.ErrInvalidPricing, priceCents)
	}
	eq, err := s.store.Equipment().GetByID(ctx, equipmentID)
	if err != nil {
		return err
	}
	if actor.Role != domain.PartyRoleOwner || actor.ID != eq.OwnerID {
		return fmt.Errorf("%w: caller does not own equipment %d", domain.ErrUnauthorized, equipmentID)
	}
	if err := s.store.Equipment().UpdatePrice(ctx, equipmentID, priceCents); err != nil {
		return err
	}
	logger.Info("Catalog price updated", "equipment_id", equipmentID, "price_cents", priceCents)
	return nil
}

func (s *inventoryService) ApplyTransition(ctx context.Context, actor Actor, equipmentID int32, delta domain.TransitionDelta, reason string) (*domain.QuantitySnapshot, error) {
	eq, err := s.store.Equipment().GetByID(ctx, equipmentID)
	if err != nil {
		return nil, err
	}
	if actor.Role != domain.PartyRoleOwner || actor.ID != eq.OwnerID {
		return nil, fmt.Errorf("%w: caller does not own equipment %d", domain.ErrUnauthorized, equipmentID)
	}

	unlock := s.locks.Lock(equipmentKey(equipmentID))
	defer unlock()

	var entry *domain.StateTransition
	err = s.store.WithTx(ctx, func(tx repository.Store) error {
		entry, err = applyTransitionTx(ctx, tx, equipmentID, delta, reason, uuid.NewString())
		return err
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Inventory transition applied",
		"equipment_id", equipmentID, "previous_state", entry.PreviousState, "new_state", entry.NewState)
	snap := entry.Snapshot()
	return &snap, nil
}

func (s *inventoryService) AdjustTotal(ctx context.Context, actor Actor, equipmentID int32, delta int32, reason string) (*domain.QuantitySnapshot, error) {
	eq, err := s.store.Equipment().GetByID(ctx, equipmentID)
	if err != nil {
		return nil, err
	}
	if actor.Role != domain.PartyRoleOwner || actor.ID != eq.OwnerID {
		return nil, fmt.Errorf("%w: caller does not own equipment %d", domain.ErrUnauthorized, equipmentID)
	}
	if delta == 0 {
		return nil, fmt.Errorf("%w: total adjustment of zero", domain.ErrInvariantViolation)
	}

	unlock := s.locks.Lock(equipmentKey(equipmentID))
	defer unlock()

	var next domain.QuantitySnapshot
	err = s.store.WithTx(ctx, func(tx repository.Store) error {
		snap, err := tx.Inventory().GetSnapshotForUpdate(ctx, equipmentID)
		if err != nil {
			return err
		}

		// Units enter and leave the fleet through the available bucket only.
		next = *snap
		next.Total += delta
		next.Available += delta
		if err := next.Validate(); err != nil {
			return err
		}
		if err := tx.Inventory().UpdateSnapshot(ctx, &next); err != nil {
			return err
		}

		previous, current := "onboarding", string(domain.BucketAvailable)
		if delta < 0 {
			previous, current = string(domain.BucketAvailable), "decommissioned"
		}
		entry := &domain.StateTransition{
			EquipmentID:    equipmentID,
			IdempotencyKey: uuid.NewString(),
			Total:          next.Total,
			Available:      next.Available,
			Reserved:       next.Reserved,
			Rented:         next.Rented,
			Maintenance:    next.Maintenance,
			InTransit:      next.InTransit,
			Damaged:        next.Damaged,
			PreviousState:  previous,
			NewState:       current,
			Reason:         reason,
		}
		return tx.Inventory().AppendTransition(ctx, entry)
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Inventory total adjusted", "equipment_id", equipmentID, "delta", delta)
	return &next, nil
}
