package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"equipme-backend/internal/domain"
	"equipme-backend/internal/logger"
	"equipme-backend/internal/repository"
)

type agreementService struct {
	store repository.Store
	locks *LockTable
}

func NewAgreementService(store repository.Store, locks *LockTable) AgreementService {
	return &agreementService{store: store, locks: locks}
}

// authorize checks that the actor is the agreement party matching its role.
func (s *agreementService) authorize(actor Actor, a *domain.Agreement) error {
	switch actor.Role {
	case domain.PartyRoleUser:
		if actor.ID == a.UserID {
			return nil
		}
	case domain.PartyRoleOwner:
		if actor.ID == a.OwnerID {
			return nil
		}
	}
	return fmt.Errorf("%w: caller is not a party to agreement %d", domain.ErrUnauthorized, a.ID)
}

func (s *agreementService) RequestAgreement(ctx context.Context, actor Actor, req *AgreementRequest) (*domain.Agreement, error) {
	if actor.Role != domain.PartyRoleUser {
		return nil, fmt.Errorf("%w: only renters request agreements", domain.ErrUnauthorized)
	}
	if !req.RentalEndDate.After(req.RentalStartDate) {
		return nil, fmt.Errorf("%w: rental end must be after start", domain.ErrInvalidTransition)
	}

	item, err := s.store.Cart().GetItem(ctx, req.CartItemID)
	if err != nil {
		return nil, err
	}
	cart, err := s.store.Cart().GetCart(ctx, item.CartID)
	if err != nil {
		return nil, err
	}
	if cart.UserID != actor.ID {
		return nil, fmt.Errorf("%w: cart item %d belongs to another cart", domain.ErrUnauthorized, item.ID)
	}
	eq, err := s.store.Equipment().GetByID(ctx, item.EquipmentID)
	if err != nil {
		return nil, err
	}

	// One active agreement per cart item.
	if _, err := s.store.Agreement().GetByCartItem(ctx, item.ID); err == nil {
		return nil, fmt.Errorf("%w: cart item %d already has an agreement", domain.ErrInvalidTransition, item.ID)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	a := &domain.Agreement{
		CartItemID:      item.ID,
		EquipmentID:     eq.ID,
		UserID:          actor.ID,
		OwnerID:         eq.OwnerID,
		RentalStartDate: req.RentalStartDate,
		RentalEndDate:   req.RentalEndDate,
		Delivery:        req.Delivery,
		DeliveryAddress: req.DeliveryAddress,
		UserDecision:    domain.DecisionPending,
		OwnerDecision:   domain.DecisionPending,
		Status:          domain.AgreementStatusPending,
	}
	if err := s.store.Agreement().Create(ctx, a); err != nil {
		return nil, err
	}

	logger.Info("Agreement requested", "agreement_id", a.ID, "cart_item_id", item.ID, "equipment_id", eq.ID)
	return a, nil
}

func (s *agreementService) GetAgreement(ctx context.Context, actor Actor, agreementID int32) (*domain.Agreement, []domain.AgreementComment, error) {
	a, err := s.store.Agreement().GetByID(ctx, agreementID)
	if err != nil {
		return nil, nil, err
	}
	if err := s.authorize(actor, a); err != nil {
		return nil, nil, err
	}
	comments, err := s.store.Agreement().ListComments(ctx, agreementID)
	if err != nil {
		return nil, nil, err
	}
	return a, comments, nil
}

func (s *agreementService) SetDecision(ctx context.Context, actor Actor, agreementID int32, decision domain.Decision) (*domain.Agreement, error) {
	if decision != domain.DecisionAccept && decision != domain.DecisionReject {
		return nil, fmt.Errorf("%w: decision %q", domain.ErrInvalidTransition, decision)
	}

	// Agreement lock first; the equipment lock, when needed, is taken inside.
	unlock := s.locks.Lock(agreementKey(agreementID))
	defer unlock()

	a, err := s.store.Agreement().GetByID(ctx, agreementID)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(actor, a); err != nil {
		return nil, err
	}
	if a.Status.Terminal() {
		return nil, fmt.Errorf("%w: agreement %d is already %s", domain.ErrInvalidTransition, a.ID, a.Status)
	}

	if actor.Role == domain.PartyRoleUser {
		a.UserDecision = decision
	} else {
		a.OwnerDecision = decision
	}
	a.Status = domain.DeriveStatus(a.UserDecision, a.OwnerDecision)

	if a.Status == domain.AgreementStatusBothAccepted && a.ReservedTransitionID == nil {
		// Mutual acceptance reserves the stock. One transaction covers the
		// agreement update and the ledger transition; the reservation marker
		// keeps the transition exactly-once per agreement.
		unlockEq := s.locks.Lock(equipmentKey(a.EquipmentID))
		defer unlockEq()

		err = s.store.WithTx(ctx, func(tx repository.Store) error {
			// A ledger entry under the reservation key means a prior attempt
			// reserved the stock but never recorded the marker; adopt it
			// instead of reserving twice.
			key := fmt.Sprintf("agreement/%d/reserve", a.ID)
			entry, err := tx.Inventory().GetTransitionByKey(ctx, key)
			if err != nil && !errors.Is(err, domain.ErrNotFound) {
				return err
			}
			if entry == nil {
				item, err := tx.Cart().GetItem(ctx, a.CartItemID)
				if err != nil {
					return err
				}
				delta := domain.TransitionDelta{
					domain.BucketAvailable: -item.Quantity,
					domain.BucketReserved:  item.Quantity,
				}
				entry, err = applyTransitionTx(ctx, tx, a.EquipmentID, delta,
					fmt.Sprintf("agreement %d accepted by both parties", a.ID), key)
				if err != nil {
					return err
				}
			}
			a.ReservedTransitionID = &entry.ID
			return tx.Agreement().Update(ctx, a)
		})
		if err != nil {
			return nil, err
		}
		logger.Info("Agreement confirmed, stock reserved",
			"agreement_id", a.ID, "equipment_id", a.EquipmentID, "transition_id", *a.ReservedTransitionID)
		return a, nil
	}

	if err := s.store.Agreement().Update(ctx, a); err != nil {
		return nil, err
	}
	logger.Info("Agreement decision recorded",
		"agreement_id", a.ID, "role", actor.Role, "decision", decision, "status", a.Status)
	return a, nil
}

func (s *agreementService) AddComment(ctx context.Context, actor Actor, agreementID int32, text string, changesTerms bool) (*domain.AgreementComment, error) {
	unlock := s.locks.Lock(agreementKey(agreementID))
	defer unlock()

	a, err := s.store.Agreement().GetByID(ctx, agreementID)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(actor, a); err != nil {
		return nil, err
	}

	comment := &domain.AgreementComment{
		AgreementID:  a.ID,
		AuthorID:     actor.ID,
		Origin:       actor.Role,
		Comment:      text,
		ChangesTerms: changesTerms,
	}

	if !changesTerms {
		if err := s.store.Agreement().CreateComment(ctx, comment); err != nil {
			return nil, err
		}
		return comment, nil
	}

	// A terms change restarts the negotiation on the same record.
	if a.Status.Terminal() {
		return nil, fmt.Errorf("%w: cannot revise agreement %d in state %s", domain.ErrInvalidTransition, a.ID, a.Status)
	}
	err = s.store.WithTx(ctx, func(tx repository.Store) error {
		if err := tx.Agreement().CreateComment(ctx, comment); err != nil {
			return err
		}
		a.UserDecision = domain.DecisionPending
		a.OwnerDecision = domain.DecisionPending
		a.Status = domain.AgreementStatusPending
		a.Revisions++
		return tx.Agreement().Update(ctx, a)
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Agreement revised", "agreement_id", a.ID, "revisions", a.Revisions, "origin", actor.Role)
	return comment, nil
}

func (s *agreementService) ConfirmPayment(ctx context.Context, agreementID int32, succeeded bool) (*domain.Agreement, error) {
	return s.settle(ctx, agreementID, succeeded, "")
}

// settle resolves an outstanding reservation. An empty reason gets the
// payment-outcome default.
func (s *agreementService) settle(ctx context.Context, agreementID int32, succeeded bool, reason string) (*domain.Agreement, error) {
	unlock := s.locks.Lock(agreementKey(agreementID))
	defer unlock()

	a, err := s.store.Agreement().GetByID(ctx, agreementID)
	if err != nil {
		return nil, err
	}
	if a.Status != domain.AgreementStatusBothAccepted || a.ReservedTransitionID == nil {
		return nil, fmt.Errorf("%w: agreement %d has no reservation to settle", domain.ErrInvalidTransition, a.ID)
	}
	if a.SettledOn != nil {
		// Duplicate callback; the first outcome stands.
		return a, nil
	}

	unlockEq := s.locks.Lock(equipmentKey(a.EquipmentID))
	defer unlockEq()

	err = s.store.WithTx(ctx, func(tx repository.Store) error {
		// Same recovery as the reserve path: a settle entry already in the
		// ledger means only the agreement row is missing its settlement.
		key := fmt.Sprintf("agreement/%d/settle", a.ID)
		prior, err := tx.Inventory().GetTransitionByKey(ctx, key)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return err
		}
		if prior == nil {
			item, err := tx.Cart().GetItem(ctx, a.CartItemID)
			if err != nil {
				return err
			}

			delta := domain.TransitionDelta{
				domain.BucketReserved: -item.Quantity,
				domain.BucketRented:   item.Quantity,
			}
			if !succeeded {
				delta = domain.TransitionDelta{
					domain.BucketReserved:  -item.Quantity,
					domain.BucketAvailable: item.Quantity,
				}
			}
			if reason == "" {
				reason = fmt.Sprintf("agreement %d payment confirmed", a.ID)
				if !succeeded {
					reason = fmt.Sprintf("agreement %d payment failed, reservation reverted", a.ID)
				}
			}
			if _, err := applyTransitionTx(ctx, tx, a.EquipmentID, delta, reason, key); err != nil {
				return err
			}
		}

		now := time.Now().UTC()
		a.SettledOn = &now
		if !succeeded {
			// Booking abandoned; decisions are kept for audit.
			a.Status = domain.AgreementStatusRejected
		}
		return tx.Agreement().Update(ctx, a)
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Agreement settled", "agreement_id", a.ID, "succeeded", succeeded, "status", a.Status)
	return a, nil
}

func (s *agreementService) ReleaseStaleReservations(ctx context.Context, olderThan time.Duration) (int, error) {
	cutoff := time.Now().UTC().Add(-olderThan)
	stale, err := s.store.Agreement().ListStaleReserved(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	released := 0
	for i := range stale {
		a := &stale[i]
		reason := fmt.Sprintf("agreement %d reservation expired, stock released", a.ID)
		if _, err := s.settle(ctx, a.ID, false, reason); err != nil {
			// Keep sweeping; a concurrent settlement is not an error for us.
			if errors.Is(err, domain.ErrInvalidTransition) {
				continue
			}
			logger.Error("Failed to release stale reservation", "agreement_id", a.ID, "error", err)
			continue
		}
		released++
	}
	if released > 0 {
		logger.Info("Stale reservations released", "count", released)
	}
	return released, nil
}
