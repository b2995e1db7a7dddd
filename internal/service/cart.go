package service

import (
	"context"
	"errors"
	"fmt"

	"equipme-backend/internal/domain"
	"equipme-backend/internal/logger"
	"equipme-backend/internal/repository"
	"equipme-backend/internal/utils"
)

type cartService struct {
	store repository.Store
}

func NewCartService(store repository.Store) CartService {
	return &cartService{store: store}
}

func (s *cartService) CreateCart(ctx context.Context, actor Actor, name string) (*domain.Cart, error) {
	if actor.Role != domain.PartyRoleUser {
		return nil, fmt.Errorf("%w: only renters own carts", domain.ErrUnauthorized)
	}
	cart := &domain.Cart{UserID: actor.ID, Name: name, Status: "open"}
	if err := s.store.Cart().CreateCart(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *cartService) GetCart(ctx context.Context, actor Actor, cartID int32) (*domain.Cart, error) {
	cart, err := s.store.Cart().GetCart(ctx, cartID)
	if err != nil {
		return nil, err
	}
	if cart.UserID != actor.ID || actor.Role != domain.PartyRoleUser {
		return nil, fmt.Errorf("%w: cart %d belongs to another account", domain.ErrUnauthorized, cartID)
	}
	return cart, nil
}

func (s *cartService) AddItem(ctx context.Context, actor Actor, cartID, equipmentID int32, rate domain.RentalRate, rentalLength, quantity int32) (*domain.CartItem, error) {
	cart, err := s.GetCart(ctx, actor, cartID)
	if err != nil {
		return nil, err
	}
	if rentalLength <= 0 || quantity <= 0 {
		return nil, fmt.Errorf("%w: rental length and quantity must be positive", domain.ErrInvalidPricing)
	}

	eq, err := s.store.Equipment().GetByID(ctx, equipmentID)
	if err != nil {
		return nil, err
	}
	snap, err := s.store.Inventory().GetSnapshot(ctx, equipmentID)
	if err != nil {
		return nil, err
	}
	if snap.Available < quantity {
		return nil, fmt.Errorf("%w: equipment %d has %d available, %d requested",
			domain.ErrOutOfStock, equipmentID, snap.Available, quantity)
	}

	item := &domain.CartItem{
		CartID:               cart.ID,
		EquipmentID:          equipmentID,
		PriceCentsAtAddition: eq.RentalPriceCents,
		RentalRate:           rate,
		RentalLength:         rentalLength,
		Quantity:             quantity,
	}
	if err := s.store.Cart().CreateItem(ctx, item); err != nil {
		return nil, err
	}

	logger.Info("Cart item added", "cart_id", cart.ID, "equipment_id", equipmentID,
		"price_cents_at_addition", item.PriceCentsAtAddition, "quantity", quantity)
	return item, nil
}

func (s *cartService) OverridePrice(ctx context.Context, actor Actor, itemID int32, priceCents int32) error {
	if priceCents <= 0 {
		return fmt.Errorf("%w: override price %d", domain.ErrInvalidPricing, priceCents)
	}
	item, err := s.store.Cart().GetItem(ctx, itemID)
	if err != nil {
		return err
	}
	if _, err := s.GetCart(ctx, actor, item.CartID); err != nil {
		return err
	}
	return s.store.Cart().SetPriceOverride(ctx, itemID, priceCents)
}

// itemAgreement returns the item's agreement, or nil when it has none.
func itemAgreement(ctx context.Context, store repository.Store, itemID int32) (*domain.Agreement, error) {
	a, err := store.Agreement().GetByCartItem(ctx, itemID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

// removeItemTx deletes one item and its unconfirmed agreement. Cascades are
// explicit: comments, then agreement, then the item.
func removeItemTx(ctx context.Context, tx repository.Store, item *domain.CartItem) error {
	a, err := itemAgreement(ctx, tx, item.ID)
	if err != nil {
		return err
	}
	if a != nil {
		if a.Status == domain.AgreementStatusBothAccepted {
			return fmt.Errorf("%w: cart item %d has a confirmed booking", domain.ErrInvalidTransition, item.ID)
		}
		if err := tx.Agreement().DeleteComments(ctx, a.ID); err != nil {
			return err
		}
		if err := tx.Agreement().Delete(ctx, a.ID); err != nil {
			return err
		}
	}
	return tx.Cart().DeleteItem(ctx, item.ID)
}

func (s *cartService) RemoveItem(ctx context.Context, actor Actor, itemID int32) error {
	item, err := s.store.Cart().GetItem(ctx, itemID)
	if err != nil {
		return err
	}
	if _, err := s.GetCart(ctx, actor, item.CartID); err != nil {
		return err
	}
	return s.store.WithTx(ctx, func(tx repository.Store) error {
		return removeItemTx(ctx, tx, item)
	})
}

func (s *cartService) RemoveCart(ctx context.Context, actor Actor, cartID int32) error {
	cart, err := s.GetCart(ctx, actor, cartID)
	if err != nil {
		return err
	}
	return s.store.WithTx(ctx, func(tx repository.Store) error {
		for i := range cart.Items {
			if err := removeItemTx(ctx, tx, &cart.Items[i]); err != nil {
				return err
			}
		}
		return tx.Cart().DeleteCart(ctx, cart.ID)
	})
}

func (s *cartService) RecomputeTotal(ctx context.Context, actor Actor, cartID int32) (int32, error) {
	cart, err := s.GetCart(ctx, actor, cartID)
	if err != nil {
		return 0, err
	}

	statuses := make(map[int32]domain.AgreementStatus, len(cart.Items))
	for i := range cart.Items {
		a, err := itemAgreement(ctx, s.store, cart.Items[i].ID)
		if err != nil {
			return 0, err
		}
		if a != nil {
			statuses[cart.Items[i].ID] = a.Status
		}
	}

	total, err := utils.CartTotalCents(cart.Items, statuses)
	if err != nil {
		return 0, err
	}
	if err := s.store.Cart().UpdateTotal(ctx, cartID, total); err != nil {
		return 0, err
	}

	logger.Info("Cart total recomputed", "cart_id", cartID, "total_cents", total)
	return total, nil
}
