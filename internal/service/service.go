package service

import (
	"context"
	"time"

	"equipme-backend/internal/domain"
)

// Actor identifies the authenticated caller of a core operation: the account
// id plus which side of a negotiation it acts on.
type Actor struct {
	ID   int32
	Role domain.PartyRole
}

type InventoryService interface {
	// OnboardEquipment creates a catalog listing, seeds its quantity snapshot
	// with the initial stock, and records the onboarding log entry.
	OnboardEquipment(ctx context.Context, actor Actor, eq *domain.Equipment, initialStock int32) error
	GetInventory(ctx context.Context, equipmentID int32) (*domain.QuantitySnapshot, error)
	ListEquipment(ctx context.Context, actor Actor) ([]domain.Equipment, error)
	// UpdatePrice changes the catalog price for future additions; existing cart
	// items keep their snapshot until explicitly overridden.
	UpdatePrice(ctx context.Context, actor Actor, equipmentID int32, priceCents int32) error
	// ApplyTransition moves units between buckets; deltas must sum to zero.
	ApplyTransition(ctx context.Context, actor Actor, equipmentID int32, delta domain.TransitionDelta, reason string) (*domain.QuantitySnapshot, error)
	// AdjustTotal adds or removes units through the available bucket; reserved
	// for onboarding extra stock and decommissioning.
	AdjustTotal(ctx context.Context, actor Actor, equipmentID int32, delta int32, reason string) (*domain.QuantitySnapshot, error)
}

type AgreementService interface {
	RequestAgreement(ctx context.Context, actor Actor, req *AgreementRequest) (*domain.Agreement, error)
	GetAgreement(ctx context.Context, actor Actor, agreementID int32) (*domain.Agreement, []domain.AgreementComment, error)
	// SetDecision records one party's decision and recomputes the agreement
	// status. Reaching both-accepted reserves the stock exactly once.
	SetDecision(ctx context.Context, actor Actor, agreementID int32, decision domain.Decision) (*domain.Agreement, error)
	// AddComment appends a negotiation note; a terms-changing comment bumps
	// revisions and restarts both decisions at pending.
	AddComment(ctx context.Context, actor Actor, agreementID int32, text string, changesTerms bool) (*domain.AgreementComment, error)
	// ConfirmPayment consumes the external payment callback: success converts
	// the reservation to a rental, failure reverts it and abandons the booking.
	ConfirmPayment(ctx context.Context, agreementID int32, succeeded bool) (*domain.Agreement, error)
	// ReleaseStaleReservations reverts reservations whose payment never
	// arrived within the timeout. Returns the number released.
	ReleaseStaleReservations(ctx context.Context, olderThan time.Duration) (int, error)
}

// AgreementRequest carries the negotiated terms of a booking request.
type AgreementRequest struct {
	CartItemID      int32     `json:"cart_item_id"`
	RentalStartDate time.Time `json:"rental_start_date"`
	RentalEndDate   time.Time `json:"rental_end_date"`
	Delivery        bool      `json:"delivery"`
	DeliveryAddress string    `json:"delivery_address"`
}

type CartService interface {
	CreateCart(ctx context.Context, actor Actor, name string) (*domain.Cart, error)
	GetCart(ctx context.Context, actor Actor, cartID int32) (*domain.Cart, error)
	// AddItem snapshots the current catalog price onto the new item; fails
	// with OutOfStock when available units cannot cover the quantity.
	AddItem(ctx context.Context, actor Actor, cartID, equipmentID int32, rate domain.RentalRate, rentalLength, quantity int32) (*domain.CartItem, error)
	OverridePrice(ctx context.Context, actor Actor, itemID int32, priceCents int32) error
	RemoveItem(ctx context.Context, actor Actor, itemID int32) error
	RemoveCart(ctx context.Context, actor Actor, cartID int32) error
	// RecomputeTotal sums items with a both-accepted agreement and persists
	// the result onto the cart as a cache.
	RecomputeTotal(ctx context.Context, actor Actor, cartID int32) (int32, error)
}

type SummaryService interface {
	// Rebuild recomputes the daily summary rows for [from, to] from the
	// transition log. Idempotent: same log, same rows.
	Rebuild(ctx context.Context, equipmentID int32, from, to time.Time) ([]domain.DailySummary, error)
	List(ctx context.Context, equipmentID int32, from, to time.Time) ([]domain.DailySummary, error)
	// RebuildWindow rebuilds every equipment with log activity in the window;
	// driven by the nightly cron.
	RebuildWindow(ctx context.Context, from, to time.Time) error
}
