package repository

import (
	"context"
	"time"

	"equipme-backend/internal/domain"
)

type EquipmentRepository interface {
	Create(ctx context.Context, eq *domain.Equipment) error
	GetByID(ctx context.Context, id int32) (*domain.Equipment, error)
	ListByOwner(ctx context.Context, ownerID int32) ([]domain.Equipment, error)
	UpdatePrice(ctx context.Context, id int32, priceCents int32) error
}

// InventoryRepository persists the live quantity snapshot and the append-only
// transition log. Snapshots are mutated only inside a transactional scope that
// also appends the matching log entry.
type InventoryRepository interface {
	CreateSnapshot(ctx context.Context, snap *domain.QuantitySnapshot) error
	GetSnapshot(ctx context.Context, equipmentID int32) (*domain.QuantitySnapshot, error)
	// GetSnapshotForUpdate locks the snapshot row for the duration of the
	// surrounding transaction (SELECT ... FOR UPDATE).
	GetSnapshotForUpdate(ctx context.Context, equipmentID int32) (*domain.QuantitySnapshot, error)
	UpdateSnapshot(ctx context.Context, snap *domain.QuantitySnapshot) error

	AppendTransition(ctx context.Context, entry *domain.StateTransition) error
	GetTransitionByKey(ctx context.Context, idempotencyKey string) (*domain.StateTransition, error)
	// ListTransitions returns entries in per-equipment total order
	// (changed_at, then id as tie-break).
	ListTransitions(ctx context.Context, equipmentID int32, from, to time.Time) ([]domain.StateTransition, error)
	// ListActiveEquipment returns the ids of equipment with log entries in the
	// window; feeds the scheduled summary rebuild.
	ListActiveEquipment(ctx context.Context, from, to time.Time) ([]int32, error)
}

type SummaryRepository interface {
	DeleteRange(ctx context.Context, equipmentID int32, from, to string) error
	Insert(ctx context.Context, row *domain.DailySummary) error
	ListByEquipment(ctx context.Context, equipmentID int32, from, to string) ([]domain.DailySummary, error)
}

type AgreementRepository interface {
	Create(ctx context.Context, a *domain.Agreement) error
	GetByID(ctx context.Context, id int32) (*domain.Agreement, error)
	GetByCartItem(ctx context.Context, cartItemID int32) (*domain.Agreement, error)
	Update(ctx context.Context, a *domain.Agreement) error
	Delete(ctx context.Context, id int32) error
	// ListStaleReserved returns agreements holding a reservation that has not
	// settled since before the cutoff; feeds the scheduled release sweep.
	ListStaleReserved(ctx context.Context, cutoff time.Time) ([]domain.Agreement, error)

	CreateComment(ctx context.Context, c *domain.AgreementComment) error
	ListComments(ctx context.Context, agreementID int32) ([]domain.AgreementComment, error)
	DeleteComments(ctx context.Context, agreementID int32) error
}

type CartRepository interface {
	CreateCart(ctx context.Context, cart *domain.Cart) error
	GetCart(ctx context.Context, id int32) (*domain.Cart, error)
	UpdateTotal(ctx context.Context, cartID int32, totalCents int32) error
	DeleteCart(ctx context.Context, cartID int32) error

	CreateItem(ctx context.Context, item *domain.CartItem) error
	GetItem(ctx context.Context, id int32) (*domain.CartItem, error)
	ListItems(ctx context.Context, cartID int32) ([]domain.CartItem, error)
	SetPriceOverride(ctx context.Context, itemID int32, priceCents int32) error
	DeleteItem(ctx context.Context, itemID int32) error
}

// Store bundles the repositories and provides the transactional scope the core
// operations run in. WithTx runs fn against a store bound to one database
// transaction; fn returning an error rolls everything back.
type Store interface {
	Equipment() EquipmentRepository
	Inventory() InventoryRepository
	Summary() SummaryRepository
	Agreement() AgreementRepository
	Cart() CartRepository

	WithTx(ctx context.Context, fn func(Store) error) error
}
