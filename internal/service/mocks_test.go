package service_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"equipme-backend/internal/domain"
	"equipme-backend/internal/repository"
)

// MockEquipmentRepo
type MockEquipmentRepo struct {
	mock.Mock
}

func (m *MockEquipmentRepo) Create(ctx context.Context, eq *domain.Equipment) error {
	args := m.Called(ctx, eq)
	return args.Error(0)
}
func (m *MockEquipmentRepo) GetByID(ctx context.Context, id int32) (*domain.Equipment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Equipment), args.Error(1)
}
func (m *MockEquipmentRepo) ListByOwner(ctx context.Context, ownerID int32) ([]domain.Equipment, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).([]domain.Equipment), args.Error(1)
}
func (m *MockEquipmentRepo) UpdatePrice(ctx context.Context, id int32, priceCents int32) error {
	args := m.Called(ctx, id, priceCents)
	return args.Error(0)
}

// MockInventoryRepo
type MockInventoryRepo struct {
	mock.Mock
}

func (m *MockInventoryRepo) CreateSnapshot(ctx context.Context, snap *domain.QuantitySnapshot) error {
	args := m.Called(ctx, snap)
	return args.Error(0)
}
func (m *MockInventoryRepo) GetSnapshot(ctx context.Context, equipmentID int32) (*domain.QuantitySnapshot, error) {
	args := m.Called(ctx, equipmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.QuantitySnapshot), args.Error(1)
}
func (m *MockInventoryRepo) GetSnapshotForUpdate(ctx context.Context, equipmentID int32) (*domain.QuantitySnapshot, error) {
	args := m.Called(ctx, equipmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.QuantitySnapshot), args.Error(1)
}
func (m *MockInventoryRepo) UpdateSnapshot(ctx context.Context, snap *domain.QuantitySnapshot) error {
	args := m.Called(ctx, snap)
	return args.Error(0)
}
func (m *MockInventoryRepo) AppendTransition(ctx context.Context, entry *domain.StateTransition) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}
func (m *MockInventoryRepo) GetTransitionByKey(ctx context.Context, idempotencyKey string) (*domain.StateTransition, error) {
	args := m.Called(ctx, idempotencyKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StateTransition), args.Error(1)
}
func (m *MockInventoryRepo) ListTransitions(ctx context.Context, equipmentID int32, from, to time.Time) ([]domain.StateTransition, error) {
	args := m.Called(ctx, equipmentID, from, to)
	return args.Get(0).([]domain.StateTransition), args.Error(1)
}
func (m *MockInventoryRepo) ListActiveEquipment(ctx context.Context, from, to time.Time) ([]int32, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).([]int32), args.Error(1)
}

// MockSummaryRepo
type MockSummaryRepo struct {
	mock.Mock
}

func (m *MockSummaryRepo) DeleteRange(ctx context.Context, equipmentID int32, from, to string) error {
	args := m.Called(ctx, equipmentID, from, to)
	return args.Error(0)
}
func (m *MockSummaryRepo) Insert(ctx context.Context, row *domain.DailySummary) error {
	args := m.Called(ctx, row)
	return args.Error(0)
}
func (m *MockSummaryRepo) ListByEquipment(ctx context.Context, equipmentID int32, from, to string) ([]domain.DailySummary, error) {
	args := m.Called(ctx, equipmentID, from, to)
	return args.Get(0).([]domain.DailySummary), args.Error(1)
}

// MockAgreementRepo
type MockAgreementRepo struct {
	mock.Mock
}

func (m *MockAgreementRepo) Create(ctx context.Context, a *domain.Agreement) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}
func (m *MockAgreementRepo) GetByID(ctx context.Context, id int32) (*domain.Agreement, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Agreement), args.Error(1)
}
func (m *MockAgreementRepo) GetByCartItem(ctx context.Context, cartItemID int32) (*domain.Agreement, error) {
	args := m.Called(ctx, cartItemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Agreement), args.Error(1)
}
func (m *MockAgreementRepo) Update(ctx context.Context, a *domain.Agreement) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}
func (m *MockAgreementRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockAgreementRepo) ListStaleReserved(ctx context.Context, cutoff time.Time) ([]domain.Agreement, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).([]domain.Agreement), args.Error(1)
}
func (m *MockAgreementRepo) CreateComment(ctx context.Context, c *domain.AgreementComment) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}
func (m *MockAgreementRepo) ListComments(ctx context.Context, agreementID int32) ([]domain.AgreementComment, error) {
	args := m.Called(ctx, agreementID)
	return args.Get(0).([]domain.AgreementComment), args.Error(1)
}
func (m *MockAgreementRepo) DeleteComments(ctx context.Context, agreementID int32) error {
	args := m.Called(ctx, agreementID)
	return args.Error(0)
}

// MockCartRepo
type MockCartRepo struct {
	mock.Mock
}

func (m *MockCartRepo) CreateCart(ctx context.Context, cart *domain.Cart) error {
	args := m.Called(ctx, cart)
	return args.Error(0)
}
func (m *MockCartRepo) GetCart(ctx context.Context, id int32) (*domain.Cart, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Cart), args.Error(1)
}
func (m *MockCartRepo) UpdateTotal(ctx context.Context, cartID int32, totalCents int32) error {
	args := m.Called(ctx, cartID, totalCents)
	return args.Error(0)
}
func (m *MockCartRepo) DeleteCart(ctx context.Context, cartID int32) error {
	args := m.Called(ctx, cartID)
	return args.Error(0)
}
func (m *MockCartRepo) CreateItem(ctx context.Context, item *domain.CartItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}
func (m *MockCartRepo) GetItem(ctx context.Context, id int32) (*domain.CartItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CartItem), args.Error(1)
}
func (m *MockCartRepo) ListItems(ctx context.Context, cartID int32) ([]domain.CartItem, error) {
	args := m.Called(ctx, cartID)
	return args.Get(0).([]domain.CartItem), args.Error(1)
}
func (m *MockCartRepo) SetPriceOverride(ctx context.Context, itemID int32, priceCents int32) error {
	args := m.Called(ctx, itemID, priceCents)
	return args.Error(0)
}
func (m *MockCartRepo) DeleteItem(ctx context.Context, itemID int32) error {
	args := m.Called(ctx, itemID)
	return args.Error(0)
}

// mockStore bundles the repo mocks behind the store interface. WithTx runs the
// callback against the same store, so transactional paths hit the same mocks.
type mockStore struct {
	equipment *MockEquipmentRepo
	inventory *MockInventoryRepo
	summary   *MockSummaryRepo
	agreement *MockAgreementRepo
	cart      *MockCartRepo
}

func newMockStore() *mockStore {
	return &mockStore{
		equipment: new(MockEquipmentRepo),
		inventory: new(MockInventoryRepo),
		summary:   new(MockSummaryRepo),
		agreement: new(MockAgreementRepo),
		cart:      new(MockCartRepo),
	}
}

func (s *mockStore) Equipment() repository.EquipmentRepository { return s.equipment }
func (s *mockStore) Inventory() repository.InventoryRepository { return s.inventory }
func (s *mockStore) Summary() repository.SummaryRepository     { return s.summary }
func (s *mockStore) Agreement() repository.AgreementRepository { return s.agreement }
func (s *mockStore) Cart() repository.CartRepository           { return s.cart }

func (s *mockStore) WithTx(ctx context.Context, fn func(repository.Store) error) error {
	return fn(s)
}
