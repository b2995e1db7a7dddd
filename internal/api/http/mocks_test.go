package http_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"equipme-backend/internal/domain"
	"equipme-backend/internal/service"
)

// MockInventoryService
type MockInventoryService struct {
	mock.Mock
}

func (m *MockInventoryService) OnboardEquipment(ctx context.Context, actor service.Actor, eq *domain.Equipment, initialStock int32) error {
	args := m.Called(ctx, actor, eq, initialStock)
	return args.Error(0)
}
func (m *MockInventoryService) GetInventory(ctx context.Context, equipmentID int32) (*domain.QuantitySnapshot, error) {
	args := m.Called(ctx, equipmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.QuantitySnapshot), args.Error(1)
}
func (m *MockInventoryService) ListEquipment(ctx context.Context, actor service.Actor) ([]domain.Equipment, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Equipment), args.Error(1)
}
func (m *MockInventoryService) UpdatePrice(ctx context.Context, actor service.Actor, equipmentID int32, priceCents int32) error {
	args := m.Called(ctx, actor, equipmentID, priceCents)
	return args.Error(0)
}
func (m *MockInventoryService) ApplyTransition(ctx context.Context, actor service.Actor, equipmentID int32, delta domain.TransitionDelta, reason string) (*domain.QuantitySnapshot, error) {
	args := m.Called(ctx, actor, equipmentID, delta, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.QuantitySnapshot), args.Error(1)
}
func (m *MockInventoryService) AdjustTotal(ctx context.Context, actor service.Actor, equipmentID int32, delta int32, reason string) (*domain.QuantitySnapshot, error) {
	args := m.Called(ctx, actor, equipmentID, delta, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.QuantitySnapshot), args.Error(1)
}

// MockAgreementService
type MockAgreementService struct {
	mock.Mock
}

func (m *MockAgreementService) RequestAgreement(ctx context.Context, actor service.Actor, req *service.AgreementRequest) (*domain.Agreement, error) {
	args := m.Called(ctx, actor, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Agreement), args.Error(1)
}
func (m *MockAgreementService) GetAgreement(ctx context.Context, actor service.Actor, agreementID int32) (*domain.Agreement, []domain.AgreementComment, error) {
	args := m.Called(ctx, actor, agreementID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.Agreement), args.Get(1).([]domain.AgreementComment), args.Error(2)
}
func (m *MockAgreementService) SetDecision(ctx context.Context, actor service.Actor, agreementID int32, decision domain.Decision) (*domain.Agreement, error) {
	args := m.Called(ctx, actor, agreementID, decision)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Agreement), args.Error(1)
}
func (m *MockAgreementService) AddComment(ctx context.Context, actor service.Actor, agreementID int32, text string, changesTerms bool) (*domain.AgreementComment, error) {
	args := m.Called(ctx, actor, agreementID, text, changesTerms)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AgreementComment), args.Error(1)
}
func (m *MockAgreementService) ConfirmPayment(ctx context.Context, agreementID int32, succeeded bool) (*domain.Agreement, error) {
	args := m.Called(ctx, agreementID, succeeded)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Agreement), args.Error(1)
}
func (m *MockAgreementService) ReleaseStaleReservations(ctx context.Context, olderThan time.Duration) (int, error) {
	args := m.Called(ctx, olderThan)
	return args.Int(0), args.Error(1)
}

// MockCartService
type MockCartService struct {
	mock.Mock
}

func (m *MockCartService) CreateCart(ctx context.Context, actor service.Actor, name string) (*domain.Cart, error) {
	args := m.Called(ctx, actor, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Cart), args.Error(1)
}
func (m *MockCartService) GetCart(ctx context.Context, actor service.Actor, cartID int32) (*domain.Cart, error) {
	args := m.Called(ctx, actor, cartID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Cart), args.Error(1)
}
func (m *MockCartService) AddItem(ctx context.Context, actor service.Actor, cartID, equipmentID int32, rate domain.RentalRate, rentalLength, quantity int32) (*domain.CartItem, error) {
	args := m.Called(ctx, actor, cartID, equipmentID, rate, rentalLength, quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CartItem), args.Error(1)
}
func (m *MockCartService) OverridePrice(ctx context.Context, actor service.Actor, itemID int32, priceCents int32) error {
	args := m.Called(ctx, actor, itemID, priceCents)
	return args.Error(0)
}
func (m *MockCartService) RemoveItem(ctx context.Context, actor service.Actor, itemID int32) error {
	args := m.Called(ctx, actor, itemID)
	return args.Error(0)
}
func (m *MockCartService) RemoveCart(ctx context.Context, actor service.Actor, cartID int32) error {
	args := m.Called(ctx, actor, cartID)
	return args.Error(0)
}
func (m *MockCartService) RecomputeTotal(ctx context.Context, actor service.Actor, cartID int32) (int32, error) {
	args := m.Called(ctx, actor, cartID)
	return args.Get(0).(int32), args.Error(1)
}

// MockSummaryService
type MockSummaryService struct {
	mock.Mock
}

func (m *MockSummaryService) Rebuild(ctx context.Context, equipmentID int32, from, to time.Time) ([]domain.DailySummary, error) {
	args := m.Called(ctx, equipmentID, from, to)
	return args.Get(0).([]domain.DailySummary), args.Error(1)
}
func (m *MockSummaryService) List(ctx context.Context, equipmentID int32, from, to time.Time) ([]domain.DailySummary, error) {
	args := m.Called(ctx, equipmentID, from, to)
	return args.Get(0).([]domain.DailySummary), args.Error(1)
}
func (m *MockSummaryService) RebuildWindow(ctx context.Context, from, to time.Time) error {
	args := m.Called(ctx, from, to)
	return args.Error(0)
}
