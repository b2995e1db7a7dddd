package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"equipme-backend/internal/domain"
	"equipme-backend/internal/service"
)

func TestSummaryService_Rebuild(t *testing.T) {
	ctx := context.Background()
	day := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)

	entries := []domain.StateTransition{
		{
			EquipmentID: 7, Total: 5, Available: 3, Reserved: 2,
			PreviousState: "available", NewState: "reserved",
			ChangedAt: day.Add(9 * time.Hour),
		},
		{
			EquipmentID: 7, Total: 5, Available: 5, Reserved: 0,
			PreviousState: "reserved", NewState: "available",
			ChangedAt: day.Add(11 * time.Hour),
		},
		{
			EquipmentID: 7, Total: 5, Available: 4, Rented: 1,
			PreviousState: "available", NewState: "rented",
			ChangedAt: day.Add(15 * time.Hour),
		},
	}

	expectRebuild := func(store *mockStore) {
		store.inventory.On("ListTransitions", ctx, int32(7), day, day.Add(24*time.Hour)).
			Return(entries, nil)
		store.summary.On("DeleteRange", ctx, int32(7), "2026-08-30", "2026-08-30").Return(nil)
		store.summary.On("Insert", ctx, mock.MatchedBy(func(row *domain.DailySummary) bool {
			// Last entry of the day wins; the morning revert counts as one
			// cancellation.
			return row.Date == "2026-08-30" && row.TotalQuantity == 5 &&
				row.TotalAvailable == 4 && row.TotalRented == 1 &&
				row.TotalReserved == 0 && row.TotalCancelled == 1
		})).Return(nil)
	}

	t.Run("FoldsOneRowPerDay", func(t *testing.T) {
		store := newMockStore()
		svc := service.NewSummaryService(store)
		expectRebuild(store)

		rows, err := svc.Rebuild(ctx, 7, day, day)
		assert.NoError(t, err)
		assert.Len(t, rows, 1)
		assert.Equal(t, int32(1), rows[0].TotalCancelled)
		store.summary.AssertExpectations(t)
	})

	t.Run("RerunProducesIdenticalRows", func(t *testing.T) {
		store := newMockStore()
		svc := service.NewSummaryService(store)
		expectRebuild(store)

		first, err := svc.Rebuild(ctx, 7, day, day)
		assert.NoError(t, err)
		second, err := svc.Rebuild(ctx, 7, day, day)
		assert.NoError(t, err)
		assert.Equal(t, first, second)
		store.summary.AssertNumberOfCalls(t, "DeleteRange", 2)
	})

	t.Run("EmptyWindowWritesNothing", func(t *testing.T) {
		store := newMockStore()
		svc := service.NewSummaryService(store)

		store.inventory.On("ListTransitions", ctx, int32(7), day, day.Add(24*time.Hour)).
			Return([]domain.StateTransition{}, nil)
		store.summary.On("DeleteRange", ctx, int32(7), "2026-08-30", "2026-08-30").Return(nil)

		rows, err := svc.Rebuild(ctx, 7, day, day)
		assert.NoError(t, err)
		assert.Empty(t, rows)
		store.summary.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
	})
}

func TestSummaryService_RebuildWindow(t *testing.T) {
	ctx := context.Background()
	day := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	dayStart := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)

	store := newMockStore()
	svc := service.NewSummaryService(store)

	store.inventory.On("ListActiveEquipment", ctx, dayStart, dayStart.Add(24*time.Hour)).
		Return([]int32{7, 8}, nil)
	store.inventory.On("ListTransitions", ctx, mock.AnythingOfType("int32"), dayStart, dayStart.Add(24*time.Hour)).
		Return([]domain.StateTransition{}, nil)
	store.summary.On("DeleteRange", ctx, mock.AnythingOfType("int32"), "2026-08-30", "2026-08-30").Return(nil)

	err := svc.RebuildWindow(ctx, day, day)
	assert.NoError(t, err)
	store.summary.AssertNumberOfCalls(t, "DeleteRange", 2)
}
