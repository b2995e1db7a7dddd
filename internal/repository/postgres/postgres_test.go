package postgres_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"equipme-backend/internal/domain"
	"equipme-backend/internal/repository"
	"equipme-backend/internal/repository/postgres"
)

func TestStore_WithTx(t *testing.T) {
	ctx := context.Background()

	t.Run("CommitsOnSuccess", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		if err != nil {
			t.Fatalf("error opening mock database: %v", err)
		}
		defer db.Close()

		store := postgres.NewStore(db)

		mock.ExpectBegin()
		mock.ExpectExec("DELETE FROM cart_items").
			WithArgs(int32(21)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err = store.WithTx(ctx, func(tx repository.Store) error {
			return tx.Cart().DeleteItem(ctx, 21)
		})
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("RollsBackOnError", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		if err != nil {
			t.Fatalf("error opening mock database: %v", err)
		}
		defer db.Close()

		store := postgres.NewStore(db)
		boom := errors.New("nope")

		mock.ExpectBegin()
		mock.ExpectExec("DELETE FROM cart_items").
			WithArgs(int32(21)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectRollback()

		err = store.WithTx(ctx, func(tx repository.Store) error {
			if err := tx.Cart().DeleteItem(ctx, 21); err != nil {
				return err
			}
			return boom
		})
		assert.ErrorIs(t, err, boom)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestEquipmentRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewEquipmentRepository(db)
	ctx := context.Background()

	eq := &domain.Equipment{OwnerID: 2, Name: "Excavator", RentalPriceCents: 5000}
	mock.ExpectQuery("INSERT INTO equipment").
		WithArgs(eq.OwnerID, eq.Name, eq.Category, eq.Make, eq.Model, eq.Description, eq.RentalPriceCents, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))

	err = repo.Create(ctx, eq)
	assert.NoError(t, err)
	assert.Equal(t, int32(7), eq.ID)
}

func TestEquipmentRepository_ListByOwner(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewEquipmentRepository(db)
	ctx := context.Background()

	cols := []string{"id", "owner_id", "name", "category", "make", "model", "description", "rental_price_cents", "created_on"}
	created := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery("FROM equipment WHERE owner_id = .+ ORDER BY id").
		WithArgs(int32(2)).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow(7, 2, "Excavator", "earthmoving", "", "", "", 5000, created).
			AddRow(8, 2, "Trencher", "earthmoving", "", "", "", 3500, created))

	fleet, err := repo.ListByOwner(ctx, 2)
	assert.NoError(t, err)
	assert.Len(t, fleet, 2)
	assert.Equal(t, "2026-08-01", fleet[0].CreatedOn)
	assert.Equal(t, int32(3500), fleet[1].RentalPriceCents)
}

func TestEquipmentRepository_UpdatePrice(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewEquipmentRepository(db)
	ctx := context.Background()

	mock.ExpectExec("UPDATE equipment SET rental_price_cents").
		WithArgs(int32(7), int32(650)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	assert.NoError(t, repo.UpdatePrice(ctx, 7, 650))

	mock.ExpectExec("UPDATE equipment SET rental_price_cents").
		WithArgs(int32(99), int32(650)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.UpdatePrice(ctx, 99, 650), domain.ErrNotFound)
}

func TestSummaryRepository_Insert(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewSummaryRepository(db)
	ctx := context.Background()

	row := &domain.DailySummary{
		EquipmentID: 7, Date: "2026-08-30",
		TotalQuantity: 5, TotalAvailable: 4, TotalRented: 1, TotalCancelled: 1,
	}
	mock.ExpectQuery("INSERT INTO equipment_daily_summaries").
		WithArgs(row.EquipmentID, row.Date, row.TotalQuantity, row.TotalAvailable, row.TotalReserved,
			row.TotalRented, row.TotalCancelled, row.TotalMaintenance, row.TotalInTransit).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

	err = repo.Insert(ctx, row)
	assert.NoError(t, err)
	assert.Equal(t, int32(1), row.ID)
}

func TestSummaryRepository_DeleteRange(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewSummaryRepository(db)
	ctx := context.Background()

	mock.ExpectExec("DELETE FROM equipment_daily_summaries").
		WithArgs(int32(7), "2026-08-01", "2026-08-31").
		WillReturnResult(sqlmock.NewResult(0, 31))

	err = repo.DeleteRange(ctx, 7, "2026-08-01", "2026-08-31")
	assert.NoError(t, err)
}
