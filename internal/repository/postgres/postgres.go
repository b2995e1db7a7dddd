package postgres

import (
	"context"
	"database/sql"

	"equipme-backend/internal/repository"

	_ "github.com/lib/pq"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx, so every repository can run
// standalone or inside a store-level transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Store struct {
	db        *sql.DB
	equipment repository.EquipmentRepository
	inventory repository.InventoryRepository
	summary   repository.SummaryRepository
	agreement repository.AgreementRepository
	cart      repository.CartRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:        db,
		equipment: NewEquipmentRepository(db),
		inventory: NewInventoryRepository(db),
		summary:   NewSummaryRepository(db),
		agreement: NewAgreementRepository(db),
		cart:      NewCartRepository(db),
	}
}

func (s *Store) Equipment() repository.EquipmentRepository { return s.equipment }
func (s *Store) Inventory() repository.InventoryRepository { return s.inventory }
func (s *Store) Summary() repository.SummaryRepository     { return s.summary }
func (s *Store) Agreement() repository.AgreementRepository { return s.agreement }
func (s *Store) Cart() repository.CartRepository           { return s.cart }

// WithTx runs fn against a store bound to one transaction. Commit happens only
// when fn returns nil; any error rolls back every write made through the
// tx-bound store.
func (s *Store) WithTx(ctx context.Context, fn func(repository.Store) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	txStore := &Store{
		db:        s.db,
		equipment: NewEquipmentRepository(tx),
		inventory: NewInventoryRepository(tx),
		summary:   NewSummaryRepository(tx),
		agreement: NewAgreementRepository(tx),
		cart:      NewCartRepository(tx),
	}

	if err := fn(txStore); err != nil {
		return err
	}
	return tx.Commit()
}
