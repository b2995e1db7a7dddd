package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"equipme-backend/internal/domain"
	"equipme-backend/internal/repository"
)

type equipmentRepository struct {
	db DBTX
}

func NewEquipmentRepository(db DBTX) repository.EquipmentRepository {
	return &equipmentRepository{db: db}
}

func (r *equipmentRepository) Create(ctx context.Context, eq *domain.Equipment) error {
	query := `INSERT INTO equipment (owner_id, name, category, make, model, description, rental_price_cents, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	now := time.Now().Format("2006-01-02")
	return r.db.QueryRowContext(ctx, query,
		eq.OwnerID, eq.Name, eq.Category, eq.Make, eq.Model, eq.Description, eq.RentalPriceCents, now,
	).Scan(&eq.ID)
}

func (r *equipmentRepository) GetByID(ctx context.Context, id int32) (*domain.Equipment, error) {
	query := `SELECT id, owner_id, name, COALESCE(category, ''), COALESCE(make, ''), COALESCE(model, ''),
	                 COALESCE(description, ''), rental_price_cents, created_on
	          FROM equipment WHERE id = $1`
	var eq domain.Equipment
	var createdOn time.Time
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&eq.ID, &eq.OwnerID, &eq.Name, &eq.Category, &eq.Make, &eq.Model,
		&eq.Description, &eq.RentalPriceCents, &createdOn,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: equipment %d", domain.ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	eq.CreatedOn = createdOn.Format("2006-01-02")
	return &eq, nil
}

func (r *equipmentRepository) ListByOwner(ctx context.Context, ownerID int32) ([]domain.Equipment, error) {
	query := `SELECT id, owner_id, name, COALESCE(category, ''), COALESCE(make, ''), COALESCE(model, ''),
	                 COALESCE(description, ''), rental_price_cents, created_on
	          FROM equipment WHERE owner_id = $1 ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []domain.Equipment
	for rows.Next() {
		var eq domain.Equipment
		var createdOn time.Time
		if err := rows.Scan(
			&eq.ID, &eq.OwnerID, &eq.Name, &eq.Category, &eq.Make, &eq.Model,
			&eq.Description, &eq.RentalPriceCents, &createdOn,
		); err != nil {
			return nil, err
		}
		eq.CreatedOn = createdOn.Format("2006-01-02")
		list = append(list, eq)
	}
	return list, rows.Err()
}

func (r *equipmentRepository) UpdatePrice(ctx context.Context, id int32, priceCents int32) error {
	result, err := r.db.ExecContext(ctx, `UPDATE equipment SET rental_price_cents = $2 WHERE id = $1`, id, priceCents)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("%w: equipment %d", domain.ErrNotFound, id)
	}
	return nil
}
