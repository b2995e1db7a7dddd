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

type inventoryRepository struct {
	db DBTX
}

func NewInventoryRepository(db DBTX) repository.InventoryRepository {
	return &inventoryRepository{db: db}
}

const snapshotColumns = `equipment_id, total_quantity, available_quantity, reserved_quantity,
	rented_quantity, maintenance_quantity, transit_quantity, damaged_quantity, updated_on`

func (r *inventoryRepository) CreateSnapshot(ctx context.Context, snap *domain.QuantitySnapshot) error {
	query := `INSERT INTO equipment_status (` + snapshotColumns + `)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	snap.UpdatedOn = time.Now().UTC()
	_, err := r.db.ExecContext(ctx, query,
		snap.EquipmentID, snap.Total, snap.Available, snap.Reserved,
		snap.Rented, snap.Maintenance, snap.InTransit, snap.Damaged, snap.UpdatedOn,
	)
	return err
}

func (r *inventoryRepository) scanSnapshot(row *sql.Row, equipmentID int32) (*domain.QuantitySnapshot, error) {
	var snap domain.QuantitySnapshot
	err := row.Scan(
		&snap.EquipmentID, &snap.Total, &snap.Available, &snap.Reserved,
		&snap.Rented, &snap.Maintenance, &snap.InTransit, &snap.Damaged, &snap.UpdatedOn,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: inventory for equipment %d", domain.ErrNotFound, equipmentID)
	}
	if err != nil {
		return nil, err
	}
	return &snap, nil
}

func (r *inventoryRepository) GetSnapshot(ctx context.Context, equipmentID int32) (*domain.QuantitySnapshot, error) {
	query := `SELECT ` + snapshotColumns + ` FROM equipment_status WHERE equipment_id = $1`
	return r.scanSnapshot(r.db.QueryRowContext(ctx, query, equipmentID), equipmentID)
}

func (r *inventoryRepository) GetSnapshotForUpdate(ctx context.Context, equipmentID int32) (*domain.QuantitySnapshot, error) {
	query := `SELECT ` + snapshotColumns + ` FROM equipment_status WHERE equipment_id = $1 FOR UPDATE`
	return r.scanSnapshot(r.db.QueryRowContext(ctx, query, equipmentID), equipmentID)
}

func (r *inventoryRepository) UpdateSnapshot(ctx context.Context, snap *domain.QuantitySnapshot) error {
	query := `UPDATE equipment_status
	          SET total_quantity = $2, available_quantity = $3, reserved_quantity = $4,
	              rented_quantity = $5, maintenance_quantity = $6, transit_quantity = $7,
	              damaged_quantity = $8, updated_on = $9
	          WHERE equipment_id = $1`
	snap.UpdatedOn = time.Now().UTC()
	result, err := r.db.ExecContext(ctx, query,
		snap.EquipmentID, snap.Total, snap.Available, snap.Reserved,
		snap.Rented, snap.Maintenance, snap.InTransit, snap.Damaged, snap.UpdatedOn,
	)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("%w: inventory for equipment %d", domain.ErrNotFound, snap.EquipmentID)
	}
	return nil
}

const transitionColumns = `id, equipment_id, idempotency_key, total_quantity, available_quantity,
	reserved_quantity, rented_quantity, maintenance_quantity, transit_quantity, damaged_quantity,
	previous_state, new_state, COALESCE(reason, ''), changed_at`

func (r *inventoryRepository) AppendTransition(ctx context.Context, entry *domain.StateTransition) error {
	query := `INSERT INTO equipment_state_log (equipment_id, idempotency_key, total_quantity,
	              available_quantity, reserved_quantity, rented_quantity, maintenance_quantity,
	              transit_quantity, damaged_quantity, previous_state, new_state, reason, changed_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13) RETURNING id`
	if entry.ChangedAt.IsZero() {
		entry.ChangedAt = time.Now().UTC()
	}
	return r.db.QueryRowContext(ctx, query,
		entry.EquipmentID, entry.IdempotencyKey, entry.Total, entry.Available, entry.Reserved,
		entry.Rented, entry.Maintenance, entry.InTransit, entry.Damaged,
		entry.PreviousState, entry.NewState, entry.Reason, entry.ChangedAt,
	).Scan(&entry.ID)
}

func (r *inventoryRepository) GetTransitionByKey(ctx context.Context, idempotencyKey string) (*domain.StateTransition, error) {
	query := `SELECT ` + transitionColumns + ` FROM equipment_state_log WHERE idempotency_key = $1`
	var entry domain.StateTransition
	err := r.db.QueryRowContext(ctx, query, idempotencyKey).Scan(
		&entry.ID, &entry.EquipmentID, &entry.IdempotencyKey, &entry.Total, &entry.Available,
		&entry.Reserved, &entry.Rented, &entry.Maintenance, &entry.InTransit, &entry.Damaged,
		&entry.PreviousState, &entry.NewState, &entry.Reason, &entry.ChangedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: transition %s", domain.ErrNotFound, idempotencyKey)
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *inventoryRepository) ListTransitions(ctx context.Context, equipmentID int32, from, to time.Time) ([]domain.StateTransition, error) {
	query := `SELECT ` + transitionColumns + `
	          FROM equipment_state_log
	          WHERE equipment_id = $1 AND changed_at >= $2 AND changed_at < $3
	          ORDER BY changed_at, id`
	rows, err := r.db.QueryContext(ctx, query, equipmentID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.StateTransition
	for rows.Next() {
		var entry domain.StateTransition
		if err := rows.Scan(
			&entry.ID, &entry.EquipmentID, &entry.IdempotencyKey, &entry.Total, &entry.Available,
			&entry.Reserved, &entry.Rented, &entry.Maintenance, &entry.InTransit, &entry.Damaged,
			&entry.PreviousState, &entry.NewState, &entry.Reason, &entry.ChangedAt,
		); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func (r *inventoryRepository) ListActiveEquipment(ctx context.Context, from, to time.Time) ([]int32, error) {
	query := `SELECT DISTINCT equipment_id FROM equipment_state_log
	          WHERE changed_at >= $1 AND changed_at < $2 ORDER BY equipment_id`
	rows, err := r.db.QueryContext(ctx, query, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int32
	for rows.Next() {
		var id int32
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
