package postgres

import (
	"context"

	"equipme-backend/internal/domain"
	"equipme-backend/internal/repository"
)

type summaryRepository struct {
	db DBTX
}

func NewSummaryRepository(db DBTX) repository.SummaryRepository {
	return &summaryRepository{db: db}
}

func (r *summaryRepository) DeleteRange(ctx context.Context, equipmentID int32, from, to string) error {
	query := `DELETE FROM equipment_daily_summaries
	          WHERE equipment_id = $1 AND date >= $2 AND date <= $3`
	_, err := r.db.ExecContext(ctx, query, equipmentID, from, to)
	return err
}

func (r *summaryRepository) Insert(ctx context.Context, row *domain.DailySummary) error {
	query := `INSERT INTO equipment_daily_summaries (equipment_id, date, total_quantity,
	              total_available, total_reserved, total_rented, total_cancelled,
	              total_maintenance, total_transit)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`
	return r.db.QueryRowContext(ctx, query,
		row.EquipmentID, row.Date, row.TotalQuantity, row.TotalAvailable, row.TotalReserved,
		row.TotalRented, row.TotalCancelled, row.TotalMaintenance, row.TotalInTransit,
	).Scan(&row.ID)
}

func (r *summaryRepository) ListByEquipment(ctx context.Context, equipmentID int32, from, to string) ([]domain.DailySummary, error) {
	query := `SELECT id, equipment_id, to_char(date, 'YYYY-MM-DD'), total_quantity, total_available,
	                 total_reserved, total_rented, total_cancelled, total_maintenance, total_transit
	          FROM equipment_daily_summaries
	          WHERE equipment_id = $1 AND date >= $2 AND date <= $3
	          ORDER BY date`
	rows, err := r.db.QueryContext(ctx, query, equipmentID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summaries []domain.DailySummary
	for rows.Next() {
		var s domain.DailySummary
		if err := rows.Scan(
			&s.ID, &s.EquipmentID, &s.Date, &s.TotalQuantity, &s.TotalAvailable,
			&s.TotalReserved, &s.TotalRented, &s.TotalCancelled, &s.TotalMaintenance, &s.TotalInTransit,
		); err != nil {
			return nil, err
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}
