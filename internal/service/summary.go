package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"equipme-backend/internal/domain"
	"equipme-backend/internal/logger"
	"equipme-backend/internal/repository"
)

type summaryService struct {
	store repository.Store
}

func NewSummaryService(store repository.Store) SummaryService {
	return &summaryService{store: store}
}

const dateLayout = "2006-01-02"

// dayStart truncates t to midnight UTC.
func dayStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// foldTransitions buckets log entries by day and reduces each day to one
// summary row: the day's last snapshot wins, cancellations are counted as the
// day's reserved-to-available reverts.
func foldTransitions(equipmentID int32, entries []domain.StateTransition) []domain.DailySummary {
	byDate := make(map[string]*domain.DailySummary)
	for i := range entries {
		entry := &entries[i]
		date := entry.ChangedAt.UTC().Format(dateLayout)

		row, ok := byDate[date]
		if !ok {
			row = &domain.DailySummary{EquipmentID: equipmentID, Date: date}
			byDate[date] = row
		}

		// Last write of the day wins; entries arrive in log order.
		row.TotalQuantity = entry.Total
		row.TotalAvailable = entry.Available
		row.TotalReserved = entry.Reserved
		row.TotalRented = entry.Rented
		row.TotalMaintenance = entry.Maintenance
		row.TotalInTransit = entry.InTransit

		if strings.Contains(entry.PreviousState, string(domain.BucketReserved)) &&
			strings.Contains(entry.NewState, string(domain.BucketAvailable)) {
			row.TotalCancelled++
		}
	}

	rows := make([]domain.DailySummary, 0, len(byDate))
	for _, row := range byDate {
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Date < rows[j].Date })
	return rows
}

func (s *summaryService) Rebuild(ctx context.Context, equipmentID int32, from, to time.Time) ([]domain.DailySummary, error) {
	start := dayStart(from)
	end := dayStart(to).Add(24 * time.Hour)

	entries, err := s.store.Inventory().ListTransitions(ctx, equipmentID, start, end)
	if err != nil {
		return nil, err
	}
	rows := foldTransitions(equipmentID, entries)

	// Replace the covered range atomically so reruns are byte-identical.
	err = s.store.WithTx(ctx, func(tx repository.Store) error {
		if err := tx.Summary().DeleteRange(ctx, equipmentID,
			start.Format(dateLayout), dayStart(to).Format(dateLayout)); err != nil {
			return err
		}
		for i := range rows {
			if err := tx.Summary().Insert(ctx, &rows[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Summary rebuilt", "equipment_id", equipmentID,
		"from", start.Format(dateLayout), "to", dayStart(to).Format(dateLayout), "rows", len(rows))
	return rows, nil
}

func (s *summaryService) List(ctx context.Context, equipmentID int32, from, to time.Time) ([]domain.DailySummary, error) {
	return s.store.Summary().ListByEquipment(ctx, equipmentID,
		dayStart(from).Format(dateLayout), dayStart(to).Format(dateLayout))
}

func (s *summaryService) RebuildWindow(ctx context.Context, from, to time.Time) error {
	start := dayStart(from)
	end := dayStart(to).Add(24 * time.Hour)

	ids, err := s.store.Inventory().ListActiveEquipment(ctx, start, end)
	if err != nil {
		return err
	}
	for _, id := range ids {
		if _, err := s.Rebuild(ctx, id, from, to); err != nil {
			logger.Error("Summary rebuild failed", "equipment_id", id, "error", err)
			return err
		}
	}
	return nil
}
