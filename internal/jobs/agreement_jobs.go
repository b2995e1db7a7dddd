package jobs

import (
	"context"
	"time"

	"equipme-backend/internal/logger"
)

// ReleaseStaleReservations frees stock held by confirmed agreements whose
// payment never arrived within the configured timeout.
func (jr *JobRunner) ReleaseStaleReservations() {
	jr.runWithRecovery("ReleaseStaleReservations", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		timeout := time.Duration(jr.config.Scheduler.StaleReservationHours) * time.Hour
		released, err := jr.services.Agreement.ReleaseStaleReservations(ctx, timeout)
		if err != nil {
			logger.Error("Failed to release stale reservations", "error", err)
			return
		}
		if released > 0 {
			logger.Info("Released stale reservations", "count", released)
		}
	})
}
