package jobs

import (
	"context"
	"time"

	"equipme-backend/internal/logger"
)

// RebuildDailySummaries recomputes summary rows for yesterday from the
// transition log. Yesterday is complete by the time the nightly run fires, so
// reruns produce identical rows.
func (jr *JobRunner) RebuildDailySummaries() {
	jr.runWithRecovery("RebuildDailySummaries", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()

		yesterday := time.Now().UTC().AddDate(0, 0, -1)
		if err := jr.services.Summary.RebuildWindow(ctx, yesterday, yesterday); err != nil {
			logger.Error("Failed to rebuild daily summaries", "error", err)
		}
	})
}
