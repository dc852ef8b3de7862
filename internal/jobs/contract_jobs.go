package jobs

import (
	"context"

	"motorent-backoffice/internal/logger"
)

// CancelStalePendingContracts cancels Pending contracts whose activation
// window has closed and releases their motorbikes
func (jr *JobRunner) CancelStalePendingContracts() {
	jr.runWithRecovery("CancelStalePendingContracts", func(ctx context.Context) {
		n, err := jr.services.Contract.CancelStalePending(ctx)
		if err != nil {
			logger.Error("Failed to cancel stale pending contracts", "error", err)
			return
		}
		if n > 0 {
			logger.Info("Cancelled stale pending contracts", "count", n)
		}
	})
}
