package jobs

import (
	"context"

	"motorent-backoffice/internal/logger"
)

// ExpireDiscounts deactivates discounts whose end date has passed
func (jr *JobRunner) ExpireDiscounts() {
	jr.runWithRecovery("ExpireDiscounts", func(ctx context.Context) {
		n, err := jr.services.Discount.ExpireDiscounts(ctx)
		if err != nil {
			logger.Error("Failed to expire discounts", "error", err)
			return
		}
		if n > 0 {
			logger.Info("Expired discounts", "count", n)
		}
	})
}
