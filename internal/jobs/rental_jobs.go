package jobs

import (
	"context"

	"surfboard-marketplace-backend/internal/logger"
)

// ExpireStalePendingRentals cancels pending rentals that were never answered
// before their start day.
func (jr *JobRunner) ExpireStalePendingRentals() error {
	return jr.runWithRecovery(JobExpireStalePendingRentals, func(ctx context.Context) error {
		n, err := jr.services.Rental.ExpireStalePending(ctx, jr.now())
		if err != nil {
			return err
		}
		logger.Info("Expired stale pending rentals", "count", n)
		return nil
	})
}
