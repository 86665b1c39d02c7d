package jobs

import (
	"context"

	"surfboard-marketplace-backend/internal/logger"
)

// ReconcileStorageFlags clears is_stored on surfboards that no partner holds.
func (jr *JobRunner) ReconcileStorageFlags() error {
	return jr.runWithRecovery(JobReconcileStorageFlags, func(ctx context.Context) error {
		n, err := jr.services.Storage.ReconcileStorageFlags(ctx)
		if err != nil {
			return err
		}
		logger.Info("Reconciled storage flags", "repaired", n)
		return nil
	})
}
