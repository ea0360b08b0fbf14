package app

import (
	"time"

	"go.uber.org/zap"
)

// trashRetention is how long a soft-deleted post stays recoverable
// before the nightly sweep removes it for good.
const trashRetention = 30 * 24 * time.Hour

func (a *App) registerCronJobs() {
	// Nightly at 03:00: hard-delete posts trashed past retention.
	_, err := a.sched.AddFunc("0 3 * * *", func() {
		n, err := a.postSvc.PurgeTrashed(trashRetention)
		if err != nil {
			a.logger.Error("trash purge failed", zap.Error(err))
			return
		}
		if n > 0 {
			a.logger.Info("purged trashed posts", zap.Int64("count", n))
		}
	})
	if err != nil {
		a.logger.Error("failed to schedule trash purge", zap.Error(err))
	}
}
