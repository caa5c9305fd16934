package jobs

import (
	"context"
	"time"

	"gamehub/internal/logger"
	"gamehub/internal/utils"
)

// ReportOverdueRentals logs every active rental past its due date together
// with the fee it would accrue if returned now. Read-only: the fee is only
// fixed when the rental actually comes back.
func (jr *JobRunner) ReportOverdueRentals() {
	jr.runWithRecovery("ReportOverdueRentals", func() {
		snapshot, err := jr.dashboards.Dashboard(context.Background())
		if err != nil {
			logger.Error("failed to snapshot ledger for overdue report", "error", err)
			return
		}

		now := time.Now()
		count := 0
		for i := range snapshot.Rentals {
			rental := &snapshot.Rentals[i]
			if !rental.Overdue(now) {
				continue
			}
			count++
			accrued := utils.LateFee(rental.DueDate, now, jr.cfg.Rental.FeePerDay)
			logger.Warn("rental overdue",
				"rental_id", rental.ID,
				"user_id", rental.UserID,
				"game_id", rental.GameID,
				"due_date", rental.DueDate,
				"accrued_fee", accrued,
			)
		}
		logger.Info("overdue rental report complete", "overdue", count, "total_rentals", len(snapshot.Rentals))
	})
}
