package jobs

import (
	"context"
	"time"

	"carpool-backend/internal/logger"
)

// DeactivatePastRides clears the active flag on rides whose departure has
// passed, so they drop out of search results. Soft-deleted rides are left
// alone.
func (jr *JobRunner) DeactivatePastRides() {
	jr.runWithRecovery("DeactivatePastRides", func() {
		ctx := context.Background()
		count, err := jr.store.RideRepository.DeactivateDeparted(ctx, time.Now())
		if err != nil {
			logger.Error("Failed to deactivate departed rides", "error", err)
			return
		}
		logger.Info("Deactivated departed rides", "count", count)
	})
}

// SendDepartureReminders emails everyone riding tomorrow: the owner and the
// members holding accepted seat requests.
func (jr *JobRunner) SendDepartureReminders() {
	jr.runWithRecovery("SendDepartureReminders", func() {
		ctx := context.Background()

		query := `
			SELECT r.id, r.origin, r.destination, r.departure, m.email
			FROM rides r
			JOIN members m ON m.id = r.owner_id
			WHERE r.deleted_on IS NULL
			  AND r.departure >= $1 AND r.departure < $2
			UNION
			SELECT r.id, r.origin, r.destination, r.departure, m.email
			FROM rides r
			JOIN seat_requests sr ON sr.ride_id = r.id AND sr.status = 'ACCEPTED'
			JOIN members m ON m.id = sr.member_id
			WHERE r.deleted_on IS NULL
			  AND r.departure >= $1 AND r.departure < $2
		`

		windowStart := time.Now().Add(24 * time.Hour).Truncate(24 * time.Hour)
		windowEnd := windowStart.Add(24 * time.Hour)

		rows, err := jr.db.QueryContext(ctx, query, windowStart, windowEnd)
		if err != nil {
			logger.Error("Failed to query departure reminders", "error", err)
			return
		}
		defer rows.Close()

		sent := 0
		for rows.Next() {
			var rideID int32
			var origin, destination, email string
			var departure time.Time
			if err := rows.Scan(&rideID, &origin, &destination, &departure, &email); err != nil {
				logger.Error("Failed to scan reminder row", "error", err)
				continue
			}
			if err := jr.emailSvc.SendDepartureReminder(ctx, email, origin, destination, departure); err != nil {
				logger.Warn("Failed to send departure reminder", "ride_id", rideID, "error", err)
				continue
			}
			sent++
		}
		logger.Info("Departure reminders sent", "count", sent)
	})
}
