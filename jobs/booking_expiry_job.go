package jobs

import (
	"log"
	"time"

	"github.com/njoroge256/aerodesk/database"
	"github.com/njoroge256/aerodesk/models"
)

const paymentWindow = 30 * time.Minute

// ExpireStaleBookings cancels bookings that sat in pending_payment past the
// payment window so seats are not held indefinitely.
func ExpireStaleBookings() {
	log.Println("Running job: ExpireStaleBookings...")

	cutoff := time.Now().Add(-paymentWindow)

	var staleBookings []models.Booking
	err := database.DB.
		Where("status = ? AND created_at < ?", "pending_payment", cutoff).
		Find(&staleBookings).Error
	if err != nil {
		log.Printf("Error checking for stale bookings: %v", err)
		return
	}

	if len(staleBookings) == 0 {
		return
	}

	for _, booking := range staleBookings {
		booking.Status = "cancelled"
		database.DB.Save(&booking)
	}

	log.Printf("Cancelled %d stale booking(s).", len(staleBookings))
}
