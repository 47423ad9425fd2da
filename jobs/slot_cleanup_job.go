package jobs

import (
	"log"
	"time"

	"github.com/jkimani85/coaching_marketplace/database"
	"github.com/jkimani85/coaching_marketplace/models"
)

// DeactivatePastSlots retires one-off availability slots whose date has
// passed so they stop counting against overlap checks. Booking-request
// expiry is not handled here; that stays lazy on the read/write path.
func DeactivatePastSlots() {
	log.Println("Running job: DeactivatePastSlots...")

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	result := database.DB.Model(&models.AvailabilitySlot{}).
		Where("is_recurring = ? AND is_active = ? AND specific_date < ?", false, true, today).
		Update("is_active", false)
	if result.Error != nil {
		log.Printf("Error deactivating past slots: %v", result.Error)
		return
	}

	if result.RowsAffected > 0 {
		log.Printf("Deactivated %d past availability slot(s).", result.RowsAffected)
	}
}
