package jobs

import (
	"log"
	"time"

	"github.com/skimonitor/api/database"
	"github.com/skimonitor/api/models"
	"github.com/skimonitor/api/payments"
	"github.com/skimonitor/api/services"
)

// SweepStaleCheckouts re-checks payment sessions that never came back through
// the poll or the webhook and converges them to their provider state.
func SweepStaleCheckouts() {
	log.Println("Running job: SweepStaleCheckouts...")

	cutoff := time.Now().Add(-15 * time.Minute)

	var stale []models.PaymentTransaction
	err := database.DB.
		Where("status = ? AND created_at < ?", "initiated", cutoff).
		Limit(50).
		Find(&stale).Error
	if err != nil {
		log.Printf("🔥 Error loading stale checkouts: %v", err)
		return
	}

	if len(stale) == 0 {
		return
	}

	settled := 0
	for _, txn := range stale {
		status, err := payments.GetCheckoutStatus(txn.SessionID)
		if err != nil {
			log.Printf("⚠️ Could not fetch session %s: %v", txn.SessionID, err)
			continue
		}
		if err := services.ApplySessionStatus(status); err != nil {
			log.Printf("🔥 Could not settle session %s: %v", txn.SessionID, err)
			continue
		}
		settled++
	}

	log.Printf("Swept %d stale checkout(s), %d reconciled.", len(stale), settled)
}
