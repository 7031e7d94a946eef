package services

import (
	"fmt"
	"log"

	"github.com/skimonitor/api/database"
	"github.com/skimonitor/api/models"
	"github.com/skimonitor/api/notifications"
	"github.com/skimonitor/api/payments"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CommissionRate is the platform's fixed cut of every paid booking.
var CommissionRate = decimal.NewFromFloat(0.10)

// SplitAmount computes the commission split for a checkout amount.
// The commission is rounded half-up to 2 decimal places and the instructor
// amount is the exact remainder, so the two always sum back to the amount.
func SplitAmount(amount decimal.Decimal) (commission, instructorAmount decimal.Decimal) {
	commission = amount.Mul(CommissionRate).Round(2)
	instructorAmount = amount.Sub(commission)
	return commission, instructorAmount
}

// LessonAmount is the checkout total for a booking: price per slot times the
// number of participants.
func LessonAmount(pricePerSlot float64, participants int) decimal.Decimal {
	return decimal.NewFromFloat(pricePerSlot).
		Mul(decimal.NewFromInt(int64(participants))).
		Round(2)
}

// ApplySessionStatus reconciles local transaction and booking state from a
// provider-reported session status. It is the single convergence point for
// the status poll, the webhook and the settlement sweep job, and is safe to
// invoke any number of times: the paid transition is applied at most once,
// guarded by the transaction's own status under a row lock.
func ApplySessionStatus(status *payments.CheckoutStatus) error {
	if status.PaymentStatus == "paid" {
		return applyPaid(status.SessionID)
	}
	if status.Status == "expired" {
		return applyExpired(status.SessionID)
	}
	return nil
}

// Outcomes of a paid provider session against the local records.
const (
	settleCredit = "credit" // confirm the booking and credit the instructor
	settleNoop   = "noop"   // session already settled
	settleRefund = "refund" // money received for a dead booking, flag for refund
)

// paidOutcome decides how a paid session settles, from the locked transaction
// and its booking. A transaction settles at most once; a payment that lands
// after the booking was cancelled, or after another session already paid the
// booking, must never confirm it or credit the instructor — the seats were
// released (or the credit already made), so the money is flagged for refund
// instead.
func paidOutcome(txnStatus, bookingStatus, bookingPaymentStatus string) string {
	switch {
	case txnStatus == "paid" || txnStatus == "refund_due":
		return settleNoop
	case bookingStatus == "cancelled":
		return settleRefund
	case bookingPaymentStatus == "paid":
		return settleRefund
	default:
		return settleCredit
	}
}

func applyPaid(sessionID string) error {
	var confirmed *models.Booking

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var txn models.PaymentTransaction
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&txn, "session_id = ?", sessionID).Error; err != nil {
			return fmt.Errorf("transaction not found for session %s", sessionID)
		}

		var booking models.Booking
		if err := tx.Preload("User").Preload("Lesson.Instructor.User").
			First(&booking, "id = ?", txn.BookingID).Error; err != nil {
			return err
		}

		switch paidOutcome(txn.Status, booking.Status, booking.PaymentStatus) {
		case settleNoop:
			return nil
		case settleRefund:
			txn.Status = "refund_due"
			if err := tx.Save(&txn).Error; err != nil {
				return err
			}
			log.Printf("⚠️ Session %s paid against booking %s (%s/%s), flagged for refund",
				sessionID, booking.Reference, booking.Status, booking.PaymentStatus)
			return nil
		}

		txn.Status = "paid"
		if err := tx.Save(&txn).Error; err != nil {
			return err
		}

		booking.Status = "confirmed"
		booking.PaymentStatus = "paid"
		if err := tx.Save(&booking).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.Instructor{}).
			Where("id = ?", booking.Lesson.InstructorID).
			Update("current_balance", gorm.Expr("current_balance + ?", txn.InstructorAmount)).Error; err != nil {
			return err
		}

		confirmed = &booking
		return nil
	})
	if err != nil {
		return err
	}

	if confirmed != nil {
		booking := *confirmed
		go func() {
			notifications.SendEmail(booking.User.Name, booking.User.Email,
				"Your Booking is Confirmed!",
				fmt.Sprintf("<h1>Booking Confirmed</h1><p>Your payment was received and your lesson on %s at %s is confirmed. Reference: %s.</p>",
					booking.Lesson.Date, booking.Lesson.StartTime, booking.Reference))
			instructorUser := booking.Lesson.Instructor.User
			notifications.SendEmail(instructorUser.Name, instructorUser.Email,
				"A Booking Has Been Paid",
				fmt.Sprintf("<h1>Booking Paid</h1><p>The booking %s for your lesson on %s has been paid. Your share has been credited to your balance.</p>",
					booking.Reference, booking.Lesson.Date))
		}()
	}

	return nil
}

func applyExpired(sessionID string) error {
	result := database.DB.Model(&models.PaymentTransaction{}).
		Where("session_id = ? AND status = ?", sessionID, "initiated").
		Update("status", "expired")
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		log.Printf("Payment session %s expired", sessionID)
	}
	return nil
}
