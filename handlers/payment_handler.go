package handlers

import (
	"fmt"
	"log"
	"time"

	config "github.com/skimonitor/api/configs"
	"github.com/skimonitor/api/database"
	"github.com/skimonitor/api/models"
	"github.com/skimonitor/api/payments"
	"github.com/skimonitor/api/services"
	"github.com/gofiber/fiber/v2"
)

type CreateCheckoutRequest struct {
	BookingID string `json:"booking_id" validate:"required,uuid"`
	OriginURL string `json:"origin_url" validate:"omitempty,url"`
}

// CreateCheckout opens a Stripe checkout session for a pending booking and
// records the settlement split up front so reconciliation only has to flip
// statuses later.
func CreateCheckout(c *fiber.Ctx) error {
	userID := claimsUserID(c)

	var req CreateCheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var booking models.Booking
	if err := database.DB.Preload("Lesson").First(&booking, "id = ?", req.BookingID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Booking not found"})
	}
	if booking.UserID != userID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Not authorized"})
	}
	if booking.PaymentStatus == "paid" {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Booking is already paid"})
	}
	if booking.Status == "cancelled" {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Booking is cancelled"})
	}

	amount := services.LessonAmount(booking.Lesson.Price, booking.Participants)
	commission, instructorAmount := services.SplitAmount(amount)

	origin := req.OriginURL
	if origin == "" {
		origin = config.Config("FRONTEND_URL")
	}

	session, err := payments.CreateCheckoutSession(
		amount, "eur",
		fmt.Sprintf("%s — %s", booking.Lesson.Title, booking.Lesson.Date),
		origin+"/bookings?payment=success",
		origin+"/bookings?payment=cancelled",
		map[string]string{"booking_id": booking.ID.String(), "reference": booking.Reference},
	)
	if err != nil {
		log.Printf("🔥 Stripe checkout failed for booking %s: %v", booking.Reference, err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "Payment provider unavailable"})
	}

	// A booking carries at most one open session: retire earlier ones so a
	// payment on a stale checkout page cannot settle twice.
	database.DB.Model(&models.PaymentTransaction{}).
		Where("booking_id = ? AND status = ?", booking.ID, "initiated").
		Update("status", "expired")

	txn := models.PaymentTransaction{
		SessionID:        session.SessionID,
		BookingID:        booking.ID,
		UserID:           userID,
		Amount:           amount.InexactFloat64(),
		Commission:       commission.InexactFloat64(),
		InstructorAmount: instructorAmount.InexactFloat64(),
		Currency:         "eur",
		Status:           "initiated",
	}
	if err := database.DB.Create(&txn).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to record transaction"})
	}

	booking.PaymentSessionID = &session.SessionID
	database.DB.Save(&booking)

	return c.JSON(fiber.Map{
		"session_id":   session.SessionID,
		"checkout_url": session.URL,
	})
}

// GetPaymentStatus polls the provider for the session's state and converges
// the local records before answering. Safe to call repeatedly.
func GetPaymentStatus(c *fiber.Ctx) error {
	userID := claimsUserID(c)
	sessionID := c.Params("sessionId")

	var txn models.PaymentTransaction
	if err := database.DB.First(&txn, "session_id = ?", sessionID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Transaction not found"})
	}
	if txn.UserID != userID && claimsRole(c) != "admin" {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Not authorized"})
	}

	status, err := payments.GetCheckoutStatus(sessionID)
	if err != nil {
		log.Printf("⚠️ Stripe status poll failed for %s: %v", sessionID, err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "Payment provider unavailable"})
	}

	if err := services.ApplySessionStatus(status); err != nil {
		log.Printf("🔥 Failed to apply session status %s: %v", sessionID, err)
	}

	database.DB.First(&txn, "session_id = ?", sessionID)
	return c.JSON(fiber.Map{
		"session_id":     sessionID,
		"status":         status.Status,
		"payment_status": txn.Status,
	})
}

// StripeWebhook handles provider callbacks. The signature is verified, but a
// bad event never returns an error status: Stripe retries failed deliveries
// and the cron sweep covers losses, so we always acknowledge.
func StripeWebhook(c *fiber.Ctx) error {
	payload := c.Body()
	sigHeader := c.Get("Stripe-Signature")
	secret := config.Config("STRIPE_WEBHOOK_SECRET")

	ack := func() error { return c.JSON(fiber.Map{"received": true}) }

	if err := payments.VerifyWebhookSignature(payload, sigHeader, secret, time.Now()); err != nil {
		log.Printf("⚠️ Stripe webhook signature rejected: %v", err)
		return ack()
	}

	event, err := payments.ParseWebhookEvent(payload)
	if err != nil {
		log.Printf("⚠️ Stripe webhook payload unreadable: %v", err)
		return ack()
	}

	switch event.Type {
	case "checkout.session.completed", "checkout.session.expired":
		status := &payments.CheckoutStatus{
			SessionID:     event.Data.Object.ID,
			Status:        event.Data.Object.Status,
			PaymentStatus: event.Data.Object.PaymentStatus,
		}
		if err := services.ApplySessionStatus(status); err != nil {
			log.Printf("🔥 Webhook settlement failed for %s: %v", status.SessionID, err)
		}
	default:
		// Other event types are not ours to handle.
	}

	return ack()
}
