package routes

import (
	"github.com/skimonitor/api/handlers"
	"github.com/skimonitor/api/middleware"
	"github.com/gofiber/fiber/v2"
)

func PaymentRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	payments := api.Group("/payments")
	payments.Post("/checkout", middleware.Protected(), handlers.CreateCheckout)
	payments.Get("/status/:sessionId", middleware.Protected(), handlers.GetPaymentStatus)

	// Webhook is authenticated by its signature, not a session.
	api.Post("/webhook/stripe", handlers.StripeWebhook)
}
