package routes

import (
	"github.com/skimonitor/api/handlers"
	"github.com/skimonitor/api/middleware"
	"github.com/gofiber/fiber/v2"
)

func BookingRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	bookings := api.Group("/bookings", middleware.Protected())
	bookings.Get("", handlers.GetMyBookings)
	bookings.Post("", handlers.CreateBooking)
	bookings.Delete("/:bookingId", handlers.CancelBooking)

	reviews := api.Group("/reviews", middleware.Protected())
	reviews.Post("", handlers.CreateReview)
}
