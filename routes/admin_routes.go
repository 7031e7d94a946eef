package routes

import (
	"github.com/skimonitor/api/handlers"
	"github.com/skimonitor/api/middleware"
	"github.com/gofiber/fiber/v2"
)

func AdminRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	admin := api.Group("/admin", middleware.Protected(), middleware.AdminRequired())
	admin.Get("/stats", handlers.GetAdminStats)
	admin.Get("/instructors/pending", handlers.GetPendingInstructors)
	admin.Put("/instructors/:instructorId/status", handlers.UpdateInstructorStatus)
	admin.Get("/transactions", handlers.GetTransactions)
	admin.Get("/transactions/export", handlers.ExportTransactions)
}
