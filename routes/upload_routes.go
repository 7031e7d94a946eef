package routes

import (
	"github.com/skimonitor/api/handlers"
	"github.com/skimonitor/api/middleware"
	"github.com/gofiber/fiber/v2"
)

func UploadRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	api.Post("/uploads/signature", middleware.Protected(), handlers.GenerateUploadSignature)
}
