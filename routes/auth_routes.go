package routes

import (
	"github.com/skimonitor/api/handlers"
	"github.com/skimonitor/api/middleware"
	"github.com/gofiber/fiber/v2"
)

func AuthRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	auth := api.Group("/auth")
	auth.Post("/session", handlers.ProcessSession)
	auth.Post("/login", handlers.LoginUser)
	auth.Post("/logout", handlers.Logout)
	auth.Get("/me", middleware.Protected(), handlers.GetMe)

	profile := api.Group("/profile", middleware.Protected())
	profile.Get("", handlers.GetMe)
	profile.Put("", handlers.UpdateProfile)
}
