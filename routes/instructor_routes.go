package routes

import (
	"github.com/skimonitor/api/handlers"
	"github.com/skimonitor/api/middleware"
	"github.com/gofiber/fiber/v2"
)

func InstructorRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	instructors := api.Group("/instructors")
	instructors.Get("", handlers.ListInstructors)
	instructors.Post("", middleware.Protected(), handlers.CreateInstructor)
	instructors.Get("/:instructorId", handlers.GetInstructor)
	instructors.Put("/:instructorId", middleware.Protected(), handlers.UpdateInstructor)
	instructors.Get("/:instructorId/rating", handlers.GetInstructorRating)
	instructors.Get("/:instructorId/reviews", handlers.GetInstructorReviews)

	me := api.Group("/instructor", middleware.Protected(), middleware.InstructorRequired())
	me.Get("/earnings", handlers.GetInstructorEarnings)
	me.Get("/transactions/export", handlers.ExportMyTransactions)
	me.Get("/lessons", handlers.GetMyLessons)
}
