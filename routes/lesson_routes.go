package routes

import (
	"github.com/skimonitor/api/handlers"
	"github.com/skimonitor/api/middleware"
	"github.com/gofiber/fiber/v2"
)

func LessonRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	lessons := api.Group("/lessons")
	lessons.Get("", handlers.ListLessons)
	lessons.Get("/:lessonId", handlers.GetLesson)
	lessons.Post("", middleware.Protected(), middleware.InstructorRequired(), handlers.CreateLesson)
	lessons.Delete("/:lessonId", middleware.Protected(), middleware.InstructorRequired(), handlers.CancelLesson)
}
