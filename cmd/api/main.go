package main

import (
	"log"
	"time"

	config "github.com/skimonitor/api/configs"
	"github.com/skimonitor/api/database"
	"github.com/skimonitor/api/jobs"
	"github.com/skimonitor/api/notifications"
	"github.com/skimonitor/api/routes"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/robfig/cron/v3"
)

func main() {
	database.ConnectDB()
	database.Migrate()
	database.SeedAdmin()
	database.SeedStations()
	notifications.InitEmailService()

	c := cron.New()
	c.AddFunc("*/10 * * * *", jobs.SweepStaleCheckouts)
	c.AddFunc("0 18 * * *", jobs.SendLessonReminders)
	go c.Start()
	log.Println("✅ Cron jobs scheduled successfully.")

	app := fiber.New(fiber.Config{
		Prefork:           false,
		AppName:           "SkiMonitor",
		CaseSensitive:     true,
		StrictRouting:     true,
		EnablePrintRoutes: true,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}

			log.Printf("[ERROR] %v | Path: %s | Method: %s", err, c.Path(), c.Method())
			return c.Status(code).JSON(fiber.Map{
				"status":  "error",
				"code":    code,
				"message": err.Error(),
			})
		},
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:     config.Config("FRONTEND_URL"),
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		ExposeHeaders:    "Content-Length, Content-Disposition, Authorization",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "Europe/Paris",
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "success",
			"message": "Welcome to SkiMonitor API",
		})
	})

	routes.AuthRoutes(app)
	routes.StationRoutes(app)
	routes.InstructorRoutes(app)
	routes.LessonRoutes(app)
	routes.BookingRoutes(app)
	routes.PaymentRoutes(app)
	routes.AdminRoutes(app)
	routes.UploadRoutes(app)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
		})
	})

	log.Println("✅ Server is running on port 8080")
	err := app.Listen(":8080")
	if err != nil {
		log.Fatalf("🔥 Server failed to start: %v", err)
	}
}
