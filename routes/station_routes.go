package routes

import (
	"github.com/skimonitor/api/handlers"
	"github.com/gofiber/fiber/v2"
)

func StationRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	stations := api.Group("/stations")
	stations.Get("", handlers.ListStations)
	stations.Get("/:stationId", handlers.GetStation)
	stations.Get("/:stationId/weather", handlers.GetStationWeather)
}
