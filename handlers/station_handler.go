package handlers

import (
	"github.com/skimonitor/api/database"
	"github.com/skimonitor/api/models"
	"github.com/skimonitor/api/services"
	"github.com/gofiber/fiber/v2"
)

func ListStations(c *fiber.Ctx) error {
	var stations []models.Station
	if err := database.DB.Order("name asc").Find(&stations).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve stations"})
	}
	return c.JSON(stations)
}

func GetStation(c *fiber.Ctx) error {
	stationID := c.Params("stationId")

	var station models.Station
	if err := database.DB.First(&station, "id = ?", stationID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Station not found"})
	}
	return c.JSON(station)
}

// GetStationWeather reports live conditions for a station, falling back to a
// simulated report when the forecast provider is unavailable.
func GetStationWeather(c *fiber.Ctx) error {
	stationID := c.Params("stationId")

	var station models.Station
	if err := database.DB.First(&station, "id = ?", stationID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Station not found"})
	}

	return c.JSON(services.FetchStationWeather(station))
}
