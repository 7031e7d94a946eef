package services_test

import (
	"testing"
	"time"

	"github.com/skimonitor/api/models"
	"github.com/skimonitor/api/services"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestSimulateStationWeatherIsDeterministic(t *testing.T) {
	station := models.Station{ID: uuid.New(), Name: "Val Thorens", Altitude: 2300}
	at := time.Date(2026, 1, 15, 9, 30, 0, 0, time.UTC)

	first := services.SimulateStationWeather(station, at)
	second := services.SimulateStationWeather(station, at)

	require.Equal(t, first, second)
	require.Equal(t, "simulated", first.Source)
	require.Equal(t, "Val Thorens", first.StationName)
}

func TestSimulateStationWeatherIgnoresTimeOfDay(t *testing.T) {
	station := models.Station{ID: uuid.New(), Name: "Chamonix", Altitude: 1035}
	morning := time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC)
	evening := time.Date(2026, 2, 1, 19, 45, 0, 0, time.UTC)

	require.Equal(t,
		services.SimulateStationWeather(station, morning),
		services.SimulateStationWeather(station, evening))
}

func TestSimulateStationWeatherBounds(t *testing.T) {
	at := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	stations := []models.Station{
		{ID: uuid.New(), Name: "Les Gets", Altitude: 1172},
		{ID: uuid.New(), Name: "Tignes", Altitude: 2100},
		{ID: uuid.New(), Name: "La Clusaz", Altitude: 1040},
	}

	for _, station := range stations {
		report := services.SimulateStationWeather(station, at)

		require.GreaterOrEqual(t, report.WindSpeed, 0.0)
		require.Less(t, report.WindSpeed, 41.0)
		require.GreaterOrEqual(t, report.SnowfallCm, 0.0)
		require.NotEmpty(t, report.Condition)
		if report.SnowfallCm > 0 {
			require.Contains(t, []string{"snow", "snow showers"}, report.Condition)
		}
	}
}
