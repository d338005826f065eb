package render_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skylook/weather-lookup-api/internal/forecast"
	"github.com/skylook/weather-lookup-api/internal/models"
	"github.com/skylook/weather-lookup-api/internal/render"
)

func samplePayload(now time.Time, hours int) models.ForecastPayload {
	top := now.Truncate(time.Hour)
	hourly := make([]models.HourlyRecord, 0, hours)
	for i := 0; i < hours; i++ {
		hourly = append(hourly, models.HourlyRecord{
			Timestamp:   top.Add(time.Duration(i) * time.Hour),
			Temperature: 68,
			WeatherCode: 2,
		})
	}
	return models.ForecastPayload{
		Model: models.ModelBestMatch,
		Current: models.CurrentSnapshot{
			Temperature: 68.4,
			Humidity:    55.6,
			WindSpeed:   10,
			WeatherCode: 2,
		},
		Hourly: hourly,
	}
}

func sampleLocation() models.Location {
	return models.Location{Latitude: 42.36, Longitude: -71.06, City: "Boston"}
}

func TestBuildReport_Units(t *testing.T) {
	now := time.Date(2026, 8, 29, 14, 20, 0, 0, time.UTC)

	t.Run("ImperialDefaults", func(t *testing.T) {
		report := render.BuildReport(samplePayload(now, 4), sampleLocation(), models.UnitPreference{}, now)

		assert.Equal(t, "68.4°F", report.Current.Temperature)
		assert.Equal(t, "10.0 mph", report.Current.WindSpeed)
		assert.Equal(t, "56%", report.Current.Humidity)
		assert.Equal(t, models.UnitFahrenheit, report.Units.Temperature)
		assert.Equal(t, models.UnitMph, report.Units.Wind)
	})

	t.Run("MetricConversion", func(t *testing.T) {
		prefs := models.UnitPreference{Temperature: models.UnitCelsius, Wind: models.UnitKmh}
		report := render.BuildReport(samplePayload(now, 4), sampleLocation(), prefs, now)

		assert.Equal(t, "20.2°C", report.Current.Temperature)
		assert.Equal(t, "16.1 km/h", report.Current.WindSpeed)
		// hourly cards round to whole degrees: (68-32)*5/9 = 20
		assert.Equal(t, "20°", report.Hourly[0].Temperature)
	})
}

func TestBuildReport_Hourly(t *testing.T) {
	now := time.Date(2026, 8, 29, 14, 20, 0, 0, time.UTC)

	t.Run("LabelsAndCap", func(t *testing.T) {
		report := render.BuildReport(samplePayload(now, 30), sampleLocation(), models.UnitPreference{}, now)

		require.Len(t, report.Hourly, forecast.DisplayWindowSize)
		assert.Equal(t, "Now", report.Hourly[0].TimeLabel)
		assert.Equal(t, "3PM", report.Hourly[1].TimeLabel)
		assert.Equal(t, "4PM", report.Hourly[2].TimeLabel)
	})

	t.Run("ConditionsResolved", func(t *testing.T) {
		report := render.BuildReport(samplePayload(now, 4), sampleLocation(), models.UnitPreference{}, now)

		assert.Equal(t, "Partly cloudy", report.Current.Conditions)
		assert.Equal(t, "⛅", report.Current.Icon)
	})
}

func TestBuildReport_Alert(t *testing.T) {
	now := time.Date(2026, 8, 29, 14, 20, 0, 0, time.UTC)

	t.Run("NoAlertOnDryWindow", func(t *testing.T) {
		report := render.BuildReport(samplePayload(now, 6), sampleLocation(), models.UnitPreference{}, now)
		assert.Nil(t, report.Alert)
	})

	t.Run("QualifyingSlotProducesAlert", func(t *testing.T) {
		payload := samplePayload(now, 6)
		payload.Hourly[3].WeatherCode = 61
		payload.Hourly[3].PrecipitationProbability = 70
		payload.Hourly[3].PrecipitationAmount = 1.2

		report := render.BuildReport(payload, sampleLocation(), models.UnitPreference{}, now)

		require.NotNil(t, report.Alert)
		assert.Equal(t, models.PrecipRain, report.Alert.Type)
		// slot at 17:00 seen from 14:20
		assert.Equal(t, 160, report.Alert.MinutesUntil)
	})
}
