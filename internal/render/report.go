// Package render assembles presentation-ready weather reports from
// normalized payloads. Display rounding happens here and only here; the
// interpretation core passes through full precision.
package render

import (
	"fmt"
	"time"

	"github.com/skylook/weather-lookup-api/internal/forecast"
	"github.com/skylook/weather-lookup-api/internal/models"
)

// BuildReport runs one payload through the interpretation core and formats
// the result for display: current conditions in the preferred units, the
// optional precipitation alert, and the hourly strip.
func BuildReport(
	payload models.ForecastPayload,
	location models.Location,
	prefs models.UnitPreference,
	now time.Time,
) models.WeatherReport {
	prefs = prefs.Normalize()

	window := forecast.SelectWindow(payload.Hourly, now, forecast.DisplayWindowSize)
	alert := forecast.ForecastSoon(window, now)
	cond := forecast.Resolve(payload.Current.WeatherCode)

	return models.WeatherReport{
		Model:    payload.Model,
		Location: location,
		Current: models.CurrentDisplay{
			Temperature: formatTemperature(payload.Current.Temperature, prefs.Temperature),
			Conditions:  cond.Label,
			Icon:        cond.Icon,
			Humidity:    fmt.Sprintf("%.0f%%", payload.Current.Humidity),
			WindSpeed:   formatWind(payload.Current.WindSpeed, prefs.Wind),
		},
		Alert:  alert,
		Hourly: buildHourly(window, prefs),
		Units:  prefs,
	}
}

func buildHourly(window []models.HourlyRecord, prefs models.UnitPreference) []models.HourlyDisplay {
	cards := make([]models.HourlyDisplay, 0, len(window))
	for i, rec := range window {
		cond := forecast.Resolve(rec.WeatherCode)

		temp := rec.Temperature
		if prefs.Temperature == models.UnitCelsius {
			temp = forecast.ToCelsius(temp)
		}

		cards = append(cards, models.HourlyDisplay{
			TimeLabel:   timeLabel(rec.Timestamp, i == 0),
			Temperature: fmt.Sprintf("%.0f°", temp),
			Icon:        cond.Icon,
			PrecipProb:  rec.PrecipitationProbability,
		})
	}
	return cards
}

// timeLabel renders the slot label the hourly strip shows: "Now" for the
// leading slot, otherwise a compact 12-hour label like "2PM".
func timeLabel(ts time.Time, first bool) string {
	if first {
		return "Now"
	}
	if ts.IsZero() {
		return "-"
	}
	return ts.Format("3PM")
}

func formatTemperature(fahrenheit float64, unit models.TemperatureUnit) string {
	if unit == models.UnitCelsius {
		return fmt.Sprintf("%.1f°C", forecast.ToCelsius(fahrenheit))
	}
	return fmt.Sprintf("%.1f°F", fahrenheit)
}

func formatWind(mph float64, unit models.WindUnit) string {
	if unit == models.UnitKmh {
		return fmt.Sprintf("%.1f km/h", forecast.ToKmh(mph))
	}
	return fmt.Sprintf("%.1f mph", mph)
}
