package forecast

import (
	"time"

	"github.com/skylook/weather-lookup-api/internal/models"
)

const (
	// scanWindow bounds how many hourly slots the forecaster inspects.
	scanWindow = 12

	// A slot qualifies on probability strictly above this percentage or on
	// amount strictly above this many millimeters.
	probabilityThreshold = 30.0
	amountThreshold      = 0.1

	// maxLeadMinutes caps how far out an alert may point (12 hours).
	maxLeadMinutes = 720
)

var snowCodes = map[int]bool{71: true, 73: true, 75: true, 77: true, 85: true, 86: true}

var freezingCodes = map[int]bool{56: true, 57: true, 66: true, 67: true}

var thunderstormCodes = map[int]bool{95: true, 96: true, 99: true}

// hint pairings the UI uses for the alert banner. Showers shares the rain
// gradient but gets its own glyph.
var typeHints = map[models.PrecipitationType]models.PresentationHint{
	models.PrecipRain:         {Emoji: "🌧️", ColorStart: "#ff6b6b", ColorEnd: "#ee5a6f"},
	models.PrecipShowers:      {Emoji: "🌦️", ColorStart: "#ff6b6b", ColorEnd: "#ee5a6f"},
	models.PrecipSnow:         {Emoji: "❄️", ColorStart: "#64b5f6", ColorEnd: "#42a5f5"},
	models.PrecipFreezingRain: {Emoji: "🧊", ColorStart: "#9575cd", ColorEnd: "#7e57c2"},
	models.PrecipThunderstorm: {Emoji: "⛈️", ColorStart: "#ffa726", ColorEnd: "#ff9800"},
}

// ForecastSoon scans the first 12 records for the earliest slot whose
// precipitation probability or amount crosses the alert threshold and
// returns the classified alert, or nil when nothing qualifies. Earliest
// wins: the scan encodes "first actionable warning", not "worst event".
// Records with no usable timestamp are skipped, never fatal.
func ForecastSoon(records []models.HourlyRecord, now time.Time) *models.PrecipitationAlert {
	limit := len(records)
	if limit > scanWindow {
		limit = scanWindow
	}

	for i := 0; i < limit; i++ {
		rec := records[i]

		if rec.PrecipitationProbability <= probabilityThreshold &&
			rec.PrecipitationAmount <= amountThreshold {
			continue
		}

		if rec.Timestamp.IsZero() {
			continue
		}

		minutes := int(rec.Timestamp.Sub(now).Seconds() / 60)
		// The current hour counts as already happening, not upcoming.
		if minutes <= 0 || minutes > maxLeadMinutes {
			continue
		}

		precipType := classify(rec)
		return &models.PrecipitationAlert{
			MinutesUntil: minutes,
			Probability:  rec.PrecipitationProbability,
			Amount:       rec.PrecipitationAmount,
			Type:         precipType,
			Hint:         typeHints[precipType],
		}
	}
	return nil
}

// classify picks the precipitation type by precedence: snow, freezing rain,
// thunderstorm, showers-vs-rain, then rain. First match wins.
func classify(rec models.HourlyRecord) models.PrecipitationType {
	switch {
	case rec.SnowAmount > 0 || snowCodes[rec.WeatherCode]:
		return models.PrecipSnow
	case freezingCodes[rec.WeatherCode]:
		return models.PrecipFreezingRain
	case thunderstormCodes[rec.WeatherCode]:
		return models.PrecipThunderstorm
	case rec.ShowerAmount > rec.RainAmount:
		return models.PrecipShowers
	default:
		return models.PrecipRain
	}
}
