package meteo

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/skylook/weather-lookup-api/internal/models"
)

// localTimeLayout is what Open-Meteo emits with timezone=auto: a naive
// local timestamp whose offset is carried separately in the payload.
const localTimeLayout = "2006-01-02T15:04"

// normalize flattens the column-oriented hourly arrays into records. This
// is the single place timestamps get parsed; downstream code only ever
// sees fully-specified instants. A slot whose timestamp cannot be parsed
// keeps a zero Timestamp and is skipped by the interpreter. Short arrays
// mean trailing values are absent, not broken.
func normalize(raw apiResponse, model models.ForecastModel, logger zerolog.Logger) models.ForecastPayload {
	zone := time.UTC
	if raw.UTCOffsetSeconds != 0 {
		zone = time.FixedZone("forecast", raw.UTCOffsetSeconds)
	}

	records := make([]models.HourlyRecord, len(raw.Hourly.Time))
	for i, ts := range raw.Hourly.Time {
		rec := models.HourlyRecord{
			Timestamp:                parseSlotTime(ts, zone),
			Temperature:              floatAt(raw.Hourly.Temperature, i),
			WeatherCode:              intAt(raw.Hourly.WeatherCode, i),
			PrecipitationProbability: optionalAt(raw.Hourly.PrecipitationProbability, i),
			PrecipitationAmount:      optionalAt(raw.Hourly.Precipitation, i),
			RainAmount:               optionalAt(raw.Hourly.Rain, i),
			ShowerAmount:             optionalAt(raw.Hourly.Showers, i),
			SnowAmount:               optionalAt(raw.Hourly.Snowfall, i),
		}
		if rec.Timestamp.IsZero() {
			logger.Warn().Str("time", ts).Msg("unparseable hourly timestamp, slot will be skipped")
		}
		records[i] = rec
	}

	return models.ForecastPayload{
		Model: model,
		Current: models.CurrentSnapshot{
			Temperature: raw.Current.Temperature,
			Humidity:    raw.Current.Humidity,
			WindSpeed:   raw.Current.WindSpeed,
			WeatherCode: raw.Current.WeatherCode,
		},
		Hourly: records,
	}
}

// parseSlotTime accepts either a full RFC 3339 instant or the naive local
// layout, interpreted in the payload's own zone. It never reinterprets an
// explicit offset.
func parseSlotTime(value string, zone *time.Location) time.Time {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t
	}
	if t, err := time.ParseInLocation(localTimeLayout, value, zone); err == nil {
		return t
	}
	return time.Time{}
}

func floatAt(values []float64, i int) float64 {
	if i >= len(values) {
		return 0
	}
	return values[i]
}

func intAt(values []int, i int) int {
	if i >= len(values) {
		return 0
	}
	return values[i]
}

func optionalAt(values []*float64, i int) float64 {
	if i >= len(values) || values[i] == nil {
		return 0
	}
	return *values[i]
}
