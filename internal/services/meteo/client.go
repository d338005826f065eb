// Package meteo talks to the Open-Meteo forecast API and normalizes its
// responses into the payload shape the interpretation core consumes.
package meteo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/skylook/weather-lookup-api/internal/models"
)

// HTTPClient is the outbound transport; satisfied by *http.Client and by
// test mocks.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

const (
	currentFields = "temperature_2m,relative_humidity_2m,wind_speed_10m,weather_code"
	hourlyFields  = "temperature_2m,precipitation_probability,precipitation,weather_code,rain,showers,snowfall"
)

// apiResponse mirrors the Open-Meteo forecast JSON. Hourly arrays are
// index-aligned; the probability array may carry nulls.
type apiResponse struct {
	UTCOffsetSeconds int `json:"utc_offset_seconds"`
	Current          struct {
		Temperature float64 `json:"temperature_2m"`
		Humidity    float64 `json:"relative_humidity_2m"`
		WindSpeed   float64 `json:"wind_speed_10m"`
		WeatherCode int     `json:"weather_code"`
	} `json:"current"`
	Hourly struct {
		Time                     []string   `json:"time"`
		Temperature              []float64  `json:"temperature_2m"`
		PrecipitationProbability []*float64 `json:"precipitation_probability"`
		Precipitation            []*float64 `json:"precipitation"`
		WeatherCode              []int      `json:"weather_code"`
		Rain                     []*float64 `json:"rain"`
		Showers                  []*float64 `json:"showers"`
		Snowfall                 []*float64 `json:"snowfall"`
	} `json:"hourly"`
}

// ClientOpenMeteo fetches forecasts from the Open-Meteo API. The API is
// keyless; only the base URL is configurable.
type ClientOpenMeteo struct {
	apiURL string
	client HTTPClient
	logger zerolog.Logger
}

// NewClientOpenMeteo constructs a new Open-Meteo forecast client.
func NewClientOpenMeteo(apiURL string, httpClient HTTPClient, logger zerolog.Logger) *ClientOpenMeteo {
	return &ClientOpenMeteo{apiURL: apiURL, client: httpClient, logger: logger}
}

// Fetch retrieves the forecast payload for a coordinate from one model.
// Temperatures come back in fahrenheit and wind in mph; unit conversion is
// the render layer's job.
func (s *ClientOpenMeteo) Fetch(
	ctx context.Context,
	lat, lon float64,
	model models.ForecastModel,
) (models.ForecastPayload, error) {
	start := time.Now()

	params := url.Values{}
	params.Set("latitude", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("longitude", strconv.FormatFloat(lon, 'f', -1, 64))
	params.Set("current", currentFields)
	params.Set("hourly", hourlyFields)
	params.Set("temperature_unit", "fahrenheit")
	params.Set("wind_speed_unit", "mph")
	params.Set("forecast_days", "1")
	params.Set("timezone", "auto")
	if model != models.ModelBestMatch {
		params.Set("models", string(model))
	}
	reqURL := s.apiURL + "?" + params.Encode()

	s.logger.Debug().
		Float64("lat", lat).
		Float64("lon", lon).
		Str("model", string(model)).
		Msg("starting Open-Meteo forecast request")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		s.logger.Error().Err(err).Str("url", reqURL).Msg("failed to create HTTP request")
		return models.ForecastPayload{}, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Error().Err(err).Str("url", reqURL).Msg("error sending HTTP request to Open-Meteo")
		return models.ForecastPayload{}, err
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			s.logger.Error().Err(cerr).Msg("failed to close response body")
		}
	}()

	if resp.StatusCode != http.StatusOK {
		s.logger.Error().
			Str("status", resp.Status).
			Str("model", string(model)).
			Msg("Open-Meteo API returned non-200 status")
		return models.ForecastPayload{}, fmt.Errorf("open-meteo error: status %s", resp.Status)
	}

	var raw apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		s.logger.Error().Err(err).Msg("failed to decode Open-Meteo response")
		return models.ForecastPayload{}, err
	}

	payload := normalize(raw, model, s.logger)

	s.logger.Info().
		Str("model", string(model)).
		Int("hourly_records", len(payload.Hourly)).
		Dur("duration_ms", time.Since(start)).
		Msg("successfully fetched forecast")

	return payload, nil
}
