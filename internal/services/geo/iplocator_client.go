package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/skylook/weather-lookup-api/internal/models"
)

// ErrNoPosition is returned when the IP lookup answered without usable
// coordinates.
var ErrNoPosition = errors.New("ip lookup returned no coordinates")

type ipResponse struct {
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	City        string   `json:"city"`
	Region      string   `json:"region"`
	CountryName string   `json:"country_name"`
}

// ClientIPLocator resolves an approximate location from the caller's IP
// via the ipapi.co JSON endpoint.
type ClientIPLocator struct {
	apiURL string
	client HTTPClient
	logger zerolog.Logger
}

func NewClientIPLocator(apiURL string, httpClient HTTPClient, logger zerolog.Logger) *ClientIPLocator {
	return &ClientIPLocator{apiURL: apiURL, client: httpClient, logger: logger}
}

// Locate looks up the location of a specific IP, or of the server itself
// when ip is empty. Missing display fields default to "Unknown".
func (s *ClientIPLocator) Locate(ctx context.Context, ip string) (models.Location, error) {
	reqURL := s.apiURL + "/json/"
	if ip != "" {
		reqURL = fmt.Sprintf("%s/%s/json/", s.apiURL, ip)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return models.Location{}, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Error().Err(err).Msg("error sending IP location request")
		return models.Location{}, err
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			s.logger.Error().Err(cerr).Msg("failed to close response body")
		}
	}()

	if resp.StatusCode != http.StatusOK {
		s.logger.Error().
			Str("status", resp.Status).
			Msg("IP location API returned non-200 status")
		return models.Location{}, fmt.Errorf("ip location error: status %s", resp.Status)
	}

	var raw ipResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		s.logger.Error().Err(err).Msg("failed to decode IP location response")
		return models.Location{}, err
	}

	if raw.Latitude == nil || raw.Longitude == nil {
		return models.Location{}, ErrNoPosition
	}

	return models.Location{
		Latitude:  *raw.Latitude,
		Longitude: *raw.Longitude,
		City:      orUnknown(raw.City),
		Region:    orUnknown(raw.Region),
		Country:   orUnknown(raw.CountryName),
	}, nil
}

func orUnknown(value string) string {
	if value == "" {
		return "Unknown"
	}
	return value
}
