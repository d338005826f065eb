// Package geo resolves place names and caller IPs into coordinates.
package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog"

	"github.com/skylook/weather-lookup-api/internal/models"
)

// ErrNotFound is returned when a search yields no locations.
var ErrNotFound = errors.New("location not found")

// HTTPClient is the outbound transport; satisfied by *http.Client and by
// test mocks.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

const maxResults = 5

type geocodingResponse struct {
	Results []struct {
		Name      string  `json:"name"`
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
		Admin1    string  `json:"admin1"`
		Country   string  `json:"country"`
	} `json:"results"`
}

// ClientGeocoding searches the Open-Meteo geocoding API by place name.
type ClientGeocoding struct {
	apiURL string
	client HTTPClient
	logger zerolog.Logger
}

func NewClientGeocoding(apiURL string, httpClient HTTPClient, logger zerolog.Logger) *ClientGeocoding {
	return &ClientGeocoding{apiURL: apiURL, client: httpClient, logger: logger}
}

// Search returns up to five candidate locations for a name. A "City,
// Country" query that matches nothing is retried with just the city part
// before giving up.
func (s *ClientGeocoding) Search(ctx context.Context, name string) ([]models.Location, error) {
	locations, err := s.search(ctx, name)
	if err != nil {
		return nil, err
	}
	if len(locations) == 0 && strings.Contains(name, ",") {
		cityOnly := strings.TrimSpace(strings.SplitN(name, ",", 2)[0])
		s.logger.Debug().
			Str("query", name).
			Str("retry", cityOnly).
			Msg("full query matched nothing, retrying with city name only")
		locations, err = s.search(ctx, cityOnly)
		if err != nil {
			return nil, err
		}
	}
	if len(locations) == 0 {
		return nil, ErrNotFound
	}
	return locations, nil
}

func (s *ClientGeocoding) search(ctx context.Context, name string) ([]models.Location, error) {
	params := url.Values{}
	params.Set("name", name)
	params.Set("count", fmt.Sprint(maxResults))
	params.Set("language", "en")
	params.Set("format", "json")
	reqURL := s.apiURL + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Error().Err(err).Str("query", name).Msg("error sending geocoding request")
		return nil, err
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			s.logger.Error().Err(cerr).Msg("failed to close response body")
		}
	}()

	if resp.StatusCode != http.StatusOK {
		s.logger.Error().
			Str("query", name).
			Str("status", resp.Status).
			Msg("geocoding API returned non-200 status")
		return nil, fmt.Errorf("geocoding error: status %s", resp.Status)
	}

	var raw geocodingResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		s.logger.Error().Err(err).Str("query", name).Msg("failed to decode geocoding response")
		return nil, err
	}

	locations := make([]models.Location, 0, len(raw.Results))
	for _, r := range raw.Results {
		locations = append(locations, models.Location{
			Latitude:  r.Latitude,
			Longitude: r.Longitude,
			City:      r.Name,
			Region:    r.Admin1,
			Country:   r.Country,
		})
	}
	return locations, nil
}
