// Package radar serves the animation frame index for the radar overlay.
package radar

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/skylook/weather-lookup-api/internal/models"
)

// HTTPClient is the outbound transport; satisfied by *http.Client and by
// test mocks.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type weatherMapsResponse struct {
	Host  string `json:"host"`
	Radar struct {
		Past    []models.RadarFrame `json:"past"`
		Nowcast []models.RadarFrame `json:"nowcast"`
	} `json:"radar"`
}

// ClientRainViewer fetches the public RainViewer weather-maps index.
type ClientRainViewer struct {
	apiURL string
	client HTTPClient
	logger zerolog.Logger
}

func NewClientRainViewer(apiURL string, httpClient HTTPClient, logger zerolog.Logger) *ClientRainViewer {
	return &ClientRainViewer{apiURL: apiURL, client: httpClient, logger: logger}
}

// FetchIndex retrieves the current frame index.
func (s *ClientRainViewer) FetchIndex(ctx context.Context) (models.RadarIndex, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.apiURL, nil)
	if err != nil {
		return models.RadarIndex{}, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Error().Err(err).Msg("error sending RainViewer request")
		return models.RadarIndex{}, err
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			s.logger.Error().Err(cerr).Msg("failed to close response body")
		}
	}()

	if resp.StatusCode != http.StatusOK {
		s.logger.Error().
			Str("status", resp.Status).
			Msg("RainViewer API returned non-200 status")
		return models.RadarIndex{}, fmt.Errorf("rainviewer error: status %s", resp.Status)
	}

	var raw weatherMapsResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		s.logger.Error().Err(err).Msg("failed to decode RainViewer response")
		return models.RadarIndex{}, err
	}

	return models.RadarIndex{
		Host:    raw.Host,
		Past:    raw.Radar.Past,
		Nowcast: raw.Radar.Nowcast,
	}, nil
}
