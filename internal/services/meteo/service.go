package meteo

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/skylook/weather-lookup-api/internal/models"
)

// ErrNoForecast is returned when no model produced a usable payload.
var ErrNoForecast = errors.New("no forecast model returned data")

type forecastClient interface {
	Fetch(ctx context.Context, lat, lon float64, model models.ForecastModel) (models.ForecastPayload, error)
}

// Service fronts the forecast client: single-model lookups and the
// model-comparison fan-out. Comparison degrades per model; a model that
// fails is dropped from the result rather than failing the whole request.
type Service struct {
	client forecastClient
	logger zerolog.Logger
}

// NewService constructs a forecast service around one provider client.
func NewService(logger zerolog.Logger, client forecastClient) *Service {
	return &Service{client: client, logger: logger.With().Str("component", "MeteoService").Logger()}
}

// GetByCoordinates fetches one model's forecast for a coordinate.
func (s *Service) GetByCoordinates(
	ctx context.Context,
	lat, lon float64,
	model models.ForecastModel,
) (models.ForecastPayload, error) {
	if !model.Valid() {
		model = models.ModelBestMatch
	}
	return s.client.Fetch(ctx, lat, lon, model)
}

// Compare fetches every known model for a coordinate. At least one model
// must succeed; failed models are logged and skipped.
func (s *Service) Compare(ctx context.Context, lat, lon float64) ([]models.ForecastPayload, error) {
	payloads := make([]models.ForecastPayload, 0, len(models.KnownModels))
	for _, model := range models.KnownModels {
		payload, err := s.client.Fetch(ctx, lat, lon, model)
		if err != nil {
			s.logger.Warn().
				Err(err).
				Str("model", string(model)).
				Msg("model fetch failed, dropping from comparison")
			continue
		}
		payloads = append(payloads, payload)
	}
	if len(payloads) == 0 {
		return nil, ErrNoForecast
	}
	return payloads, nil
}
