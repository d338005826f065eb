package decorators

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/skylook/weather-lookup-api/internal/models"
)

type forecastService interface {
	GetByCoordinates(ctx context.Context, lat, lon float64, model models.ForecastModel) (models.ForecastPayload, error)
}

type cacheClient[T any] interface {
	Set(ctx context.Context, key string, value T) error
	Get(ctx context.Context, key string) (T, error)
}

// CachedService short-circuits repeated forecast lookups for the same
// coordinate and model. The TTL is short; this coalesces bursts of
// requests, it is not an offline store.
type CachedService struct {
	inner  forecastService
	cache  cacheClient[models.ForecastPayload]
	logger zerolog.Logger
}

func NewCachedService(
	inner forecastService,
	cache cacheClient[models.ForecastPayload],
	logger zerolog.Logger,
) *CachedService {
	return &CachedService{inner: inner, cache: cache, logger: logger}
}

func (s *CachedService) GetByCoordinates(
	ctx context.Context,
	lat, lon float64,
	model models.ForecastModel,
) (models.ForecastPayload, error) {
	key := forecastKey(lat, lon, model)

	payload, err := s.cache.Get(ctx, key)
	if err == nil {
		s.logger.Debug().
			Ctx(ctx).
			Str("key", key).
			Msg("cache hit")
		return payload, nil
	}
	s.logger.Debug().
		Ctx(ctx).
		Str("key", key).
		Msg("cache miss")

	payload, err = s.inner.GetByCoordinates(ctx, lat, lon, model)
	if err != nil {
		return models.ForecastPayload{}, err
	}

	if err := s.cache.Set(ctx, key, payload); err != nil {
		s.logger.Error().
			Ctx(ctx).
			Str("key", key).
			Err(err).
			Msg("cache set failed")
	}
	return payload, nil
}

// Compare fetches every known model through the cache. Models that fail
// are dropped; at least one must succeed.
func (s *CachedService) Compare(ctx context.Context, lat, lon float64) ([]models.ForecastPayload, error) {
	payloads := make([]models.ForecastPayload, 0, len(models.KnownModels))
	for _, model := range models.KnownModels {
		payload, err := s.GetByCoordinates(ctx, lat, lon, model)
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
		return nil, ErrNoModels
	}
	return payloads, nil
}

func forecastKey(lat, lon float64, model models.ForecastModel) string {
	return fmt.Sprintf("forecast:%.4f:%.4f:%s", lat, lon, model)
}
