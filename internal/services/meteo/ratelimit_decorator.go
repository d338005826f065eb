package meteo

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"github.com/skylook/weather-lookup-api/internal/models"
)

// RateLimitedClient throttles outbound forecast calls. Open-Meteo is a
// keyless public API; staying under its fair-use ceiling is on us.
type RateLimitedClient struct {
	wrapped forecastClient
	limiter *rate.Limiter
}

// NewRateLimitedClient wraps a client with a token bucket of rps requests
// per second and the given burst. rps may be fractional.
func NewRateLimitedClient(wrapped forecastClient, rps float64, burst int) *RateLimitedClient {
	return &RateLimitedClient{
		wrapped: wrapped,
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
	}
}

func (r *RateLimitedClient) Fetch(
	ctx context.Context,
	lat, lon float64,
	model models.ForecastModel,
) (models.ForecastPayload, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return models.ForecastPayload{}, fmt.Errorf("rate limit wait canceled: %w", err)
	}
	return r.wrapped.Fetch(ctx, lat, lon, model)
}
