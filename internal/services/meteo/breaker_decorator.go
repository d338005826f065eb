package meteo

import (
	"context"
	"fmt"
	"time"

	"github.com/sony/gobreaker"

	"github.com/skylook/weather-lookup-api/internal/models"
)

type BreakerConfig struct {
	TimeInterval time.Duration
	TimeTimeOut  time.Duration
	RepeatNumber uint32
}

// BreakerClient wraps a forecast client with a circuit breaker so a flaky
// upstream fails fast instead of stacking timeouts.
type BreakerClient struct {
	name    string
	cb      *gobreaker.CircuitBreaker
	wrapped forecastClient
}

func NewBreakerClient(name string, cfg BreakerConfig, wrapped forecastClient) *BreakerClient {
	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    cfg.TimeInterval,
		Timeout:     cfg.TimeTimeOut,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.RepeatNumber
		},
	}
	return &BreakerClient{
		name:    name,
		cb:      gobreaker.NewCircuitBreaker(settings),
		wrapped: wrapped,
	}
}

func (b *BreakerClient) Fetch(
	ctx context.Context,
	lat, lon float64,
	model models.ForecastModel,
) (models.ForecastPayload, error) {
	result, err := b.cb.Execute(func() (interface{}, error) {
		return b.wrapped.Fetch(ctx, lat, lon, model)
	})
	if err != nil {
		return models.ForecastPayload{}, fmt.Errorf("%s unavailable: %w", b.name, err)
	}
	payload, ok := result.(models.ForecastPayload)
	if !ok {
		return models.ForecastPayload{}, fmt.Errorf("%s returned unexpected result", b.name)
	}
	return payload, nil
}
