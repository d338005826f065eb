package meteo_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/skylook/weather-lookup-api/internal/models"
	"github.com/skylook/weather-lookup-api/internal/services/meteo"
)

var breakerCfg = meteo.BreakerConfig{
	TimeInterval: 30 * time.Second,
	TimeTimeOut:  15 * time.Second,
	RepeatNumber: 3,
}

type mockWrapped struct {
	mock.Mock
}

func (m *mockWrapped) Fetch(
	ctx context.Context,
	lat, lon float64,
	model models.ForecastModel,
) (models.ForecastPayload, error) {
	args := m.Called(ctx, lat, lon, model)
	payload, ok := args.Get(0).(models.ForecastPayload)
	if !ok {
		return models.ForecastPayload{}, args.Error(1)
	}
	return payload, args.Error(1)
}

func TestBreakerClient_Success(t *testing.T) {
	wrapped := new(mockWrapped)
	expected := models.ForecastPayload{Model: models.ModelBestMatch}

	wrapped.
		On("Fetch", mock.Anything, 1.0, 2.0, models.ModelBestMatch).
		Return(expected, nil).
		Once()

	bc := meteo.NewBreakerClient("TestAPI", breakerCfg, wrapped)

	payload, err := bc.Fetch(context.Background(), 1.0, 2.0, models.ModelBestMatch)
	assert.NoError(t, err)
	assert.Equal(t, expected, payload)

	wrapped.AssertExpectations(t)
}

func TestBreakerClient_TripsAfterConsecutiveFailures(t *testing.T) {
	wrapped := new(mockWrapped)
	wrapped.
		On("Fetch", mock.Anything, 1.0, 2.0, models.ModelBestMatch).
		Return(models.ForecastPayload{}, errors.New("boom")).
		Times(int(breakerCfg.RepeatNumber))

	bc := meteo.NewBreakerClient("TestAPI", breakerCfg, wrapped)

	for i := uint32(0); i < breakerCfg.RepeatNumber; i++ {
		_, err := bc.Fetch(context.Background(), 1.0, 2.0, models.ModelBestMatch)
		assert.Error(t, err)
	}

	// breaker is now open; the wrapped client must not be called again
	_, err := bc.Fetch(context.Background(), 1.0, 2.0, models.ModelBestMatch)
	assert.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "TestAPI unavailable"))

	wrapped.AssertNumberOfCalls(t, "Fetch", int(breakerCfg.RepeatNumber))
}
