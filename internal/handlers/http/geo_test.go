package http_test

import (
	"context"
	"encoding/json"
	"errors"
	nethttp "net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	handlers "github.com/skylook/weather-lookup-api/internal/handlers/http"
	"github.com/skylook/weather-lookup-api/internal/models"
	"github.com/skylook/weather-lookup-api/internal/services/geo"
)

type mockSearcher struct {
	mock.Mock
}

func (m *mockSearcher) Search(ctx context.Context, name string) ([]models.Location, error) {
	args := m.Called(ctx, name)
	locations, ok := args.Get(0).([]models.Location)
	if !ok {
		return nil, args.Error(1)
	}
	return locations, args.Error(1)
}

type mockLocator struct {
	mock.Mock
}

func (m *mockLocator) Locate(ctx context.Context, ip string) (models.Location, error) {
	args := m.Called(ctx, ip)
	location, ok := args.Get(0).(models.Location)
	if !ok {
		return models.Location{}, args.Error(1)
	}
	return location, args.Error(1)
}

func geoRouter(searcher *mockSearcher, locator *mockLocator) *gin.Engine {
	h := handlers.NewGeoHandler(searcher, locator)
	router := gin.New()
	router.GET("/api/geocode", h.Geocode)
	router.GET("/api/location", h.Locate)
	return router
}

func TestGeoHandler_Geocode(t *testing.T) {
	boston := models.Location{Latitude: 42.3584, Longitude: -71.0598, City: "Boston"}

	t.Run("Success", func(t *testing.T) {
		searcher := &mockSearcher{}
		searcher.On("Search", mock.Anything, "Boston").
			Return([]models.Location{boston}, nil).Once()

		w := doRequest(geoRouter(searcher, &mockLocator{}), nethttp.MethodGet,
			"/api/geocode?name=Boston", nil)

		require.Equal(t, nethttp.StatusOK, w.Code)

		var body struct {
			Results []models.Location `json:"results"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		require.Len(t, body.Results, 1)
		assert.Equal(t, "Boston", body.Results[0].City)
	})

	t.Run("MissingName", func(t *testing.T) {
		w := doRequest(geoRouter(&mockSearcher{}, &mockLocator{}), nethttp.MethodGet,
			"/api/geocode", nil)
		assert.Equal(t, nethttp.StatusBadRequest, w.Code)
	})

	t.Run("NotFound", func(t *testing.T) {
		searcher := &mockSearcher{}
		searcher.On("Search", mock.Anything, "Nowhereville").
			Return(nil, geo.ErrNotFound).Once()

		w := doRequest(geoRouter(searcher, &mockLocator{}), nethttp.MethodGet,
			"/api/geocode?name=Nowhereville", nil)
		assert.Equal(t, nethttp.StatusNotFound, w.Code)
	})

	t.Run("UpstreamFailure", func(t *testing.T) {
		searcher := &mockSearcher{}
		searcher.On("Search", mock.Anything, "Boston").
			Return(nil, errors.New("upstream down")).Once()

		w := doRequest(geoRouter(searcher, &mockLocator{}), nethttp.MethodGet,
			"/api/geocode?name=Boston", nil)
		assert.Equal(t, nethttp.StatusBadGateway, w.Code)
	})
}

func TestGeoHandler_Locate(t *testing.T) {
	t.Run("PassesClientIPThrough", func(t *testing.T) {
		locator := &mockLocator{}
		// httptest requests arrive from 192.0.2.1, which is neither private
		// nor loopback, so the handler forwards it as-is
		locator.On("Locate", mock.Anything, "192.0.2.1").
			Return(models.Location{City: "Boston"}, nil).Once()

		w := doRequest(geoRouter(&mockSearcher{}, locator), nethttp.MethodGet,
			"/api/location", nil)

		require.Equal(t, nethttp.StatusOK, w.Code)

		var location models.Location
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &location))
		assert.Equal(t, "Boston", location.City)
	})

	t.Run("NoPosition", func(t *testing.T) {
		locator := &mockLocator{}
		locator.On("Locate", mock.Anything, mock.Anything).
			Return(models.Location{}, geo.ErrNoPosition).Once()

		w := doRequest(geoRouter(&mockSearcher{}, locator), nethttp.MethodGet,
			"/api/location", nil)
		assert.Equal(t, nethttp.StatusNotFound, w.Code)
	})

	t.Run("UpstreamFailure", func(t *testing.T) {
		locator := &mockLocator{}
		locator.On("Locate", mock.Anything, mock.Anything).
			Return(models.Location{}, errors.New("upstream down")).Once()

		w := doRequest(geoRouter(&mockSearcher{}, locator), nethttp.MethodGet,
			"/api/location", nil)
		assert.Equal(t, nethttp.StatusBadGateway, w.Code)
	})
}
