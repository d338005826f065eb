package http_test

import (
	"context"
	"encoding/json"
	"errors"
	nethttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	handlers "github.com/skylook/weather-lookup-api/internal/handlers/http"
	"github.com/skylook/weather-lookup-api/internal/models"
	"github.com/skylook/weather-lookup-api/internal/session"
)

type mockSessionStore struct {
	mock.Mock
}

func (m *mockSessionStore) GetUnits(ctx context.Context, sessionID string) (models.UnitPreference, error) {
	args := m.Called(ctx, sessionID)
	prefs, ok := args.Get(0).(models.UnitPreference)
	if !ok {
		return models.UnitPreference{}, args.Error(1)
	}
	return prefs, args.Error(1)
}

func (m *mockSessionStore) SetUnits(ctx context.Context, sessionID string, prefs models.UnitPreference) error {
	args := m.Called(ctx, sessionID, prefs)
	return args.Error(0)
}

func (m *mockSessionStore) GetLastLocation(ctx context.Context, sessionID string) (models.Location, error) {
	args := m.Called(ctx, sessionID)
	location, ok := args.Get(0).(models.Location)
	if !ok {
		return models.Location{}, args.Error(1)
	}
	return location, args.Error(1)
}

func sessionRouter(store *mockSessionStore) *gin.Engine {
	h := handlers.NewSessionHandler(store)
	router := gin.New()
	router.GET("/api/session/:id/units", h.GetUnits)
	router.PUT("/api/session/:id/units", h.PutUnits)
	router.GET("/api/session/:id/location", h.GetLastLocation)
	return router
}

func TestSessionHandler_GetUnits(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		store := &mockSessionStore{}
		store.On("GetUnits", mock.Anything, "sess-1").
			Return(models.UnitPreference{Temperature: models.UnitCelsius, Wind: models.UnitKmh}, nil).Once()

		w := doRequest(sessionRouter(store), nethttp.MethodGet, "/api/session/sess-1/units", nil)

		require.Equal(t, nethttp.StatusOK, w.Code)

		var prefs models.UnitPreference
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &prefs))
		assert.Equal(t, models.UnitCelsius, prefs.Temperature)
	})

	t.Run("StoreFailure", func(t *testing.T) {
		store := &mockSessionStore{}
		store.On("GetUnits", mock.Anything, "sess-1").
			Return(models.UnitPreference{}, errors.New("db locked")).Once()

		w := doRequest(sessionRouter(store), nethttp.MethodGet, "/api/session/sess-1/units", nil)
		assert.Equal(t, nethttp.StatusInternalServerError, w.Code)
	})
}

func TestSessionHandler_PutUnits(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		store := &mockSessionStore{}
		store.On("SetUnits", mock.Anything, "sess-1",
			models.UnitPreference{Temperature: models.UnitCelsius, Wind: models.UnitKmh}).
			Return(nil).Once()

		req := httptest.NewRequest(nethttp.MethodPut, "/api/session/sess-1/units",
			strings.NewReader(`{"temperature": "C", "wind": "kmh"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		sessionRouter(store).ServeHTTP(w, req)

		require.Equal(t, nethttp.StatusOK, w.Code)

		var prefs models.UnitPreference
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &prefs))
		assert.Equal(t, models.UnitCelsius, prefs.Temperature)
		store.AssertExpectations(t)
	})

	t.Run("InvalidBody", func(t *testing.T) {
		req := httptest.NewRequest(nethttp.MethodPut, "/api/session/sess-1/units",
			strings.NewReader(`not json`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		sessionRouter(&mockSessionStore{}).ServeHTTP(w, req)

		assert.Equal(t, nethttp.StatusBadRequest, w.Code)
	})
}

func TestSessionHandler_GetLastLocation(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		store := &mockSessionStore{}
		store.On("GetLastLocation", mock.Anything, "sess-1").
			Return(models.Location{City: "Boston", Latitude: 42.36, Longitude: -71.06}, nil).Once()

		w := doRequest(sessionRouter(store), nethttp.MethodGet, "/api/session/sess-1/location", nil)

		require.Equal(t, nethttp.StatusOK, w.Code)

		var location models.Location
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &location))
		assert.Equal(t, "Boston", location.City)
	})

	t.Run("NoLocationStored", func(t *testing.T) {
		store := &mockSessionStore{}
		store.On("GetLastLocation", mock.Anything, "sess-1").
			Return(models.Location{}, session.ErrNotFound).Once()

		w := doRequest(sessionRouter(store), nethttp.MethodGet, "/api/session/sess-1/location", nil)
		assert.Equal(t, nethttp.StatusNotFound, w.Code)
	})
}
