package http_test

import (
	"encoding/json"
	"errors"
	nethttp "net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	handlers "github.com/skylook/weather-lookup-api/internal/handlers/http"
	"github.com/skylook/weather-lookup-api/internal/models"
	"github.com/skylook/weather-lookup-api/internal/services/radar"
)

type stubRadarProvider struct {
	index models.RadarIndex
	err   error
}

func (s *stubRadarProvider) Snapshot() (models.RadarIndex, error) {
	return s.index, s.err
}

func radarRouter(provider *stubRadarProvider) *gin.Engine {
	h := handlers.NewRadarHandler(provider)
	router := gin.New()
	router.GET("/api/radar", h.GetRadar)
	return router
}

func TestRadarHandler_GetRadar(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		provider := &stubRadarProvider{index: models.RadarIndex{
			Host: "https://tilecache.rainviewer.com",
			Past: []models.RadarFrame{{Time: 1756400400, Path: "/v2/radar/1756400400"}},
		}}

		w := doRequest(radarRouter(provider), nethttp.MethodGet, "/api/radar", nil)

		require.Equal(t, nethttp.StatusOK, w.Code)

		var index models.RadarIndex
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &index))
		assert.Equal(t, "https://tilecache.rainviewer.com", index.Host)
		assert.Len(t, index.Past, 1)
	})

	t.Run("NotReady", func(t *testing.T) {
		provider := &stubRadarProvider{err: radar.ErrNotReady}

		w := doRequest(radarRouter(provider), nethttp.MethodGet, "/api/radar", nil)
		assert.Equal(t, nethttp.StatusServiceUnavailable, w.Code)
	})

	t.Run("SnapshotFailure", func(t *testing.T) {
		provider := &stubRadarProvider{err: errors.New("corrupt index")}

		w := doRequest(radarRouter(provider), nethttp.MethodGet, "/api/radar", nil)
		assert.Equal(t, nethttp.StatusInternalServerError, w.Code)
	})
}
