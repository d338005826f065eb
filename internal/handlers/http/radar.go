package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skylook/weather-lookup-api/internal/models"
	"github.com/skylook/weather-lookup-api/internal/services/radar"
)

type radarProvider interface {
	Snapshot() (models.RadarIndex, error)
}

// RadarHandler serves the radar overlay frame index.
type RadarHandler struct {
	provider radarProvider
}

func NewRadarHandler(provider radarProvider) *RadarHandler {
	return &RadarHandler{provider: provider}
}

// GetRadar handles GET /api/radar.
func (h *RadarHandler) GetRadar(c *gin.Context) {
	index, err := h.provider.Snapshot()
	if err != nil {
		if errors.Is(err, radar.ErrNotReady) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "radar index not available yet"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, index)
}
