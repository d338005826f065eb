package http

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skylook/weather-lookup-api/internal/models"
	"github.com/skylook/weather-lookup-api/internal/services/geo"
)

type geoSearcher interface {
	Search(ctx context.Context, name string) ([]models.Location, error)
}

type ipLocator interface {
	Locate(ctx context.Context, ip string) (models.Location, error)
}

// GeoHandler serves location search and IP-based detection.
type GeoHandler struct {
	searcher geoSearcher
	locator  ipLocator
}

func NewGeoHandler(searcher geoSearcher, locator ipLocator) *GeoHandler {
	return &GeoHandler{searcher: searcher, locator: locator}
}

// Geocode handles GET /api/geocode?name=.
func (h *GeoHandler) Geocode(c *gin.Context) {
	name := c.Query("name")
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name query parameter is required"})
		return
	}

	ctxWithTimeout, cancel := context.WithTimeout(c.Request.Context(), timeoutDuration)
	defer cancel()

	locations, err := h.searcher.Search(ctxWithTimeout, name)
	if err != nil {
		if errors.Is(err, geo.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "location not found"})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": locations})
}

// Locate handles GET /api/location: approximate position for the caller's
// IP. Private and loopback addresses fall back to the lookup service's own
// egress IP.
func (h *GeoHandler) Locate(c *gin.Context) {
	ctxWithTimeout, cancel := context.WithTimeout(c.Request.Context(), timeoutDuration)
	defer cancel()

	ip := c.ClientIP()
	if parsed := net.ParseIP(ip); parsed == nil || parsed.IsLoopback() || parsed.IsPrivate() {
		ip = ""
	}

	location, err := h.locator.Locate(ctxWithTimeout, ip)
	if err != nil {
		if errors.Is(err, geo.ErrNoPosition) {
			c.JSON(http.StatusNotFound, gin.H{"error": "could not detect a location for this address"})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, location)
}
