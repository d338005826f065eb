// Package http holds the gin handlers of the lookup API.
package http

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/skylook/weather-lookup-api/internal/models"
	"github.com/skylook/weather-lookup-api/internal/render"
	"github.com/skylook/weather-lookup-api/internal/services/metrics"
)

const timeoutDuration = 10 * time.Second

// sessionHeader carries the caller's session id; optional on every route.
const sessionHeader = "X-Session-ID"

type forecastService interface {
	GetByCoordinates(ctx context.Context, lat, lon float64, model models.ForecastModel) (models.ForecastPayload, error)
	Compare(ctx context.Context, lat, lon float64) ([]models.ForecastPayload, error)
}

type unitsStore interface {
	GetUnits(ctx context.Context, sessionID string) (models.UnitPreference, error)
	SetLastLocation(ctx context.Context, sessionID string, loc models.Location) error
}

// WeatherHandler serves the forecast lookup and model comparison routes.
type WeatherHandler struct {
	service forecastService
	units   unitsStore
	m       *metrics.Metrics
	now     func() time.Time
}

func NewWeatherHandler(svc forecastService, units unitsStore, m *metrics.Metrics) *WeatherHandler {
	return &WeatherHandler{service: svc, units: units, m: m, now: time.Now}
}

// GetWeather handles GET /api/weather?lat=&lon=&model=&temp=&wind=.
func (h *WeatherHandler) GetWeather(c *gin.Context) {
	lat, lon, ok := coordinates(c)
	if !ok {
		return
	}

	model := models.ForecastModel(c.DefaultQuery("model", string(models.ModelBestMatch)))
	if !model.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown forecast model"})
		return
	}

	ctxWithTimeout, cancel := context.WithTimeout(c.Request.Context(), timeoutDuration)
	defer cancel()

	payload, err := h.service.GetByCoordinates(ctxWithTimeout, lat, lon, model)
	if err != nil {
		h.m.ProviderErrorsTotal.WithLabelValues("open-meteo", "fetch_failed").Inc()
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	h.m.ForecastRequestsTotal.WithLabelValues(string(model)).Inc()

	location := locationFromQuery(c, lat, lon)
	prefs := h.resolveUnits(ctxWithTimeout, c)
	h.rememberLocation(ctxWithTimeout, c, location)

	c.JSON(http.StatusOK, render.BuildReport(payload, location, prefs, h.now()))
}

// CompareWeather handles GET /api/weather/compare?lat=&lon= and returns
// one report per forecast model that answered.
func (h *WeatherHandler) CompareWeather(c *gin.Context) {
	lat, lon, ok := coordinates(c)
	if !ok {
		return
	}

	ctxWithTimeout, cancel := context.WithTimeout(c.Request.Context(), timeoutDuration)
	defer cancel()

	payloads, err := h.service.Compare(ctxWithTimeout, lat, lon)
	if err != nil {
		h.m.ProviderErrorsTotal.WithLabelValues("open-meteo", "compare_failed").Inc()
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	location := locationFromQuery(c, lat, lon)
	prefs := h.resolveUnits(ctxWithTimeout, c)
	h.rememberLocation(ctxWithTimeout, c, location)

	now := h.now()
	reports := make([]models.WeatherReport, 0, len(payloads))
	for _, payload := range payloads {
		h.m.ForecastRequestsTotal.WithLabelValues(string(payload.Model)).Inc()
		reports = append(reports, render.BuildReport(payload, location, prefs, now))
	}

	c.JSON(http.StatusOK, gin.H{"reports": reports})
}

// resolveUnits applies precedence: explicit query params beat the stored
// session preference, which beats the defaults. Store failures degrade to
// defaults; a lookup must never fail on preference plumbing.
func (h *WeatherHandler) resolveUnits(ctx context.Context, c *gin.Context) models.UnitPreference {
	prefs := models.DefaultUnits()
	if sessionID := c.GetHeader(sessionHeader); sessionID != "" {
		if stored, err := h.units.GetUnits(ctx, sessionID); err == nil {
			prefs = stored
		}
	}
	if temp := c.Query("temp"); temp != "" {
		prefs.Temperature = models.TemperatureUnit(temp)
	}
	if wind := c.Query("wind"); wind != "" {
		prefs.Wind = models.WindUnit(wind)
	}
	return prefs.Normalize()
}

func (h *WeatherHandler) rememberLocation(ctx context.Context, c *gin.Context, loc models.Location) {
	sessionID := c.GetHeader(sessionHeader)
	if sessionID == "" {
		return
	}
	// best effort; the lookup result does not depend on it
	_ = h.units.SetLastLocation(ctx, sessionID, loc)
}

func coordinates(c *gin.Context) (float64, float64, bool) {
	lat, latErr := strconv.ParseFloat(c.Query("lat"), 64)
	lon, lonErr := strconv.ParseFloat(c.Query("lon"), 64)
	if latErr != nil || lonErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "lat and lon query parameters are required"})
		return 0, 0, false
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "coordinates out of range"})
		return 0, 0, false
	}
	return lat, lon, true
}

func locationFromQuery(c *gin.Context, lat, lon float64) models.Location {
	return models.Location{
		Latitude:  lat,
		Longitude: lon,
		City:      c.Query("city"),
		Region:    c.Query("region"),
		Country:   c.Query("country"),
	}
}
