package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skylook/weather-lookup-api/internal/models"
	"github.com/skylook/weather-lookup-api/internal/session"
)

type sessionStore interface {
	GetUnits(ctx context.Context, sessionID string) (models.UnitPreference, error)
	SetUnits(ctx context.Context, sessionID string, prefs models.UnitPreference) error
	GetLastLocation(ctx context.Context, sessionID string) (models.Location, error)
}

// SessionHandler serves the per-session display state routes.
type SessionHandler struct {
	store sessionStore
}

func NewSessionHandler(store sessionStore) *SessionHandler {
	return &SessionHandler{store: store}
}

// GetUnits handles GET /api/session/:id/units.
func (h *SessionHandler) GetUnits(c *gin.Context) {
	ctxWithTimeout, cancel := context.WithTimeout(c.Request.Context(), timeoutDuration)
	defer cancel()

	prefs, err := h.store.GetUnits(ctxWithTimeout, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, prefs)
}

// PutUnits handles PUT /api/session/:id/units with a JSON preference body.
func (h *SessionHandler) PutUnits(c *gin.Context) {
	var prefs models.UnitPreference
	if err := c.ShouldBindJSON(&prefs); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid unit preference body"})
		return
	}

	ctxWithTimeout, cancel := context.WithTimeout(c.Request.Context(), timeoutDuration)
	defer cancel()

	if err := h.store.SetUnits(ctxWithTimeout, c.Param("id"), prefs); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, prefs.Normalize())
}

// GetLastLocation handles GET /api/session/:id/location.
func (h *SessionHandler) GetLastLocation(c *gin.Context) {
	ctxWithTimeout, cancel := context.WithTimeout(c.Request.Context(), timeoutDuration)
	defer cancel()

	location, err := h.store.GetLastLocation(ctxWithTimeout, c.Param("id"))
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no location stored for this session"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, location)
}
