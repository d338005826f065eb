// Package session persists per-session display state: the unit preference
// and the last resolved location. The interpretation core never touches
// this; preferences are loaded here and passed in explicitly.
package session

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/skylook/weather-lookup-api/internal/models"
)

// ErrNotFound is returned when a session id has no stored state.
var ErrNotFound = errors.New("session not found")

// Repository stores session state in SQLite.
type Repository struct {
	DB  *sql.DB
	log zerolog.Logger
}

// NewRepository constructs a repository with logger context.
func NewRepository(db *sql.DB, logger zerolog.Logger) *Repository {
	logger = logger.With().Str("component", "SessionRepository").Logger()
	return &Repository{DB: db, log: logger}
}

// GetUnits loads a session's unit preference. An unknown session gets the
// defaults rather than an error; only storage failures surface.
func (r *Repository) GetUnits(ctx context.Context, sessionID string) (models.UnitPreference, error) {
	var prefs models.UnitPreference
	err := r.DB.QueryRowContext(ctx,
		`SELECT temp_unit, wind_unit FROM sessions WHERE id = ?`,
		sessionID,
	).Scan(&prefs.Temperature, &prefs.Wind)
	if errors.Is(err, sql.ErrNoRows) {
		return models.DefaultUnits(), nil
	}
	if err != nil {
		r.log.Error().Err(err).Ctx(ctx).
			Str("session_id", sessionID).
			Msg("failed to query unit preference")
		return models.UnitPreference{}, err
	}
	return prefs.Normalize(), nil
}

// SetUnits upserts a session's unit preference.
func (r *Repository) SetUnits(ctx context.Context, sessionID string, prefs models.UnitPreference) error {
	start := time.Now()
	prefs = prefs.Normalize()

	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO sessions (id, temp_unit, wind_unit, updated_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		    temp_unit = excluded.temp_unit,
		    wind_unit = excluded.wind_unit,
		    updated_at = excluded.updated_at`,
		sessionID, prefs.Temperature, prefs.Wind, time.Now(),
	)
	if err != nil {
		r.log.Error().Err(err).Ctx(ctx).
			Str("session_id", sessionID).
			Msg("failed to upsert unit preference")
		return err
	}

	r.log.Info().Ctx(ctx).
		Str("session_id", sessionID).
		Str("temp_unit", string(prefs.Temperature)).
		Str("wind_unit", string(prefs.Wind)).
		Dur("duration", time.Since(start)).
		Msg("unit preference saved")
	return nil
}

// SetLastLocation records the location a session most recently viewed.
func (r *Repository) SetLastLocation(ctx context.Context, sessionID string, loc models.Location) error {
	prefs := models.DefaultUnits()
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO sessions
		    (id, temp_unit, wind_unit, last_city, last_region, last_country,
		     last_latitude, last_longitude, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		    last_city = excluded.last_city,
		    last_region = excluded.last_region,
		    last_country = excluded.last_country,
		    last_latitude = excluded.last_latitude,
		    last_longitude = excluded.last_longitude,
		    updated_at = excluded.updated_at`,
		sessionID, prefs.Temperature, prefs.Wind,
		loc.City, loc.Region, loc.Country, loc.Latitude, loc.Longitude, time.Now(),
	)
	if err != nil {
		r.log.Error().Err(err).Ctx(ctx).
			Str("session_id", sessionID).
			Str("city", loc.City).
			Msg("failed to record last location")
		return err
	}

	r.log.Debug().Ctx(ctx).
		Str("session_id", sessionID).
		Str("city", loc.City).
		Msg("last location recorded")
	return nil
}

// GetLastLocation loads the location a session most recently viewed.
// Returns ErrNotFound when the session never viewed one.
func (r *Repository) GetLastLocation(ctx context.Context, sessionID string) (models.Location, error) {
	var loc models.Location
	err := r.DB.QueryRowContext(ctx,
		`SELECT last_city, last_region, last_country, last_latitude, last_longitude
		 FROM sessions WHERE id = ?`,
		sessionID,
	).Scan(&loc.City, &loc.Region, &loc.Country, &loc.Latitude, &loc.Longitude)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Location{}, ErrNotFound
	}
	if err != nil {
		r.log.Error().Err(err).Ctx(ctx).
			Str("session_id", sessionID).
			Msg("failed to query last location")
		return models.Location{}, err
	}
	if loc.City == "" && loc.Latitude == 0 && loc.Longitude == 0 {
		return models.Location{}, ErrNotFound
	}
	return loc, nil
}
