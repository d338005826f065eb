package radar

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/skylook/weather-lookup-api/internal/models"
)

// ErrNotReady is returned before the first successful index fetch.
var ErrNotReady = errors.New("radar index not fetched yet")

const refreshTimeout = 10 * time.Second

type indexFetcher interface {
	FetchIndex(ctx context.Context) (models.RadarIndex, error)
}

// Service keeps a fresh copy of the radar frame index. RainViewer
// publishes new frames every few minutes, so the index is refreshed on a
// cron schedule instead of per request; readers get the last good
// snapshot.
type Service struct {
	fetcher indexFetcher
	logger  zerolog.Logger
	cron    *cron.Cron
	spec    string

	mu    sync.RWMutex
	index models.RadarIndex
	ready bool
}

// NewService constructs the radar service. spec is a standard cron
// expression, e.g. "*/5 * * * *".
func NewService(fetcher indexFetcher, logger zerolog.Logger, spec string) *Service {
	return &Service{
		fetcher: fetcher,
		logger:  logger.With().Str("component", "RadarService").Logger(),
		cron:    cron.New(),
		spec:    spec,
	}
}

// Start performs the initial fetch and schedules periodic refreshes. A
// failed initial fetch is not fatal; the index fills in on the next tick.
func (s *Service) Start(ctx context.Context) error {
	s.refresh(ctx)

	if _, err := s.cron.AddFunc(s.spec, func() {
		refreshCtx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
		defer cancel()
		s.refresh(refreshCtx)
	}); err != nil {
		return err
	}
	s.cron.Start()
	s.logger.Info().Str("schedule", s.spec).Msg("radar refresher started")
	return nil
}

// Stop halts the refresh schedule.
func (s *Service) Stop() {
	<-s.cron.Stop().Done()
	s.logger.Info().Msg("radar refresher stopped")
}

// Snapshot returns the last fetched frame index.
func (s *Service) Snapshot() (models.RadarIndex, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.ready {
		return models.RadarIndex{}, ErrNotReady
	}
	return s.index, nil
}

func (s *Service) refresh(ctx context.Context) {
	index, err := s.fetcher.FetchIndex(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("radar index refresh failed, keeping previous snapshot")
		return
	}

	s.mu.Lock()
	s.index = index
	s.ready = true
	s.mu.Unlock()

	s.logger.Debug().
		Int("past_frames", len(index.Past)).
		Int("nowcast_frames", len(index.Nowcast)).
		Msg("radar index refreshed")
}
