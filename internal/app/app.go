package app

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.uber.org/zap"

	"github.com/skylook/weather-lookup-api/internal/config"
	handlers "github.com/skylook/weather-lookup-api/internal/handlers/http"
	"github.com/skylook/weather-lookup-api/internal/services/cache"
	loggerT "github.com/skylook/weather-lookup-api/internal/services/logger"
	metricsSvc "github.com/skylook/weather-lookup-api/internal/services/metrics"
	"github.com/skylook/weather-lookup-api/internal/services/geo"
	"github.com/skylook/weather-lookup-api/internal/services/meteo"
	"github.com/skylook/weather-lookup-api/internal/services/meteo/decorators"
	"github.com/skylook/weather-lookup-api/internal/services/radar"
	"github.com/skylook/weather-lookup-api/internal/session"
	"github.com/skylook/weather-lookup-api/internal/models"
	fLogger "github.com/skylook/weather-lookup-api/pkg/logger"
)

const shutdownTimeout = 5 * time.Second

// ServiceContainer holds initialized dependencies for the HTTP server.
type ServiceContainer struct {
	ForecastService *decorators.CachedService
	GeoSearcher     *geo.ClientGeocoding
	IPLocator       *geo.ClientIPLocator
	RadarService    *radar.Service
	SessionRepo     *session.Repository

	Router     *gin.Engine
	Srv        *http.Server
	Db         *sql.DB
	fileLogger *zap.Logger
}

// App ties together config, logger, and metrics for startup/shutdown.
type App struct {
	cfg config.Config
	l   zerolog.Logger
	m   *metricsSvc.Metrics
}

// New prepares a new App with given config, zerolog logger, and metrics.
func New(cfg config.Config, logger zerolog.Logger, met *metricsSvc.Metrics) *App {
	return &App{
		cfg: cfg,
		l:   logger,
		m:   met,
	}
}

// Start initializes services, mounts routes, serves until the context is
// canceled, then shuts everything down.
func (a *App) Start(ctx context.Context) error {
	srvContainer, err := a.init(ctx)
	if err != nil {
		return err
	}

	a.l.Info().
		Str("address", a.cfg.ServerAddress()).
		Msg("starting weather lookup service")

	srvContainer.Router.GET("/metrics", gin.WrapH(a.m.Handler()))
	srvContainer.Router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	srvContainer.Router.Use(a.m.HTTPMiddleware())

	weatherHandler := handlers.NewWeatherHandler(srvContainer.ForecastService, srvContainer.SessionRepo, a.m)
	geoHandler := handlers.NewGeoHandler(srvContainer.GeoSearcher, srvContainer.IPLocator)
	radarHandler := handlers.NewRadarHandler(srvContainer.RadarService)
	sessionHandler := handlers.NewSessionHandler(srvContainer.SessionRepo)

	api := srvContainer.Router.Group("/api")
	{
		api.GET("/weather", weatherHandler.GetWeather)
		api.GET("/weather/compare", weatherHandler.CompareWeather)
		api.GET("/geocode", geoHandler.Geocode)
		api.GET("/location", geoHandler.Locate)
		api.GET("/radar", radarHandler.GetRadar)
		api.GET("/session/:id/units", sessionHandler.GetUnits)
		api.PUT("/session/:id/units", sessionHandler.PutUnits)
		api.GET("/session/:id/location", sessionHandler.GetLastLocation)
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srvContainer.Srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	a.l.Info().
		Str("address", a.cfg.ServerAddress()).
		Msg("weather lookup service started successfully")

	select {
	case err := <-errCh:
		a.l.Error().Err(err).Msg("HTTP server failed")
		return err
	case <-ctx.Done():
	}

	a.l.Info().Msg("shutdown signal received, stopping weather lookup service")

	if err := a.Shutdown(srvContainer); err != nil {
		a.l.Error().Err(err).Msg("failed to shutdown application")
		return err
	}
	a.l.Info().Msg("application shutdown successfully")
	return nil
}

// Shutdown performs graceful shutdown of the HTTP server, radar refresher,
// database, and loggers.
func (a *App) Shutdown(srvContainer ServiceContainer) error {
	a.l.Info().Msg("stopping weather lookup service")

	defer func(logger *zap.Logger) {
		if err := logger.Sync(); err != nil {
			a.l.Error().Err(err).Msg("failed to sync file logger")
		}
	}(srvContainer.fileLogger)

	srvContainer.RadarService.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srvContainer.Srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	if err := srvContainer.Db.Close(); err != nil {
		a.l.Error().Err(err).Msg("failed to close database")
		return err
	}

	a.l.Info().Msg("shutdown complete")
	return nil
}

// init sets up storage, caching, provider clients, and the router without
// starting the server.
func (a *App) init(ctx context.Context) (ServiceContainer, error) {
	a.l.Info().Msgf("initializing weather lookup service with config: %+v", a.cfg)

	db, err := CreateSqliteDb(a.cfg.DB.Source)
	if err != nil {
		return ServiceContainer{}, err
	}
	if err := InitSqliteDb(db, a.cfg.DB.Dialect, a.cfg.DB.MigrationsPath); err != nil {
		return ServiceContainer{}, err
	}

	redisClient := newRedisConnection(a.cfg.Redis.Host+":"+a.cfg.Redis.Port, a.cfg.Redis.DbType)

	fileLogger, err := fLogger.NewFileLogger(a.cfg.HTTPLogPath)
	if err != nil {
		return ServiceContainer{}, err
	}

	// Outbound HTTP traffic gets logged to its own file
	roundTripper := loggerT.NewRoundTripper(fileLogger)
	httpLogClient := &http.Client{Transport: roundTripper}

	breakerCfg := meteo.BreakerConfig{
		TimeInterval: time.Duration(a.cfg.Breaker.TimeInterval) * time.Second,
		TimeTimeOut:  time.Duration(a.cfg.Breaker.TimeTimeOut) * time.Second,
		RepeatNumber: a.cfg.Breaker.RepeatNumber,
	}

	// Forecast pipeline: client -> breaker -> rate limiter -> service -> cache
	openMeteo := meteo.NewClientOpenMeteo(a.cfg.OpenMeteoURL, httpLogClient, a.l)
	guarded := meteo.NewRateLimitedClient(
		meteo.NewBreakerClient("OpenMeteo", breakerCfg, openMeteo),
		a.cfg.RateLimit.RPS,
		a.cfg.RateLimit.Burst,
	)
	rawService := meteo.NewService(a.l, guarded)

	cacheMetrics := cache.NewMetricsDecorator[models.ForecastPayload](
		cache.NewRedisClient[models.ForecastPayload](
			redisClient, a.l, time.Duration(a.cfg.Redis.LiveTime)*time.Minute,
		),
		metricsSvc.NewPromCollector(a.m.Registry()),
	)
	forecastService := decorators.NewCachedService(rawService, cacheMetrics, a.l)

	geoSearcher := geo.NewClientGeocoding(a.cfg.GeocodingURL, httpLogClient, a.l)
	ipLocator := geo.NewClientIPLocator(a.cfg.IPLocatorURL, httpLogClient, a.l)

	radarService := radar.NewService(
		radar.NewClientRainViewer(a.cfg.RainViewerURL, httpLogClient, a.l),
		a.l,
		a.cfg.RadarRefreshSpec,
	)
	if err := radarService.Start(ctx); err != nil {
		return ServiceContainer{}, err
	}

	sessionRepo := session.NewRepository(db, a.l)

	router := gin.New()
	router.Use(gin.Recovery())

	httpServer := &http.Server{
		Addr:        a.cfg.ServerAddress(),
		Handler:     router,
		ReadTimeout: time.Duration(a.cfg.Server.ReadTimeout) * time.Second,
	}

	return ServiceContainer{
		ForecastService: forecastService,
		GeoSearcher:     geoSearcher,
		IPLocator:       ipLocator,
		RadarService:    radarService,
		SessionRepo:     sessionRepo,

		Router:     router,
		Srv:        httpServer,
		Db:         db,
		fileLogger: fileLogger,
	}, nil
}

func newRedisConnection(connString string, dbType int) *redis.Client {
	return redis.NewClient(&redis.Options{Addr: connString, DB: dbType})
}
