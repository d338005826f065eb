package config

import "github.com/kelseyhightower/envconfig"

type Server struct {
	Host        string `envconfig:"SERVER_HOST" default:"0.0.0.0"`
	Port        string `envconfig:"SERVER_PORT" default:"8080"`
	ReadTimeout int    `envconfig:"SERVER_TIMEOUT" default:"10"`
}

type Breaker struct {
	TimeInterval int    `envconfig:"BREAKER_INTERVAL" default:"30"`
	TimeTimeOut  int    `envconfig:"BREAKER_TIMEOUT" default:"10"`
	RepeatNumber uint32 `envconfig:"BREAKER_REPEAT_NUM" default:"5"`
}

type Redis struct {
	Host     string `envconfig:"REDIS_HOST" default:"localhost"`
	Port     string `envconfig:"REDIS_PORT" default:"6379"`
	DbType   int    `envconfig:"REDIS_DB_TYPE" default:"0"`
	LiveTime int    `envconfig:"REDIS_LIVE_TIME_MINUTES" default:"10"`
}

type DB struct {
	Dialect        string `envconfig:"DB_DIALECT" default:"sqlite3"`
	Source         string `envconfig:"DB_SOURCE" default:"file:sessions.db?cache=shared&mode=rwc"`
	MigrationsPath string `envconfig:"DB_MIGRATIONS_PATH" default:"./migrations"`
}

type RateLimit struct {
	RPS   float64 `envconfig:"FORECAST_RPS" default:"5"`
	Burst int     `envconfig:"FORECAST_BURST" default:"10"`
}

type Config struct {
	OpenMeteoURL  string `envconfig:"OPEN_METEO_URL" default:"https://api.open-meteo.com/v1/forecast"`
	GeocodingURL  string `envconfig:"GEOCODING_URL" default:"https://geocoding-api.open-meteo.com/v1/search"`
	IPLocatorURL  string `envconfig:"IP_LOCATOR_URL" default:"https://ipapi.co"`
	RainViewerURL string `envconfig:"RAINVIEWER_URL" default:"https://api.rainviewer.com/public/weather-maps.json"`

	RadarRefreshSpec string `envconfig:"RADAR_REFRESH_SPEC" default:"*/5 * * * *"`

	Server    Server
	Breaker   Breaker
	Redis     Redis
	DB        DB
	RateLimit RateLimit

	LogsPath    string `envconfig:"LOGS_PATH" default:"./log/weather-lookup-api.log"`
	HTTPLogPath string `envconfig:"HTTP_LOG_PATH" default:"./log/weather-lookup-http.log"`
}

func (c *Config) ServerAddress() string {
	return c.Server.Host + ":" + c.Server.Port
}

func NewConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
