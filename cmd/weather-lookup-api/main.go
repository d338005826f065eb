package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/skylook/weather-lookup-api/internal/app"
	"github.com/skylook/weather-lookup-api/internal/config"
	"github.com/skylook/weather-lookup-api/internal/services/metrics"
	"github.com/skylook/weather-lookup-api/pkg/logger"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found: %v", err)
	}

	cfg, err := config.NewConfig()
	if err != nil {
		log.Panicf("failed to load configuration: %v", err)
	}

	l, err := logger.NewLogger(cfg.LogsPath, "weather-lookup-api")
	if err != nil {
		log.Panicf("failed to create logger: %v", err)
	}

	m := metrics.NewMetrics("weather_lookup")

	application := app.New(*cfg, l, m)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := application.Start(ctx); err != nil {
		log.Panicf("Application failed to run: %v", err)
	}
}
