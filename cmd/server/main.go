// Package main is the entry point for the trade analyzer HTTP API.
//
// The server accepts AlgoTest trade documents (.clktrd uploads or raw JSON),
// runs the analysis pipeline on each request and returns the report. It keeps
// no state between requests.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joshinitinofficial/algotest-trade-visualizer/internal/config"
	"github.com/joshinitinofficial/algotest-trade-visualizer/internal/modules/analytics"
	"github.com/joshinitinofficial/algotest-trade-visualizer/internal/server"
	"github.com/joshinitinofficial/algotest-trade-visualizer/pkg/logger"
)

// main is the application entry point. It:
// 1. Loads configuration from environment variables (.env supported)
// 2. Initializes logging
// 3. Builds the analysis service and HTTP server
// 4. Waits for a shutdown signal and drains in-flight requests
func main() {
	cfg, err := config.Load()
	if err != nil {
		// Use fallback logger if config fails
		fallbackLog := logger.New(logger.Config{
			Level:  "info",
			Pretty: true,
		})
		fallbackLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.DevMode,
	})
	logger.SetGlobalLogger(log)

	log.Info().Msg("Starting trade analyzer")

	location, err := cfg.Location()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to resolve time zone")
	}

	srv := server.New(server.Config{
		Log:       log,
		Config:    cfg,
		Analytics: analytics.NewService(location, log),
	})

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	log.Info().
		Int("port", cfg.Port).
		Str("timezone", cfg.Timezone).
		Str("default_capital", cfg.Capital().String()).
		Msg("Server started")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// In-flight analyses get up to 10 seconds to finish.
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}
