// Dashboard API serves the soil sensor views, charts and the websocket the UI listens on.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/NotCoffee418/gws_dashboard/pkg/config"
	"github.com/NotCoffee418/gws_dashboard/pkg/dashboard"
	"github.com/NotCoffee418/gws_dashboard/pkg/loader"
	"github.com/NotCoffee418/gws_dashboard/pkg/logging"
	"github.com/NotCoffee418/gws_dashboard/pkg/pathing"
	"github.com/NotCoffee418/gws_dashboard/pkg/webui"
	"go.uber.org/zap"
)

func main() {
	if err := pathing.EnsureDirs(); err != nil {
		log.Fatalf("Failed to create directories: %v", err)
	}

	// Load config
	if err := config.LoadDashboardConfig(); err != nil {
		log.Fatalf("Failed to load dashboard config: %v", err)
	}
	cfg := config.ActiveDashboardConfig

	logger, err := logging.NewLogger(cfg.LogLevel, os.Getenv("GWS_VERBOSE") != "")
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	pipeline := &dashboard.Pipeline{
		Cache:      loader.NewCache(logger),
		SourcePath: cfg.DataFile,
		Layouts:    cfg.DateTimeLayouts,
		Logger:     logger,
	}

	// Warm the cache so a broken file shows up in the logs right away
	if _, err := pipeline.Source(); err != nil {
		logger.Warn("Source file not readable yet", zap.String("path", cfg.DataFile), zap.Error(err))
	}

	srv := webui.NewServer(pipeline, cfg.ChartWidth, cfg.ChartHeight, logger)
	server := &http.Server{
		Handler:           srv.Router(),
		Addr:              cfg.ListenerAddress(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		logger.Info("Shutdown signal received")

		srv.CloseClients()

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			logger.Error("Server shutdown error", zap.Error(err))
		}
	}()

	logger.Info("Starting GWS dashboard API",
		zap.String("address", server.Addr),
		zap.String("data_file", cfg.DataFile))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("Server failed", zap.Error(err))
	}
}
