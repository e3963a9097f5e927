package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"auroracast/internal/config"
	"auroracast/internal/logger"
	"auroracast/internal/server"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	if level, ok := logger.ParseLevel(cfg.LogLevel); ok {
		logger.Global().SetLevel(level)
	}
	if format, ok := logger.ParseFormat(cfg.LogFormat); ok {
		logger.Global().SetFormat(format)
	}

	logger.Infof("Starting Aurora Forecast Service on port %s", cfg.Port)
	logger.Infof("Environment: %s", cfg.Environment)
	if cfg.GCSBucket != "" {
		logger.Infof("GCS bucket: %s", cfg.GCSBucket)
	} else {
		logger.Infof("Local bundles dir: %s", cfg.LocalBundlesDir)
	}

	srv, err := server.NewServer(ctx, cfg)
	if err != nil {
		logger.Fatal("Failed to create server", err)
	}
	defer srv.Close()

	pollCtx, cancelPolling := context.WithCancel(ctx)
	defer cancelPolling()
	srv.Scheduler.Start(pollCtx)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv.SetupRoutes(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second, // bundle generation can be slow
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Infof("Server listening on :%s", cfg.Port)
		if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down server...")
	cancelPolling()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error", err)
	}

	logger.Info("Server stopped")
}
