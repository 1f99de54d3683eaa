package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"plotcast/internal/config"
	"plotcast/internal/logger"
	"plotcast/internal/server"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zlog, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zlog.Sync()

	zlog.Info("starting plotcast service",
		zap.String("port", cfg.Port),
		zap.String("deployment_mode", cfg.DeploymentMode),
		zap.String("environment", cfg.Environment))
	if cfg.DeploymentMode == "gcs" {
		zlog.Info("publishing to GCS bucket", zap.String("bucket", cfg.DestinationBucket))
	} else {
		zlog.Info("publishing to local directory", zap.String("dir", cfg.LocalChartsDir))
	}

	srv, err := server.NewServer(ctx, cfg, zlog)
	if err != nil {
		zlog.Fatal("failed to create server", zap.Error(err))
	}
	defer srv.Close()

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv.SetupRoutes(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		zlog.Info("server listening", zap.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
			zlog.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	zlog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		zlog.Warn("server shutdown error", zap.Error(err))
	}

	zlog.Info("server stopped")
}
