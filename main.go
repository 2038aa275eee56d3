// Package main provides the penguin species classifier service.
//
// The service loads a trained tree-ensemble model once at startup and
// exposes REST APIs for:
//   - Health checks reporting whether the model is loaded
//   - Species prediction from four body measurements
//
// The service listens on 0.0.0.0:8080 by default and supports:
//   - Prometheus metrics
//   - Structured logging
//
// Usage:
//
//	./penguin-service
//
// Environment:
//
//	SERVER_ADDRESS: listen address (default: 0.0.0.0:8080)
//	MODEL_SOURCE:   file or minio (default: file)
//	MODEL_PATH:     artifact path or bucket/object (default: penguin_classifier.json)
//	LOGGING_LEVEL:  debug, info, warn or error (default: info)
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"penguin-service/config"
	"penguin-service/logger"
	"penguin-service/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger.Init(logger.Options{Level: cfg.Logging.Level, File: cfg.Logging.File})
	defer logger.Sync()

	logger.Logger.Info("Starting penguin classifier service",
		zap.String("address", cfg.Server.Address),
		zap.String("environment", cfg.Server.Environment),
		zap.String("model_source", cfg.Model.Source),
		zap.String("model_path", cfg.Model.Path),
	)

	if cfg.Server.Environment == config.EnvProd {
		gin.SetMode(gin.ReleaseMode)
	}

	state := loadModel(cfg)

	// Setup Gin router
	router := setupRouter(state)

	server := &http.Server{
		Addr:              cfg.Server.Address,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Logger.Info("Server listening", zap.String("addr", cfg.Server.Address))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	GracefulShutdown(server, cfg.ShutdownTimeout())
}

// loadModel runs the one-shot model load. A source that cannot even be
// built is recorded the same way as a failed load.
func loadModel(cfg *config.Config) *services.ModelState {
	source, err := newArtifactSource(cfg)
	if err != nil {
		logger.Logger.Error("model source unavailable", zap.Error(err))
		return services.NewFailedState(err.Error())
	}
	return services.LoadModelState(context.Background(), source, cfg.LoadTimeout())
}

func newArtifactSource(cfg *config.Config) (services.ArtifactSource, error) {
	switch cfg.Model.Source {
	case config.SourceMinIO:
		return services.NewMinIOSource(services.MinIOConfig{
			Endpoint:        cfg.MinIO.Endpoint,
			AccessKeyID:     cfg.MinIO.AccessKey,
			SecretAccessKey: cfg.MinIO.SecretKey,
			UseSSL:          cfg.MinIO.UseSSL,
		}, cfg.Model.Path)
	default:
		return services.FileSource{Path: cfg.Model.Path}, nil
	}
}

// GracefulShutdown handles graceful server shutdown
func GracefulShutdown(server *http.Server, timeout time.Duration) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	sig := <-quit
	logger.Logger.Info("Shutdown signal received", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Logger.Info("Server exited")
}
