package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/musfikur-rahaman/fake-news-detection-v1/internal/adapter/http/router"
	"github.com/musfikur-rahaman/fake-news-detection-v1/internal/infrastructure/cache"
	"github.com/musfikur-rahaman/fake-news-detection-v1/internal/infrastructure/config"
	"github.com/musfikur-rahaman/fake-news-detection-v1/internal/infrastructure/database"
	"github.com/musfikur-rahaman/fake-news-detection-v1/internal/infrastructure/logger"
	"github.com/musfikur-rahaman/fake-news-detection-v1/internal/infrastructure/metrics"
)

// shutdownTimeout bounds graceful shutdown
const shutdownTimeout = 30 * time.Second

func serve(ctx context.Context, cfg *config.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}

	// Initialize logger
	log, err := logger.NewLogger(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	// Set Gin mode
	gin.SetMode(cfg.Server.Mode)

	// Initialize database
	db, err := database.NewPostgresDB(&cfg.Database, cfg.Log.Level)
	if err != nil {
		log.Error("Failed to connect to database", zap.Error(err))
		return err
	}
	defer func() { _ = database.Close(db) }()
	log.Info("Connected to database")

	// Run migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Error("Failed to run migrations", zap.Error(err))
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	log.Info("Database migrations completed")

	// Initialize Redis (optional, continue without it)
	redisClient, err := cache.NewRedisClient(&cfg.Redis)
	switch {
	case err != nil:
		log.Warn("Failed to connect to Redis, continuing without token cache", zap.Error(err))
		redisClient = nil
	case redisClient != nil:
		log.Info("Connected to Redis")
		defer func() { _ = redisClient.Close() }()
	}

	// Metrics
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	// Upstream adapters
	classifier, err := buildClassifier(&cfg.Classifier)
	if err != nil {
		return err
	}
	explainer, closeExplainer, err := buildExplainer(ctx, &cfg.Explainer)
	if err != nil {
		return err
	}
	defer closeExplainer()
	resolver := buildResolver(&cfg.Auth, redisClient, logger.Named(log, "auth"))

	log.Info("Pipeline configured",
		zap.String("classifier", classifier.Name()),
		zap.String("explainer", explainer.Name()),
		zap.String("auth_mode", cfg.Auth.Mode),
	)

	// Setup router
	r := router.Setup(router.Dependencies{
		DB:           db,
		Redis:        redisClient,
		Logger:       log,
		Metrics:      m,
		Gatherer:     reg,
		Classifier:   classifier,
		Explainer:    explainer,
		Resolver:     resolver,
		WriteTimeout: cfg.Persistence.WriteTimeout,
	})

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		// a detect request runs every stage back to back
		WriteTimeout: cfg.Classifier.Timeout + cfg.Explainer.Timeout + cfg.Auth.Timeout + cfg.Persistence.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	serverErr := make(chan error, 1)
	go func() {
		log.Info("Starting server", zap.String("address", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case <-quit:
	case <-ctx.Done():
	case err, ok := <-serverErr:
		if ok {
			log.Error("Server failed", zap.Error(err))
			return fmt.Errorf("server failed: %w", err)
		}
	}

	log.Info("Shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited")
	return nil
}

func migrate(cfg *config.Config) error {
	log, err := logger.NewLogger(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	db, err := database.NewPostgresDB(&cfg.Database, cfg.Log.Level)
	if err != nil {
		return err
	}
	defer func() { _ = database.Close(db) }()

	if err := database.AutoMigrate(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	log.Info("Database migrations completed")
	return nil
}
