// Package main provides the API server entry point for the car assistant service.
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/car-assistant/internal/api"
	"github.com/car-assistant/internal/config"
	"github.com/car-assistant/internal/logging"
	"github.com/car-assistant/internal/storage"
)

func main() {
	fmt.Println("Car Assistant API Server")
	log.Println("Server starting...")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize structured logging
	logLevel := logging.ParseLogLevel(cfg.Logging.Level)
	logFormat := logging.ParseLogFormat(cfg.Logging.Format)
	logging.InitGlobalLogger(logLevel, logFormat)

	logger := logging.GetGlobalLogger()
	logger.WithFields(map[string]interface{}{
		"level":  cfg.Logging.Level,
		"format": cfg.Logging.Format,
	}).Info("Structured logging initialized")

	// Initialize database connections
	logger.Info("Connecting to databases...")

	// Connect to Postgres
	postgres, err := storage.NewPostgresDB(&cfg.Database.Postgres)
	if err != nil {
		logger.WithError(err).Fatal("Failed to connect to Postgres")
	}
	defer postgres.Close()

	// Connect to the remote profile store
	mongo, err := storage.NewMongoDB(&cfg.Database.Mongo)
	if err != nil {
		logger.WithError(err).Fatal("Failed to connect to the profile store")
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := mongo.Close(ctx); err != nil {
			logger.WithError(err).Warn("Failed to close the profile store connection")
		}
	}()

	// Connect to Redis
	redis, err := storage.NewRedisCache(&cfg.Database.Redis)
	if err != nil {
		logger.WithError(err).Fatal("Failed to connect to Redis")
	}
	defer redis.Close()

	logger.Info("Database connections established")

	// Initialize repositories
	userRepo := storage.NewUserRepository(mongo)
	maintenanceRepo := storage.NewMaintenanceRecordRepository(postgres)
	scoreRepo := storage.NewHealthScoreRepository(postgres)
	reminderRepo := storage.NewReminderRepository(postgres)
	activityRepo := storage.NewActivityLogRepository(postgres)
	audioRepo := storage.NewAudioDiagnosticRepository(postgres)
	videoRepo := storage.NewVideoDiagnosticRepository(postgres)
	imageRepo := storage.NewCarImageRepository(postgres)

	// The latest score per car is served through the cache
	scoreCache := storage.NewScoreCache(redis, scoreRepo, cfg.Cache.TTL)

	// Create server configuration
	serverConfig := &api.ServerConfig{
		Host:              cfg.Server.Host,
		Port:              cfg.Server.Port,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ShutdownTimeout:   10 * time.Second,
		RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
		Burst:             cfg.RateLimit.Burst,
	}

	server := api.NewServer(
		serverConfig,
		userRepo,
		maintenanceRepo,
		scoreCache,
		reminderRepo,
		activityRepo,
		audioRepo,
		videoRepo,
		imageRepo,
		postgres,
		mongo,
	)

	// Start server in a goroutine
	go func() {
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Fatal("Server failed to start")
		}
	}()

	logger.WithFields(map[string]interface{}{
		"host": cfg.Server.Host,
		"port": cfg.Server.Port,
	}).Info("Server started successfully")

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), serverConfig.ShutdownTimeout)
	defer cancel()

	// Attempt graceful shutdown
	if err := server.Shutdown(ctx); err != nil {
		logger.WithError(err).Fatal("Server forced to shutdown")
	}

	logger.Info("Server exited")
}
