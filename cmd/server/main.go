package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/steelify/catalog-backend/config"
	"github.com/steelify/catalog-backend/internal/app/controller"
	"github.com/steelify/catalog-backend/internal/app/repository"
	"github.com/steelify/catalog-backend/internal/app/service"
	"github.com/steelify/catalog-backend/internal/cache"
	"github.com/steelify/catalog-backend/internal/db"
	"github.com/steelify/catalog-backend/internal/router"
	"github.com/steelify/catalog-backend/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logLevel := "info"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      "console", // Use "json" for production
		EnableColor: true,
	})

	logger.Info("Starting Catalog Backend Server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	// Initialize database
	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	// Run migrations and seed reference catalogs
	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Optional aggregate-count cache
	var aggregateCache *cache.AggregateCache
	if cfg.Redis.Enabled() {
		aggregateCache, err = cache.NewAggregateCache(&cfg.Redis)
		if err != nil {
			logger.Warn("Aggregate cache unavailable, continuing without it", map[string]interface{}{
				"error": err.Error(),
			})
			aggregateCache = nil
		}
		defer func() {
			if err := aggregateCache.Close(); err != nil {
				logger.Error("Failed to close Redis connection", err)
			}
		}()
	}

	// Initialize repositories
	catalogRepo := repository.NewCatalogRepository(db.GetDB())
	combinationRepo := repository.NewCombinationRepository(db.GetDB())

	// Initialize services
	catalogService := service.NewCatalogService(catalogRepo)
	combinationService := service.NewCombinationService(combinationRepo, catalogRepo, aggregateCache)

	// Initialize controllers
	catalogController := controller.NewCatalogController(catalogService)
	combinationController := controller.NewCombinationController(combinationService)

	// Setup router
	r := router.NewRouter(catalogController, combinationController, cfg)
	engine := r.Setup()

	// Start server in a goroutine
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server started successfully", map[string]interface{}{
			"address": addr,
			"pid":     os.Getpid(),
		})
		if err := engine.Run(addr); err != nil {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	logger.Info("Server stopped successfully")
}
