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

	"github.com/vkatkov/gomarket/internal/config"
	"github.com/vkatkov/gomarket/internal/delivery/events"
	httpDelivery "github.com/vkatkov/gomarket/internal/delivery/http"
	"github.com/vkatkov/gomarket/internal/delivery/http/handler"
	"github.com/vkatkov/gomarket/internal/pkg/cache"
	"github.com/vkatkov/gomarket/internal/pkg/database"
	"github.com/vkatkov/gomarket/internal/pkg/logger"
	cacheRepo "github.com/vkatkov/gomarket/internal/repository/cache"
	"github.com/vkatkov/gomarket/internal/repository/postgres"
	"github.com/vkatkov/gomarket/internal/usecase/catalog"
	"github.com/vkatkov/gomarket/internal/usecase/category"
	"github.com/vkatkov/gomarket/internal/usecase/review"

	_ "github.com/vkatkov/gomarket/docs"
)

// @title Marketplace Catalog API
// @version 1.0
// @description Product catalog with full-text search, filtered listings and review-driven rating aggregation.
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url http://github.com/vkatkov/gomarket

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

// @tag.name Products
// @tag.description Catalog listing and product management endpoints

// @tag.name Categories
// @tag.description Category management endpoints

// @tag.name Reviews
// @tag.description Review management endpoints

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger := logger.New(cfg.Env)
	appLogger.Info("Starting Marketplace Catalog API...")

	appLogger.Info("Connecting to PostgreSQL...")
	db, err := database.WaitForDB(cfg, 10, 2*time.Second)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", err)
	}
	defer db.Close()
	appLogger.Info("Connected to PostgreSQL successfully")

	if err := database.RunMigrations(db); err != nil {
		appLogger.Fatal("Failed to run migrations", err)
	}

	appLogger.Info("Connecting to Redis...")
	redisClient, err := cache.WaitForRedis(cfg, 10, 2*time.Second)
	if err != nil {
		appLogger.Fatal("Failed to connect to Redis", err)
	}
	defer redisClient.Close()
	appLogger.Info("Connected to Redis successfully")

	appLogger.Info("Connecting to NATS...")
	publisher, err := events.NewPublisher(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to create NATS publisher", err)
	}
	defer publisher.Close()

	productRepo := postgres.NewProductRepository(db, cfg.Catalog.FTSLanguage)
	categoryRepo := postgres.NewCategoryRepository(db)
	reviewRepo := postgres.NewReviewRepository(db)
	redisCache := cacheRepo.NewRedisCache(
		redisClient,
		cfg.Cache.ProductRatingTTL,
		cfg.Cache.ReviewsListTTL,
	)

	catalogService := catalog.NewService(productRepo, categoryRepo, redisCache, appLogger)
	categoryService := category.NewService(categoryRepo, appLogger)
	reviewService := review.NewService(reviewRepo, redisCache, publisher, appLogger)

	productHandler := handler.NewProductHandler(catalogService, cfg.Catalog.DefaultPageSize, appLogger)
	categoryHandler := handler.NewCategoryHandler(categoryService, catalogService, appLogger)
	reviewHandler := handler.NewReviewHandler(reviewService, appLogger)

	router := httpDelivery.NewRouter(productHandler, categoryHandler, reviewHandler, cfg, appLogger)
	httpHandler := router.Setup()

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      httpHandler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		appLogger.Infof("HTTP server listening on port %s", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal("HTTP server failed", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		appLogger.Fatal("Server forced to shutdown", err)
	}

	appLogger.Info("Server stopped gracefully")
}
