package main

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/dallmi/SearchAnalytics/docs"
	"github.com/dallmi/SearchAnalytics/internal/config"
	"github.com/dallmi/SearchAnalytics/internal/handler"
	"github.com/dallmi/SearchAnalytics/internal/logger"
	"github.com/dallmi/SearchAnalytics/internal/repository/clickhouse"
	"github.com/dallmi/SearchAnalytics/internal/service"
)

// @title Search Analytics API
// @version 1.0
// @description Read API over the search telemetry analytics pipeline
// @host localhost:8080
// @BasePath /
// @schemes http https
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Initialize logger
	log, err := logger.New(cfg.Service.Environment)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer func(log *zap.Logger) {
		err := log.Sync()
		if err != nil {
			log.Error("Failed to sync logger", zap.Error(err))
		}
	}(log)

	log.Info("Starting API service",
		zap.String("environment", cfg.Service.Environment),
		zap.String("port", cfg.Service.APIPort))

	// Configure Swagger host dynamically
	docs.SwaggerInfo.Host = cfg.Service.Host

	loc, err := cfg.Location()
	if err != nil {
		log.Fatal("Failed to resolve timezone", zap.Error(err))
	}

	ctx := context.Background()

	// Initialize ClickHouse client
	clickhouseClient, err := clickhouse.NewClient(ctx, &cfg.ClickHouse, log)
	if err != nil {
		log.Fatal("Failed to create ClickHouse client", zap.Error(err))
	}
	defer func(clickhouseClient *clickhouse.Client) {
		if err := clickhouseClient.Close(); err != nil {
			log.Error("Failed to close ClickHouse client", zap.Error(err))
		}
	}(clickhouseClient)

	// Initialize repository
	repo := clickhouse.NewRepository(clickhouseClient, loc, log)

	// Initialize analytics service
	analytics := service.NewAnalyticsService(repo, log)

	// Initialize handler
	h := handler.NewHandler(analytics, log)

	addr := fmt.Sprintf(":%s", cfg.Service.APIPort)
	log.Info("API server starting", zap.String("address", addr))

	if err := http.ListenAndServe(addr, h); err != nil {
		log.Fatal("Failed to start API server", zap.Error(err))
	}
}
