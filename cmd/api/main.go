package main

// @title Clustering Microservice API
// @version 1.0.0
// @description Микросервис кластеризации точек интереса (POI) для карты. Принимает viewport, zoom и фильтры, возвращает компактный набор кластеров маркеров: соседние POI группируются по ячейкам сетки, размер которых зависит от zoom.
// @description
// @description Основные возможности:
// @description - Кластеризация POI в видимой области карты с агрегатами (центроид, средний рейтинг, разбивка по категориям)
// @description - Кеширование результатов с коротким TTL и дедупликация одинаковых конкурентных запросов
// @description - Фильтрация по категориям и минимальному рейтингу

// @contact.name API Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	_ "github.com/clustering-microservice/docs"
	"github.com/clustering-microservice/internal/cluster"
	"github.com/clustering-microservice/internal/config"
	httpDelivery "github.com/clustering-microservice/internal/delivery/http"
	"github.com/clustering-microservice/internal/delivery/http/handler"
	"github.com/clustering-microservice/internal/domain/repository"
	"github.com/clustering-microservice/internal/pkg/logger"
	"github.com/clustering-microservice/internal/repository/cache"
	"github.com/clustering-microservice/internal/repository/postgres"
	"github.com/clustering-microservice/internal/usecase"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Clustering Microservice")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
		zap.String("cache_backend", cfg.Cache.Backend),
	)

	// 3. Connect to PostgreSQL
	db, err := postgres.New(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close PostgreSQL connection", zap.Error(err))
		}
	}()

	// 4. Initialize cluster cache (memory by default, redis for
	// multi-instance deployments)
	var clusterCache repository.ClusterCache
	var memCache *cache.MemoryClusterCache
	var redisClient *cache.Redis

	switch cfg.Cache.Backend {
	case "redis":
		redisClient, err = cache.NewRedis(&cfg.Redis, log)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		clusterCache = cache.NewRedisClusterCache(redisClient)
	default:
		memCache = cache.NewMemoryClusterCache(log)
		memCache.StartSweeper(cfg.Cache.SweepInterval)
		clusterCache = memCache
	}

	// 5. Health checks
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.Health(ctx); err != nil {
		log.Fatal("PostgreSQL health check failed", zap.Error(err))
	}
	if redisClient != nil {
		if err := redisClient.Health(ctx); err != nil {
			log.Fatal("Redis health check failed", zap.Error(err))
		}
	}

	log.Info("All connections healthy")

	// 6. Initialize repositories and clustering engine
	placeRepo := postgres.NewPlaceRepository(db)

	computer := cluster.NewComputer(cluster.ComputerConfig{
		Workers:           cfg.Cluster.Workers,
		MaxMembers:        cfg.Cluster.MaxMembers,
		ParallelThreshold: cfg.Cluster.ParallelThreshold,
	})
	coordinator := cluster.NewCoordinator(clusterCache, cfg.Cache.ClusterTTL, log)

	log.Info("Clustering engine initialized")

	// 7. Initialize use cases
	clusterUC := usecase.NewClusterUseCase(
		placeRepo,
		coordinator,
		computer,
		log,
		cfg.Cluster.DefaultTimeout,
		cfg.Cluster.MaxTimeout,
	)

	// 8. Initialize HTTP handlers and server
	clusterHandler := handler.NewClusterHandler(clusterUC, log)
	server := httpDelivery.NewServer(cfg, log, clusterHandler)

	log.Info("HTTP server initialized")

	// 9. Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 10. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	ctx, cancel = context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	if memCache != nil {
		memCache.Close()
	}
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis", zap.Error(err))
		}
	}

	log.Info("Server stopped successfully")
}
