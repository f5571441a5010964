package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"network-match/internal/config"
	"network-match/internal/db"
	apihttp "network-match/internal/http"
	"network-match/internal/repository"
	"network-match/internal/service"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	defer pool.Close()

	memberRepo := repository.NewPgMemberRepository(pool)
	relationshipRepo := repository.NewPgRelationshipRepository(pool)
	activityRepo := repository.NewPgActivityRepository(pool)

	// Sin redis se usan las versiones en memoria (validas para una sola instancia).
	activityCache := service.NewMemoryActivityCache(cfg.ActivityCacheTTL)
	limiter := service.NewMemoryRateLimiter(cfg.RateLimitWindow, cfg.RateLimitMax)
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer redisClient.Close()

		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed, using in-memory cache and limiter", zap.Error(err))
		} else {
			activityCache = service.NewRedisActivityCache(redisClient, cfg.ActivityCacheTTL)
			limiter = service.NewRedisRateLimiter(redisClient, cfg.RateLimitWindow, cfg.RateLimitMax)
		}
		cancel()
	}

	tokenSvc := service.NewTokenService(cfg.JWTSecret, cfg.JWTIssuer, 0)
	recSvc := service.NewRecommendationService(logger, memberRepo, relationshipRepo, activityRepo, activityCache, service.RecommendationConfig{
		DefaultLimit: cfg.RecommendDefaultLimit,
		MaxLimit:     cfg.RecommendMaxLimit,
		Concurrency:  cfg.SignalFetchConcurrency,
	})
	recHandler := apihttp.NewRecommendationHandler(logger, recSvc, limiter)
	router := apihttp.NewRouter(logger, tokenSvc, recHandler, func(ctx context.Context) error {
		return db.Ping(ctx, pool)
	})

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Warn("server shutdown", zap.Error(err))
		}
	}()

	logger.Info("starting server", zap.String("port", cfg.HTTPPort))

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("server error", zap.Error(err))
	}
}
