package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/trainmetrics/coaching-api/internal/api"
	"github.com/trainmetrics/coaching-api/internal/infrastructure/config"
	mongodb "github.com/trainmetrics/coaching-api/internal/infrastructure/db/mongo"
	redisdb "github.com/trainmetrics/coaching-api/internal/infrastructure/db/redis"
	"github.com/trainmetrics/coaching-api/internal/infrastructure/queue"
	"github.com/trainmetrics/coaching-api/pkg/logger"
)

// @title           Coaching API
// @version         1.0
// @description     Multi-tenant fitness coaching data API.
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Service: "coaching-api",
		Pretty:  !cfg.IsProduction(),
	})

	if cfg.Auth.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET must be set")
	}
	if cfg.Auth.DevAPIKey != "" && cfg.IsProduction() {
		log.Fatal().Msg("DEV_API_KEY must not be set in production")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to MongoDB")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := mongoClient.Disconnect(disconnectCtx); err != nil {
			log.Error().Err(err).Msg("mongo disconnect")
		}
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to Redis")
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Error().Err(err).Msg("redis close")
		}
	}()

	if err := ensureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("failed to ensure indexes")
	}

	apiKeyRepo := mongodb.NewAPIKeyRepository(db)
	usageRecorder := queue.NewUsageRecorder(0, apiKeyRepo, log)
	usageRecorder.Start(ctx)

	e := api.NewRouter(db, rdb, cfg, log, usageRecorder)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("server stopped")
}

func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	repos := []interface{ EnsureIndexes(context.Context) error }{
		mongodb.NewUserRepository(db),
		mongodb.NewAPIKeyRepository(db),
		mongodb.NewClientRepository(db),
		mongodb.NewWorkoutRepository(db),
		mongodb.NewTemplateRepository(db),
	}
	for _, r := range repos {
		if err := r.EnsureIndexes(ctx); err != nil {
			return err
		}
	}
	return nil
}
