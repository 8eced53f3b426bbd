package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ucspstream/streaming-api/internal/api"
	"github.com/ucspstream/streaming-api/internal/pkg/config"
	"github.com/ucspstream/streaming-api/pkg/logger"

	mongodb "github.com/ucspstream/streaming-api/internal/infrastructure/db/mongo"
	redisdb "github.com/ucspstream/streaming-api/internal/infrastructure/db/redis"
	"github.com/ucspstream/streaming-api/internal/infrastructure/storage"
)

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET must be set")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- MongoDB ---
	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Warn().Err(err).Msg("mongodb disconnect failed")
		}
	}()

	if err := mongodb.NewUserRepository(db).EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("user index creation failed")
	}
	if err := mongodb.NewContentRepository(db).EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("content index creation failed")
	}

	// --- Redis (optional: listings fall back to the store when absent) ---
	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Warn().Err(err).Msg("redis unavailable, listing cache disabled")
		rdb = nil
	} else {
		defer rdb.Close()
	}

	// --- Upload gateway ---
	uploads, err := storage.NewDiskGateway(cfg.UploadsDir, log)
	if err != nil {
		log.Fatal().Err(err).Msg("upload storage init failed")
	}

	e := api.NewRouter(db, rdb, api.Options{
		JWTSecret: cfg.JWTSecret,
		TokenTTL:  24 * time.Hour,
		Uploads:   uploads,
		StaticDir: cfg.StaticDir,
		Logger:    log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
