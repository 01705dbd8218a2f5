package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"barangayhub/api/internal/cache"
	"barangayhub/api/internal/config"
	"barangayhub/api/internal/handlers"
	"barangayhub/api/internal/jobs"
	"barangayhub/api/internal/log"
	"barangayhub/api/internal/security"
	"barangayhub/api/internal/server"
	"barangayhub/api/internal/service"
	"barangayhub/api/internal/store"
	"barangayhub/api/internal/store/file"
	"barangayhub/api/internal/store/postgres"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := log.New(cfg.Environment)

	ctx := context.Background()

	var backend store.Backend
	switch cfg.Storage.Driver {
	case "postgres":
		backend, err = postgres.Open(ctx, cfg.Postgres)
	default:
		backend, err = file.Open(cfg.Storage.DataDir)
	}
	if err != nil {
		logger.Fatal().Err(err).Str("driver", cfg.Storage.Driver).Msg("failed to open store")
	}

	var redisClient *redis.Client
	var revoked security.RevocationList
	if cfg.Redis.Addr != "" {
		redisClient, err = cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect redis")
		}
		revoked = security.NewRedisRevocationList(redisClient)
	} else {
		revoked = security.NewMemoryRevocationList()
	}

	tokens := security.NewTokenManager(
		cfg.Security.TokenSecret,
		cfg.Security.TokenIssuer,
		cfg.Security.TokenTTL,
		revoked,
	)

	if err := service.BootstrapAdmin(ctx, backend.Admins(), cfg.Bootstrap.AdminUsername, cfg.Bootstrap.AdminPassword, logger); err != nil {
		logger.Fatal().Err(err).Msg("failed to seed bootstrap admin")
	}

	handlerSet := handlers.NewHandlerSet(logger, backend, tokens, cfg)
	httpServer := server.NewHTTPServer(cfg, logger, handlerSet)

	var scheduler *jobs.Scheduler
	if snapshotter, ok := backend.(jobs.Snapshotter); ok {
		scheduler = jobs.NewScheduler(snapshotter, cfg.Storage.SnapshotDir, cfg.Storage.SnapshotSpec, logger)
		if err := scheduler.Start(); err != nil {
			logger.Error().Err(err).Msg("scheduler start failed")
		}
	}

	go func() {
		if err := httpServer.Start(); err != nil {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	waitForShutdown(logger, httpServer, scheduler, backend, redisClient)
}

func waitForShutdown(logger zerolog.Logger, srv *server.HTTPServer, scheduler *jobs.Scheduler, backend store.Backend, redisClient *redis.Client) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()
	logger.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}

	if scheduler != nil {
		scheduler.Stop()
	}

	if err := backend.Close(); err != nil {
		logger.Error().Err(err).Msg("store close error")
	}
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			logger.Error().Err(err).Msg("redis close error")
		}
	}

	logger.Info().Msg("server exited cleanly")
}
