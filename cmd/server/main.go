package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/taskdesk/taskdesk/internal/api"
	"github.com/taskdesk/taskdesk/internal/core/service"
	"github.com/taskdesk/taskdesk/internal/infrastructure/config"
	"github.com/taskdesk/taskdesk/internal/infrastructure/db/kvrepo"
	"github.com/taskdesk/taskdesk/internal/infrastructure/db/memory"
	mongostore "github.com/taskdesk/taskdesk/internal/infrastructure/db/mongo"
	redisstore "github.com/taskdesk/taskdesk/internal/infrastructure/db/redis"
	"github.com/taskdesk/taskdesk/internal/infrastructure/queue"
	"github.com/taskdesk/taskdesk/pkg/logger"
)

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	deps := api.Deps{}

	switch cfg.StoreBackend {
	case config.BackendRedis:
		client, err := redisstore.Connect(ctx, redisstore.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			log.Fatal().Err(err).Msg("redis connection failed")
		}
		defer client.Close()
		deps.Store = redisstore.NewKVStore(client)
		deps.Denylist = redisstore.NewDenylist(client, cfg.TokenTTL)
		deps.Redis = client
		deps.ActivityRepo = kvrepo.NewActivityRepository(deps.Store)
	case config.BackendMongo:
		client, db, err := mongostore.Connect(ctx, mongostore.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			log.Fatal().Err(err).Msg("mongo connection failed")
		}
		defer func() { _ = client.Disconnect(context.Background()) }()
		deps.Store = mongostore.NewKVStore(db)
		deps.Mongo = db
		deps.ActivityRepo = mongostore.NewActivityRepository(db)
	case config.BackendMemory:
		deps.Store = memory.NewKVStore()
		deps.ActivityRepo = kvrepo.NewActivityRepository(deps.Store)
	default:
		log.Fatal().Str("backend", cfg.StoreBackend).Msg("unknown store backend")
	}

	if cfg.ActivityWorkers > 0 {
		dispatcher := queue.NewDispatcher(
			cfg.ActivityWorkers,
			service.NewActivityService(deps.ActivityRepo, log),
			log,
		)
		dispatcher.Start(ctx)
		deps.Activity = dispatcher
	} else {
		deps.ActivityRepo = nil
	}

	e := api.NewRouter(cfg, deps, log)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server start failed")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("backend", cfg.StoreBackend).Msg("server started")

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("server stopped")
}
