// @title        timetrack API
// @version      1.0
// @description  Personal time-tracking service: one running timer per user, range reports, editable log.
// @BasePath     /
package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/workmania/timetrack/internal/api"
	"github.com/workmania/timetrack/internal/infrastructure/config"
	timetrackmongo "github.com/workmania/timetrack/internal/infrastructure/db/mongo"
	timetrackredis "github.com/workmania/timetrack/internal/infrastructure/db/redis"
	"github.com/workmania/timetrack/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: !cfg.IsProduction(),
	})

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		log.Warn().Err(err).Str("timezone", cfg.Timezone).Msg("unknown timezone, falling back to UTC")
		loc = time.UTC
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, db, err := timetrackmongo.Connect(ctx, timetrackmongo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()

	// The partial unique open-entry index must exist before serving traffic:
	// it is what makes concurrent starts safe.
	if err := timetrackmongo.NewEntryRepository(db).EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("entry index creation failed")
	}
	if err := timetrackmongo.NewCategoryRepository(db).EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("category index creation failed")
	}
	if err := timetrackmongo.NewUserRepository(db).EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("user index creation failed")
	}

	rdb, err := timetrackredis.Connect(ctx, timetrackredis.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() {
		_ = rdb.Close()
	}()

	e := api.NewRouter(cfg, db, rdb, loc, log)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("timezone", loc.String()).Msg("timetrack api listening")

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
