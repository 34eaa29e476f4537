// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Finnovate Africa

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Finnovate-Africa/Finnovate-Africa-backend/internal/config"
	handler "github.com/Finnovate-Africa/Finnovate-Africa-backend/internal/handler/http"
	"github.com/Finnovate-Africa/Finnovate-Africa-backend/internal/logger"
	"github.com/Finnovate-Africa/Finnovate-Africa-backend/internal/ratelimit"
	"github.com/Finnovate-Africa/Finnovate-Africa-backend/internal/routes"
	"github.com/Finnovate-Africa/Finnovate-Africa-backend/internal/server"
	"github.com/Finnovate-Africa/Finnovate-Africa-backend/internal/store"
	"github.com/Finnovate-Africa/Finnovate-Africa-backend/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	printBuildInfo(buildInfo)

	log := logger.NewLogger("finnovate-server")

	defer func() {
		if rec := recover(); rec != nil {
			log.Error().
				Str("error_type", fmt.Sprintf("%T", rec)).
				Any("panic", rec).
				Msg("UNCAUGHT EXCEPTION! Shutting down...")
			os.Exit(1)
		}
	}()

	os.Exit(run(log, buildInfo))
}

func run(log *logger.Logger, buildInfo models.AppBuildInfo) int {
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Error().Err(err).Msg("error getting configs")
		return 1
	}

	if err = logger.SetLevel(cfg.App.LogLevel); err != nil {
		log.Error().Err(err).Msg("error setting log level")
		return 1
	}

	storages, err := store.NewStorages(cfg.Storage, log)
	if err != nil {
		log.Error().Err(err).Msg("error creating storages")
		return 1
	}

	limiter, err := ratelimit.New(cfg.RateLimit, storages.Redis)
	if err != nil {
		log.Error().Err(err).Msg("error creating rate limiter")
		return 1
	}

	router, err := handler.NewHandler(handler.Dependencies{
		Groups:    routes.Default(),
		Limiter:   limiter,
		Readiness: storages,
		BuildInfo: buildInfo,
	}, handler.Settings{
		App:          cfg.App,
		MaxBodyBytes: cfg.Server.MaxBodyBytes,
		RateLimit:    cfg.RateLimit,
	}, log).Init()
	if err != nil {
		log.Error().Err(err).Msg("error assembling request pipeline")
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer stop()

	srv := server.NewServer(router, storages, cfg.Server, log)
	srv.Go(storages.Watch(cfg.Storage.Watchdog))
	err = srv.Run(ctx)
	if err != nil {
		log.Error().Err(err).Str("state", srv.State().String()).Msg("server stopped")
	} else {
		log.Info().Msg("server stopped gracefully")
	}

	return server.ExitCode(err)
}

func printBuildInfo(info models.AppBuildInfo) {
	resp := info.Response()
	fmt.Printf("Build version: %s\n", resp.Version)
	fmt.Printf("Build date: %s\n", resp.Date)
	fmt.Printf("Build commit: %s\n", resp.Commit)
}
