package main

import (
	"context"
	"fmt"

	httphandler "github.com/powergrid-apps/billkeeper/internal/handler/http"

	"github.com/powergrid-apps/billkeeper/internal/config"
	"github.com/powergrid-apps/billkeeper/internal/logger"
	"github.com/powergrid-apps/billkeeper/internal/metrics"
	"github.com/powergrid-apps/billkeeper/internal/server"
	"github.com/powergrid-apps/billkeeper/internal/service"
	"github.com/powergrid-apps/billkeeper/internal/store"
	"github.com/powergrid-apps/billkeeper/internal/workers"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("billkeeper-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	storages, err := store.NewStorages(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}

	m := metrics.New()
	services := service.NewServices(storages, cfg.App, m, log)
	handler := httphandler.NewHandler(services, m, log)

	srv, err := server.NewServer(handler.Init(), cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	workers.NewWorkers(ctx, storages, cfg.Workers, m, log).Run()

	srv.RunServer()
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
