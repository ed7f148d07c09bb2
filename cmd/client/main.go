package main

import (
	"fmt"

	"github.com/MKhiriev/travel-journal-sync/internal/adapter"
	"github.com/MKhiriev/travel-journal-sync/internal/client"
	"github.com/MKhiriev/travel-journal-sync/internal/config"
	"github.com/MKhiriev/travel-journal-sync/internal/httpapi"
	"github.com/MKhiriev/travel-journal-sync/internal/logger"
	"github.com/MKhiriev/travel-journal-sync/internal/netmon"
	"github.com/MKhiriev/travel-journal-sync/internal/server"
	"github.com/MKhiriev/travel-journal-sync/internal/service"
	"github.com/MKhiriev/travel-journal-sync/internal/store"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewClientLogger("travel-journal-sync")
	cfg, err := config.GetConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	remote, err := adapter.NewHTTPRemoteStore(cfg.Remote, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create remote adapter")
	}

	storages, err := store.NewStorages(cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create local storage")
	}

	monitor := netmon.NewMonitor(remote.Ping, cfg.App.ProbeInterval, log)
	services := service.NewServices(storages, remote, monitor, cfg.App.SyncInterval, log)

	handler := httpapi.NewHandler(services.Session, log)
	srv, err := server.NewServer(handler.Init(), cfg.API, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create API server")
	}

	app, err := client.NewApp(services, monitor, srv, log)
	if err != nil {
		log.Fatal().Err(err).Msg("init client app error")
	}

	if err = app.Run(); err != nil {
		log.Fatal().Err(err).Msg("client run error")
	}
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
