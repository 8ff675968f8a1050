package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-community/internal/config"
	"github.com/MKhiriev/go-community/internal/forms"
	"github.com/MKhiriev/go-community/internal/handler"
	"github.com/MKhiriev/go-community/internal/logger"
	"github.com/MKhiriev/go-community/internal/server"
	"github.com/MKhiriev/go-community/internal/service"
	"github.com/MKhiriev/go-community/internal/store"
	"github.com/MKhiriev/go-community/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := newBuildInfo()
	printBuildInfo(buildInfo)

	log := logger.NewLogger("community-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	if err = log.SetLevel(cfg.App.LogLevel); err != nil {
		log.Fatal().Err(err).Msg("error setting log level")
	}

	// a linker-provided version wins over the built-in default
	if buildInfo.BuildVersion() != "N/A" && cfg.App.Version == config.Defaults().App.Version {
		cfg.App.Version = buildInfo.BuildVersion()
	}

	log.Debug().Str("address", cfg.Server.HTTPAddress).Str("forms", cfg.Forms.DefinitionsPath).Msg("received configs")

	definitions, err := loadDefinitions(cfg.Forms)
	if err != nil {
		log.Fatal().Err(err).Msg("error loading form definitions")
	}

	storages, err := openStorages(cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}

	services, err := service.NewServices(storages, definitions, *cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	handlers, err := handler.NewHandlers(services, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

func loadDefinitions(cfg config.Forms) (forms.Definitions, error) {
	if cfg.DefinitionsPath == "" {
		return forms.Default()
	}
	return forms.LoadFile(cfg.DefinitionsPath)
}

// openStorages connects and migrates the database. Without a DSN no store is
// bound and forms using unique, isactive or isbanned are rejected.
func openStorages(cfg config.DB, log *logger.Logger) (*store.Storages, error) {
	if cfg.DSN == "" {
		log.Warn().Msg("no database configured, running without storage")
		return nil, nil
	}

	db, err := store.Connect(context.Background(), cfg, log)
	if err != nil {
		return nil, err
	}

	if err = db.Migrate(); err != nil {
		return nil, err
	}

	return store.NewStorages(db, log), nil
}

func newBuildInfo() models.AppBuildInfo {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	return models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
}

func printBuildInfo(info models.AppBuildInfo) {
	fmt.Printf("Build version: %s\n", info.BuildVersion())
	fmt.Printf("Build date: %s\n", info.BuildDate())
	fmt.Printf("Build commit: %s\n", info.BuildCommit())
}
