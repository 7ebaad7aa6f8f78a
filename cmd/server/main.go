package main

import (
	"context"
	"fmt"

	"github.com/mfedotov/credvault/internal/config"
	"github.com/mfedotov/credvault/internal/crypto"
	myHTTP "github.com/mfedotov/credvault/internal/handler/http"
	"github.com/mfedotov/credvault/internal/logger"
	"github.com/mfedotov/credvault/internal/server"
	"github.com/mfedotov/credvault/internal/service"
	"github.com/mfedotov/credvault/internal/store"
	"github.com/mfedotov/credvault/migrations"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("credvault-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	ctx := context.Background()

	storages, err := store.NewStorages(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}

	if cfg.Storage.DB.Migrate {
		if err := migrations.Migrate(storages.DB.DB); err != nil {
			log.Fatal().Err(err).Msg("error running migrations")
		}
		log.Info().Msg("migrations applied")
	}

	cipher, err := crypto.NewSecretCipher(cfg.App.CipherKey)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating secret cipher")
	}
	hasher := crypto.NewPasswordHasher(cfg.App.BcryptCost)

	services := service.NewServices(storages, cipher, hasher, *cfg, log)
	handler := myHTTP.NewHandler(services, log)

	srv, err := server.NewServer(handler, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

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
