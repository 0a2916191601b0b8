package main

import (
	"os"

	"catalog-backend/internal/config"
	"catalog-backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

func main() {
	// ========================================
	// LOAD ENVIRONMENT VARIABLES
	// ========================================
	// .env is for local runs; deployed environments set real variables.
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	logger.Init(cfg.App.Environment, cfg.App.LogLevel)
	if envErr != nil {
		logger.Warn("no .env file found, using system environment variables", nil)
	}

	// ========================================
	// SERIALIZATION + GIN MODE
	// ========================================
	// Money and tax values go out as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	logger.Info("starting "+cfg.App.Name, map[string]interface{}{
		"environment": cfg.App.Environment,
		"version":     cfg.App.Version,
	})

	if err := Serve(cfg); err != nil {
		logger.Error("server stopped with error", err)
		os.Exit(1)
	}
}
