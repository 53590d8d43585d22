package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/agenthands/naics/internal/bootstrap"
	"github.com/agenthands/naics/internal/config"
	"github.com/agenthands/naics/internal/logging"
	"github.com/agenthands/naics/internal/server"
)

func main() {
	envErr := godotenv.Load()

	cfg, err := config.FromEnvironment("")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	if envErr != nil {
		logger.Info("no .env file found, using environment")
	}

	detector, err := bootstrap.NewDetector(context.Background(), cfg, logger)
	if err != nil {
		logger.Fatal("failed to start", zap.Error(err))
	}

	srv := server.NewServer(detector, logger.Named("http"), cfg.Search.PreviewLength)
	r := srv.SetupRouter()

	logger.Info("starting server", zap.String("port", cfg.Server.Port))
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
