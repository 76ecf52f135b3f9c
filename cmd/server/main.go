package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/alpenhof/shipdesk/internal/api"
	"github.com/alpenhof/shipdesk/internal/backend"
	"github.com/alpenhof/shipdesk/internal/config"
	"github.com/alpenhof/shipdesk/internal/kv"
	"github.com/alpenhof/shipdesk/internal/shipment"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	var logger *zap.Logger
	if cfg.Environment == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// Open draft storage
	storage, err := kv.OpenSQLite(cfg.Storage.Path)
	if err != nil {
		logger.Fatal("Failed to open draft storage", zap.Error(err))
	}
	defer storage.Close()

	// Build the backend client and the shipment store
	client := backend.NewClient(cfg.Backend, logger)
	store := shipment.New(storage, client, logger, cfg.Shipment.DefaultTaxRate)

	router := api.NewRouter(cfg, store, logger)

	logger.Info("Starting server",
		zap.String("port", cfg.Port),
		zap.String("environment", cfg.Environment),
		zap.String("backend", cfg.Backend.BaseURL),
	)
	if err := router.Run(":" + cfg.Port); err != nil {
		logger.Fatal("Server stopped", zap.Error(err))
	}
}
