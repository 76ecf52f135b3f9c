package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

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
	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	// Open draft storage
	storage, err := kv.OpenSQLite(cfg.Storage.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open draft storage: %v\n", err)
		os.Exit(1)
	}
	defer storage.Close()

	client := backend.NewClient(cfg.Backend, logger)
	store := shipment.New(storage, client, logger, cfg.Shipment.DefaultTaxRate)

	before := store.Snapshot()
	store.NewShipment()
	after := store.Snapshot()

	fmt.Printf("Persisted draft cleared.\n\n")
	fmt.Printf("Previous invoice number: %s\n", before.Invoice.Number)
	fmt.Printf("New invoice number:      %s\n", after.Invoice.Number)
	fmt.Printf("Line items removed:      %d\n", len(before.AddedProducts))
}
