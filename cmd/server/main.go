package main

import (
	"fmt"
	"log"
	"os"

	"github.com/skillmatch/backend/config"
	httpDelivery "github.com/skillmatch/backend/internal/delivery/http"
	"github.com/skillmatch/backend/internal/domain"
	"github.com/skillmatch/backend/internal/infrastructure/store"
	"github.com/skillmatch/backend/internal/infrastructure/xlsx"
	"github.com/skillmatch/backend/internal/usecase"
)

func main() {
	if err := config.LoadEnvFile(); err != nil {
		log.Printf("WARNING: could not load .env file: %v", err)
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting Skill Matcher Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)

	// Initialize infrastructure dependencies
	datasetStore := store.NewMemoryStore(cfg.Store.TTL)
	defer datasetStore.Close()
	log.Printf("Dataset TTL: %s", cfg.Store.TTL)

	loader := xlsx.NewLoader(xlsx.SheetNames{
		Bench:  cfg.Workbook.BenchSheet,
		Demand: cfg.Workbook.DemandSheet,
		Subcon: cfg.Workbook.SubconSheet,
		Master: cfg.Workbook.MasterSheet,
	})

	// Enable debug mode in development environment
	if cfg.Server.Environment == "development" || cfg.Matching.EnableDebugLogging {
		loader.SetDebug(true)
		log.Printf("Workbook loader debug mode enabled")
	}

	log.Printf("Sheets: bench=%q demand=%q subcon=%q master=%q",
		cfg.Workbook.BenchSheet, cfg.Workbook.DemandSheet, cfg.Workbook.SubconSheet, cfg.Workbook.MasterSheet)

	// Initialize usecase layer
	matchingService := usecase.NewMatchingService(
		datasetStore,
		loader,
		usecase.MatchingServiceConfig{
			EnableDebugLogging: cfg.Matching.EnableDebugLogging,
		},
	)

	log.Printf("Matching: default range=[%d, %d], debug=%v",
		cfg.Matching.DefaultMinPercent,
		cfg.Matching.DefaultMaxPercent,
		cfg.Matching.EnableDebugLogging)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(matchingService, xlsx.NewExporter(), httpDelivery.HandlerOptions{
		DefaultRange: domain.PercentRange{
			Min: cfg.Matching.DefaultMinPercent,
			Max: cfg.Matching.DefaultMaxPercent,
		},
		MaxUploadBytes: cfg.Workbook.MaxUploadMB << 20,
	})

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func init() {
	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
