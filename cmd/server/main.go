package main

import (
	"fmt"
	"log"
	"os"

	"github.com/supplens/backend/config"
	httpDelivery "github.com/supplens/backend/internal/delivery/http"
	"github.com/supplens/backend/internal/infrastructure/cache"
	"github.com/supplens/backend/internal/infrastructure/pricefeed"
	"github.com/supplens/backend/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting Supplens Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)
	log.Printf("Cache TTL: %s", cfg.Cache.TTL)

	// Initialize infrastructure dependencies
	memoryCache := cache.NewMemory()
	defer memoryCache.Close()

	feedClient := pricefeed.NewClient(cfg.PriceFeed.APIKey, cfg.PriceFeed.BaseURL, cfg.PriceFeed.RequestsPerHour)

	// Enable debug mode in development environment
	if cfg.Server.Environment == "development" {
		feedClient.SetDebug(true)
		log.Printf("Price feed client debug mode enabled")
	}

	log.Printf("Price feed configured: %s (budget: %d req/h)", cfg.PriceFeed.BaseURL, cfg.PriceFeed.RequestsPerHour)

	// Initialize usecase layer
	catalogService := usecase.NewCatalogService(usecase.CatalogServiceConfig{
		EnableDebugLogging: cfg.Scoring.EnableDebugLogging,
	})
	safetyService := usecase.NewSafetyService()
	priceService := usecase.NewPriceService()

	log.Printf("Scoring: debug=%v", cfg.Scoring.EnableDebugLogging)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(
		catalogService,
		safetyService,
		priceService,
		feedClient,
		memoryCache,
		cfg.Cache.TTL,
	)

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
