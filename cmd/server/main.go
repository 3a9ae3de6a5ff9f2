package main

import (
	"fmt"
	"log"
	"os"

	"github.com/pricescout/backend/config"
	httpDelivery "github.com/pricescout/backend/internal/delivery/http"
	"github.com/pricescout/backend/internal/domain"
	"github.com/pricescout/backend/internal/infrastructure/brave"
	"github.com/pricescout/backend/internal/infrastructure/cache"
	"github.com/pricescout/backend/internal/infrastructure/scraper"
	"github.com/pricescout/backend/internal/infrastructure/serpapi"
	"github.com/pricescout/backend/internal/infrastructure/tavily"
	"github.com/pricescout/backend/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting PriceScout Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)

	debug := cfg.Pipeline.EnableDebugLogging || cfg.Server.Environment == "development"

	// Register providers in merge-priority order; providers without a
	// configured key are skipped.
	var providers []domain.SearchProvider

	if cfg.Providers.SerpAPIKey != "" {
		client := serpapi.NewClient(cfg.Providers.SerpAPIKey)
		client.SetDebug(debug)
		providers = append(providers, client)
	}
	if cfg.Providers.BraveAPIKey != "" {
		client := brave.NewClient(cfg.Providers.BraveAPIKey, "")
		client.SetDebug(debug)
		providers = append(providers, client)
	}
	if cfg.Providers.TavilyAPIKey != "" {
		client := tavily.NewClient(cfg.Providers.TavilyAPIKey, "")
		client.SetDebug(debug)
		providers = append(providers, client)
	}

	for _, provider := range providers {
		log.Printf("Provider configured: %s", provider.Name())
	}

	nameScraper := scraper.NewScraper()
	nameScraper.SetDebug(debug)

	memoryCache := cache.NewMemoryCache()
	log.Printf("Cache TTL: %s", cfg.Cache.TTL)

	compareService := usecase.NewCompareService(
		providers,
		nameScraper,
		memoryCache,
		usecase.CompareConfig{
			PrioritySource:     cfg.Pipeline.PrioritySource,
			MaxResults:         cfg.Providers.MaxResults,
			CacheTTL:           cfg.Cache.TTL,
			ExchangeRates:      cfg.Pipeline.ExchangeRates,
			EnableDebugLogging: debug,
		},
	)

	log.Printf("Pipeline: priority_source=%s, max_results=%d, debug=%v",
		cfg.Pipeline.PrioritySource, cfg.Providers.MaxResults, debug)

	handler := httpDelivery.NewHandler(compareService)
	router := httpDelivery.SetupRouter(cfg, handler)

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func init() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
