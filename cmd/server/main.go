package main

import (
	"fmt"
	"log"
	"os"

	"github.com/chatlens/bot/config"
	httpDelivery "github.com/chatlens/bot/internal/delivery/http"
	"github.com/chatlens/bot/internal/domain"
	"github.com/chatlens/bot/internal/infrastructure/cache"
	"github.com/chatlens/bot/internal/infrastructure/gateway"
	"github.com/chatlens/bot/internal/infrastructure/llm"
	"github.com/chatlens/bot/internal/infrastructure/serper"
	"github.com/chatlens/bot/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting ChatLens Bot v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)
	log.Printf("Cache Type: %s", cfg.Cache.Type)

	// Initialize infrastructure dependencies
	var resultCache domain.CacheRepository
	if cfg.Cache.Type == "memory" {
		resultCache = cache.NewMemoryCache()
		log.Printf("Cache TTL: %s", cfg.Cache.TTL)
	} else {
		resultCache = cache.NewDisabledCache()
		log.Printf("WARNING: caching disabled - every lookup hits the search endpoint")
	}

	searchClient := serper.NewClient(cfg.Search.APIKey, cfg.Search.BaseURL, cfg.Search.Region, cfg.Search.Locale)
	gatewayClient := gateway.NewClient(cfg.Gateway.Token, cfg.Gateway.BaseURL)
	llmClient := llm.NewOpenAIClient(cfg.LLM.APIKey, cfg.LLM.BaseURL, cfg.LLM.Model, cfg.LLM.MaxTokens)

	// Enable debug mode in development environment
	if cfg.Server.Environment == "development" {
		searchClient.SetDebug(true)
		log.Printf("Search client debug mode enabled")
	}

	log.Printf("Search API configured: %s (region=%s, locale=%s)", cfg.Search.BaseURL, cfg.Search.Region, cfg.Search.Locale)
	log.Printf("LLM configured: model=%s, max_tokens=%d", cfg.LLM.Model, cfg.LLM.MaxTokens)
	log.Printf("Gateway configured: %s", cfg.Gateway.BaseURL)

	// Initialize usecase layer
	lookupService := usecase.NewLookupService(
		resultCache,
		searchClient,
		domain.DefaultVendors,
		usecase.LookupServiceConfig{CacheTTL: cfg.Cache.TTL},
	)
	summaryService := usecase.NewSummaryService(
		gatewayClient,
		llmClient,
		usecase.SummaryServiceConfig{MaxMessages: cfg.Summary.MaxMessages},
	)
	sessions := usecase.NewSessionRegistry()

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(summaryService, lookupService, sessions)

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
