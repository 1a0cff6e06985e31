// Cable catalog server - provides the HTTP API for seed ingestion, the
// ranked cable query, workflow reports, and the manual inference engine.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/cableintel/catalog/pkg/api"
	"github.com/cableintel/catalog/pkg/config"
	"github.com/cableintel/catalog/pkg/database"
	"github.com/cableintel/catalog/pkg/evidence"
	"github.com/cableintel/catalog/pkg/extract"
	"github.com/cableintel/catalog/pkg/inference"
	"github.com/cableintel/catalog/pkg/ingest"
	"github.com/cableintel/catalog/pkg/llmgateway"
	"github.com/cableintel/catalog/pkg/reports"
	"github.com/cableintel/catalog/pkg/variant"
	"github.com/cableintel/catalog/pkg/webfetch"
)

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func main() {
	configDir := flag.String("config-dir",
		getEnv("CONFIG_DIR", "./deploy/config"),
		"Path to configuration directory")
	flag.Parse()

	envPath := filepath.Join(*configDir, ".env")
	if err := godotenv.Load(envPath); err != nil {
		log.Printf("Warning: Could not load %s file: %v", envPath, err)
		log.Printf("Continuing with existing environment variables...")
	} else {
		log.Printf("Loaded environment from %s", envPath)
	}

	ginMode := getEnv("GIN_MODE", "release")
	gin.SetMode(ginMode)

	ctx := context.Background()

	cfg, err := config.Initialize(ctx, *configDir)
	if err != nil {
		log.Fatalf("Failed to initialize configuration: %v", err)
	}

	dbConfig, err := database.LoadConfigFromEnv()
	if err != nil {
		log.Fatalf("Failed to load database config: %v", err)
	}

	dbClient, err := database.NewClient(ctx, dbConfig)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			log.Printf("Error closing database client: %v", err)
		}
	}()
	log.Println("connected to PostgreSQL database")

	fetchClient := webfetch.NewClient(cfg.WebFetch.BaseURL, cfg.FirecrawlAPIKey, cfg.WebFetch.Timeout, cfg.WebFetch.CacheTTL)

	model := cfg.ManualInferenceModel
	if model == "" {
		model = "gpt-4o-mini"
	}
	llmClient := llmgateway.NewHTTPClient(cfg.LLMGateway.BaseURL, cfg.AIGatewayAPIKey, cfg.LLMGateway.Timeout, cfg.LLMGateway.MaxRetries, cfg.LLMGateway.Temperature)

	evidenceStore := evidence.NewStore(dbClient.Client)
	variantStore := variant.NewStore(dbClient.Client)

	vendorExtractor := extract.NewVendorExtractor(fetchClient)
	genericExtractor := extract.NewGenericExtractor(fetchClient, llmClient, model)
	extractorRegistry := extract.NewRegistry(cfg.Templates, vendorExtractor, genericExtractor)

	ingestEngine := ingest.NewEngine(dbClient.Client, evidenceStore, variantStore, extractorRegistry, ingest.Config{
		DefaultMaxItems:   cfg.Ingest.DefaultMaxItems,
		MaxParseRetries:   cfg.Ingest.MaxParseRetries,
		InitialRetryDelay: cfg.Ingest.InitialRetryDelay,
		MaxRetryDelay:     cfg.Ingest.MaxRetryDelay,
	})

	reportsService := reports.NewService(dbClient.Client)
	inferenceManager := inference.NewManager(dbClient.Client, llmClient, model)

	server := api.NewServer(ingestEngine, reportsService, inferenceManager, cfg.Templates, vendorExtractor, dbClient)

	httpAddr := cfg.HTTPAddr
	log.Printf("HTTP server listening on %s", httpAddr)
	if err := server.Engine.Run(httpAddr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
