// Package config loads and validates the catalog service's runtime
// configuration: environment-sourced secrets and tunables, plus the
// YAML-defined vendor template registry used by the source extractors.
package config

import "time"

// Config is the umbrella configuration object produced by Initialize and
// threaded through the ingestion pipeline, API server, and manual inference
// engine.
type Config struct {
	// HTTPAddr is the address the API server listens on, e.g. ":8080".
	HTTPAddr string

	DB Database

	// AIGatewayAPIKey authenticates calls to the LLM gateway. Required only
	// by code paths that actually invoke the LLM (generic extractor fallback,
	// manual inference LLM pass); checked lazily, not at startup.
	AIGatewayAPIKey string

	// FirecrawlAPIKey authenticates calls to the web fetch service. Required
	// only by the generic (non-template) scrape path.
	FirecrawlAPIKey string

	// ManualInferenceModel optionally overrides the default LLM model used
	// by the manual inference engine's LLM pass.
	ManualInferenceModel string

	AISDKTelemetryEnabled      bool
	AISDKTelemetryRecordInputs bool
	AISDKTelemetryRecordOutputs bool

	Ingest     IngestConfig
	WebFetch   WebFetchConfig
	LLMGateway LLMGatewayConfig

	Templates *TemplateRegistry
}

// IngestConfig controls the workflow engine's batching and retry behavior.
type IngestConfig struct {
	// DefaultMaxItems caps the number of seed URLs processed per workflow
	// when the caller does not specify one.
	DefaultMaxItems int

	// MaxParseRetries is the number of attempts per workflow item before it
	// is marked failed.
	MaxParseRetries int

	// InitialRetryDelay is the base delay before the first retry.
	InitialRetryDelay time.Duration

	// MaxRetryDelay caps the exponential backoff delay.
	MaxRetryDelay time.Duration
}

// DefaultIngestConfig returns the built-in ingest defaults.
func DefaultIngestConfig() IngestConfig {
	return IngestConfig{
		DefaultMaxItems:   50,
		MaxParseRetries:   3,
		InitialRetryDelay: 500 * time.Millisecond,
		MaxRetryDelay:     8 * time.Second,
	}
}

// WebFetchConfig controls the Firecrawl-backed scrape client.
type WebFetchConfig struct {
	BaseURL string
	Timeout time.Duration
	// CacheTTL bounds how long a fetched snapshot is reused across items
	// that reference the same canonical URL within one workflow run.
	CacheTTL time.Duration
}

// DefaultWebFetchConfig returns the built-in web fetch defaults.
func DefaultWebFetchConfig() WebFetchConfig {
	return WebFetchConfig{
		BaseURL:  "https://api.firecrawl.dev",
		Timeout:  20 * time.Second,
		CacheTTL: 1 * time.Minute,
	}
}

// LLMGatewayConfig controls the bounded LLM gateway client.
type LLMGatewayConfig struct {
	BaseURL     string
	Timeout     time.Duration
	MaxRetries  int
	Temperature float64
}

// DefaultLLMGatewayConfig returns the built-in LLM gateway defaults.
func DefaultLLMGatewayConfig() LLMGatewayConfig {
	return LLMGatewayConfig{
		BaseURL:     "https://gateway.ai.internal",
		Timeout:     8 * time.Second,
		MaxRetries:  1,
		Temperature: 0,
	}
}

// Database mirrors database.Config's shape without importing the database
// package, keeping config free of driver-level dependencies.
type Database struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}
