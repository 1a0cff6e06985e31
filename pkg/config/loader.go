package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cableintel/catalog/pkg/shared/apperrors"
)

// TemplatesYAMLConfig represents the optional templates.yaml file that lets
// operators add or override vendor templates without a code change.
type TemplatesYAMLConfig struct {
	Templates map[string]TemplateConfig `yaml:"templates"`
}

// Initialize loads, validates, and returns ready-to-use configuration.
//
// Steps performed:
//  1. Read environment variables (secrets, DB, HTTP address, feature toggles).
//  2. Load templates.yaml from configDir, if present (missing file is not an error).
//  3. Merge built-in vendor templates with user-defined overrides.
//  4. Build the immutable template registry.
//  5. Validate and return.
//
// configDir may be empty, in which case only built-in templates are used.
func Initialize(ctx context.Context, configDir string) (*Config, error) {
	log := slog.With("config_dir", configDir)
	log.Info("initializing configuration")

	cfg, err := fromEnv()
	if err != nil {
		return nil, err
	}

	userTemplates, err := loadTemplatesYAML(configDir)
	if err != nil {
		return nil, err
	}

	merged := mergeTemplates(GetBuiltinTemplates(), userTemplates)
	if err := validateTemplates(merged); err != nil {
		return nil, apperrors.NewConfigError("templates", err)
	}
	cfg.Templates = NewTemplateRegistry(merged)

	log.Info("configuration initialized", "templates", len(merged))
	return cfg, nil
}

// fromEnv reads the environment-sourced portion of Config. It never fails on
// a missing AI_GATEWAY_API_KEY or FIRECRAWL_API_KEY — those are checked
// lazily by the components that actually need them (see RequireAIGatewayKey
// / RequireFirecrawlKey) — but it fails fast on malformed boolean toggles,
// matching the "any other value is fatal" contract for the AI_SDK_* flags.
func fromEnv() (*Config, error) {
	telemetryEnabled, err := parseBoolEnv("AI_SDK_TELEMETRY_ENABLED", false)
	if err != nil {
		return nil, err
	}
	recordInputs, err := parseBoolEnv("AI_SDK_TELEMETRY_RECORD_INPUTS", false)
	if err != nil {
		return nil, err
	}
	recordOutputs, err := parseBoolEnv("AI_SDK_TELEMETRY_RECORD_OUTPUTS", false)
	if err != nil {
		return nil, err
	}

	dbPort, err := strconv.Atoi(getEnvOrDefault("DB_PORT", "5432"))
	if err != nil {
		return nil, apperrors.NewConfigError("DB_PORT", err)
	}

	return &Config{
		HTTPAddr: getEnvOrDefault("HTTP_ADDR", ":8080"),
		DB: Database{
			Host:     getEnvOrDefault("DB_HOST", "localhost"),
			Port:     dbPort,
			User:     getEnvOrDefault("DB_USER", "catalog"),
			Password: os.Getenv("DB_PASSWORD"),
			Name:     getEnvOrDefault("DB_NAME", "catalog"),
			SSLMode:  getEnvOrDefault("DB_SSLMODE", "disable"),
		},
		AIGatewayAPIKey:             os.Getenv("AI_GATEWAY_API_KEY"),
		FirecrawlAPIKey:             os.Getenv("FIRECRAWL_API_KEY"),
		ManualInferenceModel:        os.Getenv("MANUAL_INFERENCE_MODEL"),
		AISDKTelemetryEnabled:       telemetryEnabled,
		AISDKTelemetryRecordInputs:  recordInputs,
		AISDKTelemetryRecordOutputs: recordOutputs,
		Ingest:                      DefaultIngestConfig(),
		WebFetch:                    DefaultWebFetchConfig(),
		LLMGateway:                  DefaultLLMGatewayConfig(),
	}, nil
}

// RequireAIGatewayKey returns the configured LLM gateway API key, or a
// ConfigError if it is unset. Call this from the first action that actually
// needs the LLM, not at process startup.
func (c *Config) RequireAIGatewayKey() (string, error) {
	if c.AIGatewayAPIKey == "" {
		return "", apperrors.NewConfigError("AI_GATEWAY_API_KEY", fmt.Errorf("missing required environment variable: AI_GATEWAY_API_KEY"))
	}
	return c.AIGatewayAPIKey, nil
}

// RequireFirecrawlKey returns the configured web fetch API key, or a
// ConfigError if it is unset.
func (c *Config) RequireFirecrawlKey() (string, error) {
	if c.FirecrawlAPIKey == "" {
		return "", apperrors.NewConfigError("FIRECRAWL_API_KEY", fmt.Errorf("missing required environment variable: FIRECRAWL_API_KEY"))
	}
	return c.FirecrawlAPIKey, nil
}

func parseBoolEnv(key string, def bool) (bool, error) {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return def, nil
	}
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "1", "yes":
		return true, nil
	case "false", "0", "no":
		return false, nil
	default:
		return false, apperrors.NewConfigError(key, fmt.Errorf("invalid boolean value %q", raw))
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func loadTemplatesYAML(configDir string) (map[string]TemplateConfig, error) {
	if configDir == "" {
		return nil, nil
	}
	path := filepath.Join(configDir, "templates.yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, apperrors.NewConfigError("templates.yaml", err)
	}

	data = ExpandEnv(data)

	var parsed TemplatesYAMLConfig
	parsed.Templates = make(map[string]TemplateConfig)
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return nil, apperrors.NewConfigError("templates.yaml", err)
	}
	return parsed.Templates, nil
}
