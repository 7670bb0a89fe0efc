package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds all process-wide settings. It is loaded once in main and
// passed explicitly into constructors so that core logic never reads the
// environment on its own.
type Config struct {
	Port     string
	LogLevel string

	SupabaseURL string `validate:"required,url"`
	SupabaseKey string `validate:"required"`

	// Recall provider settings. An empty API key disables asset resolution
	// and bot launching rather than failing startup; webhook ingestion and
	// reads keep working.
	RecallAPIKey string
	RecallRegion string

	// CallbackBaseURL is the externally reachable base URL the provider will
	// call back on, e.g. "https://gateway.example.com".
	CallbackBaseURL string

	// Defaults for bot launch options; callers can override per request.
	RealtimeEvents bool
	UseCaptions    bool
}

// Load reads configuration from the environment, after loading an optional
// .env file for local development.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:            getEnv("PORT", "8080"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		SupabaseURL:     os.Getenv("SUPABASE_URL"),
		SupabaseKey:     firstEnv("SUPABASE_SERVICE_KEY", "SUPABASE_ANON_KEY"),
		RecallAPIKey:    os.Getenv("RECALL_API_KEY"),
		RecallRegion:    getEnv("RECALL_REGION", "us-west-2"),
		CallbackBaseURL: os.Getenv("CALLBACK_BASE_URL"),
		RealtimeEvents:  getBoolEnv("RECALL_REALTIME_EVENTS", true),
		UseCaptions:     getBoolEnv("RECALL_USE_CAPTIONS", false),
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// WebhookURL returns the full callback URL registered with the provider.
func (c *Config) WebhookURL() string {
	return c.CallbackBaseURL + "/api/v1/meetings/webhook"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func firstEnv(keys ...string) string {
	for _, key := range keys {
		if v := os.Getenv(key); v != "" {
			return v
		}
	}
	return ""
}

func getBoolEnv(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
