package common

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	Server ServerConfig
	LLM    LLMConfig
	Store  StoreConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Addr        string
	MaxUploadMB int
}

// LLMConfig holds generation-service configuration
type LLMConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// StoreConfig holds vocabulary store configuration
type StoreConfig struct {
	Path string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:        getEnv("ADDR", ":"+getEnv("PORT", "8080")),
			MaxUploadMB: getEnvAsInt("MAX_UPLOAD_MB", 32),
		},
		LLM: LLMConfig{
			APIKey:  getEnv("GEMINI_API_KEY", ""),
			BaseURL: getEnv("GEMINI_BASE_URL", ""),
			Model:   getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
			Timeout: getEnvAsDuration("GEMINI_TIMEOUT", 60*time.Second),
		},
		Store: StoreConfig{
			Path: getEnv("VOCAB_STORE_PATH", "./data/vocabulary.json"),
		},
	}
}

// Validate validates the loaded configuration. A missing API key is a fatal
// configuration error, distinct from runtime upstream failures.
func (c *Config) Validate() error {
	if c.LLM.APIKey == "" {
		return NewAppError("CONFIG_ERROR", "GEMINI_API_KEY is required", ErrMissingCredential)
	}
	if c.Server.Addr == "" {
		return NewAppError("CONFIG_ERROR", "ADDR is required", nil)
	}
	if c.Store.Path == "" {
		return NewAppError("CONFIG_ERROR", "VOCAB_STORE_PATH is required", nil)
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
