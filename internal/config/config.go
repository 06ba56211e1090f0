// Package config provides environment configuration for the API server.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the application.
type Config struct {
	// Server settings
	ServerPort         string
	ServerReadTimeout  time.Duration
	ServerWriteTimeout time.Duration

	// JWT settings
	JWTSecret string

	// Responder settings
	ResponderBackend string
	InferenceURL     string
	InferenceContext string
	InferenceTimeout time.Duration
	OpenAIAPIKey     string
	AnthropicAPIKey  string
	AIModel          string
	ScriptedDelay    time.Duration

	// Storage
	CounterDBPath string

	// Directory
	DirectoryBaseURL string

	// Localization
	DefaultLocale string

	// Alerts
	AlertsEnabled bool

	// Rate limiting
	RateLimitRequests int
	RateLimitWindow   time.Duration

	// Logging
	LogLevel string

	// Tracing
	TracingEndpoint string
	TracingEnabled  bool
}

// Load reads configuration from environment variables.
func Load() *Config {
	return &Config{
		// Server
		ServerPort:         getEnv("PORT", "8080"),
		ServerReadTimeout:  getDurationEnv("SERVER_READ_TIMEOUT", 30*time.Second),
		ServerWriteTimeout: getDurationEnv("SERVER_WRITE_TIMEOUT", 60*time.Second),

		// JWT
		JWTSecret: getEnv("JWT_SECRET", "development-secret-change-in-production"),

		// Responder
		ResponderBackend: getEnv("RESPONDER_BACKEND", "inference"),
		InferenceURL:     getEnv("INFERENCE_URL", ""),
		InferenceContext: getEnv("INFERENCE_CONTEXT", "tutoring"),
		InferenceTimeout: getDurationEnv("INFERENCE_TIMEOUT", 30*time.Second),
		OpenAIAPIKey:     getEnv("OPENAI_API_KEY", ""),
		AnthropicAPIKey:  getEnv("ANTHROPIC_API_KEY", ""),
		AIModel:          getEnv("AI_MODEL", ""),
		ScriptedDelay:    getDurationEnv("SCRIPTED_DELAY", 1200*time.Millisecond),

		// Storage
		CounterDBPath: getEnv("COUNTER_DB_PATH", "./data/counters.db"),

		// Directory
		DirectoryBaseURL: getEnv("DIRECTORY_BASE_URL", ""),

		// Localization
		DefaultLocale: getEnv("DEFAULT_LOCALE", "en"),

		// Alerts
		AlertsEnabled: getBoolEnv("ALERTS_ENABLED", true),

		// Rate limiting
		RateLimitRequests: getIntEnv("RATE_LIMIT_REQUESTS", 60),
		RateLimitWindow:   getDurationEnv("RATE_LIMIT_WINDOW", time.Minute),

		// Logging
		LogLevel: getEnv("LOG_LEVEL", "info"),

		// Tracing
		TracingEndpoint: getEnv("TRACING_ENDPOINT", "localhost:4318"),
		TracingEnabled:  getBoolEnv("TRACING_ENABLED", false),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
