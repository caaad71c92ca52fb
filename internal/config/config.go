package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration for the client and the sandbox.
// Values are loaded from environment variables with sensible defaults.
type Config struct {
	LogLevel string

	// BankUp API
	APIURL string

	// HTTP client
	HTTPTimeout time.Duration

	// Resilience
	MaxRetries     int
	InitialBackoff time.Duration
	MaxConcurrency int

	// Cache
	CacheTTL time.Duration

	// Local session storage (sqlite file)
	SessionDB string

	// Observability
	OTLPEndpoint string

	// Dashboard
	UpcomingDays int

	// Sandbox server
	SandboxPort     int
	SandboxSecret   string
	SandboxTokenTTL time.Duration
	SandboxCodeTTL  time.Duration
	SandboxDevCodes bool
}

// Load reads configuration from environment variables with defaults.
func Load() *Config {
	return &Config{
		LogLevel: getEnv("LOG_LEVEL", "warn"),

		APIURL: strings.TrimRight(getEnv("BANKUP_API_URL", "http://localhost:8080"), "/"),

		HTTPTimeout: getEnvDuration("HTTP_TIMEOUT", 10*time.Second),

		MaxRetries:     getEnvInt("MAX_RETRIES", 2),
		InitialBackoff: getEnvDuration("INITIAL_BACKOFF", 200*time.Millisecond),
		MaxConcurrency: getEnvInt("MAX_CONCURRENCY", 4),

		CacheTTL: getEnvDuration("CACHE_TTL", time.Minute),

		SessionDB: getEnv("SESSION_DB", "bankup.db"),

		OTLPEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),

		UpcomingDays: getEnvInt("DASHBOARD_UPCOMING_DAYS", 7),

		SandboxPort:     getEnvInt("SANDBOX_PORT", 8080),
		SandboxSecret:   getEnv("SANDBOX_JWT_SECRET", "bankup-sandbox-dev-secret-change-me"),
		SandboxTokenTTL: getEnvDuration("SANDBOX_TOKEN_TTL", 24*time.Hour),
		SandboxCodeTTL:  getEnvDuration("SANDBOX_CODE_TTL", 10*time.Minute),
		SandboxDevCodes: getEnvBool("SANDBOX_DEV_CODES", true),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
