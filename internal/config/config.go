package config

import (
	"log"
	"os"
	"time"
)

const (
	defaultUpstreamBaseURL = "https://text.pollinations.ai"
	defaultUpstreamModel   = "openai"
	defaultUpstreamTimeout = 20 * time.Second

	// TransportPayload posts the prompt as a JSON payload
	TransportPayload = "payload"
	// TransportOpenAI uses the upstream's OpenAI-compatible chat completions endpoint
	TransportOpenAI = "openai"
)

// Config holds the application configuration
// Note: the service is stateless - nothing is persisted and there are no accounts
type Config struct {
	// Environment
	Environment string
	Port        string

	// Upstream text generation service
	UpstreamBaseURL  string        // Base URL of the text generation service
	UpstreamModel    string        // Model identifier sent with every request
	UpstreamAPIKey   string        // Optional bearer token
	PrimaryTransport string        // "payload" (default) or "openai"
	UpstreamTimeout  time.Duration // Timeout applied to each transport attempt

	// Browser form origin
	CORSAllowedOrigin string

	// Observability
	SentryDSN         string // Sentry DSN for error tracking
	LangfusePublicKey string // Langfuse public key
	LangfuseSecretKey string // Langfuse secret key
	LangfuseHost      string // Langfuse host URL (cloud or self-hosted)
	LangfuseEnabled   bool   // Feature flag for Langfuse
}

func Load() *Config {
	return &Config{
		Environment:       getEnv("ENVIRONMENT", "development"),
		Port:              getEnv("PORT", "8080"),
		UpstreamBaseURL:   getEnv("UPSTREAM_BASE_URL", defaultUpstreamBaseURL),
		UpstreamModel:     getEnv("UPSTREAM_MODEL", defaultUpstreamModel),
		UpstreamAPIKey:    getEnv("UPSTREAM_API_KEY", ""),
		PrimaryTransport:  getEnv("PRIMARY_TRANSPORT", TransportPayload),
		UpstreamTimeout:   getDuration("UPSTREAM_TIMEOUT", defaultUpstreamTimeout),
		CORSAllowedOrigin: getEnv("CORS_ALLOWED_ORIGIN", "*"),
		SentryDSN:         getEnv("SENTRY_DSN", ""),
		LangfusePublicKey: getEnv("LANGFUSE_PUBLIC_KEY", ""),
		LangfuseSecretKey: getEnv("LANGFUSE_SECRET_KEY", ""),
		LangfuseHost:      getEnv("LANGFUSE_HOST", "https://cloud.langfuse.com"),
		LangfuseEnabled:   getEnv("LANGFUSE_ENABLED", "false") == "true",
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		log.Printf("⚠️  Invalid %s=%q, using default %s", key, value, defaultValue)
		return defaultValue
	}
	return d
}

// IsProduction returns true when running in the production environment
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
