package main

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/Conceptual-Machines/verse-api/internal/api"
	"github.com/Conceptual-Machines/verse-api/internal/config"
	"github.com/Conceptual-Machines/verse-api/internal/llm"
	"github.com/Conceptual-Machines/verse-api/internal/metrics"
	"github.com/Conceptual-Machines/verse-api/internal/observability"
	"github.com/Conceptual-Machines/verse-api/internal/prompt"
	"github.com/Conceptual-Machines/verse-api/internal/services"
	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "go.uber.org/automaxprocs"
)

const (
	sentryFlushTimeout    = 2 * time.Second
	environmentProduction = "production"
)

// releaseVersion is set via ldflags during build
var releaseVersion = "dev"

// GetVersion returns the current release version
func GetVersion() string {
	return releaseVersion
}

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	// Initialize Sentry
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			Environment:      cfg.Environment,
			Release:          "verse-api@" + releaseVersion,
			EnableTracing:    true,
			TracesSampleRate: 1.0,
			Debug:            cfg.Environment != environmentProduction,
			BeforeSend: func(event *sentry.Event, _ *sentry.EventHint) *sentry.Event {
				if event.Request != nil {
					event.Request.Headers = filterSensitiveHeaders(event.Request.Headers)
				}
				return event
			},
		}); err != nil {
			log.Printf("Failed to initialize Sentry: %v", err)
		} else {
			log.Printf("✅ Sentry initialized (environment: %s, release: %s)", cfg.Environment, releaseVersion)
			defer sentry.Flush(sentryFlushTimeout)
		}
	} else {
		log.Println("⚠️  Sentry not configured (SENTRY_DSN not set)")
	}

	ctx := context.Background()
	tracer := observability.InitializeLangfuse(ctx, cfg)

	cw, err := metrics.NewClient(ctx, cfg.Environment)
	if err != nil {
		log.Printf("⚠️  CloudWatch metrics unavailable: %v", err)
		cw = metrics.NewDisabledClient(cfg.Environment)
	}

	builder, err := prompt.NewPromptBuilder()
	if err != nil {
		sentry.CaptureException(err)
		log.Fatal("Failed to load prompt templates:", err)
	}

	client, err := llm.NewClientFromConfig(cfg)
	if err != nil {
		sentry.CaptureException(err)
		log.Fatal("Failed to configure upstream client:", err)
	}
	log.Printf("🔌 Upstream %s (primary: %s, fallback: %s, attempt timeout: %s)",
		cfg.UpstreamBaseURL, client.PrimaryTransport(), client.FallbackTransport(), cfg.UpstreamTimeout)

	verseService := services.NewVerseService(builder, client, cw, tracer)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := api.SetupRouter(cfg, verseService, cw, GetVersion())

	log.Printf("🚀 Starting server on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		sentry.CaptureException(err)
		log.Fatal("Failed to start server:", err)
	}
}

func filterSensitiveHeaders(headers map[string]string) map[string]string {
	filtered := make(map[string]string)
	sensitiveKeys := map[string]bool{
		"authorization": true,
		"cookie":        true,
		"x-api-key":     true,
	}

	for k, v := range headers {
		if sensitiveKeys[strings.ToLower(k)] {
			filtered[k] = "[REDACTED]"
		} else {
			filtered[k] = v
		}
	}
	return filtered
}
