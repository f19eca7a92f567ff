package api

import (
	"github.com/Conceptual-Machines/verse-api/internal/api/handlers"
	apimiddleware "github.com/Conceptual-Machines/verse-api/internal/api/middleware"
	"github.com/Conceptual-Machines/verse-api/internal/config"
	"github.com/Conceptual-Machines/verse-api/internal/metrics"
	"github.com/gin-gonic/gin"
)

func SetupRouter(
	cfg *config.Config,
	verseService handlers.VerseGenerator,
	cw *metrics.Client,
	version string,
) *gin.Engine {
	router := gin.New()

	// Recovery middleware (must be first)
	router.Use(apimiddleware.RecoverWithSentry())

	// Sentry middleware for error tracking
	router.Use(apimiddleware.SentryMiddleware())

	// Request tracking and structured logging
	router.Use(apimiddleware.RequestTracking(cw))

	// CORS middleware
	router.Use(apimiddleware.CORS(cfg.CORSAllowedOrigin))

	// Health check
	healthHandler := handlers.NewHealthHandler(cfg)
	router.GET("/health", healthHandler.HealthCheck)

	// Metrics endpoint
	metricsHandler := handlers.NewMetricsHandler(version, cfg)
	router.GET("/api/metrics", metricsHandler.GetMetrics)

	// Form options
	router.GET("/api/options", handlers.GetOptions)

	// Poem generation
	verseHandler := handlers.NewVerseHandler(verseService)
	router.POST("/generate-poem", verseHandler.GeneratePoem)
	router.POST("/api/generate-poem", verseHandler.GeneratePoem) // Path used by the browser form

	return router
}
