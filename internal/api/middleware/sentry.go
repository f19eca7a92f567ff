package middleware

import (
	"net/http"
	"time"

	"github.com/Conceptual-Machines/verse-api/internal/logger"
	"github.com/Conceptual-Machines/verse-api/internal/metrics"
	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	requestIDKey       = "request_id"
	requestIDHeader    = "X-Request-ID"
	unmatchedRoute     = "unmatched"
	sentryFlushTimeout = 2 * time.Second
)

var sentryMetrics = metrics.NewSentryMetrics()

// RequestTracking tags each request with a UUID, logs its outcome and
// reports it to Sentry and, when cw is enabled, to CloudWatch.
func RequestTracking(cw *metrics.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := uuid.New().String()
		c.Set(requestIDKey, requestID)
		c.Header(requestIDHeader, requestID)

		start := time.Now()
		c.Next()
		elapsed := time.Since(start)

		status := c.Writer.Status()
		logOutcome(status, logger.Fields{
			"request_id":  requestID,
			"duration_ms": elapsed.Milliseconds(),
			"status_code": status,
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"client_ip":   c.ClientIP(),
		})

		route := routeLabel(c)
		sentryMetrics.RecordAPIRequest(c.Request.Context(), route, status, elapsed)
		cw.RecordAPIRequest(route, status, elapsed)
	}
}

func logOutcome(status int, fields logger.Fields) {
	switch {
	case status >= http.StatusInternalServerError:
		logger.Error("Request failed with server error", nil, fields)
	case status >= http.StatusBadRequest:
		logger.Warn("Request failed with client error", fields)
	default:
		logger.Info("Request completed", fields)
	}
}

// routeLabel is the matched route template, so metric dimensions stay bounded
func routeLabel(c *gin.Context) string {
	if route := c.FullPath(); route != "" {
		return route
	}
	return unmatchedRoute
}

// SentryMiddleware attaches a Sentry hub to each request
func SentryMiddleware() gin.HandlerFunc {
	return sentrygin.New(sentrygin.Options{
		Repanic: true,
		Timeout: sentryFlushTimeout,
	})
}

// RecoverWithSentry turns a panic into a 500 and reports it
func RecoverWithSentry() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			recovered := recover()
			if recovered == nil {
				return
			}
			requestID := c.GetString(requestIDKey)
			reportPanic(c, requestID, recovered)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error":      "Internal server error",
				"request_id": requestID,
			})
		}()
		c.Next()
	}
}

func reportPanic(c *gin.Context, requestID string, recovered interface{}) {
	logger.Error("Panic recovered", nil, logger.Fields{
		"request_id": requestID,
		"error":      recovered,
		"path":       c.Request.URL.Path,
	})

	hub := sentrygin.GetHubFromContext(c)
	if hub == nil {
		return
	}
	hub.WithScope(func(scope *sentry.Scope) {
		scope.SetRequest(c.Request)
		scope.SetTag("request_id", requestID)
		hub.RecoverWithContext(c.Request.Context(), recovered)
	})
}
