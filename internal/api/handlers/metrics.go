package handlers

import (
	"net/http"
	"runtime"
	"time"

	"github.com/Conceptual-Machines/verse-api/internal/config"
	"github.com/gin-gonic/gin"
)

// UpstreamInfo describes the text generation upstream poems are requested from
type UpstreamInfo struct {
	BaseURL          string `json:"base_url"`
	Model            string `json:"model"`
	PrimaryTransport string `json:"primary_transport"`
	AttemptTimeoutMS int64  `json:"attempt_timeout_ms"`
}

type MetricsResponse struct {
	Status     string       `json:"status"`
	Version    string       `json:"version"`
	Uptime     string       `json:"uptime"`
	Goroutines int          `json:"goroutines"`
	Upstream   UpstreamInfo `json:"upstream"`
}

// MetricsHandler reports process uptime and the upstream configuration.
// Request counts and latencies go to CloudWatch and Sentry instead.
type MetricsHandler struct {
	started  time.Time
	version  string
	upstream UpstreamInfo
}

func NewMetricsHandler(version string, cfg *config.Config) *MetricsHandler {
	return &MetricsHandler{
		started: time.Now(),
		version: version,
		upstream: UpstreamInfo{
			BaseURL:          cfg.UpstreamBaseURL,
			Model:            cfg.UpstreamModel,
			PrimaryTransport: cfg.PrimaryTransport,
			AttemptTimeoutMS: cfg.UpstreamTimeout.Milliseconds(),
		},
	}
}

// GetMetrics handles GET /api/metrics
func (h *MetricsHandler) GetMetrics(c *gin.Context) {
	c.JSON(http.StatusOK, MetricsResponse{
		Status:     "healthy",
		Version:    h.version,
		Uptime:     time.Since(h.started).Round(time.Second).String(),
		Goroutines: runtime.NumGoroutine(),
		Upstream:   h.upstream,
	})
}
