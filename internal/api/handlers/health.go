package handlers

import (
	"net/http"

	"github.com/Conceptual-Machines/verse-api/internal/config"
	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	cfg *config.Config
}

func NewHealthHandler(cfg *config.Config) *HealthHandler {
	return &HealthHandler{cfg: cfg}
}

// HealthCheck returns the health status of the API and the upstream it is wired to.
// The upstream itself is not called.
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"upstream": gin.H{
			"base_url":          h.cfg.UpstreamBaseURL,
			"primary_transport": h.cfg.PrimaryTransport,
		},
	})
}
