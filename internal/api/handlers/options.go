package handlers

import (
	"net/http"

	"github.com/Conceptual-Machines/verse-api/internal/prompt"
	"github.com/gin-gonic/gin"
)

// GetOptions returns the selectable codes and labels for the poem form
func GetOptions(c *gin.Context) {
	c.JSON(http.StatusOK, prompt.Options())
}
