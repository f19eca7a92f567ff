package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/Conceptual-Machines/verse-api/internal/logger"
	"github.com/Conceptual-Machines/verse-api/internal/models"
	"github.com/gin-gonic/gin"
)

const (
	// MsgGenerationFailed is the only detail a caller sees when a poem cannot be produced
	MsgGenerationFailed = "Failed to generate poem. Please try again."
	msgInvalidBody      = "Invalid request body"
	msgBodyTooLarge     = "Request body too large"

	// MaxRequestBodyBytes bounds the JSON body of POST /generate-poem
	MaxRequestBodyBytes = 64 << 10
)

// VerseGenerator produces a titled poem for a selection
type VerseGenerator interface {
	Generate(ctx context.Context, sel models.Selection) (*models.GeneratedResult, error)
}

type VerseHandler struct {
	service VerseGenerator
}

func NewVerseHandler(service VerseGenerator) *VerseHandler {
	return &VerseHandler{service: service}
}

// GeneratePoemRequest is the body of POST /generate-poem.
// Field rules live in Selection.Validate; only the body size is bounded here.
type GeneratePoemRequest struct {
	Character     string `json:"character"`
	Location      string `json:"location"`
	Event         string `json:"event"`
	Emotion       string `json:"emotion"`
	CustomEmotion string `json:"customEmotion"`
	Language      string `json:"language"`
}

func (r GeneratePoemRequest) selection() models.Selection {
	return models.Selection{
		Character:     strings.TrimSpace(r.Character),
		Location:      strings.TrimSpace(r.Location),
		Event:         strings.TrimSpace(r.Event),
		Emotion:       strings.TrimSpace(r.Emotion),
		CustomEmotion: r.CustomEmotion,
		Language:      models.Language(strings.TrimSpace(r.Language)),
	}
}

// GeneratePoem handles POST /generate-poem
func (h *VerseHandler) GeneratePoem(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxRequestBodyBytes)

	var req GeneratePoemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Invalid generate-poem request", mergeFields(logger.WithContext(c), logger.Fields{
			"error": err.Error(),
		}))
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": msgBodyTooLarge})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidBody})
		return
	}

	sel := req.selection()
	result, err := h.service.Generate(c.Request.Context(), sel)
	if err != nil {
		var validationErr *models.ValidationError
		if errors.As(err, &validationErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Message})
			return
		}

		logger.Error("Poem generation failed", err, mergeFields(logger.WithContext(c), logger.Fields{
			"language": string(sel.Language),
		}))
		c.JSON(http.StatusInternalServerError, gin.H{"error": MsgGenerationFailed})
		return
	}

	c.JSON(http.StatusOK, result)
}

func mergeFields(base, extra logger.Fields) logger.Fields {
	for k, v := range extra {
		base[k] = v
	}
	return base
}
