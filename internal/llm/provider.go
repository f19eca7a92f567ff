package llm

import (
	"context"
)

// Fixed generation parameters sent with every request
const (
	DefaultModel       = "openai"
	DefaultTemperature = 0.8
	DefaultMaxTokens   = 500
)

// Transport is one concrete way of calling the text generation service.
// Complete returns the generated text trimmed of surrounding whitespace.
type Transport interface {
	Complete(ctx context.Context, request *GenerationRequest) (string, error)

	// Name returns the transport name (e.g. "payload", "path", "openai")
	Name() string
}

// GenerationRequest contains everything a transport needs for one call
type GenerationRequest struct {
	Prompt      string
	Model       string
	Temperature float64
	MaxTokens   int
}

// GenerationResponse is the text returned for a prompt and how it was obtained
type GenerationResponse struct {
	Text      string
	Transport string // transport that produced Text
	Fallback  bool   // true when the primary transport failed
}
