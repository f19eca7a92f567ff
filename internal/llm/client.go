package llm

import (
	"context"
	"time"

	"github.com/Conceptual-Machines/verse-api/internal/logger"
	"github.com/getsentry/sentry-go"
)

// Client generates text for a prompt with a primary transport and exactly one
// fallback attempt on a secondary transport. There is no backoff and no
// further retry. A retried prompt may produce different text than the first
// attempt would have.
type Client struct {
	primary  Transport
	fallback Transport
	model    string
	timeout  time.Duration // per attempt; zero means only the caller's context bounds it
}

// NewClient creates a generation client
func NewClient(primary, fallback Transport, model string, timeout time.Duration) *Client {
	if model == "" {
		model = DefaultModel
	}
	return &Client{
		primary:  primary,
		fallback: fallback,
		model:    model,
		timeout:  timeout,
	}
}

// PrimaryTransport returns the name of the primary transport
func (c *Client) PrimaryTransport() string {
	return c.primary.Name()
}

// FallbackTransport returns the name of the fallback transport
func (c *Client) FallbackTransport() string {
	return c.fallback.Name()
}

// Generate returns the generated text for prompt, or an *UpstreamError when
// both transports failed
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := c.GenerateWithDetails(ctx, prompt)
	if err != nil {
		return "", err
	}
	return resp.Text, nil
}

// GenerateWithDetails is Generate plus the transport that produced the text
func (c *Client) GenerateWithDetails(ctx context.Context, prompt string) (*GenerationResponse, error) {
	request := &GenerationRequest{
		Prompt:      prompt,
		Model:       c.model,
		Temperature: DefaultTemperature,
		MaxTokens:   DefaultMaxTokens,
	}

	text, primaryErr := c.attempt(ctx, c.primary, request)
	if primaryErr == nil {
		return &GenerationResponse{Text: text, Transport: c.primary.Name()}, nil
	}

	// The caller is gone, do not start the fallback
	if ctx.Err() != nil {
		return nil, &UpstreamError{Primary: primaryErr, Fallback: ctx.Err()}
	}

	logger.Warn("Primary transport failed, trying fallback", logger.Fields{
		"primary":  c.primary.Name(),
		"fallback": c.fallback.Name(),
		"error":    primaryErr.Error(),
	})

	text, fallbackErr := c.attempt(ctx, c.fallback, request)
	if fallbackErr != nil {
		return nil, &UpstreamError{Primary: primaryErr, Fallback: fallbackErr}
	}

	return &GenerationResponse{Text: text, Transport: c.fallback.Name(), Fallback: true}, nil
}

// attempt runs one transport call under its own timeout
func (c *Client) attempt(ctx context.Context, transport Transport, request *GenerationRequest) (string, error) {
	attemptCtx := ctx
	if c.timeout > 0 {
		var cancel context.CancelFunc
		attemptCtx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	span := sentry.StartSpan(ctx, "upstream.attempt")
	span.Description = transport.Name()
	span.SetTag("transport", transport.Name())
	span.SetData("prompt_chars", len([]rune(request.Prompt)))

	start := time.Now()
	text, err := transport.Complete(attemptCtx, request)
	duration := time.Since(start)

	if err != nil {
		span.Status = sentry.SpanStatusInternalError
	} else {
		span.Status = sentry.SpanStatusOK
	}
	span.Finish()

	logger.LogTransportAttempt(transport.Name(), duration, err, logger.Fields{
		"model": request.Model,
	})
	return text, err
}
