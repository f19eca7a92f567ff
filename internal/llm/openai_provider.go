package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const (
	transportNameOpenAI = "openai"

	// openAICompatiblePath is where the upstream serves its chat completions API
	openAICompatiblePath = "/openai/"
)

// OpenAITransport calls the upstream's OpenAI-compatible chat completions endpoint
type OpenAITransport struct {
	client *openai.Client
}

// NewOpenAITransport creates the OpenAI-compatible transport.
// SDK retries are disabled: fallback is handled by Client, once.
func NewOpenAITransport(baseURL, apiKey string, httpClient *http.Client) *OpenAITransport {
	opts := []option.RequestOption{
		option.WithBaseURL(strings.TrimRight(baseURL, "/") + openAICompatiblePath),
		option.WithMaxRetries(0),
		option.WithHTTPClient(orDefaultClient(httpClient)),
	}
	if apiKey != "" {
		opts = append(opts, option.WithAPIKey(apiKey))
	}

	client := openai.NewClient(opts...)
	return &OpenAITransport{client: &client}
}

// Name returns the transport name
func (t *OpenAITransport) Name() string {
	return transportNameOpenAI
}

// Complete sends the prompt as a single user message and returns the trimmed reply
func (t *OpenAITransport) Complete(ctx context.Context, request *GenerationRequest) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(request.Model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(request.Prompt),
		},
		Temperature: openai.Float(request.Temperature),
		MaxTokens:   openai.Int(int64(request.MaxTokens)),
	}

	resp, err := t.client.Chat.Completions.New(ctx, params)
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			return "", &StatusError{Transport: t.Name(), StatusCode: apiErr.StatusCode}
		}
		return "", fmt.Errorf("%s transport: %w", t.Name(), err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%s transport: no choices returned", t.Name())
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
