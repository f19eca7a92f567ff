package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

const (
	transportNamePayload = "payload"
	transportNamePath    = "path"

	// maxResponseBytes caps how much of a generated body is read
	maxResponseBytes = 1 << 20
)

// payloadRequest is the JSON body of the structured-payload transport
type payloadRequest struct {
	Prompt      string  `json:"prompt"`
	Model       string  `json:"model"`
	Temperature float64 `json:"temperature"`
	MaxTokens   int     `json:"max_tokens"`
}

// PayloadTransport posts the prompt and generation parameters as JSON to the base URL
type PayloadTransport struct {
	baseURL    string
	httpClient *http.Client
}

// NewPayloadTransport creates the structured-payload transport
func NewPayloadTransport(baseURL string, httpClient *http.Client) *PayloadTransport {
	return &PayloadTransport{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: orDefaultClient(httpClient),
	}
}

// Name returns the transport name
func (t *PayloadTransport) Name() string {
	return transportNamePayload
}

// Complete sends POST <base>/ with the JSON payload and returns the trimmed body
func (t *PayloadTransport) Complete(ctx context.Context, request *GenerationRequest) (string, error) {
	body, err := json.Marshal(payloadRequest{
		Prompt:      request.Prompt,
		Model:       request.Model,
		Temperature: request.Temperature,
		MaxTokens:   request.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.baseURL+"/", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return doText(t.httpClient, req, t.Name())
}

// PathTransport encodes the prompt into the request path: GET <base>/<escaped prompt>
type PathTransport struct {
	baseURL    string
	httpClient *http.Client
}

// NewPathTransport creates the encoded-URL transport
func NewPathTransport(baseURL string, httpClient *http.Client) *PathTransport {
	return &PathTransport{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: orDefaultClient(httpClient),
	}
}

// Name returns the transport name
func (t *PathTransport) Name() string {
	return transportNamePath
}

// Complete sends GET <base>/<url.PathEscape(prompt)> and returns the trimmed body.
// Only the prompt travels; model parameters are left to the upstream defaults.
func (t *PathTransport) Complete(ctx context.Context, request *GenerationRequest) (string, error) {
	target := t.baseURL + "/" + url.PathEscape(request.Prompt)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	return doText(t.httpClient, req, t.Name())
}

// doText executes req and returns the trimmed plain-text body of a 2xx response
func doText(client *http.Client, req *http.Request, transport string) (string, error) {
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%s transport: %w", transport, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", fmt.Errorf("%s transport: read response: %w", transport, err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return "", &StatusError{
			Transport:  transport,
			StatusCode: resp.StatusCode,
			Body:       truncate(strings.TrimSpace(string(respBody)), maxErrorBodyChars),
		}
	}

	return strings.TrimSpace(string(respBody)), nil
}

func orDefaultClient(httpClient *http.Client) *http.Client {
	if httpClient != nil {
		return httpClient
	}
	return &http.Client{}
}
