package llm

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/Conceptual-Machines/verse-api/internal/config"
)

// TransportFactory creates transports against one upstream base URL
type TransportFactory struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewTransportFactory creates a new transport factory
func NewTransportFactory(baseURL, apiKey string, httpClient *http.Client) *TransportFactory {
	return &TransportFactory{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: orDefaultClient(httpClient),
	}
}

// GetTransport returns the transport registered under name
func (f *TransportFactory) GetTransport(name string) (Transport, error) {
	switch strings.ToLower(name) {
	case "", config.TransportPayload:
		return NewPayloadTransport(f.baseURL, f.httpClient), nil
	case config.TransportOpenAI:
		return NewOpenAITransport(f.baseURL, f.apiKey, f.httpClient), nil
	case transportNamePath:
		return NewPathTransport(f.baseURL, f.httpClient), nil
	default:
		return nil, fmt.Errorf("unknown transport: %s (allowed: payload, openai, path)", name)
	}
}

// NewClientFromConfig wires the configured primary transport with the path
// transport as fallback
func NewClientFromConfig(cfg *config.Config) (*Client, error) {
	factory := NewTransportFactory(cfg.UpstreamBaseURL, cfg.UpstreamAPIKey, &http.Client{})

	if strings.EqualFold(cfg.PrimaryTransport, transportNamePath) {
		return nil, fmt.Errorf("path transport is the fallback and cannot be primary")
	}

	primary, err := factory.GetTransport(cfg.PrimaryTransport)
	if err != nil {
		return nil, err
	}
	fallback, err := factory.GetTransport(transportNamePath)
	if err != nil {
		return nil, err
	}

	return NewClient(primary, fallback, cfg.UpstreamModel, cfg.UpstreamTimeout), nil
}
