package metrics

import (
	"context"
	"log"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
)

const (
	namespace                = "Verse/API"
	httpStatusServerError    = 500
	cloudwatchTimeoutSeconds = 5
)

// Client wraps CloudWatch client for custom metrics
type Client struct {
	client      *cloudwatch.Client
	enabled     bool
	environment string
}

// NewClient creates a new CloudWatch metrics client
func NewClient(ctx context.Context, environment string) (*Client, error) {
	// Only enable in production
	if environment != "production" {
		log.Printf("📊 CloudWatch Metrics: DISABLED (environment: %s)", environment)
		return NewDisabledClient(environment), nil
	}

	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		log.Printf("⚠️  Failed to load AWS config for CloudWatch: %v", err)
		return NewDisabledClient(environment), nil
	}

	log.Printf("📊 CloudWatch Metrics: ✅ ENABLED (namespace: %s)", namespace)
	return &Client{
		client:      cloudwatch.NewFromConfig(cfg),
		enabled:     true,
		environment: environment,
	}, nil
}

// NewDisabledClient returns a client that drops every metric
func NewDisabledClient(environment string) *Client {
	return &Client{enabled: false, environment: environment}
}

// IsEnabled reports whether metrics are sent to CloudWatch
func (m *Client) IsEnabled() bool {
	return m != nil && m.enabled
}

// RecordAPIRequest records an API request metric
func (m *Client) RecordAPIRequest(endpoint string, statusCode int, duration time.Duration) {
	if !m.IsEnabled() {
		return
	}

	go func() {
		metricName := "APIRequests"
		if statusCode >= httpStatusServerError {
			metricName = "APIErrors"
		}

		dimensions := m.dimensions("Endpoint", endpoint)

		if err := m.putMetric(metricName, 1, types.StandardUnitCount, dimensions); err != nil {
			log.Printf("Failed to record %s metric: %v", metricName, err)
		}

		latencyMs := float64(duration.Milliseconds())
		if err := m.putMetric("APILatency", latencyMs, types.StandardUnitMilliseconds, dimensions); err != nil {
			log.Printf("Failed to record APILatency metric: %v", err)
		}
	}()
}

// RecordGeneration records one end-to-end poem generation
func (m *Client) RecordGeneration(language string, duration time.Duration, success bool) {
	if !m.IsEnabled() {
		return
	}

	go func() {
		metricName := "PoemGenerations"
		if !success {
			metricName = "PoemFailures"
		}

		dimensions := m.dimensions("Language", language)

		if err := m.putMetric(metricName, 1, types.StandardUnitCount, dimensions); err != nil {
			log.Printf("Failed to record %s metric: %v", metricName, err)
		}

		durationMs := float64(duration.Milliseconds())
		if err := m.putMetric("GenerationDuration", durationMs, types.StandardUnitMilliseconds, dimensions); err != nil {
			log.Printf("Failed to record GenerationDuration metric: %v", err)
		}
	}()
}

// RecordTransportFallback records that the fallback transport produced the text
func (m *Client) RecordTransportFallback(transport string) {
	if !m.IsEnabled() {
		return
	}

	go func() {
		if err := m.putMetric("TransportFallbacks", 1, types.StandardUnitCount, m.dimensions("Transport", transport)); err != nil {
			log.Printf("Failed to record TransportFallbacks metric: %v", err)
		}
	}()
}

// RecordTitleDefault records that the default title replaced an unavailable one
func (m *Client) RecordTitleDefault(language string) {
	if !m.IsEnabled() {
		return
	}

	go func() {
		if err := m.putMetric("TitleDefaults", 1, types.StandardUnitCount, m.dimensions("Language", language)); err != nil {
			log.Printf("Failed to record TitleDefaults metric: %v", err)
		}
	}()
}

func (m *Client) dimensions(name, value string) []types.Dimension {
	return []types.Dimension{
		{
			Name:  aws.String(name),
			Value: aws.String(value),
		},
		{
			Name:  aws.String("Environment"),
			Value: aws.String(m.environment),
		},
	}
}

// putMetric sends a metric to CloudWatch
func (m *Client) putMetric(
	metricName string,
	value float64,
	unit types.StandardUnit,
	dimensions []types.Dimension,
) error {
	if !m.enabled || m.client == nil {
		return nil
	}

	timeout := time.Duration(cloudwatchTimeoutSeconds) * time.Second
	cwCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	_, err := m.client.PutMetricData(cwCtx, &cloudwatch.PutMetricDataInput{
		Namespace: aws.String(namespace),
		MetricData: []types.MetricDatum{
			{
				MetricName: aws.String(metricName),
				Value:      aws.Float64(value),
				Unit:       unit,
				Timestamp:  aws.Time(time.Now()),
				Dimensions: dimensions,
			},
		},
	})

	return err
}
