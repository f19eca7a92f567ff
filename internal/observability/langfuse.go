package observability

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/Conceptual-Machines/verse-api/internal/config"
	langfuse "github.com/henomis/langfuse-go"
	"github.com/henomis/langfuse-go/model"
)

// Observation levels accepted by Langfuse
const (
	LevelWarning = "WARNING"
	LevelError   = "ERROR"
)

// LangfuseClient wraps the Langfuse client with our configuration
type LangfuseClient struct {
	client  *langfuse.Langfuse
	enabled bool
	ctx     context.Context
}

// InitializeLangfuse creates the Langfuse client.
// The SDK reads LANGFUSE_PUBLIC_KEY, LANGFUSE_SECRET_KEY and LANGFUSE_HOST from the environment.
func InitializeLangfuse(ctx context.Context, cfg *config.Config) *LangfuseClient {
	if !cfg.LangfuseEnabled || cfg.LangfuseSecretKey == "" {
		log.Println("⚠️  Langfuse not configured (LANGFUSE_ENABLED=false or LANGFUSE_SECRET_KEY not set)")
		return &LangfuseClient{enabled: false, ctx: ctx}
	}

	client := &LangfuseClient{
		client:  langfuse.New(ctx),
		enabled: true,
		ctx:     ctx,
	}

	log.Printf("✅ Langfuse initialized (host: %s, public key set: %v)",
		cfg.LangfuseHost, os.Getenv("LANGFUSE_PUBLIC_KEY") != "")
	return client
}

// IsEnabled returns whether Langfuse is enabled
func (c *LangfuseClient) IsEnabled() bool {
	return c != nil && c.enabled && c.client != nil
}

// StartTrace starts a new trace in Langfuse. A disabled client returns a no-op trace.
func (c *LangfuseClient) StartTrace(ctx context.Context, name string, metadata map[string]interface{}) *Trace {
	if !c.IsEnabled() {
		return &Trace{enabled: false, ctx: ctx}
	}

	trace, err := c.client.Trace(&model.Trace{
		Name:     name,
		Metadata: metadata,
	})
	if err != nil {
		log.Printf("⚠️  Failed to create Langfuse trace: %v", err)
		return &Trace{enabled: false, ctx: ctx}
	}

	return &Trace{
		trace:   trace,
		enabled: true,
		ctx:     ctx,
		client:  c.client,
	}
}

// Trace represents a Langfuse trace covering one poem request
type Trace struct {
	trace   *model.Trace
	enabled bool
	ctx     context.Context
	client  *langfuse.Langfuse
}

// Generation creates a new generation span within the trace
func (t *Trace) Generation(name string, metadata map[string]interface{}) *Generation {
	if !t.enabled {
		return &Generation{enabled: false}
	}

	now := time.Now()
	gen, err := t.client.Generation(&model.Generation{
		TraceID:   t.trace.ID,
		Name:      name,
		StartTime: &now,
		Metadata:  metadata,
	}, nil)
	if err != nil {
		log.Printf("⚠️  Failed to create Langfuse generation: %v", err)
		return &Generation{enabled: false}
	}

	return &Generation{
		generation: gen,
		enabled:    true,
		client:     t.client,
	}
}

// Output records the trace output. The trace event is re-sent with the same
// ID, which Langfuse treats as an upsert.
func (t *Trace) Output(output interface{}) {
	if !t.enabled || t.trace == nil {
		return
	}
	t.trace.Output = output
	if _, err := t.client.Trace(t.trace); err != nil {
		log.Printf("⚠️  Failed to update Langfuse trace %s: %v", t.trace.ID, err)
	}
}

// Finish flushes all queued events for the trace
func (t *Trace) Finish() {
	if t.enabled && t.client != nil {
		t.client.Flush(t.ctx)
	}
}

// Generation represents a Langfuse generation span
type Generation struct {
	generation *model.Generation
	enabled    bool
	client     *langfuse.Langfuse
}

// Input sets the input for the generation
func (g *Generation) Input(input interface{}) {
	if g.enabled && g.generation != nil {
		g.generation.Input = input
	}
}

// Output sets the output for the generation
func (g *Generation) Output(output interface{}) {
	if g.enabled && g.generation != nil {
		g.generation.Output = output
	}
}

// Metadata adds metadata to the generation
func (g *Generation) Metadata(metadata map[string]interface{}) {
	if !g.enabled || g.generation == nil {
		return
	}
	if g.generation.Metadata == nil {
		g.generation.Metadata = make(map[string]interface{})
	}
	if md, ok := g.generation.Metadata.(map[string]interface{}); ok {
		for k, v := range metadata {
			md[k] = v
		}
	} else {
		g.generation.Metadata = metadata
	}
}

// SetLevel sets the level of the generation
func (g *Generation) SetLevel(level string) {
	if g.enabled && g.generation != nil {
		g.generation.Level = model.ObservationLevel(level)
	}
}

// Finish completes the generation and queues it for sending
func (g *Generation) Finish() {
	if !g.enabled || g.generation == nil || g.client == nil {
		return
	}
	now := time.Now()
	g.generation.EndTime = &now
	if _, err := g.client.GenerationEnd(g.generation); err != nil {
		log.Printf("⚠️  Failed to end Langfuse generation: %v", err)
	}
}
