package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Conceptual-Machines/verse-api/internal/llm"
	"github.com/Conceptual-Machines/verse-api/internal/logger"
	"github.com/Conceptual-Machines/verse-api/internal/metrics"
	"github.com/Conceptual-Machines/verse-api/internal/models"
	"github.com/Conceptual-Machines/verse-api/internal/observability"
	"github.com/Conceptual-Machines/verse-api/internal/prompt"
	"golang.org/x/sync/errgroup"
)

// Generator fetches text for a prompt from the upstream service
type Generator interface {
	GenerateWithDetails(ctx context.Context, prompt string) (*llm.GenerationResponse, error)
}

// MetricsRecorder interface for recording metrics
type MetricsRecorder interface {
	RecordGeneration(language string, duration time.Duration, success bool)
	RecordTransportFallback(transport string)
	RecordTitleDefault(language string)
}

// ErrEmptyTitle is the cause of a TitleUnavailableError when the upstream answered with nothing
var ErrEmptyTitle = errors.New("upstream returned an empty title")

// EmptyContentError is returned when a transport succeeded but the poem body is empty
type EmptyContentError struct {
	Transport string
}

func (e *EmptyContentError) Error() string {
	return fmt.Sprintf("upstream returned empty poem content (transport: %s)", e.Transport)
}

// TitleUnavailableError covers both an exhausted title call and an empty
// title. It never reaches the caller: the per-language default title is used.
type TitleUnavailableError struct {
	Cause error
}

func (e *TitleUnavailableError) Error() string {
	return fmt.Sprintf("title unavailable: %v", e.Cause)
}

func (e *TitleUnavailableError) Unwrap() error {
	return e.Cause
}

// VerseService turns a Selection into a titled poem
type VerseService struct {
	builder       *prompt.Builder
	generator     Generator
	metrics       MetricsRecorder
	sentryMetrics *metrics.SentryMetrics
	tracer        *observability.LangfuseClient
}

// NewVerseService creates a verse service. A nil recorder or tracer disables
// CloudWatch metrics or Langfuse tracing respectively.
func NewVerseService(
	builder *prompt.Builder,
	generator Generator,
	recorder MetricsRecorder,
	tracer *observability.LangfuseClient,
) *VerseService {
	if recorder == nil {
		recorder = metrics.NewDisabledClient("")
	}
	if tracer == nil {
		tracer = &observability.LangfuseClient{}
	}
	return &VerseService{
		builder:       builder,
		generator:     generator,
		metrics:       recorder,
		sentryMetrics: metrics.NewSentryMetrics(),
		tracer:        tracer,
	}
}

// Generate validates the selection, then requests the poem and the title
// concurrently. A poem failure fails the whole call and cancels the title
// request; a title failure is replaced by the language's default title.
func (s *VerseService) Generate(ctx context.Context, sel models.Selection) (*models.GeneratedResult, error) {
	if err := sel.Validate(); err != nil {
		return nil, err
	}

	emotion := s.builder.ResolveEmotion(sel)
	poemPrompt, err := s.builder.BuildPoemPrompt(sel)
	if err != nil {
		return nil, fmt.Errorf("build poem prompt: %w", err)
	}
	titlePrompt, err := s.builder.BuildTitlePrompt(sel, emotion)
	if err != nil {
		return nil, fmt.Errorf("build title prompt: %w", err)
	}

	language := string(sel.Language)
	logger.Debug("Prompts built", logger.Fields{
		"language":           language,
		"emotion":            emotion,
		"poem_prompt_chars":  len([]rune(poemPrompt)),
		"title_prompt_chars": len([]rune(titlePrompt)),
	})
	start := time.Now()

	trace := s.tracer.StartTrace(ctx, "generate-poem", map[string]interface{}{
		"character": sel.Character,
		"location":  sel.Location,
		"event":     sel.Event,
		"emotion":   emotion,
		"language":  language,
	})
	defer trace.Finish()

	var poem, title string
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		resp, err := s.complete(gctx, trace, "poem", poemPrompt)
		if err != nil {
			return err
		}
		if resp.Text == "" {
			return &EmptyContentError{Transport: resp.Transport}
		}
		poem = resp.Text
		return nil
	})

	g.Go(func() error {
		resp, err := s.complete(gctx, trace, "title", titlePrompt)
		if err == nil && resp.Text == "" {
			err = ErrEmptyTitle
		}
		if err != nil {
			title = sel.Language.DefaultTitle()
			if gctx.Err() != nil {
				// poem failed or the caller left; nothing will be returned
				return nil
			}
			s.metrics.RecordTitleDefault(language)
			logger.Warn("Using default title", logger.Fields{
				"language": language,
				"error":    (&TitleUnavailableError{Cause: err}).Error(),
			})
			return nil
		}
		title = resp.Text
		return nil
	})

	err = g.Wait()
	duration := time.Since(start)
	s.metrics.RecordGeneration(language, duration, err == nil)
	s.sentryMetrics.RecordGenerationDuration(ctx, language, duration, err == nil)

	if err != nil {
		return nil, err
	}

	result := &models.GeneratedResult{Poem: poem, Title: title}
	trace.Output(result)

	logger.Info("Poem generated", logger.Fields{
		"language":    language,
		"duration_ms": duration.Milliseconds(),
		"poem_chars":  len([]rune(poem)),
	})
	return result, nil
}

// complete runs one prompt through the generator inside a Langfuse generation
func (s *VerseService) complete(
	ctx context.Context,
	trace *observability.Trace,
	name string,
	text string,
) (*llm.GenerationResponse, error) {
	gen := trace.Generation(name, nil)
	gen.Input(text)
	defer gen.Finish()

	resp, err := s.generator.GenerateWithDetails(ctx, text)
	if err != nil {
		gen.SetLevel(observability.LevelError)
		gen.Output(err.Error())
		return nil, err
	}

	if resp.Fallback {
		s.metrics.RecordTransportFallback(resp.Transport)
		gen.SetLevel(observability.LevelWarning)
	}
	gen.Metadata(map[string]interface{}{
		"transport": resp.Transport,
		"fallback":  resp.Fallback,
	})
	gen.Output(resp.Text)
	return resp, nil
}
