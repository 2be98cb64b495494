// Package generation turns game context into language-model prompts and
// turns the replies back into world content. Every operation returns an
// Outcome whose Value is usable even when the model failed.
package generation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jwebster45206/legacy-engine/pkg/chat"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// DefaultTimeout bounds a single model call.
const DefaultTimeout = 20 * time.Second

var (
	ErrEmptyResponse = errors.New("empty response from generation service")
	ErrNoService     = errors.New("no generation service configured")
)

// Completer is the subset of an LLM client the generator needs.
type Completer interface {
	Complete(ctx context.Context, req chat.CompletionRequest) (*chat.ChatResponse, error)
}

// Source records where an Outcome's value came from.
type Source string

const (
	SourceGenerated Source = "generated"
	SourceFallback  Source = "fallback"
	// SourceSkipped means no call was made because none was needed.
	SourceSkipped Source = "skipped"
)

// Outcome is the result of a generation step. Err is set only when Source
// is SourceFallback and explains why the fallback was used.
type Outcome[T any] struct {
	Value  T
	Source Source
	Err    error
}

// Generated reports whether Value came from the model.
func (o Outcome[T]) Generated() bool {
	return o.Source == SourceGenerated
}

func generated[T any](v T) Outcome[T] {
	return Outcome[T]{Value: v, Source: SourceGenerated}
}

func fallback[T any](v T, err error) Outcome[T] {
	return Outcome[T]{Value: v, Source: SourceFallback, Err: err}
}

func skipped[T any](v T) Outcome[T] {
	return Outcome[T]{Value: v, Source: SourceSkipped}
}

// Generator builds prompts, calls the model and applies fallbacks.
type Generator struct {
	llm     Completer
	logger  *slog.Logger
	timeout time.Duration
	filter  *contentFilter
	tracer  trace.Tracer
}

type Option func(*Generator)

// WithTimeout sets the per-call deadline. Non-positive values are ignored.
func WithTimeout(d time.Duration) Option {
	return func(g *Generator) {
		if d > 0 {
			g.timeout = d
		}
	}
}

// WithContentRating enables the profanity filter for family ratings
// (G, PG, PG13).
func WithContentRating(rating string) Option {
	return func(g *Generator) {
		if shouldFilterContent(rating) {
			g.filter = newContentFilter()
		} else {
			g.filter = nil
		}
	}
}

func WithTracer(t trace.Tracer) Option {
	return func(g *Generator) {
		g.tracer = t
	}
}

// New creates a Generator. A nil llm is allowed; every call then falls back.
func New(llm Completer, logger *slog.Logger, opts ...Option) *Generator {
	g := &Generator{
		llm:     llm,
		logger:  logger,
		timeout: DefaultTimeout,
		tracer:  otel.Tracer("github.com/jwebster45206/legacy-engine/pkg/generation"),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// complete runs one bounded model call and returns trimmed, filtered text.
func (g *Generator) complete(ctx context.Context, op string, req chat.CompletionRequest) (string, error) {
	ctx, span := g.tracer.Start(ctx, "generation."+op, trace.WithAttributes(
		attribute.Int("gen_ai.request.max_tokens", req.MaxTokens),
		attribute.Float64("gen_ai.request.temperature", req.Temperature),
		attribute.Bool("json_mode", req.JSONMode),
	))
	defer span.End()

	if g.llm == nil {
		span.SetStatus(codes.Error, ErrNoService.Error())
		return "", ErrNoService
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	start := time.Now()
	resp, err := g.llm.Complete(ctx, req)
	span.SetAttributes(attribute.Int64("response_time_ms", time.Since(start).Milliseconds()))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "completion failed")
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if resp == nil {
		return "", fmt.Errorf("%s: %w", op, ErrEmptyResponse)
	}

	text := strings.TrimSpace(resp.Message)
	if text == "" {
		return "", fmt.Errorf("%s: %w", op, ErrEmptyResponse)
	}
	if resp.Model != "" {
		span.SetAttributes(attribute.String("gen_ai.response.model", resp.Model))
	}
	if g.filter != nil {
		text = g.filter.FilterText(text)
	}
	return text, nil
}

// warnFallback logs a fallback at warn level; generation failures are never
// surfaced to players.
func (g *Generator) warnFallback(op string, err error) {
	g.logger.Warn("Generation fell back to default content", "operation", op, "error", err)
}
