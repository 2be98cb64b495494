// Package telemetry wires OpenTelemetry tracing for the API process.
package telemetry

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jwebster45206/legacy-engine/internal/config"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// ShutdownFunc flushes pending spans.
type ShutdownFunc func(context.Context) error

func noop(context.Context) error { return nil }

// Setup registers a global tracer provider exporting over OTLP/HTTP. When
// tracing is disabled it registers nothing and returns a no-op shutdown.
func Setup(ctx context.Context, cfg *config.Config, serviceName string, logger *slog.Logger) (ShutdownFunc, error) {
	if !cfg.TracingEnabled || cfg.OTLPEndpoint == "" {
		logger.Debug("Tracing disabled")
		return noop, nil
	}

	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpointURL(cfg.OTLPEndpoint),
	)
	if err != nil {
		return noop, fmt.Errorf("failed to create trace exporter: %w", err)
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
			semconv.DeploymentEnvironment(cfg.Environment),
		),
	)
	if err != nil {
		return noop, fmt.Errorf("failed to create trace resource: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	logger.Info("Tracing enabled", "endpoint", cfg.OTLPEndpoint, "service", serviceName)
	return tp.Shutdown, nil
}
