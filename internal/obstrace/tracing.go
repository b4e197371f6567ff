// Package obstrace wires OpenTelemetry span export for the distance-matrix
// provider calls and the optimization pipeline stages, the same way the
// wider logistics stack instruments its outbound calls and request
// lifecycles.
package obstrace

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"

	"routeopt/internal/config"
)

const tracerName = "routeopt"

var tracer = otel.Tracer(tracerName)

// Shutdown flushes and stops the exporter. Callers should defer it from
// main after a successful Init.
type Shutdown func(ctx context.Context) error

// noopShutdown is returned when tracing is disabled or the endpoint is
// empty: spans are still created throughout the codebase, they are just
// dropped by the global no-op provider OpenTelemetry installs by default.
func noopShutdown(context.Context) error { return nil }

// Init installs a TracerProvider that exports spans to cfg.OTLPEndpoint
// over gRPC. When tracing is disabled or no endpoint is configured, it
// leaves the default no-op provider in place so instrumented code paths
// never have to branch on whether tracing is enabled.
func Init(ctx context.Context, cfg config.TracingConfig, serviceName, serviceVersion string) (Shutdown, error) {
	if !cfg.Enabled || cfg.OTLPEndpoint == "" {
		return noopShutdown, nil
	}

	client := otlptracegrpc.NewClient(
		otlptracegrpc.WithEndpoint(cfg.OTLPEndpoint),
		otlptracegrpc.WithInsecure(),
	)
	exporter, err := otlptrace.New(ctx, client)
	if err != nil {
		return noopShutdown, fmt.Errorf("obstrace: building otlp exporter: %w", err)
	}

	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(serviceVersion),
		),
	)
	if err != nil {
		return noopShutdown, fmt.Errorf("obstrace: merging resource: %w", err)
	}

	ratio := cfg.SampleRatio
	if ratio <= 0 {
		ratio = 0.1
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(ratio))),
	)
	otel.SetTracerProvider(tp)
	tracer = tp.Tracer(tracerName)

	return tp.Shutdown, nil
}

// StartSpan starts a span under the engine's tracer. It is a thin wrapper
// so callers don't need to import the otel API directly.
func StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

// RecordError marks span as failed and attaches err, if non-nil.
func RecordError(span trace.Span, err error) {
	if err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
