// Package telemetry provides OpenTelemetry tracing and Pyroscope profiling
// integration for the backend.
package telemetry

import (
	"context"
	"fmt"
	"time"

	otelpyroscope "github.com/grafana/otel-profiling-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.27.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/finflow/backend/internal/infrastructure/config"
)

// TracerProvider wraps the OpenTelemetry tracer provider with lifecycle
// management. When tracing is disabled it degrades to a no-op provider so
// callers never need to branch on whether telemetry is configured.
type TracerProvider struct {
	provider trace.TracerProvider
	sdk      *sdktrace.TracerProvider // nil when tracing is disabled
}

// NewTracerProvider builds a tracer provider from configuration and installs
// it as the global OTel provider together with the W3C propagators.
func NewTracerProvider(ctx context.Context, cfg config.TelemetryConfig, appEnv string) (*TracerProvider, error) {
	if !cfg.Enabled {
		tp := &TracerProvider{provider: noop.NewTracerProvider()}
		otel.SetTracerProvider(tp.provider)
		return tp, nil
	}

	if cfg.CollectorEndpoint == "" {
		return nil, fmt.Errorf("telemetry enabled but collector endpoint is empty")
	}

	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "finflow-backend"
	}

	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(serviceName),
			semconv.DeploymentEnvironmentName(appEnv),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build telemetry resource: %w", err)
	}

	opts := []otlptracegrpc.Option{
		otlptracegrpc.WithEndpoint(cfg.CollectorEndpoint),
		otlptracegrpc.WithTimeout(10 * time.Second),
	}
	if cfg.Insecure {
		opts = append(opts, otlptracegrpc.WithTLSCredentials(insecure.NewCredentials()))
	}

	exporter, err := otlptracegrpc.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create OTLP trace exporter: %w", err)
	}

	ratio := cfg.SamplingRatio
	if ratio <= 0 {
		ratio = 1.0
	}

	sdkProvider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(ratio))),
	)

	var provider trace.TracerProvider = sdkProvider
	if cfg.ProfilingEnabled {
		// Link spans to profiles so Pyroscope can show per-span flamegraphs.
		provider = otelpyroscope.NewTracerProvider(sdkProvider)
	}

	otel.SetTracerProvider(provider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return &TracerProvider{provider: provider, sdk: sdkProvider}, nil
}

// Tracer returns a named tracer from the underlying provider.
func (tp *TracerProvider) Tracer(name string) trace.Tracer {
	return tp.provider.Tracer(name)
}

// Shutdown flushes pending spans and releases exporter resources. Safe to
// call when tracing is disabled.
func (tp *TracerProvider) Shutdown(ctx context.Context) error {
	if tp.sdk == nil {
		return nil
	}
	if err := tp.sdk.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shut down tracer provider: %w", err)
	}
	return nil
}

// ForceFlush exports all buffered spans immediately.
func (tp *TracerProvider) ForceFlush(ctx context.Context) error {
	if tp.sdk == nil {
		return nil
	}
	return tp.sdk.ForceFlush(ctx)
}
