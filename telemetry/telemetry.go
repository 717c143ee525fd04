// Package telemetry wires up OpenTelemetry tracing for test runs. It is
// optional: when disabled (the default), spans created elsewhere in the
// library are no-ops.
package telemetry

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"

	"github.com/probekit/probekit/envcfg"
	"github.com/probekit/probekit/logger"
)

const (
	defaultServiceVersion = "1.0.0"
	defaultExportTimeout  = 5 * time.Second
)

var tracerProvider *sdktrace.TracerProvider

// Config holds the OpenTelemetry configuration for a test run.
type Config struct {
	ServiceName    string
	ServiceVersion string
	Environment    string
	Endpoint       string
	Enabled        bool
	Timeout        time.Duration
}

// LoadConfigFromEnv builds a Config from environment variables. Tracing is
// off unless OTEL_ENABLED is set to true. The service name defaults to the
// configured logging component.
func LoadConfigFromEnv(runningEnv string) (*Config, error) {
	enabled := envcfg.Bool("OTEL_ENABLED",
		envcfg.Default(false)).ValueOrElse(false)

	svcName, err := envcfg.String("OTEL_SERVICE_NAME",
		envcfg.Default(logger.Component())).Value()
	if err != nil {
		return nil, err
	}

	svcVersion, err := envcfg.String("OTEL_SERVICE_VERSION",
		envcfg.Default(defaultServiceVersion)).Value()
	if err != nil {
		return nil, err
	}

	endpoint, err := envcfg.String("OTEL_EXPORTER_OTLP_TRACES_ENDPOINT",
		envcfg.Default("")).Value()
	if err != nil {
		return nil, err
	}

	timeout, err := envcfg.Duration("OTEL_EXPORTER_OTLP_TRACES_TIMEOUT",
		envcfg.Default(defaultExportTimeout)).Value()
	if err != nil {
		return nil, err
	}

	return &Config{
		ServiceName:    svcName,
		ServiceVersion: svcVersion,
		Environment:    runningEnv,
		Endpoint:       endpoint,
		Enabled:        enabled,
		Timeout:        timeout,
	}, nil
}

// Initialize sets up the global tracer provider according to config. With
// tracing disabled or no endpoint configured, it logs and returns nil; spans
// stay no-ops.
func Initialize(ctx context.Context, config *Config) error {
	if !config.Enabled {
		slog.Info("OpenTelemetry tracing is disabled")

		return nil
	}

	if config.Endpoint == "" {
		slog.Warn("OpenTelemetry endpoint not configured, tracing will be disabled")

		return nil
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceNameKey.String(config.ServiceName),
			semconv.ServiceVersionKey.String(config.ServiceVersion),
			semconv.DeploymentEnvironmentKey.String(config.Environment),
		),
	)
	if err != nil {
		return fmt.Errorf("failed to create resource: %w", err)
	}

	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpointURL(config.Endpoint),
		otlptracehttp.WithTimeout(config.Timeout),
	)
	if err != nil {
		return fmt.Errorf("failed to create OTLP trace exporter: %w", err)
	}

	tracerProvider = sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)

	otel.SetTracerProvider(tracerProvider)

	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	slog.Info("OpenTelemetry tracing initialized",
		"service", config.ServiceName,
		"version", config.ServiceVersion,
		"environment", config.Environment,
		"endpoint", config.Endpoint,
	)

	return nil
}

// Shutdown flushes and stops the tracer provider. Safe to call when tracing
// was never initialized.
func Shutdown(ctx context.Context) error {
	if tracerProvider == nil {
		return nil
	}

	slog.Info("Shutting down OpenTelemetry tracer provider")

	return tracerProvider.Shutdown(ctx)
}
