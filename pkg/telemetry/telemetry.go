package telemetry

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// ErrExporterSetup is returned when the OTLP exporter cannot be created.
var ErrExporterSetup = errors.New("telemetry: failed to create otlp exporter")

// Config selects where traces are exported.
type Config struct {
	// Endpoint is the host:port of an OTLP/gRPC collector. Empty disables
	// tracing.
	Endpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	// ServiceName is recorded as the service.name resource attribute.
	ServiceName string `env:"OTEL_SERVICE_NAME" envDefault:"formkit"`
	// Insecure disables TLS towards the collector.
	Insecure bool `env:"OTEL_EXPORTER_OTLP_INSECURE" envDefault:"true"`
}

// ShutdownFunc flushes pending spans and releases the exporter.
type ShutdownFunc func(context.Context) error

// Setup installs a global tracer provider exporting over OTLP/gRPC. With an
// empty endpoint nothing is installed and the returned shutdown is a no-op,
// so callers can defer it unconditionally.
func Setup(ctx context.Context, cfg Config) (ShutdownFunc, error) {
	if cfg.Endpoint == "" {
		return func(context.Context) error { return nil }, nil
	}

	opts := []otlptracegrpc.Option{otlptracegrpc.WithEndpoint(cfg.Endpoint)}
	if cfg.Insecure {
		opts = append(opts, otlptracegrpc.WithDialOption(
			grpc.WithTransportCredentials(insecure.NewCredentials())))
	}

	exp, err := otlptracegrpc.New(ctx, opts...)
	if err != nil {
		return nil, errors.Join(ErrExporterSetup, err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exp),
		sdktrace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(cfg.ServiceName),
		)),
	)
	otel.SetTracerProvider(tp)

	return tp.Shutdown, nil
}
