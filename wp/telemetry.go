package wp

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/jaeger"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.7.0"
	"google.golang.org/grpc/credentials"
)

const (
	NoExporter      = "none"
	ConsoleExporter = "console"
	JaegerExporter  = "jaeger"
	OTLPExporter    = "otlp"
)

const DefaultJaegerEndpoint = "http://localhost:14268/api/traces"

type TelemetryOptions struct {
	Service  string
	Exporter string
	Endpoint string
	Insecure bool
}

type UnknownExporterError struct {
	Exporter string
}

func (e *UnknownExporterError) Error() string {
	return fmt.Sprintf("unknown trace exporter %q", e.Exporter)
}

func NewConsoleExporter() (trace.SpanExporter, error) {
	return stdouttrace.New(stdouttrace.WithPrettyPrint())
}

func NewOTLPExporter(ctx context.Context, endpoint string, insecure bool) (*otlptrace.Exporter, error) {
	opts := []otlptracegrpc.Option{otlptracegrpc.WithEndpoint(endpoint)}
	if insecure {
		opts = append(opts, otlptracegrpc.WithInsecure())
	} else {
		opts = append(opts, otlptracegrpc.WithTLSCredentials(credentials.NewClientTLSFromCert(nil, "")))
	}

	client := otlptracegrpc.NewClient(opts...)
	return otlptrace.New(ctx, client)
}

func NewJaegerExporter(endpoint string) (*jaeger.Exporter, error) {
	if endpoint == "" {
		endpoint = DefaultJaegerEndpoint
	}
	return jaeger.New(jaeger.WithCollectorEndpoint(jaeger.WithEndpoint(endpoint)))
}

func exporter(ctx context.Context, options TelemetryOptions) (trace.SpanExporter, error) {
	switch options.Exporter {
	case ConsoleExporter:
		return NewConsoleExporter()
	case JaegerExporter:
		return NewJaegerExporter(options.Endpoint)
	case OTLPExporter:
		return NewOTLPExporter(ctx, options.Endpoint, options.Insecure)
	default:
		return nil, &UnknownExporterError{Exporter: options.Exporter}
	}
}

// InstallTracing registers a global tracer provider for the configured
// exporter. With no exporter the global no-op provider is left in place. The
// returned function flushes and stops the provider.
func InstallTracing(ctx context.Context, options TelemetryOptions) (func(context.Context) error, error) {
	if options.Exporter == "" || options.Exporter == NoExporter {
		return func(context.Context) error { return nil }, nil
	}

	exp, err := exporter(ctx, options)
	if err != nil {
		return nil, err
	}

	provider := trace.NewTracerProvider(
		trace.WithBatcher(exp),
		trace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceNameKey.String(options.Service),
		)),
	)
	otel.SetTracerProvider(provider)

	return provider.Shutdown, nil
}
