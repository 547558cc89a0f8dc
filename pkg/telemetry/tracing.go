// Package telemetry wires the report builder to OpenTelemetry tracing and
// Prometheus metrics for command line runs.
package telemetry

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/shihuiarenjinba-png/portfolio-report/pkg/defaults"
	"github.com/shihuiarenjinba-png/portfolio-report/pkg/duration"
)

// ErrNoEndpoint is returned by NewTracing when no OTLP endpoint is set.
var ErrNoEndpoint = errors.New("telemetry: no OTLP endpoint configured")

// TracingOptions configures the OTLP trace exporter.
type TracingOptions struct {
	// Endpoint is the OTLP gRPC endpoint (e.g., "localhost:4317").
	Endpoint string

	// ServiceName is the service name for traces (default: "portfolio-report").
	ServiceName string

	// Insecure uses a plaintext connection.
	Insecure bool

	// Headers contains additional headers for the OTLP exporter.
	Headers map[string]string

	// ShutdownTimeout bounds flushing spans on Shutdown (default: 5s).
	ShutdownTimeout time.Duration

	// ConnectionTimeout bounds creating the exporter (default: 10s).
	ConnectionTimeout time.Duration
}

// Tracing owns the tracer provider exporting report spans.
type Tracing struct {
	opts     TracingOptions
	provider *sdktrace.TracerProvider
}

// NewTracing creates an OTLP exporter and installs a batching tracer
// provider as the global provider. Export failures never block a build;
// spans are dropped when the collector is unreachable.
func NewTracing(opts TracingOptions) (*Tracing, error) {
	if opts.Endpoint == "" {
		return nil, ErrNoEndpoint
	}
	if opts.ServiceName == "" {
		opts.ServiceName = defaults.ToolName
	}
	if opts.ShutdownTimeout == 0 {
		opts.ShutdownTimeout = duration.ExporterShutdown
	}
	if opts.ConnectionTimeout == 0 {
		opts.ConnectionTimeout = duration.ExporterConnect
	}

	grpcOpts := []grpc.DialOption{}
	if opts.Insecure {
		grpcOpts = append(grpcOpts, grpc.WithTransportCredentials(insecure.NewCredentials()))
	}

	exporterOpts := []otlptracegrpc.Option{
		otlptracegrpc.WithEndpoint(opts.Endpoint),
		otlptracegrpc.WithDialOption(grpcOpts...),
	}
	if opts.Insecure {
		exporterOpts = append(exporterOpts, otlptracegrpc.WithInsecure())
	}
	if len(opts.Headers) > 0 {
		exporterOpts = append(exporterOpts, otlptracegrpc.WithHeaders(opts.Headers))
	}

	ctx, cancel := context.WithTimeout(context.Background(), opts.ConnectionTimeout)
	defer cancel()

	exporter, err := otlptracegrpc.New(ctx, exporterOpts...)
	if err != nil {
		return nil, err
	}

	// Avoid merging with resource.Default to prevent schema conflicts.
	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(opts.ServiceName),
		semconv.ServiceVersion(defaults.Version),
		attribute.String("service.component", "report"),
	)

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)
	otel.SetTracerProvider(provider)

	return &Tracing{opts: opts, provider: provider}, nil
}

// Tracer returns a named tracer from the provider.
func (t *Tracing) Tracer(name string) trace.Tracer {
	return t.provider.Tracer(name)
}

// ServiceName returns the service name attached to exported spans.
func (t *Tracing) ServiceName() string { return t.opts.ServiceName }

// Endpoint returns the OTLP endpoint.
func (t *Tracing) Endpoint() string { return t.opts.Endpoint }

// Shutdown flushes pending spans and stops the exporter, bounded by
// ShutdownTimeout.
func (t *Tracing) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, t.opts.ShutdownTimeout)
	defer cancel()
	return t.provider.Shutdown(ctx)
}
