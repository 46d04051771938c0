// Package telemetry installs the OpenTelemetry tracer provider for a run.
package telemetry

import (
	"context"
	"fmt"
	"io"

	"github.com/sheikh-saqib/bulk-payouts/internal/config"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// ServiceName is reported as service.name on every span.
const ServiceName = "bulk-payouts"

// Setup builds a tracer provider for exporter (none, stdout or otlp), makes
// it the global provider and returns it. stdout spans are written to w.
// The caller must Shutdown the provider to flush spans before exiting.
//
// With exporter none spans are still recorded, only never exported.
func Setup(ctx context.Context, exporter string, w io.Writer) (*sdktrace.TracerProvider, error) {
	opts := []sdktrace.TracerProviderOption{
		sdktrace.WithResource(resource.NewSchemaless(
			attribute.String("service.name", ServiceName),
		)),
	}

	switch exporter {
	case config.TracesNone, "":
	case config.TracesStdout:
		exp, err := stdouttrace.New(stdouttrace.WithWriter(w), stdouttrace.WithPrettyPrint())
		if err != nil {
			return nil, fmt.Errorf("stdout trace exporter: %w", err)
		}
		// one batch per run, so spans are exported as they end
		opts = append(opts, sdktrace.WithSyncer(exp))
	case config.TracesOTLP:
		// endpoint, headers and TLS come from the standard OTEL_EXPORTER_OTLP_* variables
		exp, err := otlptracegrpc.New(ctx)
		if err != nil {
			return nil, fmt.Errorf("otlp trace exporter: %w", err)
		}
		opts = append(opts, sdktrace.WithBatcher(exp))
	default:
		return nil, fmt.Errorf("unknown traces exporter %q", exporter)
	}

	tp := sdktrace.NewTracerProvider(opts...)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))
	return tp, nil
}
