// Package tracing configures the OpenTelemetry tracer used by the command
// dispatcher.
package tracing

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// InstrumentationName identifies the tracer of this module.
const InstrumentationName = "github.com/FlyinPancake/tauri-presentation"

// Config configures the tracing subsystem.
type Config struct {
	// Enabled controls whether tracing is active. When false, a no-op
	// tracer is returned.
	Enabled bool
	// Exporter selects the export backend: "stdout" or "none".
	Exporter string
	// Writer receives stdout exporter output (os.Stderr if nil).
	Writer io.Writer
	// ServiceName identifies this process in traces.
	ServiceName string
}

// DefaultConfig returns tracing disabled with stdout export when enabled.
func DefaultConfig() Config {
	return Config{
		Enabled:     false,
		Exporter:    "stdout",
		ServiceName: "tauri-presentation",
	}
}

// Provider wraps the tracer provider and its tracer.
type Provider struct {
	provider *sdktrace.TracerProvider
	tracer   trace.Tracer
}

// NewProvider builds a provider from cfg.
func NewProvider(cfg Config) (*Provider, error) {
	if !cfg.Enabled {
		return &Provider{tracer: noop.NewTracerProvider().Tracer(InstrumentationName)}, nil
	}

	var opts []sdktrace.TracerProviderOption
	switch cfg.Exporter {
	case "stdout":
		w := cfg.Writer
		if w == nil {
			w = os.Stderr
		}
		exporter, err := stdouttrace.New(stdouttrace.WithWriter(w), stdouttrace.WithPrettyPrint())
		if err != nil {
			return nil, fmt.Errorf("create stdout exporter: %w", err)
		}
		opts = append(opts, sdktrace.WithSyncer(exporter))
	case "none", "":
	default:
		return nil, fmt.Errorf("unsupported exporter type: %s", cfg.Exporter)
	}

	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = DefaultConfig().ServiceName
	}
	opts = append(opts, sdktrace.WithResource(resource.NewSchemaless(
		attribute.String("service.name", serviceName),
	)))

	tp := sdktrace.NewTracerProvider(opts...)
	return &Provider{provider: tp, tracer: tp.Tracer(InstrumentationName)}, nil
}

// Tracer returns the configured tracer.
func (p *Provider) Tracer() trace.Tracer { return p.tracer }

// Enabled reports whether spans are recorded.
func (p *Provider) Enabled() bool { return p.provider != nil }

// Shutdown flushes and stops the provider.
func (p *Provider) Shutdown(ctx context.Context) error {
	if p.provider == nil {
		return nil
	}
	return p.provider.Shutdown(ctx)
}
