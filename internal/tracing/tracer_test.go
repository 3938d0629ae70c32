package tracing

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.False(t, cfg.Enabled, "tracing should be disabled by default")
	require.Equal(t, "stdout", cfg.Exporter)
	require.Equal(t, "tauri-presentation", cfg.ServiceName)
}

func TestNewProvider_Disabled(t *testing.T) {
	p, err := NewProvider(Config{})
	require.NoError(t, err)
	require.False(t, p.Enabled())

	_, span := p.Tracer().Start(context.Background(), "noop")
	span.End()
	require.NoError(t, p.Shutdown(context.Background()))
}

func TestNewProvider_Stdout(t *testing.T) {
	var buf bytes.Buffer
	p, err := NewProvider(Config{Enabled: true, Exporter: "stdout", Writer: &buf})
	require.NoError(t, err)
	require.True(t, p.Enabled())

	_, span := p.Tracer().Start(context.Background(), "command.greet")
	span.End()
	require.NoError(t, p.Shutdown(context.Background()))
	require.True(t, strings.Contains(buf.String(), "command.greet"), "exporter output: %s", buf.String())
}

func TestNewProvider_UnknownExporter(t *testing.T) {
	_, err := NewProvider(Config{Enabled: true, Exporter: "zipkin"})
	require.Error(t, err)
}
