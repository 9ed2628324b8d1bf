package telemetry

import (
	"context"
	"testing"

	"github.com/lewisgroup/storefront/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
)

func TestNewTracerProvider_Disabled(t *testing.T) {
	tp, err := NewTracerProvider(context.Background(), config.TelemetryConfig{Enabled: false}, zap.NewNop())
	require.NoError(t, err)
	require.NotNil(t, tp)

	assert.False(t, tp.IsEnabled())
	assert.NotNil(t, tp.Tracer("test"))
	assert.NoError(t, tp.ForceFlush(context.Background()))
	assert.NoError(t, tp.Shutdown(context.Background()))
}

func TestNewExporter(t *testing.T) {
	// The gRPC dial is lazy, so building the exporter needs no collector.
	exporter, err := newExporter(context.Background(), config.TelemetryConfig{
		CollectorEndpoint: "localhost:4317",
		Insecure:          true,
	})
	require.NoError(t, err)
	require.NotNil(t, exporter)
	assert.NoError(t, exporter.Shutdown(context.Background()))
}

func TestSamplerFor(t *testing.T) {
	assert.Equal(t, sdktrace.AlwaysSample().Description(), samplerFor(1.0).Description())
	assert.Equal(t, sdktrace.NeverSample().Description(), samplerFor(0.0).Description())
	assert.Equal(t, sdktrace.TraceIDRatioBased(0.25).Description(), samplerFor(0.25).Description())
}
