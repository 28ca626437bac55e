package telemetry

import (
	"context"
	"testing"

	"github.com/osa911/contactrelay/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
)

func TestSetupDisabledInstallsPropagators(t *testing.T) {
	shutdown, err := Setup(context.Background(), "contactrelay", config.TelemetryConfig{Enabled: false})
	require.NoError(t, err)
	require.NotNil(t, shutdown)

	fields := otel.GetTextMapPropagator().Fields()
	assert.Contains(t, fields, "traceparent")
	assert.Contains(t, fields, "baggage")
	assert.NoError(t, shutdown(context.Background()))
}

func TestSetupEnabled(t *testing.T) {
	// The gRPC exporter connects lazily, so no collector is needed here
	shutdown, err := Setup(context.Background(), "contactrelay", config.TelemetryConfig{
		Enabled:      true,
		OTLPEndpoint: "127.0.0.1:4317",
		SampleRatio:  1,
	})
	require.NoError(t, err)

	ctx, span := otel.Tracer("test").Start(context.Background(), "probe")
	assert.True(t, span.SpanContext().IsValid())
	span.End()

	ctx, cancel := context.WithCancel(ctx)
	cancel()
	_ = shutdown(ctx)
}
