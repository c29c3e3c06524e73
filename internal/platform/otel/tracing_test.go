package otel

import (
	"bytes"
	"context"
	"testing"

	"github.com/nulzo/summary-gateway/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

func TestInitTracer_ExportsServiceIdentity(t *testing.T) {
	prev := otel.GetTracerProvider()
	defer otel.SetTracerProvider(prev)

	var buf bytes.Buffer
	cfg := config.TracingConfig{Enabled: true, ServiceName: "summary-gateway", SampleRatio: 1}

	shutdown, err := InitTracer(cfg, "v9.9.9", "test", zap.NewNop(), &buf)
	require.NoError(t, err)

	_, span := otel.Tracer("test").Start(context.Background(), "gateway.attempt")
	span.End()
	require.NoError(t, shutdown(context.Background()))

	out := buf.String()
	assert.Contains(t, out, `"Name":"gateway.attempt"`)
	assert.Contains(t, out, "summary-gateway")
	assert.Contains(t, out, "v9.9.9")
}

func TestInitTracer_ZeroRatioDropsRootSpans(t *testing.T) {
	prev := otel.GetTracerProvider()
	defer otel.SetTracerProvider(prev)

	var buf bytes.Buffer
	cfg := config.TracingConfig{Enabled: true, ServiceName: "summary-gateway", SampleRatio: 0}

	shutdown, err := InitTracer(cfg, "v9.9.9", "test", zap.NewNop(), &buf)
	require.NoError(t, err)

	_, span := otel.Tracer("test").Start(context.Background(), "gateway.attempt")
	assert.False(t, span.SpanContext().IsSampled())
	span.End()
	require.NoError(t, shutdown(context.Background()))

	assert.Empty(t, buf.String())
}
