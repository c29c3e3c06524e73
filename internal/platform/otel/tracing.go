package otel

import (
	"context"
	"io"

	"github.com/nulzo/summary-gateway/internal/config"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.uber.org/zap"
)

// InitTracer installs a global tracer provider that writes spans to w and
// returns its shutdown function, which flushes pending spans.
func InitTracer(cfg config.TracingConfig, version, env string, logger *zap.Logger, w io.Writer) (func(context.Context) error, error) {
	opts := []stdouttrace.Option{stdouttrace.WithWriter(w)}
	if cfg.PrettyPrint {
		opts = append(opts, stdouttrace.WithPrettyPrint())
	}
	exporter, err := stdouttrace.New(opts...)
	if err != nil {
		return nil, err
	}

	// not merged with resource.Default(), its schema URL differs from semconv v1.26.0
	res, err := resource.New(
		context.Background(),
		resource.WithAttributes(
			semconv.ServiceName(cfg.ServiceName),
			semconv.ServiceVersion(version),
			semconv.DeploymentEnvironment(env),
		),
		resource.WithHost(),
		resource.WithProcess(),
	)
	if err != nil {
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sampler(cfg.SampleRatio)),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	logger.Info("OpenTelemetry tracer initialized",
		zap.String("service", cfg.ServiceName),
		zap.String("version", version),
		zap.Float64("sample_ratio", cfg.SampleRatio),
	)

	return tp.Shutdown, nil
}

// sampler keeps the parent's decision for propagated traces and samples new
// roots by ratio.
func sampler(ratio float64) sdktrace.Sampler {
	switch {
	case ratio >= 1:
		return sdktrace.ParentBased(sdktrace.AlwaysSample())
	case ratio <= 0:
		return sdktrace.ParentBased(sdktrace.NeverSample())
	default:
		return sdktrace.ParentBased(sdktrace.TraceIDRatioBased(ratio))
	}
}
