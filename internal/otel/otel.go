package otel

import (
	"context"
	"errors"

	"github.com/rousage/coffeeshop/internal/config"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.20.0"
)

var ServiceName = semconv.ServiceNameKey.String("coffeeshop")

// SetupOTelSDK installs the global propagator and tracer provider. Spans are
// exported over OTLP/gRPC when an endpoint is configured and only sampled
// locally otherwise.
func SetupOTelSDK(ctx context.Context, cfg config.Otel, app config.App) (func(context.Context) error, error) {
	var shutdownFuncs []func(context.Context) error

	// shutdown calls cleanup functions registered via shutdownFuncs
	// The errors from the calls are joined
	// Each registered cleanup will be invoked once
	shutdown := func(ctx context.Context) error {
		var err error
		for _, f := range shutdownFuncs {
			err = errors.Join(err, f(ctx))
		}
		shutdownFuncs = nil

		return err
	}

	otel.SetTextMapPropagator(newPropagator())

	res, err := newResource(ctx, app)
	if err != nil {
		return shutdown, errors.Join(err, shutdown(ctx))
	}

	tracerProvider, err := newTracerProvider(ctx, res, cfg)
	if err != nil {
		return shutdown, errors.Join(err, shutdown(ctx))
	}
	shutdownFuncs = append(shutdownFuncs, tracerProvider.Shutdown)
	otel.SetTracerProvider(tracerProvider)

	return shutdown, nil
}

func newResource(ctx context.Context, app config.App) (*resource.Resource, error) {
	return resource.New(ctx, resource.WithAttributes(
		ServiceName,
		semconv.DeploymentEnvironment(app.Env),
	))
}

func newPropagator() propagation.TextMapPropagator {
	return propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	)
}

func newTracerProvider(ctx context.Context, res *resource.Resource, cfg config.Otel) (*sdktrace.TracerProvider, error) {
	opts := []sdktrace.TracerProviderOption{
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(cfg.SamplingRatio))),
		sdktrace.WithResource(res),
	}

	if cfg.TracesEndpoint != "" {
		traceExporter, err := otlptracegrpc.New(ctx, otlptracegrpc.WithEndpointURL(cfg.TracesEndpoint))
		if err != nil {
			return nil, err
		}
		opts = append(opts, sdktrace.WithBatcher(traceExporter))
	}

	return sdktrace.NewTracerProvider(opts...), nil
}
