// Package tracing wires OpenTelemetry into the HTTP stack and the use cases.
package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

// InstrumentationName identifies spans created by this application.
const InstrumentationName = "helpcenter"

// GetTracer returns a tracer from the current global provider.
// It is resolved on every call so a provider installed after package init
// (or swapped in tests) is honoured.
//
//	ctx, span := tracing.GetTracer().Start(ctx, "related.Find")
//	defer span.End()
func GetTracer() trace.Tracer {
	return otel.Tracer(InstrumentationName)
}

// InitProvider installs an SDK tracer provider with the given span processors
// and the W3C trace-context propagator. The returned func flushes and stops it.
func InitProvider(opts ...sdktrace.TracerProviderOption) func(context.Context) error {
	tp := sdktrace.NewTracerProvider(opts...)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))
	return tp.Shutdown
}
