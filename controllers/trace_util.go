package controllers

import (
	"context"
	"net/http"

	"go.opentelemetry.io/otel/api/correlation"
	"go.opentelemetry.io/otel/api/key"
	"go.opentelemetry.io/otel/api/trace"
	"go.opentelemetry.io/otel/plugin/httptrace"
	"stellarsplit.app/payment-uri/tracing"
)

func spanFromRequest(r *http.Request, spanName string) (context.Context, trace.Span) {

	tracer := tracing.CreateTracer("stellarsplit/controller")
	attrs, entries, spanCtx := httptrace.Extract(r.Context(), r)

	r = r.WithContext(correlation.ContextWithMap(r.Context(), correlation.NewMap(correlation.MapUpdate{
		MultiKV: entries,
	})))

	if id := RequestIDFromContext(r.Context()); id != "" {
		attrs = append(attrs, key.String("request.id", id))
	}

	ctx, span := tracer.Start(
		trace.ContextWithRemoteSpanContext(r.Context(), spanCtx),
		spanName,
		trace.WithAttributes(attrs...),
	)

	return ctx, span
}
