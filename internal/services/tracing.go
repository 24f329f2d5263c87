package services

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/tbourn/go-jobtracker/internal/domain"
)

// startSpan opens a span named op on the "services/<service>" tracer.
func startSpan(ctx context.Context, service, op string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return otel.Tracer("services/"+service).Start(ctx, op, trace.WithAttributes(attrs...))
}

// endSpan marks the span failed for persistence errors only; caller mistakes
// are not server errors.
func endSpan(span trace.Span, err error) {
	if err != nil && domain.KindOf(err) == domain.KindPersistence {
		span.RecordError(err)
		span.SetStatus(codes.Error, "persistence failure")
	}
	span.End()
}
