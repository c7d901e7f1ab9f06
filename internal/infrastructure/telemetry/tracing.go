package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TracerName is the instrumentation scope name used for all spans created by
// this package.
const TracerName = "finflow-backend"

// Span attribute keys shared across services and handlers. Keeping them here
// avoids drift between the attribute names different layers emit.
const (
	SpanAttrTenantID      = "tenant.id"
	SpanAttrUserID        = "user.id"
	SpanAttrPayableID     = "payable.id"
	SpanAttrReceivableID  = "receivable.id"
	SpanAttrBankAccountID = "bank_account.id"
	SpanAttrTransactionID = "transaction.id"
	SpanAttrReferenceType = "reference.type"
	SpanAttrAmount        = "amount"
	SpanAttrStatus        = "status"
	SpanAttrOperation     = "operation"
	SpanAttrIdempotent    = "settlement.idempotent_replay"
	SpanAttrResolverHit   = "resolver.cache_hit"
	SpanAttrAttempt       = "retry.attempt"
)

// StartSpan starts a span under the package tracer. The returned context
// carries the span; callers must End it.
func StartSpan(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	return otel.Tracer(TracerName).Start(ctx, name, opts...)
}

// StartServiceSpan starts a span named "<service>.<method>" with the
// operation attribute pre-set. This is the convention used by the
// application layer.
func StartServiceSpan(ctx context.Context, service, method string) (context.Context, trace.Span) {
	ctx, span := StartSpan(ctx, fmt.Sprintf("%s.%s", service, method))
	span.SetAttributes(attribute.String(SpanAttrOperation, method))
	return ctx, span
}

// SetAttributes sets attributes on the span in ctx, converting common Go
// types. Unknown types are stringified with %v.
func SetAttributes(ctx context.Context, attrs map[string]any) {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}
	kv := make([]attribute.KeyValue, 0, len(attrs))
	for k, v := range attrs {
		kv = append(kv, toAttribute(k, v))
	}
	span.SetAttributes(kv...)
}

// RecordError records err on the span in ctx and marks the span status as
// Error. A nil err is a no-op.
func RecordError(ctx context.Context, err error) {
	if err == nil {
		return
	}
	span := trace.SpanFromContext(ctx)
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

// SetOK marks the span in ctx as successful.
func SetOK(ctx context.Context) {
	trace.SpanFromContext(ctx).SetStatus(codes.Ok, "")
}

// AddEvent attaches a timestamped event to the span in ctx.
func AddEvent(ctx context.Context, name string, attrs map[string]any) {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}
	kv := make([]attribute.KeyValue, 0, len(attrs))
	for k, v := range attrs {
		kv = append(kv, toAttribute(k, v))
	}
	span.AddEvent(name, trace.WithAttributes(kv...))
}

func toAttribute(key string, value any) attribute.KeyValue {
	switch v := value.(type) {
	case string:
		return attribute.String(key, v)
	case bool:
		return attribute.Bool(key, v)
	case int:
		return attribute.Int(key, v)
	case int64:
		return attribute.Int64(key, v)
	case float64:
		return attribute.Float64(key, v)
	case fmt.Stringer:
		return attribute.String(key, v.String())
	default:
		return attribute.String(key, fmt.Sprintf("%v", v))
	}
}
