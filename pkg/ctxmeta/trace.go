package ctxmeta

import (
	"context"

	"go.opentelemetry.io/otel/trace"
)

// TraceIDFromContext — trace id активного спана; ("", false), если спана нет.
func TraceIDFromContext(ctx context.Context) (string, bool) {
	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return "", false
	}
	return sc.TraceID().String(), true
}

// SpanIDFromContext — span id активного спана.
func SpanIDFromContext(ctx context.Context) (string, bool) {
	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return "", false
	}
	return sc.SpanID().String(), true
}

// Fields — все известные метаданные контекста парами ключ/значение (для структурных логов).
// Отсутствующие значения пропускаются.
func Fields(ctx context.Context) []any {
	if ctx == nil {
		return nil
	}

	var out []any
	if v, ok := RequestIDFromContext(ctx); ok {
		out = append(out, "request_id", v)
	}
	if v, ok := BatchIDFromContext(ctx); ok {
		out = append(out, "batch_id", v)
	}
	if v, ok := TraceIDFromContext(ctx); ok {
		out = append(out, "trace_id", v)
	}
	if v, ok := SpanIDFromContext(ctx); ok {
		out = append(out, "span_id", v)
	}
	return out
}
