package logger

import (
	"context"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type contextKey string

const (
	loggerKey       contextKey = "logger"
	requestIDKey    contextKey = "request_id"
	entityFieldsKey contextKey = "entity_fields"
)

// WithContext returns a new context carrying logger
func WithContext(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext returns the logger stored in ctx, or a no-op logger
func FromContext(ctx context.Context) *zap.Logger {
	if logger, ok := ctx.Value(loggerKey).(*zap.Logger); ok {
		return logger
	}
	return zap.NewNop()
}

// WithRequestID stores the request id in ctx and attaches it to the logger
func WithRequestID(ctx context.Context, logger *zap.Logger, requestID string) (context.Context, *zap.Logger) {
	ctx = context.WithValue(ctx, requestIDKey, requestID)
	enriched := logger.With(zap.String("request_id", requestID))
	return WithContext(ctx, enriched), enriched
}

// GetRequestID returns the request id stored in ctx
func GetRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(requestIDKey).(string); ok {
		return requestID
	}
	return ""
}

// WithEntityID tags ctx with the id of the record an operation works on, such
// as lot_id or sale_id. SQL logged under ctx carries the tag.
func WithEntityID(ctx context.Context, key, id string) context.Context {
	existing := EntityFields(ctx)
	fields := make([]zap.Field, 0, len(existing)+1)
	for _, f := range existing {
		if f.Key != key {
			fields = append(fields, f)
		}
	}
	fields = append(fields, zap.String(key, id))
	return context.WithValue(ctx, entityFieldsKey, fields)
}

// EntityFields returns the record ids tagged on ctx
func EntityFields(ctx context.Context) []zap.Field {
	if fields, ok := ctx.Value(entityFieldsKey).([]zap.Field); ok {
		return fields
	}
	return nil
}

// L returns the context logger with trace and request ids attached.
// Usage: logger.L(ctx).Info("sale registered", zap.String("sale_id", id))
func L(ctx context.Context) *zap.Logger {
	return WithTraceContext(ctx, FromContext(ctx))
}

// WithTraceContext adds trace_id and span_id from the active span.
// The logger is returned unchanged when there is no valid span.
func WithTraceContext(ctx context.Context, logger *zap.Logger) *zap.Logger {
	spanCtx := trace.SpanContextFromContext(ctx)
	if !spanCtx.IsValid() {
		return logger
	}
	return logger.With(
		zap.String("trace_id", spanCtx.TraceID().String()),
		zap.String("span_id", spanCtx.SpanID().String()),
	)
}
