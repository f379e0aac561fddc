package logging

import (
	"context"

	"go.uber.org/zap"
)

type requestIDKey struct{}

// WithRequestID returns ctx carrying the request id.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestID returns the request id carried by ctx, or "".
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// RequestIDField is a zap field for the request id in ctx. It is a no-op
// field when ctx carries none.
func RequestIDField(ctx context.Context) zap.Field {
	if id := RequestID(ctx); id != "" {
		return zap.String("request_id", id)
	}
	return zap.Skip()
}
