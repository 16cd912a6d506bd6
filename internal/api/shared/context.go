package shared

import (
	"context"

	"github.com/google/uuid"
)

// ContextKey is the type used for values stored in request contexts.
type ContextKey string

const (
	// AccountIDContextKey carries the authenticated account's id.
	AccountIDContextKey ContextKey = "accountID"

	// TraceIDKey carries the per-request trace id.
	TraceIDKey ContextKey = "traceID"
)

// SetTraceID generates a new trace id and stores it in the context.
func SetTraceID(ctx context.Context) context.Context {
	return context.WithValue(ctx, TraceIDKey, uuid.New().String())
}

// GetTraceID retrieves the trace id from the context, or "" when absent.
func GetTraceID(ctx context.Context) string {
	traceID, ok := ctx.Value(TraceIDKey).(string)
	if !ok {
		return ""
	}
	return traceID
}
