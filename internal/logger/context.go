package logger

import "context"

// LogCtx holds request-scoped values the handler adds to every record.
type LogCtx struct {
	RequestID string
	Action    string
}

type logCtxKey struct{}

func WithRequestID(ctx context.Context, requestID string) context.Context {
	lc, _ := ctx.Value(logCtxKey{}).(LogCtx)
	lc.RequestID = requestID
	return context.WithValue(ctx, logCtxKey{}, lc)
}

func WithAction(ctx context.Context, action string) context.Context {
	lc, _ := ctx.Value(logCtxKey{}).(LogCtx)
	lc.Action = action
	return context.WithValue(ctx, logCtxKey{}, lc)
}

// RequestID returns the request id stored in ctx, or "".
func RequestID(ctx context.Context) string {
	lc, _ := ctx.Value(logCtxKey{}).(LogCtx)
	return lc.RequestID
}
