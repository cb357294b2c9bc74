package contextutil

import "context"

type contextKey string

const requestIDKey contextKey = "request_id"

func GetRequestID(ctx context.Context) string {
	if rid, ok := ctx.Value(requestIDKey).(string); ok {
		return rid
	}
	return ""
}

// WithRequestID injects the id into a standard context (also handy in tests).
func WithRequestID(ctx context.Context, rid string) context.Context {
	return context.WithValue(ctx, requestIDKey, rid)
}

func GetKey() string {
	return string(requestIDKey)
}
