package middleware

import (
	"context"

	"timetrack/internal/identity"
)

type ctxKey string

const (
	ctxKeyIdentity  ctxKey = "identity"
	ctxKeyRequestID ctxKey = "request_id"
)

func WithIdentity(ctx context.Context, id identity.Identity) context.Context {
	return context.WithValue(ctx, ctxKeyIdentity, id)
}

// GetIdentity returns the identity resolved by the Auth middleware. The
// second return is false for unauthenticated requests; callers receive
// the zero (unknown) identity in that case.
func GetIdentity(ctx context.Context) (identity.Identity, bool) {
	id, ok := ctx.Value(ctxKeyIdentity).(identity.Identity)
	return id, ok
}

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ctxKeyRequestID, requestID)
}

func GetRequestID(ctx context.Context) string {
	if value, ok := ctx.Value(ctxKeyRequestID).(string); ok {
		return value
	}
	return ""
}
