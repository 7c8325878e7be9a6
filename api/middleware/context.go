package middleware

import "context"

type contextKey string

const (
	ctxSessionToken contextKey = "session_token"
	ctxClientScope  contextKey = "client_scope"
)

func SessionTokenFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxSessionToken).(string); ok {
		return v
	}
	return ""
}

func ClientScopeFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxClientScope).(string); ok {
		return v
	}
	return ""
}

// WithSessionToken injects the catalog link token into the context.
func WithSessionToken(ctx context.Context, token string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxSessionToken, token)
}

// WithClientScope injects the cart storage partition into the context.
func WithClientScope(ctx context.Context, scope string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxClientScope, scope)
}
