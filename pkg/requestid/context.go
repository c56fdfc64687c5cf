package requestid

import (
	"context"

	"github.com/dmitrymomot/reqscope/pkg/attrs"
)

type contextKey struct{}

func WithContext(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, contextKey{}, requestID)
}

// FromContext returns the request id stored in ctx. When ctx has none it
// falls back to the request attribute bag, which is shared by nested
// dispatch of the same request.
func FromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if id, ok := ctx.Value(contextKey{}).(string); ok && id != "" {
		return id
	}
	return attrs.Value[string](ctx, Attribute)
}
