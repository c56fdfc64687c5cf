package reqscope

import "context"

type contextKey struct{}

// WithContext stores s in ctx.
func WithContext(ctx context.Context, s *Scope) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

// FromContext returns the Scope carried by ctx, or nil.
func FromContext(ctx context.Context) *Scope {
	if ctx == nil {
		return nil
	}
	s, _ := ctx.Value(contextKey{}).(*Scope)
	return s
}

// Enter enters r on the Scope carried by ctx. It is a no-op without a Scope.
func Enter(ctx context.Context, r Request, reason any) {
	FromContext(ctx).Enter(ctx, r, reason)
}

// Exit exits r on the Scope carried by ctx. It is a no-op without a Scope.
func Exit(ctx context.Context, r Request) {
	FromContext(ctx).Exit(ctx, r)
}

// CurrentRequest returns the request currently processed in ctx, or nil.
func CurrentRequest(ctx context.Context) Request {
	return FromContext(ctx).CurrentRequest()
}

// TraceID returns the trace id correlating the request processed in ctx,
// or "" when it is unknown.
func TraceID(ctx context.Context) string {
	id, _ := FromContext(ctx).TraceID()
	return id
}
