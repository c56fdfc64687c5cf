// Package attrs provides a per-request attribute bag carried in context.Context.
//
// Middleware places one Bag in the request context when the request first
// enters the handler chain. Any later component handling the same request,
// including nested dispatch through forwards or error pages, reads and writes
// the same Bag. This lets collaborating components annotate a request with
// derived data (for example a parsed trace id) without global state.
//
// # Usage
//
//	ctx, bag := attrs.Ensure(r.Context())
//	bag.Set("x-cloud-trace-context", "105445aa7843bc8bf206b120001000")
//
//	id := attrs.Value[string](ctx, "x-cloud-trace-context")
//
// A nil *Bag is valid and behaves as an empty, read-only bag.
package attrs
