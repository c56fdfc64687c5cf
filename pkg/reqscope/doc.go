// Package reqscope tracks the chain of nested request scopes entered while a
// unit of work is processed, and the trace id correlating the outermost
// request with other systems.
//
// A Scope is created once per unit of work and carried in context.Context.
// Dispatch code brackets each scope with Enter and Exit; nested dispatch such
// as an internal forward or an error page produces nested pairs on the same
// Scope. Application and logging code then asks the context for the request
// being processed (CurrentRequest) and its trace id (TraceID) without having
// either passed explicitly.
//
// # Trace id
//
// The trace id is derived only when a Scope goes from idle to active:
//
//  1. A string annotation stored on the request under TraceAttribute is used as is.
//  2. Otherwise the X-Cloud-Trace-Context header is read and cut at the first
//     '/', keeping TRACE_ID from TRACE_ID/SPAN_ID;o=OPTIONS. A value with no
//     '/' is used verbatim.
//  3. Otherwise the fallbacks registered with WithTraceIDFallback are tried.
//
// The result is written back to the request annotation so later scopes for
// the same request skip parsing. Nested Enter calls never change the id. The
// id survives the final Exit and is replaced on the next outermost Enter.
// A missing id is not an error; TraceID simply returns "".
//
// # HTTP
//
// Middleware creates a Scope for each inbound request and enters it around
// the handler; Nested adds a nested scope for internal dispatch:
//
//	r := chi.NewRouter()
//	r.Use(reqscope.Middleware(reqscope.WithLogger(log)))
//	r.Get("/hello", func(w http.ResponseWriter, r *http.Request) {
//		log.InfoContext(r.Context(), "hello") // carries trace_id
//	})
//
// Register LoggerExtractor with the logger package so every *Context log call
// carries the trace id.
//
// # Unbalanced exits
//
// Exit never validates which request it pops. Exiting an idle Scope is a
// logged no-op by default; WithExitPolicy(ExitPanic) turns it into a panic
// with ErrUnbalancedExit for tests and development builds.
package reqscope
