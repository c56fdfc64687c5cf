package reqscope

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Middleware tracks every request passing through it. The first time a
// request is seen a new Scope is created and stored in its context; when the
// context already carries a Scope the request enters it as a nested scope.
// Exit runs in a defer, so the scope is released on every path including panics.
func Middleware(opts ...Option) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if FromContext(r.Context()) == nil {
				r = r.WithContext(WithContext(r.Context(), New(opts...)))
			}
			serveInScope(w, r, next, routeReason(r))
		})
	}
}

// Nested runs the handler as a nested scope of the Scope already carried by
// the request context, for internal forwards and error pages. Without a
// Scope the handler is called directly.
func Nested(reason any) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if FromContext(r.Context()) == nil {
				next.ServeHTTP(w, r)
				return
			}
			serveInScope(w, r, next, reason)
		})
	}
}

func serveInScope(w http.ResponseWriter, r *http.Request, next http.Handler, reason any) {
	r, req := WrapRequest(r)
	s := FromContext(r.Context())

	s.Enter(r.Context(), req, reason)
	defer s.Exit(r.Context(), req)

	next.ServeHTTP(w, r)
}

func routeReason(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return r.Method + " " + p
		}
	}
	return r.Method + " " + r.URL.Path
}
