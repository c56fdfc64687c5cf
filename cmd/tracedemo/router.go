package main

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/reqscope/pkg/httpserver"
	"github.com/dmitrymomot/reqscope/pkg/logger"
	"github.com/dmitrymomot/reqscope/pkg/reqscope"
	"github.com/dmitrymomot/reqscope/pkg/requestid"
)

type scopeInfo struct {
	TraceID   string `json:"trace_id,omitempty"`
	RequestID string `json:"request_id,omitempty"`
	Path      string `json:"path"`
	Depth     int    `json:"depth"`
}

func newRouter(log *slog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	hello := helloHandler(log)

	r.Get("/healthz", httpserver.HealthCheckHandler(log))
	r.Get("/hello", hello)
	r.Get("/forward", func(w http.ResponseWriter, r *http.Request) {
		log.InfoContext(r.Context(), "forwarding", slog.String("to", "/hello"))
		reqscope.Nested("forward /hello")(hello).ServeHTTP(w, r)
	})
	return r
}

// helloHandler reports what the scope knows about the request it serves.
func helloHandler(log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ctx := r.Context()

		info := scopeInfo{
			TraceID:   reqscope.TraceID(ctx),
			RequestID: requestid.FromContext(ctx),
			Depth:     reqscope.FromContext(ctx).Depth(),
		}
		if cur := reqscope.CurrentHTTPRequest(ctx); cur != nil {
			info.Path = cur.URL.Path
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(info); err != nil {
			log.ErrorContext(ctx, "encode response", logger.Error(err))
			return
		}
		log.InfoContext(ctx, "hello served", logger.Depth(info.Depth), logger.Duration(time.Since(start)))
	}
}
