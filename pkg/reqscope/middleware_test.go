package reqscope_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/reqscope/pkg/attrs"
	"github.com/dmitrymomot/reqscope/pkg/logger"
	"github.com/dmitrymomot/reqscope/pkg/reqscope"
)

func TestMiddleware(t *testing.T) {
	t.Parallel()

	t.Run("exposes trace id and current request", func(t *testing.T) {
		t.Parallel()
		var (
			gotID    string
			gotReq   *http.Request
			gotDepth int
		)
		h := reqscope.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotID = reqscope.TraceID(r.Context())
			gotReq = reqscope.CurrentHTTPRequest(r.Context())
			gotDepth = reqscope.FromContext(r.Context()).Depth()
			w.WriteHeader(http.StatusNoContent)
		}))

		req := httptest.NewRequest(http.MethodGet, "/hello", nil)
		req.Header.Set("x-cloud-trace-context", "105445aa7843bc8bf206b120001000/0;o=1")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		require.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "105445aa7843bc8bf206b120001000", gotID)
		require.NotNil(t, gotReq)
		assert.Equal(t, "/hello", gotReq.URL.Path)
		assert.Equal(t, 1, gotDepth)
	})

	t.Run("no header yields empty trace id", func(t *testing.T) {
		t.Parallel()
		var gotID = "unset"
		h := reqscope.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotID = reqscope.TraceID(r.Context())
		}))
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Empty(t, gotID)
	})

	t.Run("caches trace id on request attributes", func(t *testing.T) {
		t.Parallel()
		var bag *attrs.Bag
		h := reqscope.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			bag = attrs.FromContext(r.Context())
		}))
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(reqscope.TraceHeader, "abc/1")
		h.ServeHTTP(httptest.NewRecorder(), req)

		require.NotNil(t, bag)
		v, ok := bag.Get(reqscope.TraceAttribute)
		require.True(t, ok)
		assert.Equal(t, "abc", v)
	})

	t.Run("uses pre-existing annotation", func(t *testing.T) {
		t.Parallel()
		var gotID string
		h := reqscope.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotID = reqscope.TraceID(r.Context())
		}))
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(reqscope.TraceHeader, "header/1")
		ctx, bag := attrs.Ensure(req.Context())
		bag.Set(reqscope.TraceAttribute, "upstream")
		h.ServeHTTP(httptest.NewRecorder(), req.WithContext(ctx))

		assert.Equal(t, "upstream", gotID)
	})

	t.Run("scope released after handler panics", func(t *testing.T) {
		t.Parallel()
		s := reqscope.New(reqscope.WithExitPolicy(reqscope.ExitPanic))
		h := reqscope.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			panic("boom")
		}))
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req = req.WithContext(reqscope.WithContext(req.Context(), s))

		assert.PanicsWithValue(t, "boom", func() { h.ServeHTTP(httptest.NewRecorder(), req) })
		assert.Equal(t, 0, s.Depth())
	})

	t.Run("each request gets its own scope", func(t *testing.T) {
		t.Parallel()
		var scopes []*reqscope.Scope
		h := reqscope.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			scopes = append(scopes, reqscope.FromContext(r.Context()))
		}))
		for _, id := range []string{"one/1", "two/1"} {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set(reqscope.TraceHeader, id)
			h.ServeHTTP(httptest.NewRecorder(), req)
		}
		require.Len(t, scopes, 2)
		assert.NotSame(t, scopes[0], scopes[1])
		first, _ := scopes[0].TraceID()
		second, _ := scopes[1].TraceID()
		assert.Equal(t, "one", first)
		assert.Equal(t, "two", second)
	})
}

func TestNested(t *testing.T) {
	t.Parallel()

	t.Run("forward enters nested scope with same trace id", func(t *testing.T) {
		t.Parallel()
		var depth int
		var id string
		target := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			depth = reqscope.FromContext(r.Context()).Depth()
			id = reqscope.TraceID(r.Context())
		})
		forward := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// a forwarded request carrying another header must not change the id
			fr := r.Clone(r.Context())
			fr.Header.Set(reqscope.TraceHeader, "other/2")
			reqscope.Nested("forward")(target).ServeHTTP(w, fr)
		})

		req := httptest.NewRequest(http.MethodGet, "/forward", nil)
		req.Header.Set(reqscope.TraceHeader, "outer/1")
		reqscope.Middleware()(forward).ServeHTTP(httptest.NewRecorder(), req)

		assert.Equal(t, 2, depth)
		assert.Equal(t, "outer", id)
	})

	t.Run("without scope calls handler directly", func(t *testing.T) {
		t.Parallel()
		called := false
		h := reqscope.Nested("error")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
			assert.Nil(t, reqscope.FromContext(r.Context()))
		}))
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		assert.True(t, called)
	})

	t.Run("middleware on sub router nests", func(t *testing.T) {
		t.Parallel()
		var depth int
		r := chi.NewRouter()
		r.Use(reqscope.Middleware())
		r.Route("/api", func(api chi.Router) {
			api.Use(reqscope.Middleware())
			api.Get("/items", func(w http.ResponseWriter, r *http.Request) {
				depth = reqscope.FromContext(r.Context()).Depth()
			})
		})
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/items", nil))
		assert.Equal(t, 2, depth)
	})
}

func TestLoggerExtractor(t *testing.T) {
	t.Parallel()

	t.Run("adds trace id to records", func(t *testing.T) {
		t.Parallel()
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf), logger.WithContextExtractors(reqscope.LoggerExtractor()))
		h := reqscope.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log.InfoContext(r.Context(), "handled")
		}))
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(reqscope.TraceHeader, "105445aa7843bc8bf206b120001000/0")
		h.ServeHTTP(httptest.NewRecorder(), req)

		assert.Contains(t, buf.String(), `"trace_id":"105445aa7843bc8bf206b120001000"`)
	})

	t.Run("skips records without trace id", func(t *testing.T) {
		t.Parallel()
		_, ok := reqscope.LoggerExtractor()(context.Background())
		assert.False(t, ok)
	})
}

func TestContextHelpers(t *testing.T) {
	t.Parallel()

	t.Run("without scope", func(t *testing.T) {
		t.Parallel()
		ctx := context.Background()
		assert.Nil(t, reqscope.FromContext(ctx))
		assert.Nil(t, reqscope.CurrentRequest(ctx))
		assert.Nil(t, reqscope.CurrentHTTPRequest(ctx))
		assert.Empty(t, reqscope.TraceID(ctx))
		assert.NotPanics(t, func() {
			reqscope.Enter(ctx, newRequest(), nil)
			reqscope.Exit(ctx, newRequest())
		})
	})

	t.Run("with scope", func(t *testing.T) {
		t.Parallel()
		s := reqscope.New()
		ctx := reqscope.WithContext(context.Background(), s)
		req := traced("ctx/1")
		reqscope.Enter(ctx, req, nil)
		assert.Same(t, s, reqscope.FromContext(ctx))
		assert.Same(t, req, reqscope.CurrentRequest(ctx))
		assert.Equal(t, "ctx", reqscope.TraceID(ctx))
		assert.Nil(t, reqscope.CurrentHTTPRequest(ctx))
		reqscope.Exit(ctx, req)
		assert.Equal(t, 0, s.Depth())
	})
}
