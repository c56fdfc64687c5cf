package reqscope

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/reqscope/pkg/cloudtrace"
)

// ExitPolicy decides what Exit does when the scope is already empty.
type ExitPolicy int

const (
	// ExitIgnore logs a warning and leaves the scope untouched.
	ExitIgnore ExitPolicy = iota
	// ExitPanic panics with ErrUnbalancedExit.
	ExitPanic
)

// TraceIDFallback supplies a trace id when the request carries neither the
// trace annotation nor the trace header.
type TraceIDFallback func(ctx context.Context, r Request) (string, bool)

// Config holds tracker settings loaded from the environment.
type Config struct {
	TraceHeader         string `env:"TRACE_HEADER" envDefault:"X-Cloud-Trace-Context"`
	StrictExit          bool   `env:"TRACE_STRICT_EXIT" envDefault:"false"`
	OTelFallback        bool   `env:"TRACE_OTEL_FALLBACK" envDefault:"false"`
	TraceparentFallback bool   `env:"TRACE_TRACEPARENT_FALLBACK" envDefault:"false"`
}

// Option configures a Scope.
type Option func(*options)

type options struct {
	header    string
	policy    ExitPolicy
	fallbacks []TraceIDFallback
	logger    *slog.Logger
}

func defaultOptions() *options {
	return &options{
		header: cloudtrace.Header,
		policy: ExitIgnore,
	}
}

// WithTraceHeader changes the inbound header the trace id is read from.
// Empty names are ignored.
func WithTraceHeader(name string) Option {
	return func(o *options) {
		if name != "" {
			o.header = name
		}
	}
}

func WithExitPolicy(p ExitPolicy) Option {
	return func(o *options) { o.policy = p }
}

// WithLogger sets the logger used for scope diagnostics. Nil disables logging.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithTraceIDFallback appends fallbacks consulted in order when the request
// has no trace annotation and no trace header.
func WithTraceIDFallback(fns ...TraceIDFallback) Option {
	return func(o *options) {
		for _, fn := range fns {
			if fn != nil {
				o.fallbacks = append(o.fallbacks, fn)
			}
		}
	}
}

// WithConfig applies settings from cfg.
func WithConfig(cfg Config) Option {
	return func(o *options) {
		WithTraceHeader(cfg.TraceHeader)(o)
		if cfg.StrictExit {
			o.policy = ExitPanic
		}
		if cfg.OTelFallback {
			WithTraceIDFallback(SpanContextFallback())(o)
		}
		if cfg.TraceparentFallback {
			WithTraceIDFallback(TraceparentFallback())(o)
		}
	}
}

// SpanContextFallback uses the trace id of an OpenTelemetry span already
// present in the context passed to Enter.
func SpanContextFallback() TraceIDFallback {
	return func(ctx context.Context, _ Request) (string, bool) {
		return cloudtrace.FromSpanContext(ctx)
	}
}

// TraceparentFallback reads the W3C traceparent header of the request.
func TraceparentFallback() TraceIDFallback {
	return func(_ context.Context, r Request) (string, bool) {
		v := r.Header("traceparent")
		if v == "" {
			return "", false
		}
		h := http.Header{}
		h.Set("traceparent", v)
		return cloudtrace.FromTraceparent(h)
	}
}
