package cloudtrace

import (
	"context"
	"net/http"
	"strings"

	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

// Header is the inbound trace context header, "TRACE_ID/SPAN_ID;o=OPTIONS".
const Header = "X-Cloud-Trace-Context"

// Context is the parsed value of the trace context header.
type Context struct {
	TraceID string
	SpanID  string
	Options string
	Sampled bool
}

// TraceID returns the leading TRACE_ID segment of a header value.
// A value without '/' is returned unmodified.
func TraceID(v string) string {
	if i := strings.IndexByte(v, '/'); i >= 0 {
		return v[:i]
	}
	return v
}

// Parse splits a header value into its parts. Parsing is lenient: any value
// with a non-empty TRACE_ID segment is accepted and missing parts are left empty.
func Parse(v string) (Context, bool) {
	traceID, rest, hasSpan := strings.Cut(v, "/")
	if traceID == "" {
		return Context{}, false
	}
	c := Context{TraceID: traceID}
	if !hasSpan {
		return c, true
	}

	span, opts, _ := strings.Cut(rest, ";")
	c.SpanID = span
	for _, kv := range strings.Split(opts, ";") {
		if k, val, ok := strings.Cut(kv, "="); ok && k == "o" {
			c.Options = val
			c.Sampled = val == "1"
		}
	}
	return c, true
}

// String renders c back into header form.
func (c Context) String() string {
	if c.SpanID == "" {
		return c.TraceID
	}
	s := c.TraceID + "/" + c.SpanID
	if c.Options != "" {
		s += ";o=" + c.Options
	}
	return s
}

// FromSpanContext returns the trace id of the OpenTelemetry span carried by ctx.
func FromSpanContext(ctx context.Context) (string, bool) {
	sc := trace.SpanContextFromContext(ctx)
	if !sc.HasTraceID() {
		return "", false
	}
	return sc.TraceID().String(), true
}

// FromTraceparent extracts the trace id from a W3C traceparent header.
func FromTraceparent(h http.Header) (string, bool) {
	if h == nil {
		return "", false
	}
	ctx := propagation.TraceContext{}.Extract(context.Background(), propagation.HeaderCarrier(h))
	return FromSpanContext(ctx)
}
