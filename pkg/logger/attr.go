package logger

import (
	"fmt"
	"log/slog"
	"strconv"
)

// Group creates a slog group attribute from the provided attributes.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Errors groups non-nil errors under the key "errors".
// If all errors are nil, it returns an empty Attr.
func Errors(errs ...error) slog.Attr {
	as := make([]slog.Attr, 0, len(errs))
	for i, err := range errs {
		if err != nil {
			as = append(as, slog.Any(strconv.Itoa(i), err))
		}
	}
	if len(as) == 0 {
		return slog.Attr{}
	}
	return slog.Attr{Key: "errors", Value: slog.GroupValue(as...)}
}

// Error records err under the key "error". A nil err yields an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// TraceID records the trace identifier under the key "trace_id".
// An empty id yields an empty Attr.
func TraceID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String(TraceIDKey, id)
}

// RequestID records the request identifier under the key "request_id".
// An empty id yields an empty Attr.
func RequestID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String(RequestIDKey, id)
}

// Reason records why a scope was entered under the key "reason".
func Reason(reason any) slog.Attr {
	if reason == nil {
		return slog.Attr{}
	}
	if s, ok := reason.(fmt.Stringer); ok {
		return slog.String("reason", s.String())
	}
	return slog.Any("reason", reason)
}

// Depth records the scope nesting depth under the key "depth".
func Depth(n int) slog.Attr {
	return slog.Int("depth", n)
}

// Duration records a duration under the key "duration".
func Duration(d any) slog.Attr {
	return slog.Any("duration", d)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Attribute keys shared by helpers and context extractors.
const (
	TraceIDKey   = "trace_id"
	RequestIDKey = "request_id"
)
