// Package cloudtrace parses the X-Cloud-Trace-Context header and offers
// OpenTelemetry-based fallbacks for locating an inbound trace id.
//
// The header format is TRACE_ID/SPAN_ID;o=OPTIONS. Only the TRACE_ID segment
// correlates log records, so TraceID simply truncates at the first '/'.
// Parse exposes the remaining parts for callers that need them.
//
// FromSpanContext and FromTraceparent read an id that an OpenTelemetry
// instrumented host already extracted. Neither one propagates anything
// downstream.
package cloudtrace
