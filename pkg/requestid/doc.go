// Package requestid attaches a request correlation id to every HTTP request.
//
// Middleware reuses a valid X-Request-ID header or generates a UUIDv4, echoes
// it in the response, and stores it both in the request context and in the
// request attribute bag (package attrs) so nested dispatch of the same
// request reuses it. LoggerExtractor plugs the id into loggers built with
// package logger:
//
//	log := logger.New(logger.WithContextExtractors(requestid.LoggerExtractor()))
//
// Invalid client supplied ids (empty, longer than 128 bytes, or containing
// characters outside [a-zA-Z0-9_-]) are silently replaced.
package requestid
