// Package logger builds slog loggers that pull request-scoped attributes,
// such as the trace id of the request being served, out of context.Context.
//
// New creates a *slog.Logger from Option values. The handler is wrapped in a
// LogHandlerDecorator which runs every registered ContextExtractor on each
// record, so code that logs with InfoContext and friends gets correlation
// attributes without passing them explicitly.
//
// # Usage
//
//	log := logger.New(
//	    logger.WithConfig(cfg),
//	    logger.WithContextExtractors(
//	        reqscope.LoggerExtractor(),
//	        requestid.LoggerExtractor(),
//	    ),
//	)
//	log.InfoContext(r.Context(), "processed request", logger.Duration(time.Since(start)))
//
// Attributes set explicitly on a record take precedence over extracted ones
// with the same key.
//
// # Configuration
//
// Config maps LOG_LEVEL, LOG_FORMAT, APP_ENV and APP_NAME and is applied with
// WithConfig. WithFormat panics on unknown formats.
package logger
