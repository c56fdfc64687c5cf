package reqscope

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/reqscope/pkg/logger"
)

// LoggerExtractor returns a ContextExtractor adding the trace id under "trace_id".
func LoggerExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		if id := TraceID(ctx); id != "" {
			return slog.String(logger.TraceIDKey, id), true
		}
		return slog.Attr{}, false
	}
}
