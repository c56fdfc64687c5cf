package requestid

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/reqscope/pkg/logger"
)

// LoggerExtractor returns a ContextExtractor adding the request id under "request_id".
func LoggerExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		if id := FromContext(ctx); id != "" {
			return slog.String(logger.RequestIDKey, id), true
		}
		return slog.Attr{}, false
	}
}
