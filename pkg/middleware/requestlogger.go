package middleware

import (
	"log/slog"
	"net/http"

	"github.com/akg580/review-insights/pkg/logger"
)

// UserIDHeader optionally identifies the dashboard user making the request.
const UserIDHeader = "X-User-ID"

// RequestLogger stores a request-scoped logger in the context, enriched with
// the correlation id, the X-User-ID header and the active span. Mount it
// after RequestLogging and Tracing.
func RequestLogger(base *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			if userID := r.Header.Get(UserIDHeader); userID != "" {
				ctx = logger.WithUserID(ctx, userID)
			}
			ctx = logger.NewContext(ctx, logger.WithContext(ctx, base))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
