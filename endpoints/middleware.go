package endpoints

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"social-distance/logger"
)

// RequestIDHeader carries the id assigned to each request
const RequestIDHeader = "X-Request-ID"

// Logger returns the request-scoped logger, or the default logger outside a request
func Logger(ctx context.Context) *slog.Logger {
	return logger.FromContext(ctx)
}

// RequestLogger tags every request with an id and logs its completion
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.NewString()
		if parsed, err := uuid.Parse(r.Header.Get(RequestIDHeader)); err == nil {
			requestID = parsed.String()
		}
		w.Header().Set(RequestIDHeader, requestID)

		reqLogger := slog.Default().With("request_id", requestID)
		ctx := logger.WithLogger(r.Context(), reqLogger)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r.WithContext(ctx))

		reqLogger.Info("[API] Request served",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
