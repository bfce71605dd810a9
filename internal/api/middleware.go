package api

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/harborview/gateway/internal/logger"
)

type ctxKey int

const requestIDKey ctxKey = iota

// requestIDFrom returns the request id attached by the middleware, or ""
// outside a request scope.
func requestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// withRequestScope assigns every request a unique id, echoes it as
// X-Request-Id, and attaches a request-scoped logger to the context.
func (s *Server) withRequestScope(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set("X-Request-Id", id)

		reqLog := s.log.With().
			Str("requestId", id).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Logger()

		ctx := context.WithValue(r.Context(), requestIDKey, id)
		ctx = reqLog.WithContext(ctx)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// withAccessLog emits one access line per completed request.
func (s *Server) withAccessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		next.ServeHTTP(rec, r)

		logger.FromContext(r.Context()).Access(r.Method, r.URL.Path, rec.status, time.Since(start))
	})
}

// statusRecorder captures the response status for access logging while
// passing Flush through so streamed downloads keep their backpressure.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(status int) {
	rec.status = status
	rec.ResponseWriter.WriteHeader(status)
}

func (rec *statusRecorder) Flush() {
	if f, ok := rec.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}
