package middleware

import (
	"net/http"
	"time"

	"github.com/dd0wney/cluso-strategy/pkg/logging"
)

// loggingResponseWriter captures the status code for the request log
type loggingResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (w *loggingResponseWriter) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}

// Logging creates middleware that logs HTTP requests with timing information.
// It uses the request ID from context if available.
func Logging(log logging.Logger, getRequestID func(*http.Request) string) func(http.Handler) http.Handler {
	if log == nil {
		log = logging.NopLogger{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			wrapper := &loggingResponseWriter{
				ResponseWriter: w,
				statusCode:     http.StatusOK,
			}

			next.ServeHTTP(wrapper, r)

			fields := []logging.Field{
				logging.String("method", r.Method),
				logging.Path(r.URL.Path),
				logging.Int("status", wrapper.statusCode),
				logging.Latency(time.Since(start)),
			}
			if getRequestID != nil {
				if requestID := getRequestID(r); requestID != "" {
					fields = append(fields, logging.RequestID(requestID))
				}
			}

			log.Info("Request handled", fields...)
		})
	}
}
