package middleware

import (
	"fmt"
	"net/http"

	"localbite-be/internal/logger"
	"localbite-be/internal/metrics"

	"go.uber.org/zap"
)

// responseRecorder lets us capture HTTP status codes
type responseRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (r *responseRecorder) WriteHeader(code int) {
	r.statusCode = code
	r.ResponseWriter.WriteHeader(code)
}

// Logging writes one structured access log line per request and counts
// responses by status class. Mount it after Auth to get user_id on the line.
func Logging(m *metrics.Registry) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			timer := metrics.StartTimer()

			rec := &responseRecorder{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(rec, r)

			m.Inc("http_requests_total")
			m.Inc(fmt.Sprintf("http_responses_%dxx", rec.statusCode/100))

			logger.FromCtx(r.Context()).Info("HTTP Request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", rec.statusCode),
				zap.Duration("duration", timer.Duration()),
				zap.String("remote_ip", r.RemoteAddr),
			)
		})
	}
}
