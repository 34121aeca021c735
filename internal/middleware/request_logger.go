package middleware

import (
	"net/http"
	"time"

	"content-api/internal/logger"
	"content-api/internal/services"

	"github.com/sirupsen/logrus"
)

type ResponseWriter struct {
	http.ResponseWriter
	status int
}

func (rw *ResponseWriter) WriteHeader(status int) {
	rw.status = status
	rw.ResponseWriter.WriteHeader(status)
}

// LogRequest emits one structured log line per request with the caller,
// route, status and duration.
func LogRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rw := &ResponseWriter{
			ResponseWriter: w,
			status:         http.StatusOK,
		}

		start := time.Now()
		next.ServeHTTP(rw, r)

		fields := logrus.Fields{
			"method":      r.Method,
			"path":        r.URL.Path,
			"status":      rw.status,
			"duration_ms": time.Since(start).Milliseconds(),
		}
		if user, ok := services.UserFromContext(r.Context()); ok {
			fields["user"] = user.ID.String()
		}

		if rw.status >= 500 {
			logger.Logger.WithFields(fields).Error("Request failed")
		} else {
			logger.Logger.WithFields(fields).Info("Request handled")
		}
	})
}
