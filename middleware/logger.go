package middleware

import (
	"net/http"
	"time"

	"tempo-api-go/stats"

	log "github.com/sirupsen/logrus"
)

// ResponseRecorder wraps a ResponseWriter to capture the status code and
// response size for logging
type ResponseRecorder struct {
	http.ResponseWriter
	StatusCode int
	BodySize   int
}

// NewResponseRecorder creates a recorder with the default 200 status
func NewResponseRecorder(w http.ResponseWriter) *ResponseRecorder {
	return &ResponseRecorder{
		ResponseWriter: w,
		StatusCode:     http.StatusOK,
	}
}

func (r *ResponseRecorder) WriteHeader(statusCode int) {
	r.StatusCode = statusCode
	r.ResponseWriter.WriteHeader(statusCode)
}

func (r *ResponseRecorder) Write(data []byte) (int, error) {
	n, err := r.ResponseWriter.Write(data)
	r.BodySize += n
	return n, err
}

func getStatusColor(statusCode int) string {
	switch {
	case statusCode >= 200 && statusCode < 300:
		return "\033[32m"
	case statusCode >= 300 && statusCode < 400:
		return "\033[36m"
	case statusCode >= 400 && statusCode < 500:
		return "\033[33m"
	case statusCode >= 500:
		return "\033[31m"
	default:
		return "\033[0m"
	}
}

// LoggingMiddleware logs every request with method, path, status, size and
// duration, and feeds the request counters
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := NewResponseRecorder(w)

		next.ServeHTTP(recorder, r)

		duration := time.Since(start)
		stats.Get().RecordRequest(r.URL.Path)
		stats.Get().RecordStatusCode(recorder.StatusCode)

		log.Infof("%s%d\033[0m %s %s %dB %s",
			getStatusColor(recorder.StatusCode),
			recorder.StatusCode,
			r.Method,
			r.URL.Path,
			recorder.BodySize,
			duration,
		)
	})
}
