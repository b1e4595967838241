package api

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/okian/meetmind/pkg/logger"
	"github.com/okian/meetmind/pkg/metrics"
)

// errorCode names the API error kind behind an HTTP status. The same codes
// appear in error response bodies.
func errorCode(status int) string {
	switch {
	case status == http.StatusBadRequest, status == http.StatusRequestEntityTooLarge:
		return "bad_request"
	case status == http.StatusNotFound:
		return "not_found"
	case status == http.StatusTooManyRequests:
		return "backpressure"
	case status >= http.StatusInternalServerError:
		return "internal"
	default:
		return "client_error"
	}
}

// instrument records request count and latency per endpoint, counts failed
// requests by error code and logs server errors and backpressure.
func instrument(endpoint string, l logger.Logger, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		took := time.Since(start)
		status := strconv.Itoa(rec.status)
		metrics.RecordHTTPRequest(endpoint, r.Method, status)
		metrics.RecordHTTPRequestDuration(endpoint, r.Method, status, float64(took.Milliseconds()))

		if rec.status < http.StatusBadRequest {
			return
		}
		code := errorCode(rec.status)
		metrics.RecordErrorByComponent("http", code)

		fields := []logger.Field{
			logger.String("endpoint", endpoint),
			logger.String("method", r.Method),
			logger.Int("status", rec.status),
			logger.String("code", code),
			logger.Duration("took", took),
		}
		if id := r.PathValue("id"); id != "" {
			fields = append(fields, logger.String("job_id", id))
		}
		switch code {
		case "internal":
			l.Error(r.Context(), "request failed", fields...)
		case "backpressure":
			l.Warn(r.Context(), "request rejected", fields...)
		default:
			l.Debug(r.Context(), "request refused", fields...)
		}
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rw *statusRecorder) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *statusRecorder) Write(b []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(b)
	if err != nil {
		return n, fmt.Errorf("write response: %w", err)
	}
	return n, nil
}
