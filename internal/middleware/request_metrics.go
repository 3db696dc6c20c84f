package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/2beens/fitprogress/internal/telemetry/metrics"
)

// RequestMetrics counts requests by method and response status, and observes their duration.
func RequestMetrics(metricsManager *metrics.Manager) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			started := time.Now()
			recorder := &statusRecorder{ResponseWriter: w}

			next.ServeHTTP(recorder, r)

			metricsManager.HistogramRequestDuration.
				With(prometheus.Labels{"method": r.Method}).
				Observe(time.Since(started).Seconds())
			metricsManager.CounterRequests.
				With(prometheus.Labels{"method": r.Method, "status": strconv.Itoa(recorder.status())}).
				Inc()
		})
	}
}

// statusRecorder remembers the first status written; a handler that never calls WriteHeader answered 200.
type statusRecorder struct {
	http.ResponseWriter
	code int
}

func (sr *statusRecorder) WriteHeader(code int) {
	if sr.code == 0 {
		sr.code = code
	}
	sr.ResponseWriter.WriteHeader(code)
}

func (sr *statusRecorder) status() int {
	if sr.code == 0 {
		return http.StatusOK
	}
	return sr.code
}
