package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "labcloud_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
	stateWrites = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "labcloud_state_writes_total",
			Help: "State writes by project, source and outcome",
		},
		[]string{"project", "source", "outcome"},
	)
	governorDenials = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "labcloud_rate_limit_denials_total",
			Help: "Requests denied by the rate governor",
		},
		[]string{"policy"},
	)
)

// PrometheusMiddleware records request duration.
func PrometheusMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		duration := time.Since(start).Seconds()
		status := strconv.Itoa(ww.Status())
		path := r.URL.Path
		if path == "" {
			path = "/"
		}
		httpRequestDuration.WithLabelValues(r.Method, path, status).Observe(duration)
	})
}

// RecordStateWrite counts a state write attempt.
func RecordStateWrite(project, source, outcome string) {
	stateWrites.WithLabelValues(project, source, outcome).Inc()
}

// RecordGovernorDenial counts a 429 from the named policy.
func RecordGovernorDenial(policy string) {
	governorDenials.WithLabelValues(policy).Inc()
}
