package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/ledgerly/ledgerly/internal/infrastructure/metrics"
)

// MetricsMiddleware records request counts and latencies.
type MetricsMiddleware struct {
	metrics *metrics.Metrics
}

// NewMetricsMiddleware creates a new MetricsMiddleware.
func NewMetricsMiddleware(m *metrics.Metrics) *MetricsMiddleware {
	return &MetricsMiddleware{metrics: m}
}

// Wrap wraps an http.Handler with metrics recording.
func (m *MetricsMiddleware) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		wrapped := &metricsRecorder{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapped, r)

		duration := time.Since(start).Seconds()
		path := normalizePath(r.URL.Path)

		m.metrics.HTTPRequests.WithLabelValues(r.Method, path, strconv.Itoa(wrapped.statusCode)).Inc()
		m.metrics.HTTPDuration.WithLabelValues(r.Method, path).Observe(duration)
	})
}

type metricsRecorder struct {
	http.ResponseWriter

	statusCode int
}

func (r *metricsRecorder) WriteHeader(code int) {
	r.statusCode = code
	r.ResponseWriter.WriteHeader(code)
}

// resourceRoots lists collection prefixes whose next segment is an ID.
var resourceRoots = []string{
	"accounts",
	"transactions",
	"transfers",
	"categories",
	"merchants",
	"tags",
	"budgets",
	"families",
}

// normalizePath replaces resource IDs with a placeholder to keep
// label cardinality bounded. /api/v1/transfers/01ABC/confirm becomes
// /api/v1/transfers/:id/confirm.
func normalizePath(path string) string {
	const prefix = "/api/v1/"
	if !strings.HasPrefix(path, prefix) {
		return path
	}

	segments := strings.Split(path[len(prefix):], "/")
	for _, root := range resourceRoots {
		if segments[0] != root {
			continue
		}
		for i := 1; i < len(segments); i += 2 {
			if segments[i] != "" {
				segments[i] = ":id"
			}
		}
		return prefix + strings.Join(segments, "/")
	}

	return path
}
