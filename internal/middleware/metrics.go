package middleware

import (
	"net/http"
	"strconv"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// requestsTotal counts handled HTTP requests by method, path, and status.
// The path label is the raw request path; the API surface is small and fixed,
// so label cardinality stays bounded.
var requestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "medidas_http_requests_total",
		Help: "Handled HTTP requests by method, path, and status.",
	},
	[]string{"method", "path", "status"},
)

// NewMetrics returns a middleware that records one requestsTotal increment
// per handled request. Wire it next to the slog logger so both observe the
// same wrapped response writer semantics.
func NewMetrics() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			requestsTotal.WithLabelValues(
				r.Method,
				r.URL.Path,
				strconv.Itoa(ww.Status()),
			).Inc()
		})
	}
}
