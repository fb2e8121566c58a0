package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "pos_http_requests_total",
	Help: "HTTP requests by route pattern and status code.",
}, []string{"route", "code"})

var HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "pos_http_request_duration_seconds",
	Help:    "HTTP request latency by route pattern.",
	Buckets: prometheus.DefBuckets,
}, []string{"route"})

var LedgerBuilds = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "pos_ledger_builds_total",
	Help: "Customer ledger computations by kind (balance, history, statement, balances).",
}, []string{"kind"})

var LedgerRows = promauto.NewHistogram(prometheus.HistogramOpts{
	Name:    "pos_ledger_rows",
	Help:    "Number of rows in a computed customer history.",
	Buckets: prometheus.ExponentialBuckets(1, 4, 8),
})

var AmountsCoerced = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "pos_amounts_coerced_total",
	Help: "Stored amounts read as zero because they were malformed or negative.",
}, []string{"table"})

var IdempotencyEntriesSwept = promauto.NewCounter(prometheus.CounterOpts{
	Name: "pos_idempotency_entries_swept_total",
	Help: "Expired idempotency cache entries deleted.",
})

func Handler() http.Handler {
	return promhttp.Handler()
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Middleware records request counts and latency keyed by the ServeMux pattern,
// so path parameters do not explode label cardinality.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		HTTPRequests.WithLabelValues(route, strconv.Itoa(rec.status)).Inc()
		HTTPDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}
