// Package metrics provides Prometheus instrumentation for artha-pay.
package metrics

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "artha"

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total HTTP requests by method, route pattern and status class.",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// RiskAssessmentsTotal counts scorer runs by phase and level ("" while learning).
	RiskAssessmentsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "risk",
			Name:      "assessments_total",
			Help:      "Total risk assessments by phase and level.",
		},
		[]string{"phase", "level"},
	)

	RiskPercent = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "risk",
		Name:      "risk_percent",
		Help:      "Distribution of scoring-phase risk percentages.",
		Buckets:   []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 95},
	})

	// PaymentRequestsTotal counts generated UPI links by mode and status.
	PaymentRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "payments",
			Name:      "requests_total",
			Help:      "Total payment requests by mode and status.",
		},
		[]string{"mode", "status"},
	)

	// AlertsTotal counts risk alerts by result: "sent", "failed", "dropped".
	AlertsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "alerts",
			Name:      "published_total",
			Help:      "Total risk alerts handed to Kafka by result.",
		},
		[]string{"result"},
	)

	// AlertsConsumedTotal counts alerts read by the notifier: "saved", "invalid", "failed".
	AlertsConsumedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "notifier",
			Name:      "alerts_consumed_total",
			Help:      "Total risk alerts consumed by result.",
		},
		[]string{"result"},
	)
)

func init() {
	prometheus.MustRegister(
		HTTPRequestsTotal,
		HTTPRequestDuration,
		RiskAssessmentsTotal,
		RiskPercent,
		PaymentRequestsTotal,
		AlertsTotal,
		AlertsConsumedTotal,
	)
}

// Middleware records request count and latency labelled by chi route pattern.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		path := routePattern(r)
		HTTPRequestDuration.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
		HTTPRequestsTotal.WithLabelValues(r.Method, path, statusBucket(ww.Status())).Inc()
	})
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

// routePattern is known only after routing, so it is read once next has returned.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return "unmatched"
}

func statusBucket(code int) string {
	switch {
	case code == 0:
		return "2xx"
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}
