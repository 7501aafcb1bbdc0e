package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	searchCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "search_cache_lookups_total",
			Help: "Search cache lookups by outcome",
		},
		[]string{"outcome"},
	)

	deploysTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "site_deploys_total",
			Help: "Site deployment attempts by strategy and outcome",
		},
		[]string{"strategy", "outcome"},
	)

	stageTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lead_stage_transitions_total",
			Help: "Committed lead lifecycle transitions",
		},
		[]string{"to_stage"},
	)

	orphanPaymentEvents = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "orphan_payment_events_total",
			Help: "Payment events acknowledged without a resolvable lead",
		},
	)

	providerErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "provider_errors_total",
			Help: "Upstream provider call failures",
		},
		[]string{"provider"},
	)
)

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(rw.statusCode)

		httpRequestsTotal.WithLabelValues(r.Method, r.URL.Path, status).Inc()
		httpRequestDuration.WithLabelValues(r.Method, r.URL.Path).Observe(duration)
	})
}

func RecordCacheLookup(hit bool) {
	outcome := "miss"
	if hit {
		outcome = "hit"
	}
	searchCacheLookups.WithLabelValues(outcome).Inc()
}

func RecordDeploy(strategy string, published bool) {
	outcome := "saved"
	if published {
		outcome = "published"
	}
	deploysTotal.WithLabelValues(strategy, outcome).Inc()
}

func RecordStageTransition(toStage string) {
	stageTransitions.WithLabelValues(toStage).Inc()
}

func RecordOrphanPaymentEvent() {
	orphanPaymentEvents.Inc()
}

func RecordProviderError(provider string) {
	providerErrors.WithLabelValues(provider).Inc()
}
