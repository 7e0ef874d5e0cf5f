package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
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

	activeConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_active_connections",
			Help: "Number of active HTTP connections",
		},
	)

	searchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "leadlocal_searches_total",
			Help: "Total number of lead searches by outcome",
		},
		[]string{"outcome"},
	)

	leadsFound = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "leadlocal_search_leads",
			Help:    "Leads returned per successful search",
			Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 250},
		},
	)

	providerFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "leadlocal_provider_failures_total",
			Help: "Total number of failed provider calls",
		},
		[]string{"provider"},
	)

	leadStoreFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "leadlocal_lead_store_failures_total",
			Help: "Total number of searches whose leads could not be saved",
		},
	)

	exportsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "leadlocal_exports_total",
			Help: "Total number of exports by format and outcome",
		},
		[]string{"format", "outcome"},
	)

	outreachTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "leadlocal_outreach_total",
			Help: "Total number of outreach emails by result",
		},
		[]string{"result"},
	)

	integrationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "integration_errors_total",
			Help: "Total number of integration errors",
		},
		[]string{"service"},
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

// Metrics labels requests by route pattern so path ids do not explode
// label cardinality.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		activeConnections.Inc()
		defer activeConnections.Dec()

		rw := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(rw, r)

		path := r.URL.Path
		if rc := chi.RouteContext(r.Context()); rc != nil {
			if p := rc.RoutePattern(); p != "" {
				path = p
			}
		}

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(rw.statusCode)

		httpRequestsTotal.WithLabelValues(r.Method, path, status).Inc()
		httpRequestDuration.WithLabelValues(r.Method, path).Observe(duration)
	})
}

func RecordSearch(outcome string, leads int) {
	searchesTotal.WithLabelValues(outcome).Inc()
	if outcome == "ok" {
		leadsFound.Observe(float64(leads))
	}
}

func RecordProviderFailure(provider string) {
	providerFailures.WithLabelValues(provider).Inc()
}

func RecordLeadStoreFailure() {
	leadStoreFailures.Inc()
}

func RecordExport(format, outcome string) {
	exportsTotal.WithLabelValues(format, outcome).Inc()
}

func RecordOutreach(result string) {
	outreachTotal.WithLabelValues(result).Inc()
}

func RecordIntegrationError(service string) {
	integrationErrors.WithLabelValues(service).Inc()
}
