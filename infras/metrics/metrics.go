package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "homestay"

// Metrics owns a private registry so tests can build as many as they like.
type Metrics struct {
	registry *prometheus.Registry

	httpRequests     *prometheus.CounterVec
	httpLatency      *prometheus.HistogramVec
	externalRequests *prometheus.CounterVec
	externalLatency  *prometheus.HistogramVec
	cacheEvents      *prometheus.CounterVec
	staged           *prometheus.CounterVec
	reconciled       *prometheus.CounterVec
	swept            *prometheus.CounterVec
	transitions      *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{Namespace: namespace, Name: "http_requests_total", Help: "HTTP requests."},
			[]string{"route", "method", "status"},
		),
		httpLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace, Name: "http_request_duration_seconds",
				Help:    "HTTP request duration seconds.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route", "method"},
		),
		externalRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{Namespace: namespace, Name: "external_requests_total", Help: "Outbound requests."},
			[]string{"service", "endpoint", "status"},
		),
		externalLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace, Name: "external_request_duration_seconds",
				Help:    "Outbound request duration seconds.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"service", "endpoint"},
		),
		cacheEvents: prometheus.NewCounterVec(
			prometheus.CounterOpts{Namespace: namespace, Name: "cache_events_total", Help: "Cache hits/misses/sets/dels."},
			[]string{"cache", "event"},
		),
		staged: prometheus.NewCounterVec(
			prometheus.CounterOpts{Namespace: namespace, Name: "intents_staged_total", Help: "Staged booking intents by source."},
			[]string{"source"},
		),
		reconciled: prometheus.NewCounterVec(
			prometheus.CounterOpts{Namespace: namespace, Name: "payments_reconciled_total", Help: "Payment reconciliations by outcome."},
			[]string{"source", "outcome"},
		),
		swept: prometheus.NewCounterVec(
			prometheus.CounterOpts{Namespace: namespace, Name: "sweeper_removed_total", Help: "Rows removed or transitioned by the sweeper."},
			[]string{"kind"},
		),
		transitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{Namespace: namespace, Name: "booking_transitions_total", Help: "Booking status transitions."},
			[]string{"from", "to"},
		),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequests, m.httpLatency,
		m.externalRequests, m.externalLatency,
		m.cacheEvents, m.staged, m.reconciled, m.swept, m.transitions,
	)

	return m
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) ObserveHTTP(route, method string, status int, dur time.Duration) {
	m.httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.httpLatency.WithLabelValues(route, method).Observe(dur.Seconds())
}

func (m *Metrics) ObserveExternal(service, endpoint string, status int, dur time.Duration) {
	m.externalRequests.WithLabelValues(service, endpoint, strconv.Itoa(status)).Inc()
	m.externalLatency.WithLabelValues(service, endpoint).Observe(dur.Seconds())
}

// ObserveCache records a cache event: hit, miss, set or del.
func (m *Metrics) ObserveCache(cache, event string) {
	m.cacheEvents.WithLabelValues(cache, event).Inc()
}

func (m *Metrics) ObserveStaged(source string) {
	m.staged.WithLabelValues(source).Inc()
}

func (m *Metrics) ObserveReconcile(source, outcome string) {
	m.reconciled.WithLabelValues(source, outcome).Inc()
}

func (m *Metrics) ObserveSwept(kind string, n int) {
	if n <= 0 {
		return
	}

	m.swept.WithLabelValues(kind).Add(float64(n))
}

func (m *Metrics) ObserveTransition(from, to string) {
	m.transitions.WithLabelValues(from, to).Inc()
}
