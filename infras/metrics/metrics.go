package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "parking"

const (
	OutcomeSuccess        = "success"
	OutcomeNoAvailability = "no_availability"
	OutcomeConflict       = "conflict"
	OutcomeRejected       = "rejected"
	OutcomeError          = "error"
)

type Metrics interface {
	ObserveBooking(outcome string)
	ObserveRelease(outcome string, hours, cost float64)
	ObserveRequest(method, route string, status int, elapsed time.Duration)
	Handler() http.Handler
}

type prometheusMetrics struct {
	registry     *prometheus.Registry
	bookings     *prometheus.CounterVec
	releases     *prometheus.CounterVec
	chargedHours prometheus.Histogram
	revenue      prometheus.Counter
	requests     *prometheus.HistogramVec
}

// New registers collectors on a private registry so tests can build several instances.
func New() Metrics {
	registry := prometheus.NewRegistry()

	m := &prometheusMetrics{
		registry: registry,
		bookings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bookings_total",
			Help:      "Booking attempts by outcome.",
		}, []string{"outcome"}),
		releases: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "releases_total",
			Help:      "Release attempts by outcome.",
		}, []string{"outcome"}),
		chargedHours: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "reservation_hours",
			Help:      "Billed duration of released reservations in hours.",
			Buckets:   []float64{0.25, 0.5, 1, 2, 4, 8, 24},
		}),
		revenue: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "revenue_total",
			Help:      "Sum of costs charged on release.",
		}),
		requests: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route and status.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}

	registry.MustRegister(
		m.bookings,
		m.releases,
		m.chargedHours,
		m.revenue,
		m.requests,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

func (m *prometheusMetrics) ObserveBooking(outcome string) {
	m.bookings.WithLabelValues(outcome).Inc()
}

func (m *prometheusMetrics) ObserveRelease(outcome string, hours, cost float64) {
	m.releases.WithLabelValues(outcome).Inc()

	if outcome != OutcomeSuccess {
		return
	}

	m.chargedHours.Observe(hours)
	m.revenue.Add(cost)
}

func (m *prometheusMetrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Observe(elapsed.Seconds())
}

func (m *prometheusMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
