package obs

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics instruments outbound API traffic.
type Metrics struct {
	registry         *prometheus.Registry
	requestsTotal    *prometheus.CounterVec
	requestDuration  *prometheus.HistogramVec
	requestsInFlight prometheus.Gauge
}

// NewMetrics creates and registers the client metric set on its own registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "edusite_client_requests_total",
				Help: "Total number of outbound API requests.",
			},
			[]string{"method", "route", "status"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "edusite_client_request_duration_seconds",
				Help:    "Outbound API request latencies in seconds.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		requestsInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "edusite_client_in_flight_requests",
			Help: "In-flight outbound API requests.",
		}),
	}
	m.registry.MustRegister(m.requestsTotal, m.requestDuration, m.requestsInFlight)
	return m
}

// ObserveStart marks a request in flight and returns a done callback that
// records the final status. A status of 0 means no response was received.
func (m *Metrics) ObserveStart(method, route string) func(status int) {
	if m == nil {
		return func(int) {}
	}
	m.requestsInFlight.Inc()
	start := time.Now()
	return func(status int) {
		m.requestsInFlight.Dec()
		m.requestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
		m.requestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	}
}

// Handler exposes the registry for a debug listener.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
