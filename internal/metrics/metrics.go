package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Upstream endpoint labels.
const (
	EndpointGeocoding  = "geocoding"
	EndpointCurrent    = "current"
	EndpointHistorical = "historical"
	EndpointMarine     = "marine"
)

// Metrics methods are safe to call on a nil receiver, which records nothing.
type Metrics struct {
	Searches        *prometheus.CounterVec
	UpstreamCalls   *prometheus.CounterVec
	UpstreamSeconds *prometheus.HistogramVec
	InflightSearch  prometheus.Gauge
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		Searches: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "weather_searches_total",
			Help: "Total number of searches by outcome.",
		}, []string{"outcome"}),
		UpstreamCalls: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "weather_upstream_requests_total",
			Help: "Total number of requests sent to the weather API.",
		}, []string{"endpoint", "status"}),
		UpstreamSeconds: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "weather_upstream_request_duration_seconds",
			Help:    "Duration of requests to the weather API.",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),
		InflightSearch: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "weather_searches_inflight",
			Help: "Current number of searches waiting on the weather API.",
		}),
	}
}

func (m *Metrics) ObserveSearch(outcome string) {
	if m == nil {
		return
	}
	m.Searches.WithLabelValues(outcome).Inc()
}

// ObserveUpstream records one request. A status of 0 means the request
// never got a response.
func (m *Metrics) ObserveUpstream(endpoint string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	label := "transport_error"
	if status > 0 {
		label = strconv.Itoa(status)
	}
	m.UpstreamCalls.WithLabelValues(endpoint, label).Inc()
	m.UpstreamSeconds.WithLabelValues(endpoint).Observe(elapsed.Seconds())
}

func (m *Metrics) SearchStarted() {
	if m == nil {
		return
	}
	m.InflightSearch.Inc()
}

func (m *Metrics) SearchFinished() {
	if m == nil {
		return
	}
	m.InflightSearch.Dec()
}
