package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/tartampluch/go-eventboard/internal/payload"
)

// Metrics holds the Prometheus collectors exposed on the metrics route.
// Each server instance carries its own registry so lifecycles stay isolated.
type Metrics struct {
	registry *prometheus.Registry

	PayloadLoads    *prometheus.CounterVec
	LastLoadSuccess prometheus.Gauge
	LoadedEvents    prometheus.Gauge
	HTTPRequests    *prometheus.CounterVec
}

const (
	metricStatusOK    = "success"
	metricStatusError = "error"
)

func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		registry: reg,
		PayloadLoads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "eventboard_payload_loads_total",
			Help: "Payload load attempts by outcome.",
		}, []string{"status"}),
		LastLoadSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "eventboard_last_load_success_timestamp_seconds",
			Help: "Unix time of the last successful payload load.",
		}),
		LoadedEvents: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "eventboard_loaded_events",
			Help: "Number of events in the currently served dataset.",
		}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "eventboard_http_requests_total",
			Help: "HTTP requests by route.",
		}, []string{"route"}),
	}

	reg.MustRegister(m.PayloadLoads, m.LastLoadSuccess, m.LoadedEvents, m.HTTPRequests)
	return m
}

// ObserveLoad records a load attempt. Successful loads also refresh the
// dataset gauges.
func (m *Metrics) ObserveLoad(d *payload.Dataset, err error, unixNow float64) {
	if err != nil {
		m.PayloadLoads.WithLabelValues(metricStatusError).Inc()
		return
	}
	m.PayloadLoads.WithLabelValues(metricStatusOK).Inc()
	m.LastLoadSuccess.Set(unixNow)
	m.LoadedEvents.Set(float64(len(d.Events())))
}
