// Package metrics owns the Prometheus collectors exported on /metrics.
//
// A Metrics value carries its own registry so tests can build independent
// instances; production code creates one in main and hands it to the store
// subscriber, the page handlers and the websocket hub.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups every collector the server updates.
type Metrics struct {
	registry *prometheus.Registry

	DatasetLoads   *prometheus.CounterVec
	DatasetVersion prometheus.Gauge
	PageRenders    *prometheus.CounterVec
	ChartRenders   *prometheus.CounterVec
	WSClients      prometheus.Gauge
}

// New builds and registers all collectors on a fresh registry, together with
// the standard Go runtime and process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		DatasetLoads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "quartet_dataset_loads_total",
			Help: "Dataset file loads by result (ok|error).",
		}, []string{"result"}),
		DatasetVersion: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "quartet_dataset_version",
			Help: "Version number of the currently published dataset snapshot.",
		}),
		PageRenders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "quartet_page_renders_total",
			Help: "HTML page renders by page.",
		}, []string{"page"}),
		ChartRenders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "quartet_chart_renders_total",
			Help: "Chart renders by image format.",
		}, []string{"format"}),
		WSClients: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "quartet_ws_clients",
			Help: "Currently connected websocket clients.",
		}),
	}
	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.DatasetLoads,
		m.DatasetVersion,
		m.PageRenders,
		m.ChartRenders,
		m.WSClients,
	)
	return m
}

// ObserveLoad records the outcome of one dataset load.
func (m *Metrics) ObserveLoad(version uint64, err error) {
	if err != nil {
		m.DatasetLoads.WithLabelValues("error").Inc()
	} else {
		m.DatasetLoads.WithLabelValues("ok").Inc()
	}
	m.DatasetVersion.Set(float64(version))
}

// Registry exposes the underlying registry (used by tests to gather).
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
