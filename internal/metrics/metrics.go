// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "stockroom"

// Metrics groups the collectors of one process. Each instance owns its
// registry so tests can create as many as they need.
type Metrics struct {
	registry *prometheus.Registry

	EventsTotal         *prometheus.CounterVec
	EventsDropped       prometheus.Counter
	ExportsTotal        *prometheus.CounterVec
	ExportDuration      *prometheus.HistogramVec
	LowStockItems       prometheus.Gauge
	OutOfStockItems     prometheus.Gauge
	InventoryTotalValue prometheus.Gauge
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		EventsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_total",
			Help:      "Completion events delivered, by event name.",
		}, []string{"event"}),
		EventsDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_dropped_total",
			Help:      "Completion events dropped because the dispatch buffer was full.",
		}),
		ExportsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "report_exports_total",
			Help:      "Report exports, by kind, format and result.",
		}, []string{"kind", "format", "result"}),
		ExportDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "report_export_duration_seconds",
			Help:      "Time spent building, rendering and uploading a report.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"format"}),
		LowStockItems: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "low_stock_items",
			Help:      "Items at or below their minimum quantity at the last scan.",
		}),
		OutOfStockItems: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "out_of_stock_items",
			Help:      "Items flagged out of stock at the last scan.",
		}),
		InventoryTotalValue: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "inventory_total_value",
			Help:      "Sum of quantity times unit cost at the last scan.",
		}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.EventsTotal,
		m.EventsDropped,
		m.ExportsTotal,
		m.ExportDuration,
		m.LowStockItems,
		m.OutOfStockItems,
		m.InventoryTotalValue,
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
