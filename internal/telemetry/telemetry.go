// Package telemetry declares the Prometheus collectors exposed on /metrics.
package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "inventory",
		Name:      "http_requests_total",
		Help:      "HTTP requests by method, route pattern and status code.",
	}, []string{"method", "route", "status"})

	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "inventory",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by method and route pattern.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	RateLimited = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "inventory",
		Name:      "rate_limited_requests_total",
		Help:      "Requests rejected by the per-client rate limiter.",
	})

	StockMovements = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "inventory",
		Name:      "stock_movements_total",
		Help:      "Recorded stock movements by type.",
	}, []string{"type"})

	LowStockProducts = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "inventory",
		Name:      "low_stock_products",
		Help:      "Products at or below their minimum stock level.",
	})

	OutOfStockProducts = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "inventory",
		Name:      "out_of_stock_products",
		Help:      "Products with no stock left.",
	})

	StockAlerts = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "inventory",
		Name:      "stock_alerts_total",
		Help:      "Stock alerts raised by kind.",
	}, []string{"kind"})

	StreamSubscribers = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "inventory",
		Name:      "event_stream_subscribers",
		Help:      "Open server-sent event connections by stream.",
	}, []string{"stream"})
)
