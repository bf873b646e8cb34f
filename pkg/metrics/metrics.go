// Package metrics exposes Prometheus counters and histograms for the HTTP
// surface and the ingestion pipeline.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics is the service metric set.
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	UploadsTotal    *prometheus.CounterVec
	RowsStoredTotal prometheus.Counter

	registry *prometheus.Registry
}

// New creates and registers the metric set on its own registry.
func New(serviceName string) *Metrics {
	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ssr",
			Subsystem: serviceName,
			Name:      "http_requests_total",
			Help:      "Total HTTP requests by method, path and status",
		}, []string{"method", "path", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "ssr",
			Subsystem: serviceName,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path"}),
		UploadsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ssr",
			Subsystem: serviceName,
			Name:      "uploads_total",
			Help:      "Position uploads by outcome",
		}, []string{"outcome"}),
		RowsStoredTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ssr",
			Subsystem: serviceName,
			Name:      "rows_stored_total",
			Help:      "Position rows stored",
		}),
	}

	m.registry = prometheus.NewRegistry()
	m.registry.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.UploadsTotal,
		m.RowsStoredTotal,
	)

	return m
}

// Handler returns the /metrics handler for this registry.
func (m *Metrics) Handler() gin.HandlerFunc {
	h := promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
	return gin.WrapH(h)
}

// GinMiddleware observes every request.
func (m *Metrics) GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		m.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method,
			path,
			strconv.Itoa(c.Writer.Status()),
		).Inc()
		m.HTTPRequestDuration.WithLabelValues(c.Request.Method, path).
			Observe(time.Since(start).Seconds())
	}
}

// ObserveUpload records the outcome of one import request.
func (m *Metrics) ObserveUpload(outcome string, rows int) {
	m.UploadsTotal.WithLabelValues(outcome).Inc()
	if rows > 0 {
		m.RowsStoredTotal.Add(float64(rows))
	}
}
