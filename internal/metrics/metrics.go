package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "folio"

// Collector holds the Prometheus metrics for one running instance.
// All methods are safe on a nil *Collector, which records nothing.
type Collector struct {
	registry *prometheus.Registry

	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	ProjectsAdded      prometheus.Counter
	ValidationFailures *prometheus.CounterVec
	Views              prometheus.Counter
	ViewCacheHits      prometheus.Counter
	CatalogSize        prometheus.Gauge
}

// NewCollector creates a collector backed by its own registry.
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"method", "route", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		ProjectsAdded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "projects_added_total",
			Help:      "Total number of projects added to the catalog",
		}),
		ValidationFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "validation_failures_total",
			Help:      "Draft fields rejected by validation",
		}, []string{"field"}),
		Views: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "views_total",
			Help:      "Total number of view-model derivations requested",
		}),
		ViewCacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "view_cache_hits_total",
			Help:      "Views served from the memoized result",
		}),
		CatalogSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "catalog_size",
			Help:      "Number of projects in the catalog",
		}),
	}

	c.registry.MustRegister(
		c.HTTPRequests,
		c.HTTPDuration,
		c.ProjectsAdded,
		c.ValidationFailures,
		c.Views,
		c.ViewCacheHits,
		c.CatalogSize,
	)
	return c
}

// Handler exposes the collector's registry in the Prometheus text format.
func (c *Collector) Handler() http.Handler {
	if c == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// ObserveRequest records one finished HTTP request.
func (c *Collector) ObserveRequest(method, route, status string, elapsed time.Duration) {
	if c == nil {
		return
	}
	c.HTTPRequests.WithLabelValues(method, route, status).Inc()
	c.HTTPDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// ProjectAdded records a successful add and the new catalog size.
func (c *Collector) ProjectAdded(size int) {
	if c == nil {
		return
	}
	c.ProjectsAdded.Inc()
	c.CatalogSize.Set(float64(size))
}

// ValidationFailed records one rejection per failed field.
func (c *Collector) ValidationFailed(fields map[string]string) {
	if c == nil {
		return
	}
	for field := range fields {
		c.ValidationFailures.WithLabelValues(field).Inc()
	}
}

// ViewServed records a view request and whether the memo answered it.
func (c *Collector) ViewServed(cached bool) {
	if c == nil {
		return
	}
	c.Views.Inc()
	if cached {
		c.ViewCacheHits.Inc()
	}
}

// SetCatalogSize sets the catalog size gauge.
func (c *Collector) SetCatalogSize(size int) {
	if c == nil {
		return
	}
	c.CatalogSize.Set(float64(size))
}
