// Package metrics exports the server's Prometheus metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "aihub"

// Metrics holds the collectors of one registry.
type Metrics struct {
	registry *prometheus.Registry

	// httpRequests counts requests by method, route and status
	httpRequests *prometheus.CounterVec
	// httpDuration tracks request latency by method and route
	httpDuration *prometheus.HistogramVec
	// progressEvents counts recorded learning events by kind
	progressEvents *prometheus.CounterVec
	// achievements counts unlocked badges
	achievements *prometheus.CounterVec
	// digests counts lesson digest runs by result
	digests *prometheus.CounterVec
}

// New creates the metrics on a fresh registry that also carries the Go
// runtime and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		httpRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests by method, route and status",
		}, []string{"method", "route", "status"}),
		httpDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		progressEvents: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "progress",
			Name:      "events_total",
			Help:      "Recorded learning events by kind",
		}, []string{"kind"}),
		achievements: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "progress",
			Name:      "achievements_unlocked_total",
			Help:      "Unlocked achievements by badge",
		}, []string{"badge"}),
		digests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "digest",
			Name:      "runs_total",
			Help:      "Lesson digest runs by result",
		}, []string{"result"}),
	}
}

// ProgressEvent counts a recorded learning event.
func (m *Metrics) ProgressEvent(kind string) {
	m.progressEvents.WithLabelValues(kind).Inc()
}

// AchievementUnlocked counts an unlocked badge.
func (m *Metrics) AchievementUnlocked(badge string) {
	m.achievements.WithLabelValues(badge).Inc()
}

// DigestRun counts a digest run; result is "sent", "empty" or "error".
func (m *Metrics) DigestRun(result string) {
	m.digests.WithLabelValues(result).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Middleware records the count and latency of every request. Requests that
// match no route are labelled "unmatched".
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.httpRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.httpDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}
