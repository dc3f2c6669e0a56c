package web

import (
	"strconv"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsPath serves the prometheus metrics.
const MetricsPath = "/metrics"

var (
	httpRequests *prometheus.CounterVec   //nolint:gochecknoglobals
	httpDuration *prometheus.HistogramVec //nolint:gochecknoglobals
	metricsOnce  sync.Once                //nolint:gochecknoglobals
)

func registerMetrics() {
	metricsOnce.Do(func() {
		httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		}, []string{"method", "path", "status"})

		httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path", "status"})
	})
}

// Metrics counts and times every request. Paths are recorded as route
// templates so ids do not grow the label set.
func Metrics() fiber.Handler {
	registerMetrics()

	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			// the error handler has not written the response yet
			status, _ = statusOf(err)
		}

		labels := []string{c.Method(), c.Route().Path, strconv.Itoa(status)}
		httpRequests.WithLabelValues(labels...).Inc()
		httpDuration.WithLabelValues(labels...).Observe(time.Since(start).Seconds())

		return err
	}
}

// MetricsHandler exposes the default prometheus registry.
func MetricsHandler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}
