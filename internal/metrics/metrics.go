// Package metrics exposes Prometheus counters for the HTTP surface and for
// post mutations.
package metrics

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tsm98/social-mern/internal/apierr"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status", "service"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint", "service"},
	)

	postMutationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "post_mutations_total",
			Help: "Like, unlike, comment and uncomment operations by outcome",
		},
		[]string{"operation", "result"},
	)
)

func Middleware(serviceName string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		path := c.Route().Path
		if path == "" {
			path = c.Path()
		}
		status := strconv.Itoa(statusOf(c, err))

		httpRequestsTotal.WithLabelValues(c.Method(), path, status, serviceName).Inc()
		httpRequestDuration.WithLabelValues(c.Method(), path, serviceName).Observe(time.Since(start).Seconds())
		return err
	}
}

// statusOf predicts the status the error handler will write for err.
func statusOf(c *fiber.Ctx, err error) int {
	if err == nil {
		return c.Response().StatusCode()
	}
	var apiErr *apierr.Error
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return fiberErr.Code
	}
	return fiber.StatusInternalServerError
}

func PostMutation(operation string, err error) {
	result := "ok"
	if err != nil {
		result = "failed"
	}
	postMutationsTotal.WithLabelValues(operation, result).Inc()
}

// Handler serves the default registry in the Prometheus text format.
func Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}
