package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// ScheduleConflicts counts create/update attempts rejected for overlap.
	ScheduleConflicts = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "schedule_conflicts_total",
		Help: "Schedule writes rejected because of a time overlap",
	})

	ContentUploadBytes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "content_upload_bytes_total",
			Help: "Bytes stored through content uploads",
		},
		[]string{"type"},
	)

	Registry = prometheus.NewRegistry()

	registerOnce sync.Once
)

func register() {
	registerOnce.Do(func() {
		Registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			RequestCounter,
			RequestDuration,
			ScheduleConflicts,
			ContentUploadBytes,
		)
	})
}

// Middleware records count and latency per route template, so ids in
// paths do not blow up label cardinality.
func Middleware() fiber.Handler {
	register()
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else if status < fiber.StatusBadRequest {
				status = fiber.StatusInternalServerError
			}
		}

		route := c.Route().Path
		RequestCounter.WithLabelValues(c.Method(), route, strconv.Itoa(status)).Inc()
		RequestDuration.WithLabelValues(c.Method(), route).Observe(time.Since(start).Seconds())
		return err
	}
}

// Handler exposes the registry in the Prometheus text format.
func Handler() fiber.Handler {
	register()
	return adaptor.HTTPHandler(promhttp.HandlerFor(Registry, promhttp.HandlerOpts{}))
}
