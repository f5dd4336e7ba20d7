// Package metrics exposes Prometheus collectors for the HTTP layer and the
// shop's business events.
package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry *prometheus.Registry

	requestCounter  *prometheus.CounterVec
	requestLatency  *prometheus.HistogramVec
	ordersPlaced    prometheus.Counter
	ordersCancelled *prometheus.CounterVec
	salesRecorded   prometheus.Counter
	stockRejections *prometheus.CounterVec
}

// New registers every collector on reg. A fresh registry per app keeps tests
// independent of the global default.
func New(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		registry: reg,
		requestCounter: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "beautyshop_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		requestLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "beautyshop_http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		ordersPlaced: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "beautyshop_orders_placed_total",
			Help: "Orders accepted by the order engine",
		}),
		ordersCancelled: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "beautyshop_orders_cancelled_total",
				Help: "Orders cancelled, by path (customer or admin)",
			},
			[]string{"path"},
		),
		salesRecorded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "beautyshop_sales_recorded_total",
			Help: "Point-of-sale records written",
		}),
		stockRejections: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "beautyshop_stock_rejections_total",
				Help: "Orders or sales refused for insufficient stock",
			},
			[]string{"source"},
		),
	}
	reg.MustRegister(
		m.requestCounter,
		m.requestLatency,
		m.ordersPlaced,
		m.ordersCancelled,
		m.salesRecorded,
		m.stockRejections,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Middleware records count and latency per matched route template. Errors
// from the chain are rendered here through the app's ErrorHandler, so the
// recorded status is the one the client sees.
func (m *Metrics) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		if err := c.Next(); err != nil {
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		route := c.Route().Path
		status := strconv.Itoa(c.Response().StatusCode())
		m.requestCounter.WithLabelValues(c.Method(), route, status).Inc()
		m.requestLatency.WithLabelValues(c.Method(), route).Observe(time.Since(start).Seconds())
		return nil
	}
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}

func (m *Metrics) OrderPlaced() { m.ordersPlaced.Inc() }

func (m *Metrics) OrderCancelled(path string) { m.ordersCancelled.WithLabelValues(path).Inc() }

func (m *Metrics) SaleRecorded() { m.salesRecorded.Inc() }

func (m *Metrics) StockRejected(source string) { m.stockRejections.WithLabelValues(source).Inc() }
