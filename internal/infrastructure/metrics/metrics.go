// Package metrics exposes Prometheus counters for HTTP traffic, stock
// movements and supplier notifications.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "backoffice"

// Registry owns every collector. It implements stock.Observer and
// alerts.Observer. Safe for concurrent use.
type Registry struct {
	registry *prometheus.Registry

	httpRequests  *prometheus.CounterVec
	httpDuration  *prometheus.HistogramVec
	movements     *prometheus.CounterVec
	rejections    *prometheus.CounterVec
	notifications *prometheus.CounterVec
	alertItems    *prometheus.GaugeVec
}

// New creates a registry with Go runtime and process collectors.
func New() *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		movements: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "stock",
			Name:      "movements_total",
			Help:      "Committed stock movements by direction.",
		}, []string{"direction"}),
		rejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "stock",
			Name:      "movements_rejected_total",
			Help:      "Rejected stock movements by direction and error code.",
		}, []string{"direction", "code"}),
		notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "alerts",
			Name:      "notifications_total",
			Help:      "Supplier notifications by result.",
		}, []string{"result"}),
		alertItems: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "alerts",
			Name:      "items",
			Help:      "Items needing restock at the last scan, by branch and status.",
		}, []string{"branch", "status"}),
	}

	r.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.httpRequests,
		r.httpDuration,
		r.movements,
		r.rejections,
		r.notifications,
		r.alertItems,
	)
	return r
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

// ObserveHTTP records one handled request.
func (r *Registry) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	r.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	r.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func (r *Registry) MovementRecorded(direction string) {
	r.movements.WithLabelValues(direction).Inc()
}

func (r *Registry) MovementRejected(direction, code string) {
	r.rejections.WithLabelValues(direction, code).Inc()
}

func (r *Registry) NotificationSent(success bool) {
	result := "failed"
	if success {
		result = "sent"
	}
	r.notifications.WithLabelValues(result).Inc()
}

// SetAlertItems records the outcome of a low-stock scan.
func (r *Registry) SetAlertItems(branch string, low, out int) {
	if branch == "" {
		branch = "all"
	}
	r.alertItems.WithLabelValues(branch, "low").Set(float64(low))
	r.alertItems.WithLabelValues(branch, "out").Set(float64(out))
}
