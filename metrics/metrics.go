package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "adega"

// Configuration outcomes
const (
	OutcomeStarted   = "started"
	OutcomeCompleted = "completed"
	OutcomeCancelled = "cancelled"
)

// Checkout statuses
const (
	CheckoutPlaced   = "placed"
	CheckoutRejected = "rejected"
	CheckoutFailed   = "failed"
)

// EngineMetrics counts configuration, validation and checkout events
type EngineMetrics struct {
	Configurations       *prometheus.CounterVec
	ValidationRejections *prometheus.CounterVec
	Checkouts            *prometheus.CounterVec
	OrderTotal           prometheus.Histogram
}

// NewEngineMetrics creates the collectors and registers them with reg
func NewEngineMetrics(reg prometheus.Registerer) *EngineMetrics {
	m := &EngineMetrics{
		Configurations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "configurations_total",
			Help:      "Product configurations by outcome.",
		}, []string{"outcome"}),
		ValidationRejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "validation_rejections_total",
			Help:      "Rejected selections and confirmations by step.",
		}, []string{"step"}),
		Checkouts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "checkouts_total",
			Help:      "Checkout attempts by status.",
		}, []string{"status"}),
		OrderTotal: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "order_total_brl",
			Help:      "Post-discount order totals in BRL.",
			Buckets:   []float64{20, 50, 100, 150, 200, 300, 500, 1000},
		}),
	}
	reg.MustRegister(m.Configurations, m.ValidationRejections, m.Checkouts, m.OrderTotal)
	return m
}

// Configuration counts one configuration outcome
func (m *EngineMetrics) Configuration(outcome string) {
	m.Configurations.WithLabelValues(outcome).Inc()
}

// Rejection counts one rejected action of step
func (m *EngineMetrics) Rejection(step string) {
	m.ValidationRejections.WithLabelValues(step).Inc()
}

// Checkout counts one checkout attempt
func (m *EngineMetrics) Checkout(status string) {
	m.Checkouts.WithLabelValues(status).Inc()
}

// ObserveOrder records a placed order total
func (m *EngineMetrics) ObserveOrder(totalBRL float64) {
	m.OrderTotal.Observe(totalBRL)
}

// ServerMetrics counts HTTP requests
type ServerMetrics struct {
	Requests  *prometheus.CounterVec
	LatencyMS *prometheus.HistogramVec
}

// NewServerMetrics creates the HTTP collectors and registers them with reg
func NewServerMetrics(reg prometheus.Registerer) *ServerMetrics {
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total number of HTTP requests.",
	}, []string{"handler", "status"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "request_duration_ms",
		Help:      "HTTP request latency in milliseconds.",
		Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
	}, []string{"handler"})

	reg.MustRegister(requests, latency)
	return &ServerMetrics{Requests: requests, LatencyMS: latency}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Instrument wraps next and records its requests under the handler label
func (m *ServerMetrics) Instrument(handler string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next(rec, r)
		m.Requests.WithLabelValues(handler, strconv.Itoa(rec.status)).Inc()
		m.LatencyMS.WithLabelValues(handler).Observe(float64(time.Since(start).Milliseconds()))
	}
}

// Handler exposes the collectors of gatherer
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
