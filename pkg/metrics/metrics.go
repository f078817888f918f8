package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// CheckoutMetrics métricas del motor de checkout. Implementa checkout.Recorder.
type CheckoutMetrics struct {
	registry *prometheus.Registry
	total    *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewCheckoutMetrics registra las métricas en un registry propio (más las del runtime de Go).
func NewCheckoutMetrics(namespace string) *CheckoutMetrics {
	reg := prometheus.NewRegistry()
	total := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "checkout_total",
		Help:      "Checkouts procesados por resultado.",
	}, []string{"outcome"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "checkout_duration_seconds",
		Help:      "Duración del checkout (validación + unidad atómica).",
		Buckets:   []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
	}, []string{"outcome"})

	reg.MustRegister(total, duration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return &CheckoutMetrics{registry: reg, total: total, duration: duration}
}

// ObserveCheckout cuenta el resultado y registra la duración.
func (m *CheckoutMetrics) ObserveCheckout(outcome string, elapsed time.Duration) {
	m.total.WithLabelValues(outcome).Inc()
	m.duration.WithLabelValues(outcome).Observe(elapsed.Seconds())
}

// Registry expone el registry (tests).
func (m *CheckoutMetrics) Registry() *prometheus.Registry { return m.registry }

// Handler handler HTTP de /metrics.
func (m *CheckoutMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
