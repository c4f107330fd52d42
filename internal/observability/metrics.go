package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups the Prometheus instruments used by the bot.
type Metrics struct {
	HandledUpdates    *prometheus.CounterVec
	GenerationResults *prometheus.CounterVec
	GenerationLatency prometheus.Histogram
	StoreErrors       *prometheus.CounterVec
	ContextTurns      prometheus.Histogram
}

func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		HandledUpdates: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "handled_updates_total",
			Help:      "Telegram updates by handler.",
		}, []string{"handler"}),
		GenerationResults: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "generation_results_total",
			Help:      "Generation calls by outcome.",
		}, []string{"outcome"}),
		GenerationLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "generation_latency_seconds",
			Help:      "Latency of the generation call.",
			Buckets:   []float64{0.5, 1, 2, 5, 10, 20, 40, 60},
		}),
		StoreErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_errors_total",
			Help:      "Log store failures by operation.",
		}, []string{"op"}),
		ContextTurns: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "context_turns",
			Help:      "Turns included as context per generation request.",
			Buckets:   []float64{0, 5, 10, 20, 30, 40, 50},
		}),
	}
}

func (m *Metrics) ObserveGeneration(outcome string, d time.Duration) {
	m.GenerationResults.WithLabelValues(outcome).Inc()
	m.GenerationLatency.Observe(d.Seconds())
}

func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
