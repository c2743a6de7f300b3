// Package metrics expõe contadores Prometheus do serving de predições.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics agrupa os coletores em um registry próprio, para não depender de
// estado global do processo.
type Metrics struct {
	registry *prometheus.Registry

	predictions *prometheus.CounterVec
	scores      prometheus.Histogram
	logFailures prometheus.Counter
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		predictions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hiring_model",
			Name:      "predictions_total",
			Help:      "Predições servidas, por decisão.",
		}, []string{"decision"}),
		scores: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "hiring_model",
			Name:      "prediction_score",
			Help:      "Distribuição dos scores servidos.",
			Buckets:   prometheus.LinearBuckets(0, 0.1, 11),
		}),
		logFailures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "hiring_model",
			Name:      "inference_log_failures_total",
			Help:      "Gravações best-effort do inference_log que falharam.",
		}),
	}
}

// Handler devolve o endpoint de scrape deste registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObservePrediction registra uma predição servida.
func (m *Metrics) ObservePrediction(score float64, decision int) {
	if m == nil {
		return
	}
	m.predictions.WithLabelValues(strconv.Itoa(decision)).Inc()
	m.scores.Observe(score)
}

// IncLogFailure conta uma falha de gravação do inference_log.
func (m *Metrics) IncLogFailure() {
	if m == nil {
		return
	}
	m.logFailures.Inc()
}
