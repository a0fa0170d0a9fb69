package api

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sprite-ai/bugalert/internal/model"
)

type metrics struct {
	analyses    *prometheus.CounterVec
	rejected    *prometheus.CounterVec
	probability prometheus.Histogram
	duration    prometheus.Histogram
	inputBytes  prometheus.Histogram
	wsConns     prometheus.Gauge
}

func newMetrics(reg prometheus.Registerer) *metrics {
	f := promauto.With(reg)
	return &metrics{
		analyses: f.NewCounterVec(prometheus.CounterOpts{
			Name: "bugalert_analyses_total",
			Help: "Completed analyses by channel and risk level",
		}, []string{"channel", "risk"}),

		rejected: f.NewCounterVec(prometheus.CounterOpts{
			Name: "bugalert_rejected_inputs_total",
			Help: "Inputs refused before analysis, by reason",
		}, []string{"channel", "reason"}),

		probability: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "bugalert_bug_probability",
			Help:    "Distribution of predicted bug probability (percent)",
			Buckets: []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 95},
		}),

		duration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "bugalert_analysis_duration_seconds",
			Help:    "Engine time per analysis",
			Buckets: []float64{0.00001, 0.0001, 0.001, 0.01, 0.1, 1},
		}),

		inputBytes: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "bugalert_input_bytes",
			Help:    "Size of analyzed inputs",
			Buckets: prometheus.ExponentialBuckets(64, 4, 8),
		}),

		wsConns: f.NewGauge(prometheus.GaugeOpts{
			Name: "bugalert_websocket_connections",
			Help: "Open WebSocket connections",
		}),
	}
}

func (m *metrics) observe(channel string, res model.PredictionResult, size int, d time.Duration) {
	m.analyses.WithLabelValues(channel, res.RiskLevel.String()).Inc()
	m.probability.Observe(float64(res.BugProbability))
	m.duration.Observe(d.Seconds())
	m.inputBytes.Observe(float64(size))
}

func (m *metrics) reject(channel, reason string) {
	m.rejected.WithLabelValues(channel, reason).Inc()
}
