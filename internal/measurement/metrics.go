package measurement

import "github.com/prometheus/client_golang/prometheus"

var (
	metricsRegistered    = false
	measurementsReceived = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "receptor_measurements_received_total",
			Help: "Total de medições aceitas pelo receptor",
		},
	)
	measurementsRejected = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "receptor_measurements_rejected_total",
			Help: "Total de medições rejeitadas por corpo inválido",
		},
	)
	spikesDetected = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "receptor_spikes_detected_total",
			Help: "Total de picos de potência detectados (>= 1.8x a medição anterior)",
		},
	)
	storeDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "receptor_store_duration_seconds",
			Help:    "Duração da gravação de uma medição no Redis",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
	)
)

func registerMetrics() {
	if metricsRegistered {
		return
	}
	metricsRegistered = true

	prometheus.MustRegister(
		measurementsReceived,
		measurementsRejected,
		spikesDetected,
		storeDuration,
	)
}
