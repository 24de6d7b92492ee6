package readingsender

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	outcomeSuccess   = "success"
	outcomeStatus    = "status_error"
	outcomeTransport = "transport_error"
	outcomeEncode    = "encode_error"
)

var (
	metricsRegistered = false
	readingsSent      = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "simulador_readings_sent_total",
			Help: "Total de tentativas de envio de medições, por resultado",
		},
		[]string{"outcome"},
	)
	anomaliesGenerated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "simulador_anomalies_generated_total",
			Help: "Total de leituras geradas com pico (anomalia)",
		},
	)
	sendDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "simulador_send_duration_seconds",
			Help:    "Duração de cada envio de medição",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
	)
)

func registerMetrics() {
	if metricsRegistered {
		return
	}
	metricsRegistered = true

	prometheus.MustRegister(
		readingsSent,
		anomaliesGenerated,
		sendDuration,
	)
}
