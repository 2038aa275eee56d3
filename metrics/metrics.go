package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsTotal - requests by endpoint and outcome
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "penguin_service_requests_total",
			Help: "Total number of requests to the penguin classifier service",
		},
		[]string{"endpoint", "status"},
	)

	// RequestDuration - request handling time
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "penguin_service_request_duration_seconds",
			Help:    "Request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	// PredictionsTotal - predicted labels
	PredictionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "penguin_service_predictions_total",
			Help: "Total number of successful predictions by predicted species",
		},
		[]string{"species"},
	)

	// ValidationFailures - rejected prediction inputs by field and reason
	ValidationFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "penguin_service_validation_failures_total",
			Help: "Total number of prediction input validation failures",
		},
		[]string{"field", "type"},
	)

	// ModelLoaded - 1 when a model is being served, 0 after a failed load
	ModelLoaded = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "penguin_service_model_loaded",
			Help: "Whether the classifier artifact was loaded at startup",
		},
	)
)
