// Package metrics defines the Prometheus collectors exported on /metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Prediction outcomes.
const (
	ResultHit   = "hit"
	ResultMiss  = "miss"
	ResultEmpty = "empty"
	ResultError = "error"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobportal_http_requests_total",
			Help: "Total number of HTTP requests by route and status code",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "jobportal_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	PredictionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobportal_predictions_total",
			Help: "Predictions served by outcome (cache hit, computed, empty, error)",
		},
		[]string{"result"},
	)

	ApplicationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "jobportal_applications_total",
			Help: "Total number of job applications submitted",
		},
	)

	DictionaryWords = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "jobportal_dictionary_words",
			Help: "Number of distinct words in the prediction dictionary",
		},
	)

	DictionaryRebuilds = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobportal_dictionary_rebuilds_total",
			Help: "Dictionary rebuilds by outcome",
		},
		[]string{"status"},
	)
)

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
