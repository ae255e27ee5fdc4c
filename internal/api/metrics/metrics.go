// Package metrics defines and registers all custom Prometheus metrics for
// the scan API. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics register with the default Prometheus registry at package init;
// the router exposes them on GET /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "lungscan"

// PredictionsTotal counts predictions that completed successfully.
// Label:
//   - class: the predicted diagnosis ("Benign", "Malignant", "Normal")
var PredictionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "predictions_total",
		Help:      "Total number of successful predictions, by predicted class.",
	},
	[]string{"class"},
)

// PredictionErrorsTotal counts failed predictions.
// Label:
//   - reason: "invalid_image", "model_unavailable", or "inference_error"
var PredictionErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "prediction_errors_total",
		Help:      "Total number of predictions that failed, by reason.",
	},
	[]string{"reason"},
)

// PredictionDuration measures one prediction end-to-end (decode to result).
var PredictionDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "prediction_duration_seconds",
		Help:      "Duration of the prediction pipeline from decode to result.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
)

// RecordsSavedTotal counts scan records persisted to the store.
// Label:
//   - diagnosis: the stored diagnosis label
var RecordsSavedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "records_saved_total",
		Help:      "Total number of scan records saved, by diagnosis.",
	},
	[]string{"diagnosis"},
)

// AuthFailuresTotal counts rejected authentications.
// Label:
//   - reason: "missing", "expired", or "invalid"
var AuthFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_failures_total",
		Help:      "Total number of rejected request authentications, by reason.",
	},
	[]string{"reason"},
)
