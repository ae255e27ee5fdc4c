package domain

import "errors"

var ErrInvalidImage = errors.New("invalid image file")
var ErrModelUnavailable = errors.New("classification model not available")
var ErrInference = errors.New("inference failed")

// Diagnosis labels, as emitted by the classifier (capitalized winner).
const (
	DiagnosisBenign    = "Benign"
	DiagnosisMalignant = "Malignant"
	DiagnosisNormal    = "Normal"
)

// Prediction is the structured result of one classifier invocation.
// Probabilities are keyed by the lowercase class names and Confidence is
// always the probability of PredictedClass.
type Prediction struct {
	PredictedClass string             `json:"predicted_class"`
	Confidence     float64            `json:"confidence"`
	Probabilities  map[string]float64 `json:"probabilities"`
}
