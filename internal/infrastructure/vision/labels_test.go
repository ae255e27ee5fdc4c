package vision

import (
	"errors"
	"math"
	"testing"

	"github.com/lungscan/scan-api/internal/core/domain"
)

func TestResultFromScores(t *testing.T) {
	cases := []struct {
		name       string
		scores     []float32
		class      string
		confidence float64
	}{
		{"benign wins", []float32{0.90, 0.06, 0.04}, domain.DiagnosisBenign, 0.90},
		{"malignant wins", []float32{0.05, 0.85, 0.10}, domain.DiagnosisMalignant, 0.85},
		{"normal wins", []float32{0.10, 0.10, 0.80}, domain.DiagnosisNormal, 0.80},
		{"tie keeps first", []float32{0.40, 0.40, 0.20}, domain.DiagnosisBenign, 0.40},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := resultFromScores(tc.scores)
			if err != nil {
				t.Fatalf("resultFromScores returned error: %v", err)
			}
			if result.PredictedClass != tc.class {
				t.Fatalf("expected class %s, got %s", tc.class, result.PredictedClass)
			}
			if math.Abs(result.Confidence-tc.confidence) > 1e-6 {
				t.Fatalf("expected confidence %v, got %v", tc.confidence, result.Confidence)
			}
		})
	}
}

func TestResultFromScores_Probabilities(t *testing.T) {
	result, err := resultFromScores([]float32{0.15, 0.70, 0.15})
	if err != nil {
		t.Fatalf("resultFromScores returned error: %v", err)
	}

	if len(result.Probabilities) != 3 {
		t.Fatalf("expected 3 probabilities, got %d", len(result.Probabilities))
	}
	// Probabilities stay keyed by the lowercase class names.
	for _, name := range []string{"benign", "malignant", "normal"} {
		if _, ok := result.Probabilities[name]; !ok {
			t.Fatalf("missing probability for %s", name)
		}
	}
	if result.Probabilities["malignant"] != result.Confidence {
		t.Fatalf("confidence %v does not match winning probability %v", result.Confidence, result.Probabilities["malignant"])
	}
}

func TestResultFromScores_WrongLength(t *testing.T) {
	for _, scores := range [][]float32{nil, {0.5}, {0.2, 0.3, 0.4, 0.1}} {
		if _, err := resultFromScores(scores); !errors.Is(err, domain.ErrInference) {
			t.Fatalf("expected ErrInference for %d scores, got %v", len(scores), err)
		}
	}
}
