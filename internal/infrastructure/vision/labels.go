package vision

import (
	"fmt"

	"github.com/lungscan/scan-api/internal/core/domain"
)

// classNames is the model's training label order. The classifier output is
// read positionally against this slice; reordering it would silently swap
// diagnoses.
var classNames = []string{"benign", "malignant", "normal"}

// resultFromScores maps the raw network output onto a Prediction. The model
// ends in a softmax, so the scores are already a probability distribution.
func resultFromScores(scores []float32) (*domain.Prediction, error) {
	if len(scores) != len(classNames) {
		return nil, fmt.Errorf("%w: expected %d class scores, got %d", domain.ErrInference, len(classNames), len(scores))
	}

	best := 0
	probabilities := make(map[string]float64, len(classNames))
	for i, name := range classNames {
		probabilities[name] = float64(scores[i])
		if scores[i] > scores[best] {
			best = i
		}
	}

	return &domain.Prediction{
		PredictedClass: capitalize(classNames[best]),
		Confidence:     float64(scores[best]),
		Probabilities:  probabilities,
	}, nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}
