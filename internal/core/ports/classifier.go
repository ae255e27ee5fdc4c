package ports

import (
	"context"

	"github.com/lungscan/scan-api/internal/core/domain"
)

// Classifier abstracts the loaded image classification model. Predict is
// safe for concurrent use; implementations return domain.ErrModelUnavailable
// when no model artifact was loaded at startup.
type Classifier interface {
	Predict(ctx context.Context, image []byte) (*domain.Prediction, error)
	Loaded() bool
}
