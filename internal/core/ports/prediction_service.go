package ports

import (
	"context"

	"github.com/lungscan/scan-api/internal/core/domain"
)

// PredictionService runs the prediction pipeline for one uploaded image.
type PredictionService interface {
	Predict(ctx context.Context, image []byte) (*domain.Prediction, error)
}
